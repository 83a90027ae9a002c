package app

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Scope owns the background work of one controller.
//
// Tasks launched in a scope share a context that Close cancels. Close then
// waits for them, so once it returns no task of the scope is running.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group

	mu      sync.Mutex
	active  int
	closed  bool
	settled chan struct{}
	once    sync.Once
}

// NewScope creates a scope whose context is derived from parent.
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)

	return &Scope{
		ctx:     ctx,
		cancel:  cancel,
		settled: make(chan struct{}),
	}
}

// Context is cancelled when the scope closes.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Launch runs fn in the background with the scope's context.
// Launching on a closed scope does nothing.
func (s *Scope) Launch(fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.active++

	s.group.Go(func() error {
		defer s.finish()

		return fn(s.ctx)
	})
}

// Settled is closed once every launched task has returned, or when the
// scope closes with nothing launched.
func (s *Scope) Settled() <-chan struct{} {
	return s.settled
}

// Close cancels the scope's context and waits for its tasks.
// It returns the first error a task reported. Close is idempotent.
func (s *Scope) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	err := s.group.Wait()
	s.settle()

	return err
}

func (s *Scope) finish() {
	s.mu.Lock()
	s.active--
	idle := s.active == 0
	s.mu.Unlock()

	if idle {
		s.settle()
	}
}

func (s *Scope) settle() {
	s.once.Do(func() { close(s.settled) })
}
