// Package observable provides a current-value holder that notifies subscribers
// of replacements.
//
// Each subscriber receives the current value immediately on Subscribe and
// every later replacement, conflated: a subscriber that falls behind only
// ever sees the newest value, never a backlog. Writers never block on
// readers.
package observable

import (
	"context"
	"slices"
	"sync"
)

// Option configures a Value.
type Option[T any] func(*Value[T])

// WithEqual suppresses notifications for a Set whose value equals the current one.
func WithEqual[T any](equal func(a, b T) bool) Option[T] {
	return func(v *Value[T]) {
		v.equal = equal
	}
}

// SliceEqual compares slices element-wise. A nil and an empty slice are equal.
func SliceEqual[E comparable](a, b []E) bool {
	return slices.Equal(a, b)
}

// Value holds the latest T and fans replacements out to subscribers.
// The zero value is not usable; construct with New.
type Value[T any] struct {
	mu      sync.Mutex
	current T
	version uint64
	equal   func(a, b T) bool
	subs    map[chan T]struct{}
}

// New returns a Value holding initial.
func New[T any](initial T, opts ...Option[T]) *Value[T] {
	v := &Value[T]{
		current: initial,
		subs:    make(map[chan T]struct{}),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Value returns the current value. Callers must treat reference types as
// read-only; the same instance is handed to every reader.
func (v *Value[T]) Value() T {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.current
}

// Version counts accepted replacements. It starts at zero.
func (v *Value[T]) Version() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.version
}

// Set replaces the current value and notifies subscribers.
// Returns false when an equality function reports no change.
func (v *Value[T]) Set(next T) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.equal != nil && v.equal(v.current, next) {
		return false
	}

	v.current = next
	v.version++

	for ch := range v.subs {
		offer(ch, next)
	}

	return true
}

// Subscribe returns a channel that first yields the current value and then
// every replacement until ctx is done, at which point it is closed.
func (v *Value[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	v.mu.Lock()
	ch <- v.current
	v.subs[ch] = struct{}{}
	v.mu.Unlock()

	go func() {
		<-ctx.Done()

		v.mu.Lock()
		delete(v.subs, ch)
		close(ch)
		v.mu.Unlock()
	}()

	return ch
}

// ReadOnly returns a view that cannot Set.
func (v *Value[T]) ReadOnly() ReadOnly[T] {
	return ReadOnly[T]{v: v}
}

// offer delivers next without blocking, replacing any undelivered value.
// Must be called with the owning Value's lock held.
func offer[T any](ch chan T, next T) {
	select {
	case ch <- next:
		return
	default:
	}

	select {
	case <-ch:
	default:
	}

	ch <- next
}

// ReadOnly exposes the reading half of a Value.
type ReadOnly[T any] struct {
	v *Value[T]
}

// Value returns the current value.
func (r ReadOnly[T]) Value() T {
	return r.v.Value()
}

// Version counts accepted replacements.
func (r ReadOnly[T]) Version() uint64 {
	return r.v.Version()
}

// Subscribe behaves like Value.Subscribe.
func (r ReadOnly[T]) Subscribe(ctx context.Context) <-chan T {
	return r.v.Subscribe(ctx)
}
