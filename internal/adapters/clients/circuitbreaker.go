package clients

import (
	"sync"
	"time"
)

// State represents the current state of the circuit breaker.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen blocks requests until the cool-down has passed.
	StateOpen

	// StateHalfOpen lets a limited number of probe requests through.
	StateHalfOpen
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker behavior.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failures before the circuit opens.
	MaxFailures int

	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration

	// HalfOpenLimit is both the number of concurrent probes allowed while
	// half-open and the number of consecutive probe successes that close it.
	HalfOpenLimit int
}

// CircuitBreaker guards the quotes host against request storms while it is
// failing. Only transport failures and server-side statuses count against it.
//
// State transitions:
//   - Closed → Open: After MaxFailures consecutive failures
//   - Open → HalfOpen: After Timeout has passed
//   - HalfOpen → Closed: After HalfOpenLimit consecutive successes
//   - HalfOpen → Open: On any failure
type CircuitBreaker struct {
	mu          sync.RWMutex
	state       State
	failures    int
	successes   int
	probes      int // in flight while half-open
	lastFailure time.Time
	cfg         CircuitBreakerConfig

	onStateChange func(from, to State)

	now func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
// Non-positive limits are raised to 1.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	cfg.MaxFailures = max(cfg.MaxFailures, 1)
	cfg.HalfOpenLimit = max(cfg.HalfOpenLimit, 1)

	return &CircuitBreaker{
		state: StateClosed,
		cfg:   cfg,
		now:   time.Now,
	}
}

// OnStateChange sets a callback that is invoked asynchronously on every transition.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.onStateChange = fn
}

// Allow reports whether a request may proceed. Every true result must be
// followed by exactly one of RecordSuccess, RecordFailure or RecordCanceled.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true

	case StateOpen:
		if cb.now().Sub(cb.lastFailure) < cb.cfg.Timeout {
			return false
		}

		cb.transitionTo(StateHalfOpen)
		cb.probes = 1

		return true

	case StateHalfOpen:
		if cb.probes >= cb.cfg.HalfOpenLimit {
			return false
		}

		cb.probes++

		return true

	default:
		return false
	}
}

// RecordSuccess records a request that reached the host and was answered.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures = 0

	case StateHalfOpen:
		cb.releaseProbe()

		cb.successes++
		if cb.successes >= cb.cfg.HalfOpenLimit {
			cb.transitionTo(StateClosed)
		}
	}
}

// RecordFailure records a transport failure or server-side error status.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailure = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.MaxFailures {
			cb.transitionTo(StateOpen)
		}

	case StateHalfOpen:
		cb.releaseProbe()
		cb.transitionTo(StateOpen)
	}
}

// RecordCanceled releases a request abandoned by its caller.
// It says nothing about the host, so counters are left alone.
func (cb *CircuitBreaker) RecordCanceled() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen {
		cb.releaseProbe()
	}
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.state
}

// releaseProbe must be called with the lock held.
func (cb *CircuitBreaker) releaseProbe() {
	if cb.probes > 0 {
		cb.probes--
	}
}

// transitionTo must be called with the lock held.
func (cb *CircuitBreaker) transitionTo(newState State) {
	if cb.state == newState {
		return
	}

	oldState := cb.state
	cb.state = newState
	cb.failures = 0
	cb.successes = 0

	if newState != StateHalfOpen {
		cb.probes = 0
	}

	if cb.onStateChange != nil {
		go cb.onStateChange(oldState, newState)
	}
}
