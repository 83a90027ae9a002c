// Package clients provides the resilient HTTP client used to reach JSONBin.
package clients

import "errors"

// Transport-level failures. The acl package turns them into domain errors.
var (
	// ErrCircuitOpen means the breaker rejected the call without sending it.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrRequestFailed wraps a transport error; no response arrived.
	ErrRequestFailed = errors.New("request failed")
)
