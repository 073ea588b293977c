package planner

import (
	"errors"
	"fmt"
)

// Sentinel errors for the remote API's failure modes. Callers match
// with errors.Is; there is no automatic retry for any of them.
var (
	ErrUnauthorized = errors.New("planner: unauthorized")
	ErrNotFound     = errors.New("planner: task not found")
	// ErrConflict means the concurrency token presented on a write was
	// stale. The caller must refetch and let the user retry.
	ErrConflict    = errors.New("planner: concurrency conflict")
	ErrRateLimited = errors.New("planner: rate limited")
)

// statusError maps a non-success HTTP status to the error taxonomy.
func statusError(status int, body []byte) error {
	switch status {
	case 401, 403:
		return fmt.Errorf("%w (status %d): %s", ErrUnauthorized, status, body)
	case 404:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case 409, 412:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case 429:
		return fmt.Errorf("%w: %s", ErrRateLimited, body)
	}
	return fmt.Errorf("planner API error %d: %s", status, body)
}
