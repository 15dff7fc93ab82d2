package errs

import (
	"errors"
	"net/http"
)

// Sentinel errors shared by the consistency engine. Services wrap these
// with fmt.Errorf("...: %w", ...) so callers can match with errors.Is
// while still seeing the concrete reason.
var (
	// ErrPermissionDenied - the actor lacks the required role for the
	// requested mutation. Not retryable.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound - the primary target entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDanglingReference - a referenced parent or child does not resolve.
	// Creates fail hard on this; cascade-internal lookups downgrade it to a
	// skipped step instead.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrInvariantViolation - the mutation would leave a live workspace
	// without an administrator and no auto-repair path applies.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrConflict - duplicate membership or a concurrent structural
	// conflict detected by the storage layer. Retryable.
	ErrConflict = errors.New("conflict")

	// ErrTransactionAborted - the atomic apply failed for an infrastructure
	// reason and was rolled back completely. Retrying the whole operation
	// is safe.
	ErrTransactionAborted = errors.New("transaction aborted")
)

// HTTPStatus maps a service error onto the response code controllers
// return for it.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvariantViolation), errors.Is(err, ErrDanglingReference):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
