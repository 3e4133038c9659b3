/*
errors.go - Centralized error types for the engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Engine errors - ResourceNotFound, InvalidInterval
  2. Store errors  - Record lookups and record validation

Neither engine retries anything: there is no I/O to retry. Callers are
expected to degrade (zero availability, no deficit) and surface a warning.

USAGE:
  if errors.Is(err, generic.ErrResourceNotFound) {
      // render as zero availability
  }

SEE ALSO:
  - inventory/resolver.go: ResourceNotFoundError
  - api/handlers.go: HTTP status mapping
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrResourceNotFound is returned when availability is asked for a
	// resource id with no matching inventory item.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrInvalidInterval is returned for a window or record interval whose
	// end precedes its start.
	ErrInvalidInterval = errors.New("invalid interval: end before start")

	// ErrRecordNotFound is returned by repositories for unknown ids.
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidRecord is returned when a record fails validation on save.
	ErrInvalidRecord = errors.New("invalid record")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidIntervalError reports the offending bounds.
type InvalidIntervalError struct {
	Start   Day
	End     Day
	Context string // e.g. "job job-1", "window"
}

func (e *InvalidIntervalError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("invalid interval for %s: [%s, %s]", e.Context, e.Start, e.End)
	}
	return fmt.Sprintf("invalid interval: [%s, %s]", e.Start, e.End)
}

func (e *InvalidIntervalError) Unwrap() error {
	return ErrInvalidInterval
}

// WithContext returns err annotated with what the interval belongs to, if
// err is an InvalidIntervalError. Other errors pass through untouched.
func WithContext(err error, context string) error {
	var ie *InvalidIntervalError
	if errors.As(err, &ie) {
		return &InvalidIntervalError{Start: ie.Start, End: ie.End, Context: context}
	}
	return err
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrInvalidRecord)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrResourceNotFound) ||
		errors.Is(err, ErrRecordNotFound)
}
