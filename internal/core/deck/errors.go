package deck

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced by the deck engine and its services.
// Match them with errors.Is.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrPermission  = errors.New("permission denied")
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError carries every rule violation found by a check.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

// Is makes ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError returns a ValidationError for the given reasons.
func NewValidationError(reasons ...string) *ValidationError {
	return &ValidationError{Reasons: reasons}
}

// PersistenceError wraps a failed store read or write. The composition being
// saved is left untouched, so the operation can be retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is makes PersistenceError match ErrPersistence.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// NotFound returns an error matching ErrNotFound for the named resource.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

// Forbidden returns an error matching ErrPermission with a reason.
func Forbidden(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrPermission)
}
