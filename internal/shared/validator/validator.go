package validator

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrValidation is the sentinel every *Error matches with errors.Is
var ErrValidation = errors.New("validation failed")

// Error is the single validation failure kind
// Field names the rejected field, Reason is the human-readable message
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any validation failure
func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

// New builds a validation failure for field
func New(field, reason string) *Error {
	return &Error{Field: field, Reason: reason}
}

// Field runs ozzo rules against a single field value.
// Rule failures come back as *Error; internal errors raised by a rule
// (e.g. a storage lookup) are returned unwrapped so callers can tell them apart.
func Field(ctx context.Context, field string, value interface{}, rules ...validation.Rule) error {
	err := validation.ValidateWithContext(ctx, value, rules...)
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return internal.InternalError()
	}

	return New(field, err.Error())
}

// AsError extracts the validation failure from an error chain
func AsError(err error) (*Error, bool) {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
