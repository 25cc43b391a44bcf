package shared

import (
	"errors"
	"fmt"
)

// Rejection is implemented by errors that refuse a request under a domain
// rule. A rejected request leaves the session untouched.
type Rejection interface {
	error
	Rejected()
}

// IsRejection reports whether err, or anything it wraps, is a Rejection
func IsRejection(err error) bool {
	var r Rejection
	return errors.As(err, &r)
}

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (*DomainError) Rejected() {}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// ValidationError reports a request field that failed validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (*ValidationError) Rejected() {}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UnknownKeyError names a material, module or crew member outside the catalog.
// Kind is the noun used in messages ("material", "module", "crew member").
type UnknownKeyError struct {
	*DomainError
	Kind string
	Key  string
}

func NewUnknownKeyError(kind, key string) *UnknownKeyError {
	return &UnknownKeyError{
		DomainError: NewDomainError(fmt.Sprintf("unknown %s: %q", kind, key)),
		Kind:        kind,
		Key:         key,
	}
}
