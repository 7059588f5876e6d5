package social

import (
	"errors"
	"fmt"
)

// Kind classifies a caller-visible command failure.
type Kind int

// Error kinds
const (
	KindValidation Kind = iota + 1
	KindConflict
	KindNotFound
	KindPermission
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindPermission:
		return "permission"
	default:
		return "unknown"
	}
}

// Error is a domain error carrying one of the four kinds. All four are
// synchronous failures of the command that raised them and are never retried
// automatically.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Validationf creates a validation error
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Conflictf creates a conflict error
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf creates a not-found error
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Permissionf creates a permission error
func Permissionf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPermission, Message: fmt.Sprintf(format, args...)}
}

// ErrKind returns the domain kind of err, or 0 for non-domain errors.
func ErrKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool { return ErrKind(err) == KindValidation }

// IsConflict reports whether err is a conflict error
func IsConflict(err error) bool { return ErrKind(err) == KindConflict }

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool { return ErrKind(err) == KindNotFound }

// IsPermission reports whether err is a permission error
func IsPermission(err error) bool { return ErrKind(err) == KindPermission }
