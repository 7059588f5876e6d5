package api

import (
	"github.com/matchday/socialgraph/internal/social"
)

// Standard JSON-RPC error codes
const (
	ErrParseError     = -32700
	ErrInvalidRequest = -32600
	ErrMethodNotFound = -32601
	ErrInvalidParams  = -32602
	ErrInternalError  = -32603
)

// Domain error codes in the implementation-defined server range
const (
	ErrServerError = -32000
	ErrNotFound    = -32001
	ErrConflict    = -32002
	ErrPermission  = -32003
)

// CodeForError maps a handler error to its JSON-RPC error code. Domain
// errors carry their kind; everything else is a generic server error.
func CodeForError(err error) int {
	switch social.ErrKind(err) {
	case social.KindValidation:
		return ErrInvalidParams
	case social.KindNotFound:
		return ErrNotFound
	case social.KindConflict:
		return ErrConflict
	case social.KindPermission:
		return ErrPermission
	default:
		return ErrServerError
	}
}

// MessageForCode returns the standard message for an error code
func MessageForCode(code int) string {
	switch code {
	case ErrParseError:
		return "Parse error"
	case ErrInvalidRequest:
		return "Invalid Request"
	case ErrMethodNotFound:
		return "Method not found"
	case ErrInvalidParams:
		return "Invalid params"
	case ErrNotFound:
		return "Not found"
	case ErrConflict:
		return "Conflict"
	case ErrPermission:
		return "Permission denied"
	default:
		return "Server error"
	}
}
