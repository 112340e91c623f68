package assistant

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and map well to HTTP or CLI exit
// semantics. New codes should be added sparingly.
const (
	ECONFLICT    = "conflict"
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
)

// Error represents an application-specific error. Application errors can
// be unwrapped by the caller to extract the machine-readable code and a
// human-readable message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface. Not used by the application
// otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("assistant error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
