package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidResetToken = errors.New("reset password token is invalid or has been expired")
	ErrPasswordMismatch  = errors.New("passwords do not match")
)

// Error is a status-coded application error. Handlers map it onto the HTTP
// response; anything that is not an *Error is reported as a redacted 500.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Validation reports a violated input precondition.
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Unauthorized reports missing or invalid credentials or session.
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Forbidden reports a role that is not permitted for the operation.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// NotFound reports an absent referenced entity.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Conflict reports a duplicate-email registration. The source reports this
// class as a 400.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Dependency wraps a database, email or image-host failure. The wrapped
// error is for logs only and never leaks to the client.
func Dependency(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, Err: err}
}

// StatusOf resolves the HTTP status for any error.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// MessageOf resolves the client-facing message for any error. Unclassified
// errors are redacted.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}
