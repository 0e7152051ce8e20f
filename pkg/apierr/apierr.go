// Package apierr defines the HTTP-status-bearing error taxonomy shared by
// the codec, router, and service wiring layers.
//
// Every failure that must become an HTTP response carries a status code.
// Handlers, the parser, and the JSON codec all return plain Go errors;
// the per-connection worker in services/httpserver is the single place
// that asks "does this unwrap to a *Error" and picks a status code if
// not.
package apierr

import "fmt"

// Error is a failure that knows which HTTP status it should produce.
type Error struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Status returns the HTTP status code this error should produce.
func (e *Error) Status() int { return e.StatusCode }

// New builds a status-bearing error from a format string, same calling
// convention as fmt.Errorf.
func New(status int, format string, args ...any) *Error {
	return &Error{StatusCode: status, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a status code to an existing error without discarding it.
func Wrap(status int, cause error) *Error {
	return &Error{StatusCode: status, Message: cause.Error(), Cause: cause}
}

// BadRequest builds a 400 error: malformed request line, header, method,
// JSON, or a missing required field.
func BadRequest(format string, args ...any) *Error {
	return New(400, format, args...)
}

// NotFound builds a 404 error: unmatched route or disallowed method on a
// matched route.
func NotFound(format string, args ...any) *Error {
	return New(404, format, args...)
}

// Timeout builds a 408 error: a socket read or write returned
// EAGAIN/EWOULDBLOCK during an HTTP operation.
func Timeout(format string, args ...any) *Error {
	return New(408, format, args...)
}

// Internal builds a 500 error: protocol misuse by a handler, or an
// unexpected I/O failure.
func Internal(format string, args ...any) *Error {
	return New(500, format, args...)
}

// StatusOf returns the status code e would produce, walking Unwrap chains,
// and defaults to 500 for any error that never opts into the taxonomy.
func StatusOf(err error) int {
	type statusser interface{ Status() int }
	for err != nil {
		if s, ok := err.(statusser); ok {
			return s.Status()
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return 500
}
