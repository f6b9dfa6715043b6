package errors

import "net/http"

// Kind identifies a class of domain failure. The set is closed: every
// error raised by the services or validation layer is one of these.
type Kind int

const (
	// KindInvalidInput marks a request that failed schema validation.
	KindInvalidInput Kind = iota
	// KindUnauthorized marks missing or bad credentials.
	KindUnauthorized
	// KindForbidden marks an authenticated caller acting outside their rights.
	KindForbidden
	// KindConflict marks a uniqueness violation.
	KindConflict
	// KindNotFound marks a missing resource.
	KindNotFound
)

// Error is a domain error with a stable kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindInvalidInput:
		return http.StatusUnprocessableEntity
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// InvalidInput builds a validation error (422).
func InvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// Unauthorized builds a missing/bad-credentials error (401).
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden builds a not-permitted error (403).
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Conflict builds a uniqueness-violation error (409).
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NotFound builds a missing-resource error (404).
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	domainErr, ok := err.(*Error)
	return ok && domainErr.Kind == kind
}
