package apperrors

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// Kind classifies a failure into the taxonomy every boundary response maps from.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindValidation
	KindConflict
)

// Error is the single error type the HTTP boundary knows how to render.
// Components below the boundary return sentinel errors; handlers wrap them
// into an Error (or hand the raw error to Classify, which collapses anything
// unrecognized to an internal error).
type Error struct {
	Kind     Kind
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

func New(kind Kind, messages ...string) *Error {
	return &Error{Kind: kind, Messages: messages}
}

func Unauthenticated(message string) *Error {
	return New(KindUnauthenticated, message)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Validation aggregates every field-level message into one error.
func Validation(messages []string) *Error {
	return &Error{Kind: KindValidation, Messages: messages}
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// Classify maps any error to an HTTP status, wire code, and user-facing
// messages. The code is the numeric status rendered as a string, matching the
// envelope contract shared with the web client. Unclassified errors never leak
// their text to the caller.
func Classify(err error) (status int, code string, messages []string) {
	var appErr *Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case KindUnauthenticated:
			status = http.StatusUnauthorized
		case KindForbidden:
			status = http.StatusForbidden
		case KindNotFound:
			status = http.StatusNotFound
		case KindValidation:
			status = http.StatusBadRequest
		case KindConflict:
			status = http.StatusConflict
		default:
			status = http.StatusInternalServerError
		}
		if status != http.StatusInternalServerError {
			return status, strconv.Itoa(status), appErr.Messages
		}
	}

	return http.StatusInternalServerError,
		strconv.Itoa(http.StatusInternalServerError),
		[]string{"Internal server error"}
}
