package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/amonks/noteit/note"
)

// Kind classifies failures for presentation.
type Kind int

const (
	// KindUnknown covers failures that fit no other kind.
	KindUnknown Kind = iota

	// KindValidation is a local input check that failed before any request.
	KindValidation

	// KindRequest is a response with a non-success status.
	KindRequest

	// KindTransport is a request that never produced a response.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRequest:
		return "request"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// RequestError reports a non-success HTTP response.
type RequestError struct {
	// Op names the failed operation, e.g. "fetch notes".
	Op string

	StatusCode int
	StatusText string

	// Detail is the server's error message, when the body carried one.
	Detail string
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("failed to %s: %s", e.Op, e.StatusText)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// NotFound reports whether the server answered 404.
func (e *RequestError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// TransportError reports a request that produced no response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// KindOf classifies err. A nil error is KindUnknown.
func KindOf(err error) Kind {
	var requestErr *RequestError
	var transportErr *TransportError
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, note.ErrInvalidInput):
		return KindValidation
	case errors.As(err, &requestErr):
		return KindRequest
	case errors.As(err, &transportErr):
		return KindTransport
	default:
		return KindUnknown
	}
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var requestErr *RequestError
	return errors.As(err, &requestErr) && requestErr.NotFound()
}

// Message returns a human-readable description of err, or fallback when err
// carries no message of its own.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
