// Package errors classifies failed API calls into the two outward error kinds
// surfaced by the client: messages reported by the server, and everything else.
package errors

import (
	"errors"
	"fmt"
)

// UnexpectedMessage is the message carried by every Unknown error.
const UnexpectedMessage = "An unexpected error occurred."

// Kind tags an APIError with its origin.
type Kind int

const (
	// Unknown covers network failures, malformed responses and failed
	// responses whose body carries no message.
	Unknown Kind = iota

	// ServerReported means the server answered with a structured {message} body.
	ServerReported
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Unknown:
		return "Unknown"
	case ServerReported:
		return "ServerReported"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// APIError is the single error shape produced by the request layer.
type APIError struct {
	Kind       Kind
	Message    string // message shown to callers
	StatusCode int    // HTTP status code (0 when no response was received)
	Operation  string
	Cause      error // underlying transport or decode error, if any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.StatusCode > 0 && e.Cause != nil:
		return fmt.Sprintf("%s [%s] HTTP %d: %s: %v", e.Operation, e.Kind, e.StatusCode, e.Message, e.Cause)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s [%s] HTTP %d: %s", e.Operation, e.Kind, e.StatusCode, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("%s [%s] %s: %v", e.Operation, e.Kind, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s [%s] %s", e.Operation, e.Kind, e.Message)
	}
}

// Unwrap returns the underlying cause for error chain compatibility.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// IsServerReported reports whether err carries a server-provided message.
func IsServerReported(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == ServerReported
}

// As extracts the APIError from err. Any other error is wrapped as Unknown
// so callers always get a classified value back.
func As(operation string, err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{Kind: Unknown, Message: UnexpectedMessage, Operation: operation, Cause: err}
}
