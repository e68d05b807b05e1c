package client

import (
	"errors"

	clienterrors "github.com/TanakaAkihiro0930/SocialEcho/client/internal/errors"
)

// Error is the normalized failure carried by Result.Err.
type Error = clienterrors.APIError

// ErrorKind distinguishes server-reported messages from everything else.
type ErrorKind = clienterrors.Kind

const (
	// ServerReported errors carry the server's {message}.
	ServerReported = clienterrors.ServerReported
	// Unknown errors carry UnexpectedErrorMessage.
	Unknown = clienterrors.Unknown
)

// UnexpectedErrorMessage is the message of every Unknown error.
const UnexpectedErrorMessage = clienterrors.UnexpectedMessage

// IsServerReported reports whether err is an Error reported by the server.
func IsServerReported(err error) bool { return clienterrors.IsServerReported(err) }

// AsError extracts an *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
