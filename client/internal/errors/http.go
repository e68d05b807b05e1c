package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// messageBody is the optional failure payload returned by the backend.
type messageBody struct {
	Message json.RawMessage `json:"message"`
}

// FromResponse classifies a non-2xx response. The body is decoded as {message};
// only a non-empty JSON string counts as a server-reported message.
func FromResponse(operation string, statusCode int, body []byte) *APIError {
	if msg, ok := decodeMessage(body); ok {
		return &APIError{
			Kind:       ServerReported,
			Message:    msg,
			StatusCode: statusCode,
			Operation:  operation,
		}
	}
	return &APIError{
		Kind:       Unknown,
		Message:    UnexpectedMessage,
		StatusCode: statusCode,
		Operation:  operation,
		Cause:      fmt.Errorf("%s failed: HTTP %d", operation, statusCode),
	}
}

// NewNetworkError creates an Unknown error for failures where no response
// was received (dial errors, timeouts, canceled contexts).
func NewNetworkError(operation string, err error) *APIError {
	return &APIError{
		Kind:      Unknown,
		Message:   UnexpectedMessage,
		Operation: operation,
		Cause:     fmt.Errorf("%s network error: %w", operation, err),
	}
}

// NewMalformedError creates an Unknown error for a successful status whose
// body is not valid JSON.
func NewMalformedError(operation string, statusCode int) *APIError {
	return &APIError{
		Kind:       Unknown,
		Message:    UnexpectedMessage,
		StatusCode: statusCode,
		Operation:  operation,
		Cause:      fmt.Errorf("%s: malformed response body", operation),
	}
}

func decodeMessage(body []byte) (string, bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", false
	}
	var mb messageBody
	if err := json.Unmarshal(body, &mb); err != nil || len(mb.Message) == 0 {
		return "", false
	}
	var msg string
	if err := json.Unmarshal(mb.Message, &msg); err != nil {
		return "", false
	}
	if msg == "" {
		return "", false
	}
	return msg, true
}
