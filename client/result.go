package client

import (
	"encoding/json"
	"fmt"
)

// Result is the envelope returned by every operation. Exactly one of Data and
// Err is non-nil: Data holds the response body unmodified, Err the
// normalized failure.
type Result struct {
	Data json.RawMessage
	Err  *Error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.Err == nil }

// ErrorMessage returns the caller-facing error message, or "" on success.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Message
}

type resultJSON struct {
	Error *string         `json:"error"`
	Data  json.RawMessage `json:"data"`
}

// MarshalJSON renders the {error, data} envelope.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{Data: json.RawMessage("null")}
	if r.Err != nil {
		msg := r.Err.Message
		out.Error = &msg
		return json.Marshal(out)
	}
	out.Data = r.Data
	if len(r.Data) == 0 || string(r.Data) == "null" {
		out.Data = json.RawMessage(`""`)
	}
	return json.Marshal(out)
}

// Decode unmarshals the payload of a successful Result into T.
func Decode[T any](r Result) (T, error) {
	var v T
	if r.Err != nil {
		return v, r.Err
	}
	if err := json.Unmarshal(r.Data, &v); err != nil {
		return v, fmt.Errorf("decode result: %w", err)
	}
	return v, nil
}
