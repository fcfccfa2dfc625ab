package channel

import (
	"encoding/json"
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Status tells the three kinds of Response apart.
type Status string

const (
	StatusSuccess        Status = "success"
	StatusError          Status = "error"
	StatusNotImplemented Status = "notImplemented"
)

// ErrNotImplemented is returned for a method the channel does not know.
var ErrNotImplemented = errors.New("method not implemented")

// Error is a structured failure carried by an error Response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnavailable reports whether err is an UNAVAILABLE channel error.
func IsUnavailable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeUnavailable
}

// Response is the outcome of a method call: a result, an error, or
// not-implemented.
type Response struct {
	Status  Status `json:"status"`
	Result  any    `json:"result,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Success returns a successful Response carrying v.
func Success(v any) Response {
	return Response{Status: StatusSuccess, Result: v}
}

// Failure returns an error Response.
func Failure(code, message string, details any) Response {
	return Response{Status: StatusError, Code: code, Message: message, Details: details}
}

// NotImplemented returns the Response for an unknown method.
func NotImplemented() Response {
	return Response{Status: StatusNotImplemented}
}

// Err returns nil for a success, *Error for a failure and
// ErrNotImplemented otherwise.
func (r Response) Err() error {
	switch r.Status {
	case StatusSuccess:
		return nil
	case StatusError:
		return &Error{Code: r.Code, Message: r.Message, Details: r.Details}
	default:
		return ErrNotImplemented
	}
}

// Envelope is a Response as decoded from the wire, with the result left
// raw so callers can decode it into the type they expect.
type Envelope struct {
	Status  Status          `json:"status"`
	Result  json.RawMessage `json:"result,omitempty"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
}

// DecodeEnvelope parses an encoded Response.
func DecodeEnvelope(b []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to unmarshal response envelope")
	}

	switch e.Status {
	case StatusSuccess, StatusError, StatusNotImplemented:
	default:
		return nil, pkgerrors.Errorf("unknown response status %q", e.Status)
	}

	return &e, nil
}

// Err is like Response.Err.
func (e *Envelope) Err() error {
	switch e.Status {
	case StatusSuccess:
		return nil
	case StatusError:
		ce := &Error{Code: e.Code, Message: e.Message}
		if len(e.Details) > 0 && string(e.Details) != "null" {
			ce.Details = e.Details
		}
		return ce
	default:
		return ErrNotImplemented
	}
}

// Decode stores the result of a successful envelope in v. Unsuccessful
// envelopes return the same error as Err.
func (e *Envelope) Decode(v any) error {
	if err := e.Err(); err != nil {
		return err
	}
	if len(e.Result) == 0 {
		return pkgerrors.New("response has no result")
	}
	return pkgerrors.Wrap(json.Unmarshal(e.Result, v), "failed to unmarshal result")
}
