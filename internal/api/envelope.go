package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is bumped when the envelope shape changes.
const EnvelopeVersion = 1

// Envelope is the shape of every JSON response body.
// Successful responses carry Data; failures carry Error plus the coded fields.
type Envelope struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps response bodies in an Envelope.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if _, ok := v.(*Envelope); ok {
		return v, nil
	}

	code, _ := strconv.Atoi(status)
	if code < 400 {
		return &Envelope{Version: EnvelopeVersion, Success: true, Data: v}, nil
	}

	env := &Envelope{Version: EnvelopeVersion, Success: false}
	switch e := v.(type) {
	case *APIError:
		env.Error = e.Message
		env.Code = e.Code
		env.Message = e.Message
		env.Details = e.Details
	case error:
		env.Error = e.Error()
	default:
		env.Error = "request failed"
	}
	return env, nil
}
