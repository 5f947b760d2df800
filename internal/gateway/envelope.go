package gateway

import (
	"encoding/json"
	"fmt"
)

// PageMeta carries pagination metadata on list envelopes
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// Envelope is the normalized wrapper returned by every gateway call,
// regardless of transport outcome. Expected failures (auth errors, 4xx,
// unreachable network) are folded into a failure envelope rather than
// returned as errors; callers check Success.
type Envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	Error      string          `json:"error,omitempty"`
	Pagination *PageMeta       `json:"pagination,omitempty"`
}

// OK builds a success envelope around the given payload
func OK(data any) Envelope {
	raw, err := json.Marshal(data)
	if err != nil {
		return Fail("ENCODE_FAILED", fmt.Sprintf("failed to encode response payload: %v", err))
	}
	return Envelope{Success: true, Data: raw}
}

// OKMessage builds a success envelope with a message and no payload
func OKMessage(message string) Envelope {
	return Envelope{Success: true, Message: message}
}

// Fail builds a failure envelope
func Fail(code, message string) Envelope {
	return Envelope{Success: false, Error: code, Message: message}
}

// FailErr builds a failure envelope from an error
func FailErr(code string, err error) Envelope {
	return Envelope{Success: false, Error: code, Message: err.Error()}
}

// Decode unmarshals the envelope payload into T. A failure envelope decodes
// to an error carrying the envelope message.
func Decode[T any](env Envelope) (T, error) {
	var v T
	if !env.Success {
		return v, EnvelopeError(env)
	}
	if len(env.Data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return v, fmt.Errorf("decode envelope payload: %w", err)
	}
	return v, nil
}

// EnvelopeError converts a failure envelope into an error. The message wins
// over the error code, mirroring how the dashboard picks its toast text.
func EnvelopeError(env Envelope) error {
	if env.Success {
		return nil
	}
	if env.Message != "" {
		return fmt.Errorf("%s", env.Message)
	}
	if env.Error != "" {
		return fmt.Errorf("%s", env.Error)
	}
	return fmt.Errorf("request failed")
}
