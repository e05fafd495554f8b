package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrQuotaExceeded = errors.New("ai quota exceeded")
)

// APIError is a non-2xx response. Detail carries the server's "detail"
// message when it was a plain string.
type APIError struct {
	Status int
	Detail string
	// Err is the sentinel the status maps to, if any.
	Err error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("unexpected status %d %s", e.Status, http.StatusText(e.Status))
}

func (e *APIError) Unwrap() error { return e.Err }

// FieldError is one entry of a 422 "detail" list.
type FieldError struct {
	Loc  []any          `json:"loc"`
	Type string         `json:"type"`
	Msg  string         `json:"msg"`
	Ctx  map[string]any `json:"ctx"`
}

// HasLoc reports whether name appears anywhere in the location path.
func (f FieldError) HasLoc(name string) bool {
	for _, l := range f.Loc {
		if s, ok := l.(string); ok && s == name {
			return true
		}
	}
	return false
}

// Limit returns the numeric length limit attached to a min/max length
// error, looking at both the older limit_value key and the newer
// min_length/max_length keys.
func (f FieldError) Limit() (int, bool) {
	for _, k := range []string{"limit_value", "min_length", "max_length"} {
		if v, ok := f.Ctx[k]; ok {
			switch n := v.(type) {
			case float64:
				return int(n), true
			case int:
				return n, true
			}
		}
	}
	return 0, false
}

// ValidationError is a 422 response carrying field errors.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Msg)
	}
	return "validation error: " + strings.Join(msgs, "; ")
}

// errorBody is the FastAPI error envelope.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// mapStatus turns a non-2xx status plus body into an error. 422 with a
// list detail becomes *ValidationError; everything else an *APIError
// wrapping the matching sentinel.
func mapStatus(status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	if status == http.StatusUnprocessableEntity && len(eb.Detail) > 0 && eb.Detail[0] == '[' {
		var fields []FieldError
		if err := json.Unmarshal(eb.Detail, &fields); err == nil {
			return &ValidationError{Fields: fields}
		}
	}

	apiErr := &APIError{Status: status}
	if len(eb.Detail) > 0 && eb.Detail[0] == '"' {
		_ = json.Unmarshal(eb.Detail, &apiErr.Detail)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		apiErr.Err = ErrUnauthorized
	case status == http.StatusTooManyRequests || mentionsQuota(apiErr.Detail):
		apiErr.Err = ErrQuotaExceeded
	case status == http.StatusBadGateway || status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout:
		apiErr.Err = ErrUnavailable
	}
	return apiErr
}

func mentionsQuota(s string) bool {
	l := strings.ToLower(s)
	return strings.Contains(l, "quota") || strings.Contains(l, "cuota")
}
