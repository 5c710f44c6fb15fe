package qwen

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField marks a required response field that was absent.
	ErrMissingField = errors.New("qwen: required response field missing")
	// ErrMalformedResponse marks a 2xx body that is not the expected JSON.
	ErrMalformedResponse = errors.New("qwen: malformed gateway response")
)

// HTTPStatusError is returned for any non-2xx gateway reply. The body is
// not inspected.
type HTTPStatusError struct {
	Op         string
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("qwen: %s: POST %s: gateway returned %s", e.Op, e.URL, e.Status)
}

// MissingFieldError 表示响应中缺少必需字段（目前仅 embeddings）。
type MissingFieldError struct {
	Op    string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("qwen: %s: response has no %q field", e.Op, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
