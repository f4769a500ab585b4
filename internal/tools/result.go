// In file: internal/tools/result.go
package tools

import (
	"errors"
	"fmt"
	"time"
)

// Result is the uniform payload every data client produces. It is always a
// mapping with either domain fields or an "error" key, never both. The
// "data_source" / "note" fields tell the caller whether the data is live
// or simulated.
type Result map[string]any

// ErrorKind classifies a client failure so callers can dispatch on a
// structured kind instead of matching substrings in error messages.
type ErrorKind int

const (
	ErrUpstreamFailure ErrorKind = iota
	ErrMissingCredentials
	ErrNotFound
)

// ToolError is the error type returned by the external data clients.
type ToolError struct {
	Kind    ErrorKind
	Message string
}

func (e *ToolError) Error() string { return e.Message }

// NewToolError creates a tagged client error.
func NewToolError(kind ErrorKind, format string, args ...any) *ToolError {
	return &ToolError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsMissingCredentials reports whether err is a ToolError caused by an
// absent or placeholder API key. The dispatcher's fallback to simulated
// data fires only on this kind.
func IsMissingCredentials(err error) bool {
	var te *ToolError
	return errors.As(err, &te) && te.Kind == ErrMissingCredentials
}

// ErrorResult renders an error into the uniform error-shaped mapping.
func ErrorResult(message string, extra Result) Result {
	res := Result{
		"error":     message,
		"timestamp": Timestamp(),
	}
	for k, v := range extra {
		res[k] = v
	}
	return res
}

// Timestamp formats the current time the way all tool payloads report it.
func Timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
