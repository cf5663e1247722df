package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies why a call failed.
type ErrorKind string

const (
	// KindHTTP means the backend answered with a non-2xx status.
	KindHTTP ErrorKind = "http"
	// KindTransport means no response was received.
	KindTransport ErrorKind = "transport"
	// KindDecode means a 2xx body could not be parsed.
	KindDecode ErrorKind = "decode"
	// KindEncode means the request payload could not be built.
	KindEncode ErrorKind = "encode"
)

// Error is the single error type returned by every Client operation.
// Error() yields one human-readable message regardless of Kind.
type Error struct {
	Kind       ErrorKind
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an HTTP 404 from the backend.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an HTTP failure.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindHTTP {
		return apiErr.StatusCode
	}
	return 0
}

func newHTTPError(method, path string, status int, body []byte) *Error {
	return &Error{
		Kind:       KindHTTP,
		Method:     method,
		Path:       path,
		StatusCode: status,
		Message:    errorMessage(status, body),
	}
}

func newTransportError(method, path string, err error) *Error {
	return &Error{Kind: KindTransport, Method: method, Path: path, Message: err.Error(), Err: err}
}

func newDecodeError(method, path string, status int, err error) *Error {
	return &Error{
		Kind:       KindDecode,
		Method:     method,
		Path:       path,
		StatusCode: status,
		Message:    fmt.Sprintf("failed to parse response: %v", err),
		Err:        err,
	}
}

func newEncodeError(method, path string, err error) *Error {
	return &Error{
		Kind:    KindEncode,
		Method:  method,
		Path:    path,
		Message: fmt.Sprintf("failed to encode request: %v", err),
		Err:     err,
	}
}

// errorMessage derives the message for a non-2xx response: the string "error"
// field of a JSON body, else the raw body text, else the status line.
func errorMessage(status int, body []byte) string {
	trimmed := bytes.TrimSpace(body)

	var parsed struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &parsed); err == nil && parsed.Error != nil && *parsed.Error != "" {
		return *parsed.Error
	}
	if len(trimmed) > 0 {
		return string(trimmed)
	}
	return fmt.Sprintf("HTTP %d %s", status, http.StatusText(status))
}
