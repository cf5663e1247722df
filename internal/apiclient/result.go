package apiclient

import "errors"

// Result is the discriminated form of a call outcome: exactly one of Data or
// Error is meaningful, selected by Success.
type Result[T any] struct {
	Success bool   `json:"success" yaml:"success"`
	Data    T      `json:"data,omitempty" yaml:"data,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Wrap converts a (value, error) pair into a Result. On failure Data is the zero value.
func Wrap[T any](data T, err error) Result[T] {
	if err != nil {
		return Result[T]{Success: false, Error: err.Error()}
	}
	return Result[T]{Success: true, Data: data}
}

// Capture runs fn and wraps its outcome.
func Capture[T any](fn func() (T, error)) Result[T] {
	return Wrap(fn())
}

// Unwrap converts the Result back into a (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	if !r.Success {
		var zero T
		msg := r.Error
		if msg == "" {
			msg = "unknown error"
		}
		return zero, errors.New(msg)
	}
	return r.Data, nil
}
