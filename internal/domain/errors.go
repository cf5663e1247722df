package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrNoFileProvided      = errors.New("no file provided")
	ErrNoFileSelected      = errors.New("no file selected")
	ErrUnsupportedFileType = errors.New("invalid file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrNoDocuments         = errors.New("no documents provided")
	ErrNoDocument          = errors.New("no document provided")
	ErrBillAndRecords      = errors.New("bill and medical records required")
	ErrTwoDocuments        = errors.New("two documents required")
	ErrInstructionsMissing = errors.New("custom instructions are required")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrJobNotCompleted     = errors.New("analysis not completed")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrInvalidRequest      = errors.New("invalid request body")
)

// MessageError attaches a client-facing message to one of the sentinel errors
// above. errors.Is still matches the sentinel.
type MessageError struct {
	Msg string
	Err error
}

func (e *MessageError) Error() string { return e.Msg }

func (e *MessageError) Unwrap() error { return e.Err }

// WithMessage wraps err with a formatted client-facing message.
func WithMessage(err error, format string, args ...any) error {
	return &MessageError{Msg: fmt.Sprintf(format, args...), Err: err}
}
