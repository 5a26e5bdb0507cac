package pdfword

import (
	"errors"
	"fmt"

	"github.com/tsawler/pdfword/model"
)

// Sentinel errors matched by errors.Is against the typed errors below.
var (
	ErrDocumentParse = errors.New("document parse error")
	ErrSerialization = errors.New("serialization error")
)

// DocumentParseError reports input that could not be read as a PDF, or a
// page selection the PDF cannot satisfy. The whole conversion is aborted.
type DocumentParseError struct {
	Message string
	Err     error
}

func (e *DocumentParseError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DocumentParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDocumentParse) true.
func (e *DocumentParseError) Is(target error) bool {
	return target == ErrDocumentParse
}

// SerializationError reports a failure while building the Word package.
// The assembled document is kept for diagnosis.
type SerializationError struct {
	Message  string
	Err      error
	Document *model.Document
}

func (e *SerializationError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap returns the underlying cause.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSerialization) true.
func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}
