package ingestion

import "fmt"

// InputError represents a problem with the submitted document itself:
// a missing file, an empty upload, or an unsupported file type.
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// ExtractionError represents a failure of a format backend (PDF parser, DOCX reader, OCR engine)
// or a document that yielded no usable text.
type ExtractionError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	prefix := "text extraction failed"
	if e.Format != "" {
		prefix = fmt.Sprintf("%s text extraction failed", e.Format)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
