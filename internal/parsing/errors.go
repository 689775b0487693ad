package parsing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-parser/internal/schemas"
)

// APICallError represents a failed call to the model provider
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents malformed or schema-invalid model output. Key names the offending
// record key (such as "Experience Details") when it is known.
type ParseError struct {
	Message string
	Key     string
	Cause   error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg = fmt.Sprintf("%s (key %q)", msg, e.Key)
	}
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", msg)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// newParseError builds a ParseError, taking Key from a schema or decode failure in cause.
func newParseError(message string, cause error) *ParseError {
	return &ParseError{Message: message, Key: offendingKey(cause), Cause: cause}
}

// offendingKey returns the top-level record key named by err, or "".
func offendingKey(err error) string {
	var field string
	var schemaErr *schemas.ValidationError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &schemaErr) && len(schemaErr.Errors) > 0:
		field = schemaErr.Errors[0].Field
	case errors.As(err, &typeErr):
		field = typeErr.Field
	}
	if field == "(root)" {
		return ""
	}
	key, _, _ := strings.Cut(field, ".")
	return key
}

// ValidationError represents resume text the extractor refuses to send to the model
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid resume %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid resume input: %s", e.Message)
}
