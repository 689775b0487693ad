package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/jonathan/resume-parser/internal/pipeline"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unsupported type", &ingestion.InputError{Message: "unsupported file type .exe"}, http.StatusBadRequest},
		{"empty text", &parsing.ValidationError{Message: "resume text is empty"}, http.StatusBadRequest},
		{"too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"extraction", &ingestion.ExtractionError{Format: "pdf", Message: "document contains no text"}, http.StatusUnprocessableEntity},
		{"ai call", fmt.Errorf("AI extraction failed: %w", &parsing.APICallError{Message: "quota"}), http.StatusBadGateway},
		{"ai output", fmt.Errorf("AI extraction failed: %w", &parsing.ParseError{Message: "not JSON"}), http.StatusBadGateway},
		{"timeout", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"output schema", &pipeline.OutputError{Cause: errors.New("name: too short")}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "invalid_input", errorCode(http.StatusBadRequest))
	assert.Equal(t, "extraction_failed", errorCode(http.StatusUnprocessableEntity))
	assert.Equal(t, "ai_extraction_failed", errorCode(http.StatusBadGateway))
	assert.Equal(t, "internal_error", errorCode(http.StatusTeapot))
}
