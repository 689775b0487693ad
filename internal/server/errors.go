package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/parsing"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		inputErr   *ingestion.InputError
		extractErr *ingestion.ExtractionError
		apiErr     *parsing.APICallError
		parseErr   *parsing.ParseError
		validErr   *parsing.ValidationError
		tooLarge   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &inputErr), errors.As(err, &validErr):
		return http.StatusBadRequest
	case errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &apiErr), errors.As(err, &parseErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// errorCode is the short machine-readable summary placed in ErrorResponse.Error.
func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_input"
	case http.StatusRequestEntityTooLarge:
		return "file_too_large"
	case http.StatusUnprocessableEntity:
		return "extraction_failed"
	case http.StatusBadGateway:
		return "ai_extraction_failed"
	case http.StatusGatewayTimeout:
		return "timeout"
	default:
		return "internal_error"
	}
}
