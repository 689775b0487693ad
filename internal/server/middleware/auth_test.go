package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClaims struct {
	subject string
}

func (c *testClaims) GetSubject() (string, error) {
	return c.subject, nil
}

// testTokenValidator accepts a fixed set of tokens.
type testTokenValidator map[string]string

func (v testTokenValidator) ValidateToken(token string) (SubjectGetter, error) {
	subject, ok := v[token]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return &testClaims{subject: subject}, nil
}

func protected(t *testing.T, validator TokenValidator) (http.Handler, *string) {
	t.Helper()
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, err := Subject(r)
		require.NoError(t, err)
		seen = subject
		w.WriteHeader(http.StatusOK)
	})
	return RequireAuth(validator)(next), &seen
}

func TestRequireAuth_ValidToken(t *testing.T) {
	handler, seen := protected(t, testTokenValidator{"good": "ci-bot"})

	for _, header := range []string{"Bearer good", "bearer good", "BEARER  good"} {
		req := httptest.NewRequest(http.MethodPost, "/parse", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, header)
		assert.Equal(t, "ci-bot", *seen)
	}
}

func TestRequireAuth_Rejects(t *testing.T) {
	handler, _ := protected(t, testTokenValidator{"good": "ci-bot", "anon": ""})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic good"},
		{"no token", "Bearer"},
		{"extra parts", "Bearer good extra"},
		{"unknown token", "Bearer bad"},
		{"empty subject", "Bearer anon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/parse", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "unauthorized", body["error"])
			assert.NotEmpty(t, body["details"])
		})
	}
}

func TestSubject_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := Subject(req)
	assert.Error(t, err)

	req = req.WithContext(context.WithValue(req.Context(), SubjectKey(), 42))
	_, err = Subject(req)
	assert.Error(t, err)
}
