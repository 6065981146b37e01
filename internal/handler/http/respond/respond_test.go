package respond

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSON_WritesBodyAndContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"id": "a1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"a1"}`, rec.Body.String())
}

func TestSafeError_PassesValidationErrorsThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusBadRequest, errors.New("title is required"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"title is required"}`, rec.Body.String())
}

func TestSafeError_MasksInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusBadGateway, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestSafeError_AlwaysMasksServerErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	// Contains a "safe" word but the status class wins.
	SafeError(rec, http.StatusInternalServerError, errors.New("article not found in cache layer"))

	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestSanitizeError_MasksSecrets(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"anthropic key",
			"auth failed for sk-ant-api03-abc123XYZ",
			"auth failed for sk-ant-****",
		},
		{
			"openai key",
			"auth failed for sk-proj1234567890abc",
			"auth failed for sk-****",
		},
		{
			"dsn password",
			"connect postgres://svc:hunter2@db:5432/app",
			"connect postgres://svc:****@db:5432/app",
		},
		{
			"no secrets",
			"plain message",
			"plain message",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeError(errors.New(tt.in)))
		})
	}
}
