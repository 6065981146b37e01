// Package article exposes the generation and review pipeline over HTTP.
package article

import (
	"errors"
	"log/slog"
	"net/http"

	"copydesk/internal/domain/entity"
	"copydesk/internal/infra/generation"
	"copydesk/internal/repository"
	"copydesk/internal/usecase/lifecycle"
	"copydesk/internal/usecase/pipeline"
	"copydesk/internal/usecase/review"
)

// Handler serves all article endpoints.
type Handler struct {
	pipeline *pipeline.Service
	review   *review.Service
	repo     repository.ArticleRepository
	logger   *slog.Logger
}

// NewHandler creates an article handler.
func NewHandler(logger *slog.Logger, p *pipeline.Service, r *review.Service, repo repository.ArticleRepository) *Handler {
	return &Handler{pipeline: p, review: r, repo: repo, logger: logger}
}

// Register mounts the article routes on the mux. generateMW, when non-nil,
// wraps only the generation endpoint.
func (h *Handler) Register(mux *http.ServeMux, generateMW func(http.Handler) http.Handler) {
	var generate http.Handler = http.HandlerFunc(h.Generate)
	if generateMW != nil {
		generate = generateMW(generate)
	}
	mux.Handle("POST /articles/generate", generate)
	mux.HandleFunc("GET /articles", h.List)
	mux.HandleFunc("GET /articles/{id}", h.Get)
	mux.HandleFunc("GET /articles/{id}/quality", h.Quality)
	mux.HandleFunc("GET /articles/{id}/clock", h.Clock)
	mux.HandleFunc("POST /articles/{id}/approve", h.Approve)
	mux.HandleFunc("POST /articles/{id}/reject", h.Reject)
	mux.HandleFunc("POST /articles/{id}/publish", h.Publish)
	mux.HandleFunc("POST /articles/bulk/approve", h.BulkApprove)
	mux.HandleFunc("POST /articles/bulk/reject", h.BulkReject)
}

// statusFor maps a use case error to an HTTP status code.
func statusFor(err error) int {
	var validation *entity.ValidationError
	var provider *generation.ProviderError

	switch {
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, lifecycle.ErrQualityGateFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, lifecycle.ErrMissingRejectionReason),
		errors.Is(err, pipeline.ErrMissingTitle),
		errors.Is(err, pipeline.ErrUnknownContentType),
		errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, generation.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, pipeline.ErrInvalidOutput), errors.As(err, &provider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
