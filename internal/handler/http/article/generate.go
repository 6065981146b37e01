package article

import (
	"encoding/json"
	"fmt"
	"net/http"

	"copydesk/internal/domain/entity"
	"copydesk/internal/handler/http/respond"
	"copydesk/internal/usecase/pipeline"
)

type generateRequest struct {
	Title             string   `json:"title"`
	ContentType       string   `json:"content_type"`
	TargetKeywords    []string `json:"target_keywords"`
	TargetAudience    string   `json:"target_audience"`
	AdditionalContext string   `json:"additional_context"`
}

// Generate handles POST /articles/generate.
// A failed generation persists nothing; the caller decides whether to retry.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if len(req.TargetKeywords) == 0 {
		respond.Error(w, http.StatusBadRequest, fmt.Errorf("target_keywords is required"))
		return
	}
	contentType, err := entity.ParseContentType(req.ContentType)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	generated, err := h.pipeline.GenerateArticle(r.Context(), pipeline.Request{
		Title:             req.Title,
		ContentType:       contentType,
		TargetKeywords:    req.TargetKeywords,
		TargetAudience:    req.TargetAudience,
		AdditionalContext: req.AdditionalContext,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusCreated, toArticleResponse(generated, true))
}
