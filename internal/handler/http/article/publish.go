package article

import (
	"encoding/json"
	"fmt"
	"net/http"

	"copydesk/internal/handler/http/respond"
)

type publishRequest struct {
	Schedule bool `json:"schedule"`
}

// Publish handles POST /articles/{id}/publish. With schedule set the article
// moves to scheduled and the post is created as a future post.
//
// When the publishing target rejects the post the article keeps its new
// status and a 502 tells the operator to retry the push.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
	}

	a, err := h.review.Publish(r.Context(), r.PathValue("id"), req.Schedule)
	if err != nil {
		if a != nil {
			// Status committed but the target call failed.
			respond.SafeError(w, http.StatusBadGateway, err)
			return
		}
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toArticleResponse(a, false))
}
