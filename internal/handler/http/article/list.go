package article

import (
	"fmt"
	"net/http"

	"copydesk/internal/domain/entity"
	"copydesk/internal/handler/http/respond"
)

// List handles GET /articles?status=<status>.
// The status filter is mandatory: the store is only ever queried per queue,
// there is no unbounded list-everything endpoint.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status, err := entity.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	articles, err := h.repo.ListByStatus(r.Context(), status)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		items = append(items, toArticleResponse(a, false))
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"articles": items,
		"count":    len(items),
	})
}

// Get handles GET /articles/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	a, err := h.repo.Get(r.Context(), id)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if a == nil {
		respond.SafeError(w, http.StatusNotFound, fmt.Errorf("article %s: %w", id, entity.ErrNotFound))
		return
	}

	respond.JSON(w, http.StatusOK, toArticleResponse(a, true))
}
