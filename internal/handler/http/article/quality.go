package article

import (
	"net/http"
	"time"

	"copydesk/internal/handler/http/respond"
)

// Quality handles GET /articles/{id}/quality. The verdict is computed fresh
// from the stored content on every call.
func (h *Handler) Quality(w http.ResponseWriter, r *http.Request) {
	report, err := h.pipeline.Quality(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toQualityResponse(report))
}

// Clock handles GET /articles/{id}/clock for articles awaiting review.
func (h *Handler) Clock(w http.ResponseWriter, r *http.Request) {
	report, err := h.review.Clock(r.Context(), r.PathValue("id"), time.Now())
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toClockResponse(report))
}
