package article

import (
	"encoding/json"
	"fmt"
	"net/http"

	"copydesk/internal/handler/http/respond"
)

type approveRequest struct {
	Override bool `json:"override"`
}

// Approve handles POST /articles/{id}/approve. The quality gate is evaluated
// at decision time; a failing article needs an explicit override.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	var req approveRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
	}

	a, err := h.review.Approve(r.Context(), r.PathValue("id"), req.Override)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toArticleResponse(a, false))
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Reject handles POST /articles/{id}/reject. A reason is mandatory.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	a, err := h.review.Reject(r.Context(), r.PathValue("id"), req.Reason)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toArticleResponse(a, false))
}

// maxBulkIDs caps a single bulk request.
const maxBulkIDs = 100

type bulkApproveRequest struct {
	IDs      []string `json:"ids"`
	Override bool     `json:"override"`
}

// BulkApprove handles POST /articles/bulk/approve. Items are independent; the
// response reports per-item outcomes and the overall status is 200 as long as
// the request itself was well formed.
func (h *Handler) BulkApprove(w http.ResponseWriter, r *http.Request) {
	var req bulkApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := validateBulkIDs(req.IDs); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	results := h.review.BulkApprove(r.Context(), req.IDs, req.Override)
	respond.JSON(w, http.StatusOK, toBulkResponse(results))
}

type bulkRejectRequest struct {
	IDs    []string `json:"ids"`
	Reason string   `json:"reason"`
}

// BulkReject handles POST /articles/bulk/reject with a shared reason.
func (h *Handler) BulkReject(w http.ResponseWriter, r *http.Request) {
	var req bulkRejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := validateBulkIDs(req.IDs); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	results := h.review.BulkReject(r.Context(), req.IDs, req.Reason)
	respond.JSON(w, http.StatusOK, toBulkResponse(results))
}

func validateBulkIDs(ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("ids is required")
	}
	if len(ids) > maxBulkIDs {
		return fmt.Errorf("ids must be %d or fewer, got %d", maxBulkIDs, len(ids))
	}
	return nil
}
