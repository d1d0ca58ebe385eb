package httpserver

import (
	"net/http"

	"tourflow/internal/app"
	"tourflow/internal/domain"
)

func (h *Handlers) listDestinationReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	out, err := h.Reviews.ListByDestination(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewDTOs(out))
}

type createReviewRequest struct {
	DestinationID int64   `json:"destination_id"`
	Rating        float64 `json:"rating"`
	Comment       string  `json:"comment"`
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	var req createReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rv, err := h.Reviews.Submit(r.Context(), u, app.SubmitReviewInput{
		DestinationID: req.DestinationID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewDTO(rv))
}

type updateReviewRequest struct {
	Rating  *float64 `json:"rating"`
	Comment *string  `json:"comment"`
}

func (h *Handlers) updateReview(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rv, err := h.Reviews.Edit(r.Context(), u, id, domain.ReviewPatch{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewDTO(rv))
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Reviews.Remove(r.Context(), u, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}
