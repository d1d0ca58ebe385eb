package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tourflow/internal/app"
	"tourflow/internal/domain"
)

type createBookingRequest struct {
	DestinationID     int64      `json:"destination_id"`
	TravelDate        time.Time  `json:"travel_date"`
	EndDate           *time.Time `json:"end_date"`
	NumberOfTravelers int        `json:"number_of_travelers"`
	SpecialRequests   *string    `json:"special_requests"`
	ContactEmail      string     `json:"contact_email"`
	ContactPhone      *string    `json:"contact_phone"`
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	var req createBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v, err := h.Bookings.Create(r.Context(), u, app.CreateBookingInput{
		DestinationID:   req.DestinationID,
		TravelDate:      req.TravelDate,
		EndDate:         req.EndDate,
		Travelers:       req.NumberOfTravelers,
		SpecialRequests: req.SpecialRequests,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTO(v))
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := h.Bookings.Get(r.Context(), u, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTO(v))
}

func (h *Handlers) getBookingByReference(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	v, err := h.Bookings.GetByReference(r.Context(), u, chi.URLParam(r, "ref"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTO(v))
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	out, err := h.Bookings.ListForUser(r.Context(), u, pageFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTOs(out))
}

func (h *Handlers) listOperatorBookings(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	out, err := h.Bookings.ListForOperator(r.Context(), u, pageFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTOs(out))
}

type updateBookingRequest struct {
	TravelDate        *time.Time `json:"travel_date"`
	EndDate           *time.Time `json:"end_date"`
	NumberOfTravelers *int       `json:"number_of_travelers"`
	SpecialRequests   *string    `json:"special_requests"`
	ContactEmail      *string    `json:"contact_email"`
	ContactPhone      *string    `json:"contact_phone"`
	Status            *string    `json:"status"`
}

func (req updateBookingRequest) patch() domain.BookingPatch {
	p := domain.BookingPatch{
		TravelDate:      req.TravelDate,
		EndDate:         req.EndDate,
		Travelers:       req.NumberOfTravelers,
		SpecialRequests: req.SpecialRequests,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
	}
	if req.Status != nil {
		st := domain.BookingStatus(*req.Status)
		p.Status = &st
	}
	return p
}

func (h *Handlers) updateBooking(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v, err := h.Bookings.Update(r.Context(), u, id, req.patch())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTO(v))
}

// updateBookingStatus handles PUT /bookings/{id}/status with a {status} body.
func (h *Handlers) updateBookingStatus(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	st := domain.BookingStatus(req.Status)
	v, err := h.Bookings.Update(r.Context(), u, id, domain.BookingPatch{Status: &st})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTO(v))
}

func (h *Handlers) confirmBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Bookings.Confirm)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Bookings.Cancel)
}

func (h *Handlers) completeBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Bookings.Complete)
}

func (h *Handlers) transition(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, actor domain.User, id int64) (domain.BookingView, error)) {
	u, _ := userFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := op(r.Context(), u, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTO(v))
}

func (h *Handlers) deleteBooking(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Bookings.Delete(r.Context(), u, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
