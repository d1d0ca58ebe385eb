package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tourflow/internal/app"
	"tourflow/internal/domain"
)

type Handlers struct {
	Auth     *app.AuthService
	Catalog  *app.CatalogService
	Bookings *app.BookingService
	Reviews  *app.ReviewService
	Payments *app.PaymentService
	Stats    *app.StatsService
	Weather  domain.WeatherClient
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
		r.Post("/auth/logout", h.logout)

		r.With(h.MaybeAuthenticate).Get("/destinations", h.listDestinations)
		r.Get("/destinations/{id}", h.getDestination)
		r.Get("/reviews/destination/{id}", h.listDestinationReviews)
		r.Get("/weather/{location}", h.weatherByLocation)
		r.Get("/weather", h.weatherByCoords)

		r.Group(func(r chi.Router) {
			r.Use(h.Authenticate)

			r.Get("/auth/me", h.me)

			r.Post("/destinations", h.createDestination)
			r.Put("/destinations/{id}", h.updateDestination)
			r.Delete("/destinations/{id}", h.deleteDestination)

			r.Get("/bookings", h.listBookings)
			r.Get("/bookings/operator", h.listOperatorBookings)
			r.Post("/bookings", h.createBooking)
			r.Get("/bookings/reference/{ref}", h.getBookingByReference)
			r.Get("/bookings/{id}", h.getBooking)
			r.Put("/bookings/{id}", h.updateBooking)
			r.Delete("/bookings/{id}", h.deleteBooking)
			r.Put("/bookings/{id}/status", h.updateBookingStatus)
			r.Post("/bookings/{id}/confirm", h.confirmBooking)
			r.Post("/bookings/{id}/cancel", h.cancelBooking)
			r.Post("/bookings/{id}/complete", h.completeBooking)

			r.Post("/reviews", h.createReview)
			r.Put("/reviews/{id}", h.updateReview)
			r.Delete("/reviews/{id}", h.deleteReview)

			r.Post("/payments/process", h.processPayment)
			r.Get("/recommendations/destinations", h.recommendations)

			r.Get("/admin/dashboard/stats", h.dashboardStats)
			r.Get("/admin/bookings", h.adminBookings)
			r.Get("/admin/destinations", h.adminDestinations)
		})
	})
}

// ---- problem+json responses ----

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError translates service errors into client-facing status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInvalidTransition):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	default:
		log.Error().Err(err).Msg("internal error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, def int) int {
	if s := r.URL.Query().Get(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}

func queryFloat(r *http.Request, key string) *float64 {
	if s := r.URL.Query().Get(key); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
	}
	return nil
}

func pageFrom(r *http.Request) domain.PageQuery {
	return domain.PageQuery{
		Offset: queryInt(r, "skip", 0),
		Limit:  queryInt(r, "limit", 100),
	}
}
