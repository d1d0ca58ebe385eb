package httpserver

import (
	"net/http"

	"tourflow/internal/domain"
)

func (h *Handlers) dashboardStats(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	st, err := h.Stats.Dashboard(r.Context(), u)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_bookings":     st.TotalBookings,
		"total_revenue":      st.TotalRevenue,
		"total_users":        st.TotalUsers,
		"total_destinations": st.TotalDestinations,
	})
}

func (h *Handlers) adminBookings(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	var status *domain.BookingStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.BookingStatus(s)
		status = &st
	}
	out, err := h.Bookings.ListAll(r.Context(), u, status, pageFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTOs(out))
}

func (h *Handlers) adminDestinations(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	if !u.IsAdmin {
		writeError(w, domain.ErrForbidden)
		return
	}
	out, err := h.Catalog.List(r.Context(), &u, domain.DestinationsQuery{
		IncludeInactive: true,
		Page:            pageFrom(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDestinationDTOs(out))
}
