package httpserver

import (
	"net/http"

	"tourflow/internal/app"
	"tourflow/internal/domain"
)

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	var actor *domain.User
	if u, ok := userFrom(r.Context()); ok {
		actor = &u
	}
	q := domain.DestinationsQuery{
		MinPrice:  queryFloat(r, "min_price"),
		MaxPrice:  queryFloat(r, "max_price"),
		MinRating: queryFloat(r, "min_rating"),
		Page:      pageFrom(r),
	}
	if loc := r.URL.Query().Get("location"); loc != "" {
		q.Location = &loc
	}
	if actor != nil && actor.IsAdmin && r.URL.Query().Get("include_inactive") == "true" {
		q.IncludeInactive = true
	}
	out, err := h.Catalog.List(r.Context(), actor, q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDestinationDTOs(out))
}

func (h *Handlers) getDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, err := h.Catalog.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDestinationDTO(d))
}

type createDestinationRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Price       float64  `json:"price"`
	ImageURL    *string  `json:"image_url"`
}

func (h *Handlers) createDestination(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	var req createDestinationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	d, err := h.Catalog.Create(r.Context(), u, app.CreateDestinationInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Lat:         req.Latitude,
		Lon:         req.Longitude,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDestinationDTO(d))
}

type updateDestinationRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
	IsActive    *bool    `json:"is_active"`
}

func (h *Handlers) updateDestination(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateDestinationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	d, err := h.Catalog.Update(r.Context(), u, id, domain.DestinationPatch{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Lat:         req.Latitude,
		Lon:         req.Longitude,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDestinationDTO(d))
}

// deleteDestination soft-deletes by clearing the active flag.
func (h *Handlers) deleteDestination(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Catalog.Deactivate(r.Context(), u, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recommendations is a stub: personalization is out of scope.
func (h *Handlers) recommendations(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "Recommendations for user " + u.Email,
		"destinations": []destinationDTO{},
	})
}
