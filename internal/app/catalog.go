package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tourflow/internal/domain"
)

// CatalogService manages destination records and the filtered public listing.
// Single-destination reads go through the cache; every catalog write and
// rating recompute evicts the corresponding entry.
type CatalogService struct {
	destinations domain.DestinationRepository
	cache        domain.Cache
	cacheTTL     time.Duration
}

func NewCatalogService(d domain.DestinationRepository, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{destinations: d, cache: c, cacheTTL: ttl}
}

func destinationKey(id int64) string { return fmt.Sprintf("destination:%d", id) }

type CreateDestinationInput struct {
	Title       string
	Description string
	Location    string
	Lat, Lon    *float64
	Price       float64
	ImageURL    *string
}

func (s *CatalogService) Create(ctx context.Context, actor domain.User, in CreateDestinationInput) (domain.Destination, error) {
	if !actor.IsOperator && !actor.IsAdmin {
		return domain.Destination{}, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Location) == "" {
		return domain.Destination{}, domain.Validationf("title and location are required")
	}
	if in.Price <= 0 {
		return domain.Destination{}, domain.Validationf("price must be positive")
	}
	d := domain.Destination{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Lat:         in.Lat,
		Lon:         in.Lon,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Rating:      0,
		IsActive:    true,
		OperatorID:  actor.ID,
	}
	id, err := s.destinations.CreateDestination(ctx, d)
	if err != nil {
		return domain.Destination{}, err
	}
	return s.destinations.GetDestination(ctx, id)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (domain.Destination, error) {
	key := destinationKey(id)
	var d domain.Destination
	if ok, _ := s.cache.Get(ctx, key, &d); ok {
		return d, nil
	}
	d, err := s.destinations.GetDestination(ctx, id)
	if err != nil {
		return domain.Destination{}, err
	}
	_ = s.cache.Set(ctx, key, d, int(s.cacheTTL.Seconds()))
	return d, nil
}

// List applies the optional filters (AND-combined). Inactive rows are only
// returned when the caller is an admin.
func (s *CatalogService) List(ctx context.Context, actor *domain.User, q domain.DestinationsQuery) ([]domain.Destination, error) {
	if actor == nil || !actor.IsAdmin {
		q.IncludeInactive = false
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return nil, domain.Validationf("min_price exceeds max_price")
	}
	q.Page = clampPage(q.Page)
	return s.destinations.ListDestinations(ctx, q)
}

func (s *CatalogService) Update(ctx context.Context, actor domain.User, id int64, patch domain.DestinationPatch) (domain.Destination, error) {
	d, err := s.destinations.GetDestination(ctx, id)
	if err != nil {
		return domain.Destination{}, err
	}
	if !actor.IsAdmin && !(actor.IsOperator && d.OperatorID == actor.ID) {
		return domain.Destination{}, domain.ErrForbidden
	}
	if patch.Price != nil && *patch.Price <= 0 {
		return domain.Destination{}, domain.Validationf("price must be positive")
	}
	patch.Apply(&d)
	if err := s.destinations.UpdateDestination(ctx, d); err != nil {
		return domain.Destination{}, err
	}
	_ = s.cache.Del(ctx, destinationKey(id))
	return d, nil
}

// Deactivate soft-deletes: bookings and reviews keep referencing the row, it
// just stops being bookable and drops out of public listings.
func (s *CatalogService) Deactivate(ctx context.Context, actor domain.User, id int64) error {
	off := false
	_, err := s.Update(ctx, actor, id, domain.DestinationPatch{IsActive: &off})
	return err
}
