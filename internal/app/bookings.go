package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tourflow/internal/adapters/observability"
	"tourflow/internal/domain"
)

// BookingService owns the booking lifecycle: creation against a destination
// snapshot, the status transition graph, partial updates and the three
// audience-scoped listings.
type BookingService struct {
	bookings     domain.BookingRepository
	destinations domain.DestinationRepository
}

func NewBookingService(b domain.BookingRepository, d domain.DestinationRepository) *BookingService {
	return &BookingService{bookings: b, destinations: d}
}

type CreateBookingInput struct {
	DestinationID   int64
	TravelDate      time.Time
	EndDate         *time.Time
	Travelers       int
	SpecialRequests *string
	ContactEmail    string
	ContactPhone    *string
}

// newReference builds a short human-readable booking reference. Uniqueness is
// enforced by the store's unique index.
func newReference() string {
	return "BK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *BookingService) Create(ctx context.Context, user domain.User, in CreateBookingInput) (domain.BookingView, error) {
	if in.Travelers <= 0 {
		return domain.BookingView{}, domain.Validationf("number_of_travelers must be positive")
	}
	if strings.TrimSpace(in.ContactEmail) == "" {
		return domain.BookingView{}, domain.Validationf("contact_email is required")
	}
	if in.TravelDate.IsZero() {
		return domain.BookingView{}, domain.Validationf("travel_date is required")
	}

	dest, err := s.destinations.GetDestination(ctx, in.DestinationID)
	if err != nil {
		return domain.BookingView{}, err
	}
	if !dest.IsActive {
		return domain.BookingView{}, fmt.Errorf("%w: destination %d is not available for booking", domain.ErrInvalidState, dest.ID)
	}

	b := domain.Booking{
		Reference:       newReference(),
		UserID:          user.ID,
		DestinationID:   dest.ID,
		BookingDate:     time.Now().UTC(),
		TravelDate:      in.TravelDate,
		EndDate:         in.EndDate,
		Travelers:       in.Travelers,
		TotalPrice:      dest.Price * float64(in.Travelers),
		Status:          domain.StatusPending,
		SpecialRequests: in.SpecialRequests,
		ContactEmail:    in.ContactEmail,
		ContactPhone:    in.ContactPhone,
	}
	id, err := s.bookings.CreateBooking(ctx, b)
	if err != nil {
		return domain.BookingView{}, err
	}
	observability.ObserveBookingTransition("", string(domain.StatusPending))
	return s.bookings.GetBookingView(ctx, id)
}

// Get returns a booking with its destination snapshot. Travelers may only see
// their own bookings; operators and admins may see any.
func (s *BookingService) Get(ctx context.Context, actor domain.User, id int64) (domain.BookingView, error) {
	v, err := s.bookings.GetBookingView(ctx, id)
	if err != nil {
		return domain.BookingView{}, err
	}
	if v.UserID != actor.ID && !actor.IsOperator && !actor.IsAdmin {
		return domain.BookingView{}, domain.ErrForbidden
	}
	return v, nil
}

func (s *BookingService) GetByReference(ctx context.Context, actor domain.User, ref string) (domain.BookingView, error) {
	b, err := s.bookings.GetBookingByReference(ctx, ref)
	if err != nil {
		return domain.BookingView{}, err
	}
	return s.Get(ctx, actor, b.ID)
}

func (s *BookingService) Confirm(ctx context.Context, actor domain.User, id int64) (domain.BookingView, error) {
	return s.transition(ctx, actor, id, domain.StatusConfirmed)
}

func (s *BookingService) Cancel(ctx context.Context, actor domain.User, id int64) (domain.BookingView, error) {
	return s.transition(ctx, actor, id, domain.StatusCancelled)
}

func (s *BookingService) Complete(ctx context.Context, actor domain.User, id int64) (domain.BookingView, error) {
	return s.transition(ctx, actor, id, domain.StatusCompleted)
}

// Delete soft-deletes: the booking keeps its row, gains the DELETED marker and
// drops out of default listings. Idempotent.
func (s *BookingService) Delete(ctx context.Context, actor domain.User, id int64) error {
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if b.UserID != actor.ID && !actor.IsAdmin {
		return domain.ErrForbidden
	}
	if b.Status == domain.StatusDeleted {
		return nil
	}
	from := b.Status
	b.Status = domain.StatusDeleted
	if err := s.bookings.UpdateBooking(ctx, b); err != nil {
		return err
	}
	observability.ObserveBookingTransition(string(from), string(domain.StatusDeleted))
	return nil
}

type UpdateBookingInput = domain.BookingPatch

// Update merges the mutable descriptive fields and, when the patch carries a
// status, runs it through the same transition guards as the dedicated
// endpoints. The total price is never re-derived.
func (s *BookingService) Update(ctx context.Context, actor domain.User, id int64, patch domain.BookingPatch) (domain.BookingView, error) {
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return domain.BookingView{}, err
	}
	if b.UserID != actor.ID && !actor.IsOperator && !actor.IsAdmin {
		return domain.BookingView{}, domain.ErrForbidden
	}
	if patch.Travelers != nil && *patch.Travelers <= 0 {
		return domain.BookingView{}, domain.Validationf("number_of_travelers must be positive")
	}
	from := b.Status
	if patch.Status != nil && *patch.Status != from {
		to := *patch.Status
		if !to.Valid() {
			return domain.BookingView{}, domain.Validationf("unknown status %q", string(to))
		}
		if !from.CanTransitionTo(to) {
			return domain.BookingView{}, domain.TransitionError(from, to)
		}
		b.Status = to
	}
	patch.Apply(&b)
	if err := s.bookings.UpdateBooking(ctx, b); err != nil {
		return domain.BookingView{}, err
	}
	if b.Status != from {
		observability.ObserveBookingTransition(string(from), string(b.Status))
	}
	return s.bookings.GetBookingView(ctx, id)
}

func (s *BookingService) transition(ctx context.Context, actor domain.User, id int64, to domain.BookingStatus) (domain.BookingView, error) {
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return domain.BookingView{}, err
	}
	if b.UserID != actor.ID && !actor.IsOperator && !actor.IsAdmin {
		return domain.BookingView{}, domain.ErrForbidden
	}
	if !b.Status.CanTransitionTo(to) {
		return domain.BookingView{}, domain.TransitionError(b.Status, to)
	}
	from := b.Status
	b.Status = to
	if err := s.bookings.UpdateBooking(ctx, b); err != nil {
		return domain.BookingView{}, err
	}
	observability.ObserveBookingTransition(string(from), string(to))
	return s.bookings.GetBookingView(ctx, id)
}

// ListForUser is the traveler view: the caller's own bookings.
func (s *BookingService) ListForUser(ctx context.Context, user domain.User, pg domain.PageQuery) ([]domain.BookingView, error) {
	return s.bookings.ListBookingsByUser(ctx, user.ID, clampPage(pg))
}

// ListForOperator lists bookings placed on destinations owned by the caller.
func (s *BookingService) ListForOperator(ctx context.Context, actor domain.User, pg domain.PageQuery) ([]domain.BookingView, error) {
	if !actor.IsOperator && !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	return s.bookings.ListBookingsByOperator(ctx, actor.ID, clampPage(pg))
}

// ListAll is the admin view, optionally filtered by status.
func (s *BookingService) ListAll(ctx context.Context, actor domain.User, status *domain.BookingStatus, pg domain.PageQuery) ([]domain.BookingView, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	if status != nil && !status.Valid() {
		return nil, domain.Validationf("unknown status %q", string(*status))
	}
	return s.bookings.ListBookings(ctx, status, clampPage(pg))
}

func clampPage(pg domain.PageQuery) domain.PageQuery {
	if pg.Offset < 0 {
		pg.Offset = 0
	}
	if pg.Limit <= 0 || pg.Limit > 200 {
		pg.Limit = 100
	}
	return pg
}
