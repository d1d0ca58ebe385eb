package app

import (
	"context"
	"fmt"
	"math"
	"strings"

	"tourflow/internal/domain"
)

// ReviewService guards review submission behind a confirmed booking and keeps
// each destination's rating equal to the rounded mean of its reviews.
type ReviewService struct {
	reviews      domain.ReviewRepository
	bookings     domain.BookingRepository
	destinations domain.DestinationRepository
	cache        domain.Cache
}

func NewReviewService(r domain.ReviewRepository, b domain.BookingRepository, d domain.DestinationRepository, c domain.Cache) *ReviewService {
	return &ReviewService{reviews: r, bookings: b, destinations: d, cache: c}
}

type SubmitReviewInput struct {
	DestinationID int64
	Rating        float64
	Comment       string
}

func validRating(r float64) bool { return r >= 1 && r <= 5 }

func (s *ReviewService) Submit(ctx context.Context, user domain.User, in SubmitReviewInput) (domain.Review, error) {
	if !validRating(in.Rating) {
		return domain.Review{}, domain.Validationf("rating must be between 1 and 5")
	}
	if strings.TrimSpace(in.Comment) == "" || len(in.Comment) > 1000 {
		return domain.Review{}, domain.Validationf("comment must be 1-1000 characters")
	}
	if _, err := s.destinations.GetDestination(ctx, in.DestinationID); err != nil {
		return domain.Review{}, err
	}

	ok, err := s.bookings.HasConfirmedBooking(ctx, user.ID, in.DestinationID)
	if err != nil {
		return domain.Review{}, err
	}
	if !ok {
		return domain.Review{}, fmt.Errorf("%w: a confirmed booking is required before reviewing", domain.ErrForbidden)
	}

	id, err := s.reviews.CreateReview(ctx, domain.Review{
		UserID:        user.ID,
		DestinationID: in.DestinationID,
		Rating:        in.Rating,
		Comment:       in.Comment,
	})
	if err != nil {
		return domain.Review{}, err
	}
	if err := s.Recompute(ctx, in.DestinationID); err != nil {
		return domain.Review{}, err
	}
	return s.reviews.GetReview(ctx, id)
}

// Edit applies an author-only partial update and re-aggregates.
func (s *ReviewService) Edit(ctx context.Context, user domain.User, reviewID int64, patch domain.ReviewPatch) (domain.Review, error) {
	rv, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return domain.Review{}, err
	}
	if rv.UserID != user.ID {
		return domain.Review{}, domain.ErrForbidden
	}
	if patch.Rating != nil && !validRating(*patch.Rating) {
		return domain.Review{}, domain.Validationf("rating must be between 1 and 5")
	}
	if patch.Comment != nil && (strings.TrimSpace(*patch.Comment) == "" || len(*patch.Comment) > 1000) {
		return domain.Review{}, domain.Validationf("comment must be 1-1000 characters")
	}
	patch.Apply(&rv)
	if err := s.reviews.UpdateReview(ctx, rv); err != nil {
		return domain.Review{}, err
	}
	if err := s.Recompute(ctx, rv.DestinationID); err != nil {
		return domain.Review{}, err
	}
	return rv, nil
}

// Remove deletes the caller's review and re-aggregates over the remaining set.
func (s *ReviewService) Remove(ctx context.Context, user domain.User, reviewID int64) error {
	rv, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv.UserID != user.ID {
		return domain.ErrForbidden
	}
	if err := s.reviews.DeleteReview(ctx, reviewID); err != nil {
		return err
	}
	return s.Recompute(ctx, rv.DestinationID)
}

func (s *ReviewService) ListByDestination(ctx context.Context, destinationID int64) ([]domain.Review, error) {
	return s.reviews.ListReviewsByDestination(ctx, destinationID)
}

// Recompute re-derives the destination rating from scratch: the rounded mean
// of all its reviews, 0.0 when none remain. Full re-aggregation on every
// review mutation is fine at catalog scale.
func (s *ReviewService) Recompute(ctx context.Context, destinationID int64) error {
	avg, err := s.reviews.AverageRating(ctx, destinationID)
	if err != nil {
		return err
	}
	rating := 0.0
	if avg != nil {
		rating = roundRating(*avg)
	}
	if err := s.destinations.SetDestinationRating(ctx, destinationID, rating); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, destinationKey(destinationID))
	}
	return nil
}

// roundRating rounds to one decimal place.
func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
