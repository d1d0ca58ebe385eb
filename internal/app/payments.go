package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tourflow/internal/adapters/observability"
	"tourflow/internal/domain"
)

// PaymentService simulates settlement: it validates card-shaped input and
// confirms a pending booking. No gateway is ever called.
type PaymentService struct {
	bookings domain.BookingRepository
}

func NewPaymentService(b domain.BookingRepository) *PaymentService {
	return &PaymentService{bookings: b}
}

type PaymentInput struct {
	BookingID      int64
	CardNumber     string
	ExpiryDate     string
	CVV            string
	CardholderName string
}

type PaymentResult struct {
	Success   bool   `json:"success"`
	PaymentID string `json:"payment_id"`
	Message   string `json:"message"`
}

func (s *PaymentService) Process(ctx context.Context, user domain.User, in PaymentInput) (PaymentResult, error) {
	digits := strings.ReplaceAll(in.CardNumber, " ", "")
	if len(digits) < 13 || len(digits) > 19 {
		return PaymentResult{}, domain.Validationf("invalid card number")
	}
	if len(in.CVV) < 3 || len(in.CVV) > 4 {
		return PaymentResult{}, domain.Validationf("invalid CVV")
	}

	b, err := s.bookings.GetBooking(ctx, in.BookingID)
	if err != nil {
		return PaymentResult{}, err
	}
	if b.UserID != user.ID {
		return PaymentResult{}, fmt.Errorf("%w: not authorized to pay for this booking", domain.ErrForbidden)
	}
	if b.Status != domain.StatusPending {
		return PaymentResult{}, fmt.Errorf("%w: booking %s cannot be paid for", domain.ErrInvalidState, b.Reference)
	}

	paymentID := uuid.NewString()
	b.PaymentID = &paymentID
	b.Status = domain.StatusConfirmed
	if err := s.bookings.UpdateBooking(ctx, b); err != nil {
		return PaymentResult{}, err
	}
	observability.ObserveBookingTransition(string(domain.StatusPending), string(domain.StatusConfirmed))

	return PaymentResult{
		Success:   true,
		PaymentID: paymentID,
		Message:   "Payment processed successfully",
	}, nil
}
