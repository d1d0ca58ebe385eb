package domain

import "time"

// BookingStatus is the canonical status vocabulary. The legacy data set mixed
// lowercase and uppercase spellings; uppercase is the only form persisted here.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusDeleted   BookingStatus = "DELETED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusDeleted:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave s. DELETED is a
// soft-delete marker and may be re-applied idempotently.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusDeleted
}

// CanTransitionTo encodes the closed transition graph:
// PENDING → CONFIRMED → COMPLETED, PENDING/CONFIRMED → CANCELLED,
// any non-terminal → DELETED.
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	switch to {
	case StatusConfirmed:
		return s == StatusPending
	case StatusCompleted:
		return s == StatusConfirmed
	case StatusCancelled:
		return s == StatusPending || s == StatusConfirmed
	case StatusDeleted:
		return !s.Terminal() || s == StatusDeleted
	}
	return false
}

type Booking struct {
	ID              int64
	Reference       string // human-readable, unique (BK-XXXXXXXX)
	UserID          int64
	DestinationID   int64
	BookingDate     time.Time
	TravelDate      time.Time
	EndDate         *time.Time
	Travelers       int
	TotalPrice      float64 // destination.price × travelers at creation, never recalculated
	Status          BookingStatus
	PaymentID       *string
	SpecialRequests *string
	ContactEmail    string
	ContactPhone    *string
}

// BookingPatch carries the mutable descriptive fields plus an optional
// explicit status change. Nil means "leave as is". TotalPrice is deliberately
// absent: it is fixed at creation.
type BookingPatch struct {
	TravelDate      *time.Time
	EndDate         *time.Time
	Travelers       *int
	SpecialRequests *string
	ContactEmail    *string
	ContactPhone    *string
	Status          *BookingStatus
}

// Apply merges the descriptive fields into b. Status is handled separately by
// the lifecycle service so transition guards always run.
func (p BookingPatch) Apply(b *Booking) {
	if p.TravelDate != nil {
		b.TravelDate = *p.TravelDate
	}
	if p.EndDate != nil {
		b.EndDate = p.EndDate
	}
	if p.Travelers != nil {
		b.Travelers = *p.Travelers
	}
	if p.SpecialRequests != nil {
		b.SpecialRequests = p.SpecialRequests
	}
	if p.ContactEmail != nil {
		b.ContactEmail = *p.ContactEmail
	}
	if p.ContactPhone != nil {
		b.ContactPhone = p.ContactPhone
	}
}

// BookingView is a booking composed with its destination snapshot, fetched
// explicitly in one query (no lazy loading).
type BookingView struct {
	Booking
	Destination DestinationSnapshot
}
