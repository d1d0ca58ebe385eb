package domain

import "context"

type DestinationRepository interface {
	CreateDestination(ctx context.Context, d Destination) (int64, error)
	GetDestination(ctx context.Context, id int64) (Destination, error)
	UpdateDestination(ctx context.Context, d Destination) error
	ListDestinations(ctx context.Context, q DestinationsQuery) ([]Destination, error)
	SetDestinationRating(ctx context.Context, id int64, rating float64) error
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, b Booking) (int64, error)
	GetBooking(ctx context.Context, id int64) (Booking, error)
	GetBookingByReference(ctx context.Context, ref string) (Booking, error)
	// GetBookingView returns the booking composed with its destination
	// snapshot in a single query.
	GetBookingView(ctx context.Context, id int64) (BookingView, error)
	UpdateBooking(ctx context.Context, b Booking) error
	ListBookingsByUser(ctx context.Context, userID int64, pg PageQuery) ([]BookingView, error)
	ListBookingsByOperator(ctx context.Context, operatorID int64, pg PageQuery) ([]BookingView, error)
	ListBookings(ctx context.Context, status *BookingStatus, pg PageQuery) ([]BookingView, error)
	HasConfirmedBooking(ctx context.Context, userID, destinationID int64) (bool, error)
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, r Review) (int64, error)
	GetReview(ctx context.Context, id int64) (Review, error)
	UpdateReview(ctx context.Context, r Review) error
	DeleteReview(ctx context.Context, id int64) error
	ListReviewsByDestination(ctx context.Context, destinationID int64) ([]Review, error)
	// AverageRating returns nil when the destination has no reviews.
	AverageRating(ctx context.Context, destinationID int64) (*float64, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, u User) (int64, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
}

type StatsRepository interface {
	DashboardStats(ctx context.Context) (DashboardStats, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type WeatherClient interface {
	ByLocation(ctx context.Context, location string) (WeatherReport, error)
	ByCoords(ctx context.Context, lat, lon float64) (WeatherReport, error)
}

// Queries & read models

type PageQuery struct {
	Offset int
	Limit  int
}

type DestinationsQuery struct {
	Location  *string  // case-insensitive substring
	MinPrice  *float64 // inclusive
	MaxPrice  *float64 // inclusive
	MinRating *float64
	// IncludeInactive is only honored for admin callers.
	IncludeInactive bool
	Page            PageQuery
}

type DashboardStats struct {
	TotalBookings     int64
	TotalRevenue      float64 // sum of total_price over COMPLETED bookings
	TotalUsers        int64
	TotalDestinations int64
}

type WeatherReport struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Icon        string  `json:"icon"`
}
