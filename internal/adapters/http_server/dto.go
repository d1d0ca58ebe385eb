package httpserver

import (
	"time"

	"tourflow/internal/domain"
)

// Wire representations. The canonical booking field set uses
// number_of_travelers; the legacy number_of_people spelling is not served.

type userDTO struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	FullName   *string   `json:"full_name,omitempty"`
	IsActive   bool      `json:"is_active"`
	IsOperator bool      `json:"is_operator"`
	IsAdmin    bool      `json:"is_admin"`
	CreatedAt  time.Time `json:"created_at"`
}

func toUserDTO(u domain.User) userDTO {
	return userDTO{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		FullName:   u.FullName,
		IsActive:   u.IsActive,
		IsOperator: u.IsOperator,
		IsAdmin:    u.IsAdmin,
		CreatedAt:  u.CreatedAt,
	}
}

type destinationDTO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Price       float64   `json:"price"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Rating      float64   `json:"rating"`
	IsActive    bool      `json:"is_active"`
	OperatorID  int64     `json:"operator_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func toDestinationDTO(d domain.Destination) destinationDTO {
	return destinationDTO{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Location:    d.Location,
		Latitude:    d.Lat,
		Longitude:   d.Lon,
		Price:       d.Price,
		ImageURL:    d.ImageURL,
		Rating:      d.Rating,
		IsActive:    d.IsActive,
		OperatorID:  d.OperatorID,
		CreatedAt:   d.CreatedAt,
	}
}

func toDestinationDTOs(ds []domain.Destination) []destinationDTO {
	out := make([]destinationDTO, 0, len(ds))
	for _, d := range ds {
		out = append(out, toDestinationDTO(d))
	}
	return out
}

type destinationSnapshotDTO struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}

type bookingDTO struct {
	ID               int64                  `json:"id"`
	BookingReference string                 `json:"booking_reference"`
	UserID           int64                  `json:"user_id"`
	DestinationID    int64                  `json:"destination_id"`
	BookingDate      time.Time              `json:"booking_date"`
	TravelDate       time.Time              `json:"travel_date"`
	EndDate          *time.Time             `json:"end_date,omitempty"`
	NumberOfTravelers int                   `json:"number_of_travelers"`
	TotalPrice       float64                `json:"total_price"`
	Status           string                 `json:"status"`
	PaymentID        *string                `json:"payment_id,omitempty"`
	SpecialRequests  *string                `json:"special_requests,omitempty"`
	ContactEmail     string                 `json:"contact_email"`
	ContactPhone     *string                `json:"contact_phone,omitempty"`
	Destination      destinationSnapshotDTO `json:"destination"`
}

func toBookingDTO(v domain.BookingView) bookingDTO {
	return bookingDTO{
		ID:                v.ID,
		BookingReference:  v.Reference,
		UserID:            v.UserID,
		DestinationID:     v.DestinationID,
		BookingDate:       v.BookingDate,
		TravelDate:        v.TravelDate,
		EndDate:           v.EndDate,
		NumberOfTravelers: v.Travelers,
		TotalPrice:        v.TotalPrice,
		Status:            string(v.Status),
		PaymentID:         v.PaymentID,
		SpecialRequests:   v.SpecialRequests,
		ContactEmail:      v.ContactEmail,
		ContactPhone:      v.ContactPhone,
		Destination: destinationSnapshotDTO{
			ID:          v.Destination.ID,
			Title:       v.Destination.Title,
			Location:    v.Destination.Location,
			Price:       v.Destination.Price,
			Rating:      v.Destination.Rating,
			ReviewCount: v.Destination.ReviewCount,
		},
	}
}

func toBookingDTOs(vs []domain.BookingView) []bookingDTO {
	out := make([]bookingDTO, 0, len(vs))
	for _, v := range vs {
		out = append(out, toBookingDTO(v))
	}
	return out
}

type reviewDTO struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	DestinationID int64     `json:"destination_id"`
	Rating        float64   `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

func toReviewDTO(r domain.Review) reviewDTO {
	return reviewDTO{
		ID:            r.ID,
		UserID:        r.UserID,
		DestinationID: r.DestinationID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
}

func toReviewDTOs(rs []domain.Review) []reviewDTO {
	out := make([]reviewDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, toReviewDTO(r))
	}
	return out
}
