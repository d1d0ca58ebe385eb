package mysql

import (
	"context"
	"database/sql"

	"tourflow/internal/domain"
)

func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.Reference,
		b.UserID,
		b.DestinationID,
		b.BookingDate,
		b.TravelDate,
		valTime(b.EndDate),
		b.Travelers,
		b.TotalPrice,
		string(b.Status),
		valStr(b.PaymentID),
		valStr(b.SpecialRequests),
		b.ContactEmail,
		valStr(b.ContactPhone),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx, getBookingSQL, id))
}

func (r *Repo) GetBookingByReference(ctx context.Context, ref string) (domain.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx, getBookingByReferenceSQL, ref))
}

func (r *Repo) GetBookingView(ctx context.Context, id int64) (domain.BookingView, error) {
	return scanBookingView(r.db.QueryRowContext(ctx, getBookingViewSQL, id))
}

func (r *Repo) UpdateBooking(ctx context.Context, b domain.Booking) error {
	_, err := r.db.ExecContext(ctx, updateBookingSQL,
		b.TravelDate,
		valTime(b.EndDate),
		b.Travelers,
		string(b.Status),
		valStr(b.PaymentID),
		valStr(b.SpecialRequests),
		b.ContactEmail,
		valStr(b.ContactPhone),
		b.ID,
	)
	return err
}

func (r *Repo) ListBookingsByUser(ctx context.Context, userID int64, pg domain.PageQuery) ([]domain.BookingView, error) {
	return r.queryBookingViews(ctx, listBookingsByUserSQL, userID, pg.Limit, pg.Offset)
}

func (r *Repo) ListBookingsByOperator(ctx context.Context, operatorID int64, pg domain.PageQuery) ([]domain.BookingView, error) {
	return r.queryBookingViews(ctx, listBookingsByOperatorSQL, operatorID, pg.Limit, pg.Offset)
}

func (r *Repo) ListBookings(ctx context.Context, status *domain.BookingStatus, pg domain.PageQuery) ([]domain.BookingView, error) {
	if status != nil {
		return r.queryBookingViews(ctx, listBookingsByStatusSQL, string(*status), pg.Limit, pg.Offset)
	}
	return r.queryBookingViews(ctx, listBookingsSQL, pg.Limit, pg.Offset)
}

func (r *Repo) HasConfirmedBooking(ctx context.Context, userID, destinationID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, hasConfirmedBookingSQL, userID, destinationID).Scan(&ok)
	return ok, err
}

func (r *Repo) queryBookingViews(ctx context.Context, query string, args ...any) ([]domain.BookingView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BookingView
	for rows.Next() {
		v, err := scanBookingView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanBookingFields(row rowScanner, b *domain.Booking, extra ...any) error {
	var (
		endDate  sql.NullTime
		payment  sql.NullString
		requests sql.NullString
		phone    sql.NullString
		status   string
	)
	dest := []any{
		&b.ID, &b.Reference, &b.UserID, &b.DestinationID, &b.BookingDate, &b.TravelDate, &endDate,
		&b.Travelers, &b.TotalPrice, &status, &payment, &requests, &b.ContactEmail, &phone,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		return err
	}
	b.EndDate = timePtr(endDate)
	b.PaymentID = strPtr(payment)
	b.SpecialRequests = strPtr(requests)
	b.ContactPhone = strPtr(phone)
	b.Status = domain.BookingStatus(status)
	return nil
}

func scanBooking(row rowScanner) (domain.Booking, error) {
	var b domain.Booking
	if err := scanBookingFields(row, &b); err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

func scanBookingView(row rowScanner) (domain.BookingView, error) {
	var v domain.BookingView
	err := scanBookingFields(row, &v.Booking,
		&v.Destination.ID, &v.Destination.Title, &v.Destination.Location,
		&v.Destination.Price, &v.Destination.Rating, &v.Destination.ReviewCount,
	)
	if err != nil {
		return domain.BookingView{}, err
	}
	return v, nil
}
