package app_test

import (
	"context"
	"sort"
	"strings"

	"tourflow/internal/domain"
)

// ---- fakes ----

// fakeRepo is an in-memory stand-in for the MySQL repo. It implements every
// repository port the services consume, the same way the real Repo does.
type fakeRepo struct {
	destinations map[int64]domain.Destination
	bookings     map[int64]domain.Booking
	reviews      map[int64]domain.Review
	users        map[int64]domain.User
	nextID       int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		destinations: map[int64]domain.Destination{},
		bookings:     map[int64]domain.Booking{},
		reviews:      map[int64]domain.Review{},
		users:        map[int64]domain.User{},
	}
}

func (f *fakeRepo) id() int64 {
	f.nextID++
	return f.nextID
}

// destinations

func (f *fakeRepo) CreateDestination(ctx context.Context, d domain.Destination) (int64, error) {
	d.ID = f.id()
	f.destinations[d.ID] = d
	return d.ID, nil
}

func (f *fakeRepo) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	d, ok := f.destinations[id]
	if !ok {
		return domain.Destination{}, domain.ErrNotFound
	}
	return d, nil
}

func (f *fakeRepo) UpdateDestination(ctx context.Context, d domain.Destination) error {
	if _, ok := f.destinations[d.ID]; !ok {
		return domain.ErrNotFound
	}
	f.destinations[d.ID] = d
	return nil
}

func (f *fakeRepo) ListDestinations(ctx context.Context, q domain.DestinationsQuery) ([]domain.Destination, error) {
	var out []domain.Destination
	for _, d := range f.destinations {
		if !q.IncludeInactive && !d.IsActive {
			continue
		}
		if q.Location != nil && !strings.Contains(strings.ToLower(d.Location), strings.ToLower(*q.Location)) {
			continue
		}
		if q.MinPrice != nil && d.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && d.Price > *q.MaxPrice {
			continue
		}
		if q.MinRating != nil && d.Rating < *q.MinRating {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, q.Page), nil
}

func (f *fakeRepo) SetDestinationRating(ctx context.Context, id int64, rating float64) error {
	d, ok := f.destinations[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Rating = rating
	f.destinations[id] = d
	return nil
}

// bookings

func (f *fakeRepo) CreateBooking(ctx context.Context, b domain.Booking) (int64, error) {
	b.ID = f.id()
	f.bookings[b.ID] = b
	return b.ID, nil
}

func (f *fakeRepo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetBookingByReference(ctx context.Context, ref string) (domain.Booking, error) {
	for _, b := range f.bookings {
		if b.Reference == ref {
			return b, nil
		}
	}
	return domain.Booking{}, domain.ErrNotFound
}

func (f *fakeRepo) GetBookingView(ctx context.Context, id int64) (domain.BookingView, error) {
	b, ok := f.bookings[id]
	if !ok {
		return domain.BookingView{}, domain.ErrNotFound
	}
	return f.view(b), nil
}

func (f *fakeRepo) view(b domain.Booking) domain.BookingView {
	d := f.destinations[b.DestinationID]
	n := 0
	for _, rv := range f.reviews {
		if rv.DestinationID == d.ID {
			n++
		}
	}
	return domain.BookingView{
		Booking: b,
		Destination: domain.DestinationSnapshot{
			ID:          d.ID,
			Title:       d.Title,
			Location:    d.Location,
			Price:       d.Price,
			Rating:      d.Rating,
			ReviewCount: n,
		},
	}
}

func (f *fakeRepo) UpdateBooking(ctx context.Context, b domain.Booking) error {
	if _, ok := f.bookings[b.ID]; !ok {
		return domain.ErrNotFound
	}
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeRepo) listViews(keep func(domain.Booking) bool, pg domain.PageQuery) []domain.BookingView {
	var out []domain.BookingView
	for _, b := range f.bookings {
		if b.Status == domain.StatusDeleted || !keep(b) {
			continue
		}
		out = append(out, f.view(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, pg)
}

func (f *fakeRepo) ListBookingsByUser(ctx context.Context, userID int64, pg domain.PageQuery) ([]domain.BookingView, error) {
	return f.listViews(func(b domain.Booking) bool { return b.UserID == userID }, pg), nil
}

func (f *fakeRepo) ListBookingsByOperator(ctx context.Context, operatorID int64, pg domain.PageQuery) ([]domain.BookingView, error) {
	return f.listViews(func(b domain.Booking) bool {
		return f.destinations[b.DestinationID].OperatorID == operatorID
	}, pg), nil
}

func (f *fakeRepo) ListBookings(ctx context.Context, status *domain.BookingStatus, pg domain.PageQuery) ([]domain.BookingView, error) {
	return f.listViews(func(b domain.Booking) bool {
		return status == nil || b.Status == *status
	}, pg), nil
}

func (f *fakeRepo) HasConfirmedBooking(ctx context.Context, userID, destinationID int64) (bool, error) {
	for _, b := range f.bookings {
		if b.UserID == userID && b.DestinationID == destinationID && b.Status == domain.StatusConfirmed {
			return true, nil
		}
	}
	return false, nil
}

// reviews

func (f *fakeRepo) CreateReview(ctx context.Context, r domain.Review) (int64, error) {
	r.ID = f.id()
	f.reviews[r.ID] = r
	return r.ID, nil
}

func (f *fakeRepo) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeRepo) UpdateReview(ctx context.Context, r domain.Review) error {
	if _, ok := f.reviews[r.ID]; !ok {
		return domain.ErrNotFound
	}
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeRepo) DeleteReview(ctx context.Context, id int64) error {
	if _, ok := f.reviews[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeRepo) ListReviewsByDestination(ctx context.Context, destinationID int64) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range f.reviews {
		if r.DestinationID == destinationID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) AverageRating(ctx context.Context, destinationID int64) (*float64, error) {
	sum, n := 0.0, 0
	for _, r := range f.reviews {
		if r.DestinationID == destinationID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := sum / float64(n)
	return &avg, nil
}

// users

func (f *fakeRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	u.ID = f.id()
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeRepo) GetUser(ctx context.Context, id int64) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeRepo) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	st := domain.DashboardStats{
		TotalUsers:        int64(len(f.users)),
		TotalDestinations: int64(len(f.destinations)),
	}
	for _, b := range f.bookings {
		if b.Status == domain.StatusDeleted {
			continue
		}
		st.TotalBookings++
		if b.Status == domain.StatusCompleted {
			st.TotalRevenue += b.TotalPrice
		}
	}
	return st, nil
}

func page[T any](xs []T, pg domain.PageQuery) []T {
	if pg.Offset >= len(xs) {
		return nil
	}
	xs = xs[pg.Offset:]
	if pg.Limit > 0 && pg.Limit < len(xs) {
		xs = xs[:pg.Limit]
	}
	return xs
}

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok2 := dst.(*domain.Destination); ok2 {
		*d = v.(domain.Destination)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

func ptr[T any](v T) *T { return &v }
