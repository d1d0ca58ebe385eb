package mysql

const insertDestinationSQL = `
INSERT INTO destinations
  (title, description, location, lat, lon, price, image_url, rating, is_active, operator_id)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const getDestinationSQL = `
SELECT id, title, description, location, lat, lon, price, image_url, rating, is_active, operator_id, created_at
FROM destinations
WHERE id = ?
`

const updateDestinationSQL = `
UPDATE destinations
SET title = ?, description = ?, location = ?, lat = ?, lon = ?, price = ?, image_url = ?, is_active = ?
WHERE id = ?
`

const setDestinationRatingSQL = `
UPDATE destinations SET rating = ? WHERE id = ?
`

const insertBookingSQL = `
INSERT INTO bookings
  (reference, user_id, destination_id, booking_date, travel_date, end_date, travelers,
   total_price, status, payment_id, special_requests, contact_email, contact_phone)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const bookingColumns = `
  b.id, b.reference, b.user_id, b.destination_id, b.booking_date, b.travel_date, b.end_date,
  b.travelers, b.total_price, b.status, b.payment_id, b.special_requests, b.contact_email, b.contact_phone
`

const getBookingSQL = `
SELECT` + bookingColumns + `
FROM bookings b
WHERE b.id = ?
`

const getBookingByReferenceSQL = `
SELECT` + bookingColumns + `
FROM bookings b
WHERE b.reference = ?
`

// Booking rows joined with their destination snapshot. The review count is
// computed at read time; it is never stored.
const bookingViewSelect = `
SELECT` + bookingColumns + `,
  d.id, d.title, d.location, d.price, d.rating,
  (SELECT COUNT(*) FROM reviews r WHERE r.destination_id = d.id) AS review_count
FROM bookings b
JOIN destinations d ON d.id = b.destination_id
`

const getBookingViewSQL = bookingViewSelect + `WHERE b.id = ?`

const listBookingsByUserSQL = bookingViewSelect + `
WHERE b.user_id = ? AND b.status <> 'DELETED'
ORDER BY b.id
LIMIT ? OFFSET ?
`

const listBookingsByOperatorSQL = bookingViewSelect + `
WHERE d.operator_id = ? AND b.status <> 'DELETED'
ORDER BY b.id
LIMIT ? OFFSET ?
`

const listBookingsSQL = bookingViewSelect + `
WHERE b.status <> 'DELETED'
ORDER BY b.id
LIMIT ? OFFSET ?
`

const listBookingsByStatusSQL = bookingViewSelect + `
WHERE b.status = ?
ORDER BY b.id
LIMIT ? OFFSET ?
`

// Per-record read-modify-write: the whole row is rewritten except the
// immutable identity/creation columns and total_price.
const updateBookingSQL = `
UPDATE bookings
SET travel_date = ?, end_date = ?, travelers = ?, status = ?, payment_id = ?,
    special_requests = ?, contact_email = ?, contact_phone = ?
WHERE id = ?
`

const hasConfirmedBookingSQL = `
SELECT EXISTS(
  SELECT 1 FROM bookings
  WHERE user_id = ? AND destination_id = ? AND status = 'CONFIRMED'
)
`

const insertReviewSQL = `
INSERT INTO reviews (user_id, destination_id, rating, comment)
VALUES (?, ?, ?, ?)
`

const getReviewSQL = `
SELECT id, user_id, destination_id, rating, comment, created_at
FROM reviews
WHERE id = ?
`

const updateReviewSQL = `
UPDATE reviews SET rating = ?, comment = ? WHERE id = ?
`

const deleteReviewSQL = `
DELETE FROM reviews WHERE id = ?
`

const listReviewsByDestinationSQL = `
SELECT id, user_id, destination_id, rating, comment, created_at
FROM reviews
WHERE destination_id = ?
ORDER BY id
`

const averageRatingSQL = `
SELECT AVG(rating) FROM reviews WHERE destination_id = ?
`

const insertUserSQL = `
INSERT INTO users (email, username, password_hash, full_name, is_active, is_operator, is_admin)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

const userColumns = `
  id, email, username, password_hash, full_name, is_active, is_operator, is_admin, created_at
`

const getUserSQL = `SELECT` + userColumns + `FROM users WHERE id = ?`

const getUserByEmailSQL = `SELECT` + userColumns + `FROM users WHERE email = ?`

const getUserByUsernameSQL = `SELECT` + userColumns + `FROM users WHERE username = ?`

const dashboardStatsSQL = `
SELECT
  (SELECT COUNT(*) FROM bookings),
  (SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE status = 'COMPLETED'),
  (SELECT COUNT(*) FROM users),
  (SELECT COUNT(*) FROM destinations)
`
