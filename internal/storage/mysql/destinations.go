package mysql

import (
	"context"
	"database/sql"
	"strings"

	"tourflow/internal/domain"
)

func (r *Repo) CreateDestination(ctx context.Context, d domain.Destination) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertDestinationSQL,
		d.Title,
		d.Description,
		d.Location,
		valF64(d.Lat),
		valF64(d.Lon),
		d.Price,
		valStr(d.ImageURL),
		d.Rating,
		d.IsActive,
		d.OperatorID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	return scanDestination(r.db.QueryRowContext(ctx, getDestinationSQL, id))
}

func (r *Repo) UpdateDestination(ctx context.Context, d domain.Destination) error {
	_, err := r.db.ExecContext(ctx, updateDestinationSQL,
		d.Title,
		d.Description,
		d.Location,
		valF64(d.Lat),
		valF64(d.Lon),
		d.Price,
		valStr(d.ImageURL),
		d.IsActive,
		d.ID,
	)
	return err
}

func (r *Repo) SetDestinationRating(ctx context.Context, id int64, rating float64) error {
	// MySQL reports 0 affected rows for value-identical updates, so the row
	// count is not checked here; callers fetch before writing.
	_, err := r.db.ExecContext(ctx, setDestinationRatingSQL, rating, id)
	return err
}

func (r *Repo) ListDestinations(ctx context.Context, q domain.DestinationsQuery) ([]domain.Destination, error) {
	var (
		where []string
		args  []any
	)
	if !q.IncludeInactive {
		where = append(where, "is_active = 1")
	}
	if q.Location != nil && *q.Location != "" {
		where = append(where, "LOWER(location) LIKE ?")
		args = append(args, "%"+strings.ToLower(*q.Location)+"%")
	}
	if q.MinPrice != nil {
		where = append(where, "price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		where = append(where, "price <= ?")
		args = append(args, *q.MaxPrice)
	}
	if q.MinRating != nil {
		where = append(where, "rating >= ?")
		args = append(args, *q.MinRating)
	}

	query := `
SELECT id, title, description, location, lat, lon, price, image_url, rating, is_active, operator_id, created_at
FROM destinations`
	if len(where) > 0 {
		query += "\nWHERE " + strings.Join(where, " AND ")
	}
	query += "\nORDER BY id\nLIMIT ? OFFSET ?"
	args = append(args, q.Page.Limit, q.Page.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanDestination(row rowScanner) (domain.Destination, error) {
	var (
		d        domain.Destination
		desc     sql.NullString
		lat, lon sql.NullFloat64
		img      sql.NullString
	)
	if err := row.Scan(
		&d.ID, &d.Title, &desc, &d.Location, &lat, &lon,
		&d.Price, &img, &d.Rating, &d.IsActive, &d.OperatorID, &d.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, err
	}
	if desc.Valid {
		d.Description = desc.String
	}
	d.Lat = f64Ptr(lat)
	d.Lon = f64Ptr(lon)
	d.ImageURL = strPtr(img)
	return d, nil
}
