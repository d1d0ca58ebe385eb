package mysql

import (
	"context"
	"database/sql"

	"tourflow/internal/domain"
)

func (r *Repo) CreateReview(ctx context.Context, rv domain.Review) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.UserID, rv.DestinationID, rv.Rating, rv.Comment)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	var rv domain.Review
	err := r.db.QueryRowContext(ctx, getReviewSQL, id).Scan(
		&rv.ID, &rv.UserID, &rv.DestinationID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	if err == sql.ErrNoRows {
		return domain.Review{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Review{}, err
	}
	return rv, nil
}

func (r *Repo) UpdateReview(ctx context.Context, rv domain.Review) error {
	_, err := r.db.ExecContext(ctx, updateReviewSQL, rv.Rating, rv.Comment, rv.ID)
	return err
}

func (r *Repo) DeleteReview(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteReviewSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) ListReviewsByDestination(ctx context.Context, destinationID int64) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsByDestinationSQL, destinationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.DestinationID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repo) AverageRating(ctx context.Context, destinationID int64) (*float64, error) {
	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, averageRatingSQL, destinationID).Scan(&avg); err != nil {
		return nil, err
	}
	return f64Ptr(avg), nil
}
