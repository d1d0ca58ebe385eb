package mysql

import (
	"context"
	"database/sql"

	"tourflow/internal/domain"
)

func (r *Repo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Email, u.Username, u.PasswordHash, valStr(u.FullName),
		u.IsActive, u.IsOperator, u.IsAdmin)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserSQL, id))
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByEmailSQL, email))
}

func (r *Repo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByUsernameSQL, username))
}

func (r *Repo) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	var st domain.DashboardStats
	err := r.db.QueryRowContext(ctx, dashboardStatsSQL).Scan(
		&st.TotalBookings, &st.TotalRevenue, &st.TotalUsers, &st.TotalDestinations)
	return st, err
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u    domain.User
		name sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &name,
		&u.IsActive, &u.IsOperator, &u.IsAdmin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	u.FullName = strPtr(name)
	return u, nil
}
