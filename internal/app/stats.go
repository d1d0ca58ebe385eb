package app

import (
	"context"

	"tourflow/internal/domain"
)

// StatsService exposes the admin dashboard aggregates.
type StatsService struct {
	stats domain.StatsRepository
}

func NewStatsService(r domain.StatsRepository) *StatsService {
	return &StatsService{stats: r}
}

func (s *StatsService) Dashboard(ctx context.Context, actor domain.User) (domain.DashboardStats, error) {
	if !actor.IsAdmin {
		return domain.DashboardStats{}, domain.ErrForbidden
	}
	return s.stats.DashboardStats(ctx)
}
