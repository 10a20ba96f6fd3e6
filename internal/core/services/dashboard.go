package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/core/ports"
)

const keyDashboardStats = dashboardKeyPrefix + "stats"

// DashboardService summarizes stock and sales for the admin dashboard
type DashboardService struct {
	repo   ports.MotorcycleRepository
	cache  ports.CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.DashboardService = (*DashboardService)(nil)

// NewDashboardService creates a dashboard service. cache may be nil.
func NewDashboardService(repo ports.MotorcycleRepository, cache ports.CacheRepository, ttl time.Duration, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(slog.String("service", "dashboard")),
	}
}

// Stats returns inventory counts, values and the brand split of available stock
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	fetch := func() (interface{}, error) {
		stats, err := s.repo.DashboardStats(ctx)
		if err != nil {
			return nil, err
		}
		stats.ComputeAverageTicket()
		return stats, nil
	}

	if s.cache == nil {
		v, err := fetch()
		if err != nil {
			return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
		}
		return v.(*domain.DashboardStats), nil
	}

	var stats domain.DashboardStats
	if err := s.cache.GetOrSet(ctx, keyDashboardStats, &stats, fetch, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return &stats, nil
}
