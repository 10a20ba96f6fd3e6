package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	redis_a "github.com/wsvendas/motostock/internal/adapters/redis_adapter"
	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/core/services"
	"github.com/wsvendas/motostock/test/helpers"
	"github.com/wsvendas/motostock/test/mocks"
)

func sampleStats() *domain.DashboardStats {
	return &domain.DashboardStats{
		Available:  4,
		Sold:       3,
		StockValue: decimal.RequireFromString("64000.00"),
		SoldValue:  decimal.RequireFromString("50000.00"),
		Brands: []domain.BrandShare{
			{Brand: "Honda", Count: 2},
			{Brand: domain.OtherBrands, Count: 2},
		},
	}
}

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("computes_average_ticket_without_cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockMotorcycleRepository(ctrl)
		svc := services.NewDashboardService(repo, nil, time.Minute, helpers.TestLogger())

		repo.EXPECT().DashboardStats(gomock.Any()).Return(sampleStats(), nil)

		stats, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, "16666.67", stats.AverageTicket.StringFixed(2))
	})

	t.Run("cached_between_calls", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockMotorcycleRepository(ctrl)
		tr := helpers.SetupTestRedis(t)
		cache := redis_a.NewCache(tr.Client, time.Minute, helpers.TestLogger())
		svc := services.NewDashboardService(repo, cache, time.Minute, helpers.TestLogger())

		repo.EXPECT().DashboardStats(gomock.Any()).Return(sampleStats(), nil).Times(1)

		first, err := svc.Stats(ctx)
		require.NoError(t, err)
		second, err := svc.Stats(ctx)
		require.NoError(t, err)

		assert.Equal(t, first.Available, second.Available)
		assert.True(t, first.StockValue.Equal(second.StockValue))
		assert.Len(t, second.Brands, 2)
		assert.True(t, tr.Server.Exists("dash:stats"))
	})

	t.Run("store_error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockMotorcycleRepository(ctrl)
		svc := services.NewDashboardService(repo, nil, time.Minute, helpers.TestLogger())

		repo.EXPECT().DashboardStats(gomock.Any()).Return(nil, errStore)

		_, err := svc.Stats(ctx)
		assert.ErrorIs(t, err, errStore)
	})
}
