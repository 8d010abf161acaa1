package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ekurt/depot/internal/app/models"
	"github.com/ekurt/depot/internal/app/repositories"
)

const dashboardListLimit = 5

// AnalyticsStore aggregates inventory counters and dashboard highlight lists.
type AnalyticsStore interface {
	GetStats(ctx context.Context) (*repositories.DashboardStats, error)
	GetRecentPurchases(ctx context.Context, limit int) ([]*models.PurchaseItem, error)
	GetLowStockItems(ctx context.Context, limit int) ([]*models.StockItem, error)
	GetActiveBorrows(ctx context.Context, limit int) ([]*models.BorrowRecord, error)
}

// Dashboard is the aggregated overview served to the landing page.
type Dashboard struct {
	Stats           *repositories.DashboardStats
	RecentPurchases []*models.PurchaseItem
	LowStockItems   []*models.StockItem
	ActiveBorrows   []*models.BorrowRecord
}

// AnalyticsService assembles the inventory dashboard.
type AnalyticsService struct {
	store  AnalyticsStore
	logger zerolog.Logger
}

// NewAnalyticsService creates a new analytics service instance
func NewAnalyticsService(store AnalyticsStore, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		store:  store,
		logger: logger,
	}
}

// GetDashboard collects the counters and highlight lists in one response
func (s *AnalyticsService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.store.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving dashboard stats: %w", err)
	}

	recent, err := s.store.GetRecentPurchases(ctx, dashboardListLimit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving recent purchases: %w", err)
	}

	lowStock, err := s.store.GetLowStockItems(ctx, dashboardListLimit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving low stock items: %w", err)
	}

	borrows, err := s.store.GetActiveBorrows(ctx, dashboardListLimit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving active borrows: %w", err)
	}

	return &Dashboard{
		Stats:           stats,
		RecentPurchases: recent,
		LowStockItems:   lowStock,
		ActiveBorrows:   borrows,
	}, nil
}
