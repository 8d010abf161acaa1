package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekurt/depot/internal/app/models"
)

// DashboardStats holds the headline counters of the dashboard
type DashboardStats struct {
	TotalPurchases    int `json:"totalPurchases"`
	PendingDeliveries int `json:"pendingDeliveries"`
	StockItems        int `json:"stockItems"`
	LowStockAlert     int `json:"lowStockAlert"`
	ActiveBorrows     int `json:"activeBorrows"`
	BorrowedQuantity  int `json:"borrowedQuantity"`
}

// AnalyticsRepository runs the aggregate queries behind the dashboard
type AnalyticsRepository struct {
	db *pgxpool.Pool
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{
		db: db,
	}
}

// GetStats collects the dashboard counters
func (r *AnalyticsRepository) GetStats(ctx context.Context) (*DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM purchase_items),
			(SELECT COUNT(*) FROM purchase_items WHERE status IN ('considering', 'waiting_delivery')),
			(SELECT COUNT(*) FROM stock_items),
			(SELECT COUNT(*) FROM stock_items WHERE status = 'low_stock' OR quantity < $1),
			(SELECT COUNT(*) FROM borrow_records WHERE status = 'active'),
			(SELECT COALESCE(SUM(borrowed_quantity), 0) FROM borrow_records WHERE status = 'active')
	`

	var stats DashboardStats
	err := r.db.QueryRow(ctx, query, models.LowStockThreshold).Scan(
		&stats.TotalPurchases,
		&stats.PendingDeliveries,
		&stats.StockItems,
		&stats.LowStockAlert,
		&stats.ActiveBorrows,
		&stats.BorrowedQuantity,
	)
	if err != nil {
		return nil, fmt.Errorf("error collecting dashboard stats: %w", err)
	}

	return &stats, nil
}

// GetRecentPurchases retrieves the most recent purchase items
func (r *AnalyticsRepository) GetRecentPurchases(ctx context.Context, limit int) ([]*models.PurchaseItem, error) {
	query := `
		SELECT ` + purchaseItemColumns + `
		FROM purchase_items
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.PurchaseItem
	for rows.Next() {
		item, err := scanPurchaseItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetLowStockItems retrieves the items closest to running out
func (r *AnalyticsRepository) GetLowStockItems(ctx context.Context, limit int) ([]*models.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE status = 'low_stock' OR quantity < $1
		ORDER BY quantity ASC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, models.LowStockThreshold, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetActiveBorrows retrieves active borrows with the nearest expected return dates
func (r *AnalyticsRepository) GetActiveBorrows(ctx context.Context, limit int) ([]*models.BorrowRecord, error) {
	query := `
		SELECT ` + borrowRecordColumns + `
		FROM borrow_records
		WHERE status = 'active'
		ORDER BY expected_return_date ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.BorrowRecord
	for rows.Next() {
		record, err := scanBorrowRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
