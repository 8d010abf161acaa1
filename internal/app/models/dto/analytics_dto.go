package dto

import (
	"github.com/ekurt/depot/internal/app/models"
	"github.com/ekurt/depot/internal/app/repositories"
)

// DashboardResponse represents the aggregated inventory overview
type DashboardResponse struct {
	Stats           *repositories.DashboardStats `json:"stats"`
	RecentPurchases []*models.PurchaseItem       `json:"recentPurchases"`
	LowStockItems   []*models.StockItem          `json:"lowStockItems"`
	ActiveBorrows   []*models.BorrowRecord       `json:"activeBorrows"`
}
