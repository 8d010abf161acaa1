package dto

import "github.com/ekurt/depot/internal/app/models"

// SearchResponse represents the grouped matches of one global search query
type SearchResponse struct {
	Query     string                 `json:"query"`
	Purchases []*models.PurchaseItem `json:"purchases"`
	Stock     []*models.StockItem    `json:"stock"`
	Borrows   []*models.BorrowRecord `json:"borrows"`
	Total     int                    `json:"total"`
}
