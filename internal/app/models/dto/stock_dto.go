package dto

import "github.com/ekurt/depot/internal/app/models"

// CreateStockItemRequest represents stock item creation data
type CreateStockItemRequest struct {
	Name          string   `json:"name" binding:"required"`
	Quantity      int      `json:"quantity" binding:"gte=0"`
	PurchasePrice *float64 `json:"purchasePrice,omitempty" binding:"omitempty,gte=0"`
	Location      *string  `json:"location,omitempty"`
	CourseTag     *string  `json:"courseTag,omitempty"`
}

// UpdateStockItemRequest represents stock item detail update data. Omitted
// fields keep their current value; quantities are never updated here.
type UpdateStockItemRequest struct {
	Name          *string  `json:"name,omitempty"`
	PurchasePrice *float64 `json:"purchasePrice,omitempty" binding:"omitempty,gte=0"`
	Location      *string  `json:"location,omitempty"`
	CourseTag     *string  `json:"courseTag,omitempty"`
}

// RecordTransactionRequest represents a manual stock movement
type RecordTransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=in out"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	Reason      *string `json:"reason,omitempty"`
	PerformedBy string  `json:"performedBy" binding:"required"`
}

// StockItemListResponse represents a list of stock items
type StockItemListResponse struct {
	Items []*models.StockItem `json:"items"`
	Total int                 `json:"total"`
}

// TransactionListResponse represents the movement history of one stock item
type TransactionListResponse struct {
	Transactions []*models.StockTransaction `json:"transactions"`
	Total        int                        `json:"total"`
}
