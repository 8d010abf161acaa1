package dto

import "github.com/ekurt/depot/internal/app/models"

// CreatePurchaseItemRequest represents purchase item creation data
type CreatePurchaseItemRequest struct {
	Name       string   `json:"name" binding:"required"`
	WhereToBuy *string  `json:"whereToBuy,omitempty"`
	Price      *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	Quantity   int      `json:"quantity" binding:"required,gt=0"`
	CourseTag  *string  `json:"courseTag,omitempty"`
	Link       *string  `json:"link,omitempty"`
}

// UpdatePurchaseStatusRequest represents a purchase pipeline transition
type UpdatePurchaseStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=considering approved waiting_delivery arrived stored"`
}

// PurchaseItemListResponse represents a list of purchase items
type PurchaseItemListResponse struct {
	Items []*models.PurchaseItem `json:"items"`
	Total int                    `json:"total"`
}
