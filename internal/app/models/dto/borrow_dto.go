package dto

import (
	"time"

	"github.com/ekurt/depot/internal/app/models"
)

// CheckoutRequest represents a stock checkout
type CheckoutRequest struct {
	StockItemID        int64     `json:"stockItemId" binding:"required,gt=0"`
	BorrowedBy         string    `json:"borrowedBy" binding:"required"`
	BorrowedQuantity   int       `json:"borrowedQuantity" binding:"required,gt=0"`
	ExpectedReturnDate time.Time `json:"expectedReturnDate" binding:"required"`
	Remarks            *string   `json:"remarks,omitempty"`
}

// ReturnRequest represents the return of a borrow record
type ReturnRequest struct {
	ReturnedQuantity int `json:"returnedQuantity" binding:"required,gt=0"`
}

// BorrowRecordListResponse represents a list of borrow records
type BorrowRecordListResponse struct {
	Records []*models.BorrowRecord `json:"records"`
	Total   int                    `json:"total"`
}
