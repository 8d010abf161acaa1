package models

import "time"

// StockStatus is the derived stock level label of a stock item.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// LowStockThreshold is the fixed policy constant below which a stocked
// item is labelled low_stock.
const LowStockThreshold = 10

// StockItem represents an inventory line with a total owned quantity and
// the portion of it not currently borrowed or reserved.
type StockItem struct {
	ID                int64       `json:"id" db:"id"`
	Name              string      `json:"name" db:"name"`
	Quantity          int         `json:"quantity" db:"quantity"`
	AvailableQuantity int         `json:"availableQuantity" db:"available_quantity"`
	PurchasePrice     *float64    `json:"purchasePrice,omitempty" db:"purchase_price"` // Nullable
	Location          *string     `json:"location,omitempty" db:"location"`            // Nullable
	CourseTag         *string     `json:"courseTag,omitempty" db:"course_tag"`         // Nullable
	Status            StockStatus `json:"status" db:"status"`
	CreatedAt         time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time   `json:"updatedAt" db:"updated_at"`
}

// DeriveStockStatus computes the status label after a quantity change.
func DeriveStockStatus(quantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StockStatusOutOfStock
	case quantity < LowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// InitialStockStatus computes the status label for a freshly created item.
// Creation does not apply the low stock threshold.
func InitialStockStatus(quantity int) StockStatus {
	if quantity > 0 {
		return StockStatusInStock
	}
	return StockStatusOutOfStock
}
