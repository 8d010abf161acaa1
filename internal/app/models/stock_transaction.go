package models

import "time"

// TransactionType distinguishes stock movements into and out of the inventory.
type TransactionType string

const (
	TransactionTypeIn  TransactionType = "in"
	TransactionTypeOut TransactionType = "out"
)

// Transaction reasons written by the workflows.
const (
	ReasonInitialStock       = "Initial stock"
	ReasonFromPurchase       = "From purchase"
	ReasonReservedForCourse  = "Reserved for course"
	ReasonReturnedFromCourse = "Returned from course"
	ReasonUsedInCourse       = "Used in course (permanent)"
)

// StockTransaction is an append-only audit record of a quantity change.
// Rows are never mutated or deleted; current quantities live on StockItem.
type StockTransaction struct {
	ID          int64           `json:"id" db:"id"`
	StockItemID int64           `json:"stockItemId" db:"stock_item_id"`
	Type        TransactionType `json:"type" db:"type"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Reason      *string         `json:"reason,omitempty" db:"reason"` // Nullable
	PerformedBy string          `json:"performedBy" db:"performed_by"`
	Date        time.Time       `json:"date" db:"date"`
}
