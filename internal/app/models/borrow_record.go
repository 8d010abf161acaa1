package models

import "time"

// BorrowStatus is the lifecycle state of a borrow record.
type BorrowStatus string

const (
	BorrowStatusActive            BorrowStatus = "active"
	BorrowStatusPartiallyReturned BorrowStatus = "partially_returned"
	BorrowStatusReturned          BorrowStatus = "returned"
)

// BorrowRecord tracks a checkout of stock. It holds a weak reference to the
// stock item and denormalizes the item name at checkout time, so the record
// survives item renames. A record is mutated exactly once, on return.
type BorrowRecord struct {
	ID                 int64        `json:"id" db:"id"`
	StockItemID        int64        `json:"stockItemId" db:"stock_item_id"`
	ItemName           string       `json:"itemName" db:"item_name"`
	BorrowedBy         string       `json:"borrowedBy" db:"borrowed_by"`
	BorrowedQuantity   int          `json:"borrowedQuantity" db:"borrowed_quantity"`
	BorrowDate         time.Time    `json:"borrowDate" db:"borrow_date"`
	ExpectedReturnDate time.Time    `json:"expectedReturnDate" db:"expected_return_date"`
	ActualReturnDate   *time.Time   `json:"actualReturnDate,omitempty" db:"actual_return_date"` // Nullable
	Status             BorrowStatus `json:"status" db:"status"`
	Remarks            *string      `json:"remarks,omitempty" db:"remarks"` // Nullable
	CreatedAt          time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time    `json:"updatedAt" db:"updated_at"`
}
