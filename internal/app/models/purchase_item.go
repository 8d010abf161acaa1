package models

import "time"

// PurchaseStatus is the lifecycle state of a purchase item.
type PurchaseStatus string

const (
	PurchaseStatusConsidering     PurchaseStatus = "considering"
	PurchaseStatusApproved        PurchaseStatus = "approved"
	PurchaseStatusWaitingDelivery PurchaseStatus = "waiting_delivery"
	PurchaseStatusArrived         PurchaseStatus = "arrived"
	PurchaseStatusStored          PurchaseStatus = "stored"
)

// Arrived reports whether the purchase has reached a terminal received
// state. Once arrived or stored the status can no longer change.
func (s PurchaseStatus) Arrived() bool {
	return s == PurchaseStatusArrived || s == PurchaseStatusStored
}

// PurchaseItem represents an item moving through the purchase pipeline.
// When its status becomes arrived or stored, the purchased quantity is
// merged into stock by the purchase-to-stock workflow.
type PurchaseItem struct {
	ID         int64          `json:"id" db:"id"`
	Name       string         `json:"name" db:"name"`
	WhereToBuy *string        `json:"whereToBuy,omitempty" db:"where_to_buy"` // Nullable
	Price      *float64       `json:"price,omitempty" db:"price"`             // Nullable
	Quantity   int            `json:"quantity" db:"quantity"`
	CourseTag  *string        `json:"courseTag,omitempty" db:"course_tag"` // Nullable
	Link       *string        `json:"link,omitempty" db:"link"`            // Nullable
	Status     PurchaseStatus `json:"status" db:"status"`
	CreatedAt  time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time      `json:"updatedAt" db:"updated_at"`
}
