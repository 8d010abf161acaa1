package models

import "time"

// CourseItemStatus is the lifecycle state of a course item requirement.
type CourseItemStatus string

const (
	CourseItemStatusSufficient   CourseItemStatus = "sufficient"
	CourseItemStatusInsufficient CourseItemStatus = "insufficient"
	CourseItemStatusReserved     CourseItemStatus = "reserved"
	CourseItemStatusReturned     CourseItemStatus = "returned"
	CourseItemStatusUsed         CourseItemStatus = "used"
)

// CourseItem is a named requirement within a course. The stock reference is
// weak: it is resolved by fuzzy name match at registration time and may be
// nil when nothing matched. AvailableQuantity is a snapshot taken at
// registration, never trusted for write decisions.
type CourseItem struct {
	ID                int64            `json:"id" db:"id"`
	CourseID          int64            `json:"courseId" db:"course_id"`
	StockItemID       *int64           `json:"stockItemId,omitempty" db:"stock_item_id"` // Nullable
	ItemName          string           `json:"itemName" db:"item_name"`
	RequiredQuantity  int              `json:"requiredQuantity" db:"required_quantity"`
	AvailableQuantity int              `json:"availableQuantity" db:"available_quantity"`
	ReservedQuantity  int              `json:"reservedQuantity" db:"reserved_quantity"`
	Status            CourseItemStatus `json:"status" db:"status"`
	CreatedAt         time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time        `json:"updatedAt" db:"updated_at"`
}
