package dto

import (
	"time"

	"github.com/ekurt/depot/internal/app/models"
)

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Name         string     `json:"name" binding:"required"`
	Description  *string    `json:"description,omitempty"`
	Instructor   *string    `json:"instructor,omitempty"`
	StudentCount *int       `json:"studentCount,omitempty" binding:"omitempty,gt=0"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
}

// CourseItemRequest is one requested item line in an AddCourseItemsRequest
type CourseItemRequest struct {
	ItemName         string `json:"itemName" binding:"required"`
	RequiredQuantity int    `json:"requiredQuantity" binding:"required,gt=0"`
}

// AddCourseItemsRequest represents item registration against a course
type AddCourseItemsRequest struct {
	Items []CourseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CompleteCourseRequest represents course completion data
type CompleteCourseRequest struct {
	ReturnItems bool `json:"returnItems"`
}

// CourseResponse represents a course with its registered items
type CourseResponse struct {
	Course *models.Course       `json:"course"`
	Items  []*models.CourseItem `json:"items"`
}

// CourseListResponse represents a list of courses
type CourseListResponse struct {
	Courses []*models.Course `json:"courses"`
	Total   int              `json:"total"`
}

// AddCourseItemsResponse represents the sufficiency check summary of an
// item registration run
type AddCourseItemsResponse struct {
	Items             []*models.CourseItem `json:"items"`
	TotalItems        int                  `json:"totalItems"`
	SufficientItems   int                  `json:"sufficientItems"`
	InsufficientItems int                  `json:"insufficientItems"`
}

// ReservationResponse represents the outcome of a course reservation run
type ReservationResponse struct {
	Success       bool     `json:"success"`
	ReservedItems int      `json:"reservedItems"`
	FailedItems   []string `json:"failedItems"`
}

// CompletionResponse represents the outcome of a course completion run
type CompletionResponse struct {
	Success       bool `json:"success"`
	ReturnedItems int  `json:"returnedItems"`
	DeductedItems int  `json:"deductedItems"`
}
