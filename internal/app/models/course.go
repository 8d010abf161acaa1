package models

import "time"

// CourseStatus is the lifecycle state of a course.
type CourseStatus string

const (
	CourseStatusPlanning  CourseStatus = "planning"
	CourseStatusActive    CourseStatus = "active"
	CourseStatusCompleted CourseStatus = "completed"
	CourseStatusCancelled CourseStatus = "cancelled"
)

// Course represents a course that reserves and consumes inventory.
// Created as planning, becomes active when all its items reserve
// successfully, and completed is terminal.
type Course struct {
	ID           int64        `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	Description  *string      `json:"description,omitempty" db:"description"`   // Nullable
	Instructor   *string      `json:"instructor,omitempty" db:"instructor"`     // Nullable
	StudentCount *int         `json:"studentCount,omitempty" db:"student_count"` // Nullable
	StartDate    *time.Time   `json:"startDate,omitempty" db:"start_date"`      // Nullable
	EndDate      *time.Time   `json:"endDate,omitempty" db:"end_date"`          // Nullable
	Status       CourseStatus `json:"status" db:"status"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}
