package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ekurt/depot/internal/app/models"
	"github.com/ekurt/depot/internal/app/repositories"
	"github.com/ekurt/depot/internal/pkg/apperrors"
)

// StockMatcher resolves a requested item name to the best matching stock
// item, or nil when nothing matches. The matching policy (case-insensitive
// substring, highest available quantity wins) lives behind this interface
// so it can be swapped and tested in isolation.
type StockMatcher interface {
	FindBestMatch(ctx context.Context, name string) (*models.StockItem, error)
}

// CourseStockStore is the slice of the stock store the course workflows need.
type CourseStockStore interface {
	GetByID(ctx context.Context, id int64) (*models.StockItem, error)
	ReserveAvailable(ctx context.Context, id int64, qty int) (*models.StockItem, error)
	ReleaseAvailable(ctx context.Context, id int64, qty int) (*models.StockItem, error)
	DeductQuantity(ctx context.Context, id int64, qty int) (*models.StockItem, error)
}

// CourseStore is the persistence surface for courses.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	UpdateStatus(ctx context.Context, id int64, status models.CourseStatus) error
}

// CourseItemStore is the persistence surface for course items.
type CourseItemStore interface {
	Create(ctx context.Context, item *models.CourseItem) error
	ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseItem, error)
	ListResolvedByStatus(ctx context.Context, courseID int64, status models.CourseItemStatus) ([]*models.CourseItem, error)
	MarkReserved(ctx context.Context, id int64, reservedQuantity int) error
	UpdateStatus(ctx context.Context, id int64, status models.CourseItemStatus) error
}

// CourseInput carries the fields of a new course.
type CourseInput struct {
	Name         string
	Description  *string
	Instructor   *string
	StudentCount *int
	StartDate    *time.Time
	EndDate      *time.Time
}

// CourseItemRequest is one requested item line when registering items
// against a course.
type CourseItemRequest struct {
	ItemName         string
	RequiredQuantity int
}

// AddItemsResult reports the registration check of requested course items.
type AddItemsResult struct {
	Items             []*models.CourseItem
	TotalItems        int
	SufficientItems   int
	InsufficientItems int
}

// ReservationResult reports a course reservation run. Partial success is a
// normal outcome: failed items are listed, successful reservations stand.
type ReservationResult struct {
	Success       bool
	ReservedItems int
	FailedItems   []string
}

// CompletionResult reports a course completion run.
type CompletionResult struct {
	Success       bool
	ReturnedItems int
	DeductedItems int
}

// CourseDetails bundles a course with its registered items.
type CourseDetails struct {
	Course *models.Course
	Items  []*models.CourseItem
}

// CourseService implements course item registration, the two-phase
// reservation and the completion workflow.
type CourseService struct {
	courses     CourseStore
	courseItems CourseItemStore
	stock       CourseStockStore
	matcher     StockMatcher
	txnLog      TransactionLog
	logger      zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courses CourseStore, courseItems CourseItemStore, stock CourseStockStore, matcher StockMatcher, txnLog TransactionLog, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courses:     courses,
		courseItems: courseItems,
		stock:       stock,
		matcher:     matcher,
		txnLog:      txnLog,
		logger:      logger,
	}
}

// CreateCourse creates a course in the planning state
func (s *CourseService) CreateCourse(ctx context.Context, input CourseInput) (*models.Course, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewBadRequestError("course name cannot be empty")
	}

	course := &models.Course{
		Name:         input.Name,
		Description:  input.Description,
		Instructor:   input.Instructor,
		StudentCount: input.StudentCount,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Status:       models.CourseStatusPlanning,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	return course, nil
}

// GetCourse retrieves a course together with its registered items
func (s *CourseService) GetCourse(ctx context.Context, id int64) (*CourseDetails, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.courseItems.ListByCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course items: %w", err)
	}

	return &CourseDetails{Course: course, Items: items}, nil
}

// ListCourses retrieves all courses, latest first
func (s *CourseService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// AddItems registers requested items against a course and checks stock
// sufficiency. This is a planning phase: each request is matched to the
// best stock candidate by name, the available quantity is snapshotted,
// and no stock is mutated.
func (s *CourseService) AddItems(ctx context.Context, courseID int64, requests []CourseItemRequest) (*AddItemsResult, error) {
	if len(requests) == 0 {
		return nil, apperrors.NewBadRequestError("at least one item is required")
	}
	for _, req := range requests {
		if strings.TrimSpace(req.ItemName) == "" {
			return nil, apperrors.NewBadRequestError("item name cannot be empty")
		}
		if req.RequiredQuantity <= 0 {
			return nil, apperrors.NewBadRequestError("required quantity must be positive")
		}
	}

	if _, err := s.getCourse(ctx, courseID); err != nil {
		return nil, err
	}

	result := &AddItemsResult{TotalItems: len(requests)}
	for _, req := range requests {
		match, err := s.matcher.FindBestMatch(ctx, req.ItemName)
		if err != nil {
			return nil, fmt.Errorf("error matching stock item: %w", err)
		}

		var stockItemID *int64
		available := 0
		if match != nil {
			stockItemID = &match.ID
			available = match.AvailableQuantity
		}

		status := models.CourseItemStatusInsufficient
		if available >= req.RequiredQuantity {
			status = models.CourseItemStatusSufficient
			result.SufficientItems++
		} else {
			result.InsufficientItems++
		}

		item := &models.CourseItem{
			CourseID:          courseID,
			StockItemID:       stockItemID,
			ItemName:          req.ItemName,
			RequiredQuantity:  req.RequiredQuantity,
			AvailableQuantity: available,
			Status:            status,
		}
		if err := s.courseItems.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("error creating course item: %w", err)
		}
		result.Items = append(result.Items, item)
	}

	return result, nil
}

// ReserveItems reserves stock for every sufficient course item. Each item
// is an independent unit: the live available quantity is re-read and
// re-validated (the registration snapshot is never trusted for a write),
// and a failure on one item is recorded and does not undo or block the
// others. The course goes active only when nothing failed and at least
// one item was processed.
func (s *CourseService) ReserveItems(ctx context.Context, courseID int64) (*ReservationResult, error) {
	if _, err := s.getCourse(ctx, courseID); err != nil {
		return nil, err
	}

	items, err := s.courseItems.ListResolvedByStatus(ctx, courseID, models.CourseItemStatusSufficient)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course items: %w", err)
	}

	result := &ReservationResult{FailedItems: []string{}}
	for _, item := range items {
		stockItem, err := s.stock.GetByID(ctx, *item.StockItemID)
		if err != nil || stockItem.AvailableQuantity < item.RequiredQuantity {
			result.FailedItems = append(result.FailedItems, fmt.Sprintf("%s (insufficient stock)", item.ItemName))
			continue
		}

		if _, err := s.stock.ReserveAvailable(ctx, *item.StockItemID, item.RequiredQuantity); err != nil {
			if errors.Is(err, repositories.ErrStockConditionFailed) {
				result.FailedItems = append(result.FailedItems, fmt.Sprintf("%s (insufficient stock)", item.ItemName))
			} else {
				result.FailedItems = append(result.FailedItems, fmt.Sprintf("%s (reservation failed)", item.ItemName))
			}
			continue
		}

		if err := s.courseItems.MarkReserved(ctx, item.ID, item.RequiredQuantity); err != nil {
			s.logger.Error().Err(err).Int64("courseItemId", item.ID).Msg("Failed to mark course item reserved")
			result.FailedItems = append(result.FailedItems, fmt.Sprintf("%s (reservation failed)", item.ItemName))
			continue
		}

		reason := models.ReasonReservedForCourse
		txn := &models.StockTransaction{
			StockItemID: *item.StockItemID,
			Type:        models.TransactionTypeOut,
			Quantity:    item.RequiredQuantity,
			Reason:      &reason,
			PerformedBy: SystemActor,
		}
		if err := s.txnLog.Append(ctx, txn); err != nil {
			s.logger.Error().Err(err).Int64("stockItemId", *item.StockItemID).Msg("Failed to log course reservation")
		}

		result.ReservedItems++
	}

	if len(result.FailedItems) == 0 && len(items) > 0 {
		if err := s.courses.UpdateStatus(ctx, courseID, models.CourseStatusActive); err != nil {
			return nil, fmt.Errorf("error activating course: %w", err)
		}
	}

	result.Success = len(result.FailedItems) == 0
	s.logger.Info().Int64("courseId", courseID).Int("reserved", result.ReservedItems).Int("failed", len(result.FailedItems)).Msg("Course reservation processed")
	return result, nil
}

// CompleteCourse closes out a course. Reserved items either go back into
// the available pool (returnItems true) or are permanently deducted from
// the total quantity (the available pool was already reduced when they
// were reserved). The course always ends up completed; running it again
// finds no reserved items and just re-stamps the status.
func (s *CourseService) CompleteCourse(ctx context.Context, courseID int64, returnItems bool) (*CompletionResult, error) {
	if _, err := s.getCourse(ctx, courseID); err != nil {
		return nil, err
	}

	items, err := s.courseItems.ListResolvedByStatus(ctx, courseID, models.CourseItemStatusReserved)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course items: %w", err)
	}

	result := &CompletionResult{}
	for _, item := range items {
		if returnItems {
			if err := s.returnCourseItem(ctx, item); err != nil {
				return nil, err
			}
			result.ReturnedItems++
		} else {
			if err := s.consumeCourseItem(ctx, item); err != nil {
				return nil, err
			}
			result.DeductedItems++
		}
	}

	if err := s.courses.UpdateStatus(ctx, courseID, models.CourseStatusCompleted); err != nil {
		return nil, fmt.Errorf("error completing course: %w", err)
	}

	result.Success = true
	s.logger.Info().Int64("courseId", courseID).Int("returned", result.ReturnedItems).Int("deducted", result.DeductedItems).Msg("Course completed")
	return result, nil
}

func (s *CourseService) returnCourseItem(ctx context.Context, item *models.CourseItem) error {
	if _, err := s.stock.ReleaseAvailable(ctx, *item.StockItemID, item.ReservedQuantity); err != nil {
		return fmt.Errorf("error returning stock from course: %w", err)
	}

	reason := models.ReasonReturnedFromCourse
	txn := &models.StockTransaction{
		StockItemID: *item.StockItemID,
		Type:        models.TransactionTypeIn,
		Quantity:    item.ReservedQuantity,
		Reason:      &reason,
		PerformedBy: SystemActor,
	}
	if err := s.txnLog.Append(ctx, txn); err != nil {
		return fmt.Errorf("error recording stock transaction: %w", err)
	}

	return s.courseItems.UpdateStatus(ctx, item.ID, models.CourseItemStatusReturned)
}

func (s *CourseService) consumeCourseItem(ctx context.Context, item *models.CourseItem) error {
	if _, err := s.stock.DeductQuantity(ctx, *item.StockItemID, item.ReservedQuantity); err != nil {
		return fmt.Errorf("error deducting stock used in course: %w", err)
	}

	reason := models.ReasonUsedInCourse
	txn := &models.StockTransaction{
		StockItemID: *item.StockItemID,
		Type:        models.TransactionTypeOut,
		Quantity:    item.ReservedQuantity,
		Reason:      &reason,
		PerformedBy: SystemActor,
	}
	if err := s.txnLog.Append(ctx, txn); err != nil {
		return fmt.Errorf("error recording stock transaction: %w", err)
	}

	return s.courseItems.UpdateStatus(ctx, item.ID, models.CourseItemStatusUsed)
}

func (s *CourseService) getCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}
