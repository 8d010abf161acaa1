package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekurt/depot/internal/app/models"
)

// Course item error types
var (
	ErrCourseItemNotFound = errors.New("course item not found")
)

const courseItemColumns = `id, course_id, stock_item_id, item_name, required_quantity, available_quantity, reserved_quantity, status, created_at, updated_at`

// CourseItemRepository handles database operations for course items
type CourseItemRepository struct {
	db *pgxpool.Pool
}

// NewCourseItemRepository creates a new course item repository
func NewCourseItemRepository(db *pgxpool.Pool) *CourseItemRepository {
	return &CourseItemRepository{
		db: db,
	}
}

func scanCourseItem(row rowScanner) (*models.CourseItem, error) {
	var item models.CourseItem
	err := row.Scan(
		&item.ID,
		&item.CourseID,
		&item.StockItemID,
		&item.ItemName,
		&item.RequiredQuantity,
		&item.AvailableQuantity,
		&item.ReservedQuantity,
		&item.Status,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new course item and fills in its generated fields
func (r *CourseItemRepository) Create(ctx context.Context, item *models.CourseItem) error {
	query := `
		INSERT INTO course_items (course_id, stock_item_id, item_name, required_quantity, available_quantity, reserved_quantity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		item.CourseID,
		item.StockItemID,
		item.ItemName,
		item.RequiredQuantity,
		item.AvailableQuantity,
		item.ReservedQuantity,
		item.Status,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating course item: %w", err)
	}

	return nil
}

// ListByCourse retrieves all items of a course ordered by item name
func (r *CourseItemRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseItem, error) {
	query := `
		SELECT ` + courseItemColumns + `
		FROM course_items
		WHERE course_id = $1
		ORDER BY item_name
	`

	return r.list(ctx, query, courseID)
}

// ListResolvedByStatus retrieves the items of a course in the given status
// that carry a resolved stock reference.
func (r *CourseItemRepository) ListResolvedByStatus(ctx context.Context, courseID int64, status models.CourseItemStatus) ([]*models.CourseItem, error) {
	query := `
		SELECT ` + courseItemColumns + `
		FROM course_items
		WHERE course_id = $1 AND status = $2 AND stock_item_id IS NOT NULL
	`

	return r.list(ctx, query, courseID, status)
}

func (r *CourseItemRepository) list(ctx context.Context, query string, args ...any) ([]*models.CourseItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.CourseItem
	for rows.Next() {
		item, err := scanCourseItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// MarkReserved records a successful reservation on a course item
func (r *CourseItemRepository) MarkReserved(ctx context.Context, id int64, reservedQuantity int) error {
	query := `
		UPDATE course_items
		SET reserved_quantity = $2, status = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, reservedQuantity, models.CourseItemStatusReserved)
	if err != nil {
		return fmt.Errorf("error marking course item reserved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCourseItemNotFound
	}

	return nil
}

// UpdateStatus moves a course item to a new lifecycle state
func (r *CourseItemRepository) UpdateStatus(ctx context.Context, id int64, status models.CourseItemStatus) error {
	query := `
		UPDATE course_items
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("error updating course item status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCourseItemNotFound
	}

	return nil
}
