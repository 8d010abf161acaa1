package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekurt/depot/internal/app/models"
	"github.com/ekurt/depot/internal/pkg/dberrors"
)

// Purchase error types
var (
	ErrPurchaseItemNotFound = errors.New("purchase item not found")
)

const purchaseItemColumns = `id, name, where_to_buy, price, quantity, course_tag, link, status, created_at, updated_at`

// PurchaseRepository handles database operations for purchase items
type PurchaseRepository struct {
	db *pgxpool.Pool
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{
		db: db,
	}
}

func scanPurchaseItem(row rowScanner) (*models.PurchaseItem, error) {
	var item models.PurchaseItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.WhereToBuy,
		&item.Price,
		&item.Quantity,
		&item.CourseTag,
		&item.Link,
		&item.Status,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new purchase item and fills in its generated fields
func (r *PurchaseRepository) Create(ctx context.Context, item *models.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (name, where_to_buy, price, quantity, course_tag, link, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		item.Name,
		item.WhereToBuy,
		item.Price,
		item.Quantity,
		item.CourseTag,
		item.Link,
		item.Status,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating purchase item: %w", err)
	}

	return nil
}

// GetByID retrieves a purchase item by ID
func (r *PurchaseRepository) GetByID(ctx context.Context, id int64) (*models.PurchaseItem, error) {
	query := `
		SELECT ` + purchaseItemColumns + `
		FROM purchase_items
		WHERE id = $1
	`

	item, err := scanPurchaseItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrPurchaseItemNotFound
		}
		return nil, fmt.Errorf("error retrieving purchase item: %w", err)
	}

	return item, nil
}

// GetAll retrieves all purchase items, latest first
func (r *PurchaseRepository) GetAll(ctx context.Context) ([]*models.PurchaseItem, error) {
	query := `
		SELECT ` + purchaseItemColumns + `
		FROM purchase_items
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.PurchaseItem
	for rows.Next() {
		item, err := scanPurchaseItem(rows)
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

// UpdateStatus moves a purchase item to a new lifecycle state
func (r *PurchaseRepository) UpdateStatus(ctx context.Context, id int64, status models.PurchaseStatus) (*models.PurchaseItem, error) {
	query := `
		UPDATE purchase_items
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + purchaseItemColumns + `
	`

	item, err := scanPurchaseItem(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrPurchaseItemNotFound
		}
		return nil, fmt.Errorf("error updating purchase item status: %w", err)
	}

	return item, nil
}

// Delete removes a purchase item
func (r *PurchaseRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM purchase_items WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting purchase item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPurchaseItemNotFound
	}

	return nil
}
