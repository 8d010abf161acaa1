package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekurt/depot/internal/app/models"
	"github.com/ekurt/depot/internal/pkg/dberrors"
)

// Stock error types
var (
	ErrStockItemNotFound = errors.New("stock item not found")
	// ErrStockConditionFailed is returned when a guarded quantity update
	// matched no row: either the item is gone or the floor check failed.
	ErrStockConditionFailed = errors.New("stock quantity condition not met")
)

// rowScanner abstracts pgx.Row and pgx.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

const stockItemColumns = `id, name, quantity, available_quantity, purchase_price, location, course_tag, status, created_at, updated_at`

// StockRepository handles database operations for stock items
type StockRepository struct {
	db *pgxpool.Pool
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *pgxpool.Pool) *StockRepository {
	return &StockRepository{
		db: db,
	}
}

func scanStockItem(row rowScanner) (*models.StockItem, error) {
	var item models.StockItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Quantity,
		&item.AvailableQuantity,
		&item.PurchasePrice,
		&item.Location,
		&item.CourseTag,
		&item.Status,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new stock item and fills in its generated fields
func (r *StockRepository) Create(ctx context.Context, item *models.StockItem) error {
	query := `
		INSERT INTO stock_items (name, quantity, available_quantity, purchase_price, location, course_tag, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		item.Name,
		item.Quantity,
		item.AvailableQuantity,
		item.PurchasePrice,
		item.Location,
		item.CourseTag,
		item.Status,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating stock item: %w", err)
	}

	return nil
}

// GetByID retrieves a stock item by ID
func (r *StockRepository) GetByID(ctx context.Context, id int64) (*models.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE id = $1
	`

	item, err := scanStockItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrStockItemNotFound
		}
		return nil, fmt.Errorf("error retrieving stock item: %w", err)
	}

	return item, nil
}

// GetAll retrieves all stock items, latest first
func (r *StockRepository) GetAll(ctx context.Context) ([]*models.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_items
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
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

// UpdateDetails updates the descriptive fields of a stock item. Quantities
// and status are never written here; those go through the quantity workflows.
func (r *StockRepository) UpdateDetails(ctx context.Context, id int64, name string, purchasePrice *float64, location, courseTag *string) (*models.StockItem, error) {
	query := `
		UPDATE stock_items
		SET name = $2, purchase_price = $3, location = $4, course_tag = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + stockItemColumns + `
	`

	item, err := scanStockItem(r.db.QueryRow(ctx, query, id, name, purchasePrice, location, courseTag))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrStockItemNotFound
		}
		return nil, fmt.Errorf("error updating stock item: %w", err)
	}

	return item, nil
}

// FindByNameAndCourseTag looks up a stock item by exact name and course tag.
// A nil courseTag matches rows whose course_tag is NULL. Returns nil when
// nothing matches.
func (r *StockRepository) FindByNameAndCourseTag(ctx context.Context, name string, courseTag *string) (*models.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE name = $1 AND course_tag IS NOT DISTINCT FROM $2
	`

	item, err := scanStockItem(r.db.QueryRow(ctx, query, name, courseTag))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error looking up stock item: %w", err)
	}

	return item, nil
}

// FindBestMatch finds the stock item whose name contains the given name
// (case-insensitive), preferring the highest available quantity. Returns nil
// when nothing matches.
func (r *StockRepository) FindBestMatch(ctx context.Context, name string) (*models.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY available_quantity DESC
		LIMIT 1
	`

	item, err := scanStockItem(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error matching stock item: %w", err)
	}

	return item, nil
}

// AddQuantities atomically adds qty to both total and available quantity and
// recomputes the status label from the new total.
func (r *StockRepository) AddQuantities(ctx context.Context, id int64, qty int) (*models.StockItem, error) {
	query := `
		UPDATE stock_items
		SET quantity = quantity + $2,
			available_quantity = available_quantity + $2,
			status = CASE
				WHEN quantity + $2 <= 0 THEN 'out_of_stock'
				WHEN quantity + $2 < $3 THEN 'low_stock'
				ELSE 'in_stock'
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + stockItemColumns + `
	`

	item, err := scanStockItem(r.db.QueryRow(ctx, query, id, qty, models.LowStockThreshold))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrStockItemNotFound
		}
		return nil, fmt.Errorf("error adding stock quantities: %w", err)
	}

	return item, nil
}

// RemoveQuantities atomically subtracts qty from both total and available
// quantity. The statement carries its own floor check so two concurrent
// removals cannot drive either quantity negative.
func (r *StockRepository) RemoveQuantities(ctx context.Context, id int64, qty int) (*models.StockItem, error) {
	query := `
		UPDATE stock_items
		SET quantity = quantity - $2,
			available_quantity = available_quantity - $2,
			status = CASE
				WHEN quantity - $2 <= 0 THEN 'out_of_stock'
				WHEN quantity - $2 < $3 THEN 'low_stock'
				ELSE 'in_stock'
			END,
			updated_at = NOW()
		WHERE id = $1 AND quantity >= $2 AND available_quantity >= $2
		RETURNING ` + stockItemColumns + `
	`

	item, err := scanStockItem(r.db.QueryRow(ctx, query, id, qty, models.LowStockThreshold))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrStockConditionFailed
		}
		return nil, fmt.Errorf("error removing stock quantities: %w", err)
	}

	return item, nil
}

// ReserveAvailable atomically removes qty from the available pool without
// touching the total quantity. No row matches when the floor check fails.
func (r *StockRepository) ReserveAvailable(ctx context.Context, id int64, qty int) (*models.StockItem, error) {
	query := `
		UPDATE stock_items
		SET available_quantity = available_quantity - $2, updated_at = NOW()
		WHERE id = $1 AND available_quantity >= $2
		RETURNING ` + stockItemColumns + `
	`

	item, err := scanStockItem(r.db.QueryRow(ctx, query, id, qty))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrStockConditionFailed
		}
		return nil, fmt.Errorf("error reserving stock: %w", err)
	}

	return item, nil
}

// ReleaseAvailable returns qty to the available pool.
func (r *StockRepository) ReleaseAvailable(ctx context.Context, id int64, qty int) (*models.StockItem, error) {
	query := `
		UPDATE stock_items
		SET available_quantity = available_quantity + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + stockItemColumns + `
	`

	item, err := scanStockItem(r.db.QueryRow(ctx, query, id, qty))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrStockItemNotFound
		}
		return nil, fmt.Errorf("error releasing stock: %w", err)
	}

	return item, nil
}

// DeductQuantity permanently removes qty from the total quantity, leaving the
// available pool untouched. Used when reserved items are consumed.
func (r *StockRepository) DeductQuantity(ctx context.Context, id int64, qty int) (*models.StockItem, error) {
	query := `
		UPDATE stock_items
		SET quantity = quantity - $2,
			status = CASE
				WHEN quantity - $2 <= 0 THEN 'out_of_stock'
				WHEN quantity - $2 < $3 THEN 'low_stock'
				ELSE 'in_stock'
			END,
			updated_at = NOW()
		WHERE id = $1 AND quantity >= $2
		RETURNING ` + stockItemColumns + `
	`

	item, err := scanStockItem(r.db.QueryRow(ctx, query, id, qty, models.LowStockThreshold))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrStockConditionFailed
		}
		return nil, fmt.Errorf("error deducting stock quantity: %w", err)
	}

	return item, nil
}
