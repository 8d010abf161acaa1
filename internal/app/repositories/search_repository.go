package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekurt/depot/internal/app/models"
)

// SearchRepository runs the cross-entity substring searches
type SearchRepository struct {
	db *pgxpool.Pool
}

// NewSearchRepository creates a new search repository
func NewSearchRepository(db *pgxpool.Pool) *SearchRepository {
	return &SearchRepository{
		db: db,
	}
}

// SearchPurchaseItems finds purchase items whose name or course tag contains the term
func (r *SearchRepository) SearchPurchaseItems(ctx context.Context, term string) ([]*models.PurchaseItem, error) {
	query := `
		SELECT ` + purchaseItemColumns + `
		FROM purchase_items
		WHERE name ILIKE $1 OR course_tag ILIKE $1
	`

	rows, err := r.db.Query(ctx, query, "%"+term+"%")
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

	return items, rows.Err()
}

// SearchStockItems finds stock items whose name, course tag or location contains the term
func (r *SearchRepository) SearchStockItems(ctx context.Context, term string) ([]*models.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE name ILIKE $1 OR course_tag ILIKE $1 OR location ILIKE $1
	`

	rows, err := r.db.Query(ctx, query, "%"+term+"%")
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

	return items, rows.Err()
}

// SearchBorrowRecords finds borrow records whose item name or borrower contains the term
func (r *SearchRepository) SearchBorrowRecords(ctx context.Context, term string) ([]*models.BorrowRecord, error) {
	query := `
		SELECT ` + borrowRecordColumns + `
		FROM borrow_records
		WHERE item_name ILIKE $1 OR borrowed_by ILIKE $1
	`

	rows, err := r.db.Query(ctx, query, "%"+term+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.BorrowRecord
	for rows.Next() {
		record, err := scanBorrowRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
