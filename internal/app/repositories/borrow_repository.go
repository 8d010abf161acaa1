package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekurt/depot/internal/app/models"
	"github.com/ekurt/depot/internal/pkg/dberrors"
)

// Borrow error types
var (
	ErrBorrowRecordNotFound = errors.New("borrow record not found")
)

const borrowRecordColumns = `id, stock_item_id, item_name, borrowed_by, borrowed_quantity, borrow_date, expected_return_date, actual_return_date, status, remarks, created_at, updated_at`

// BorrowRepository handles database operations for borrow records
type BorrowRepository struct {
	db *pgxpool.Pool
}

// NewBorrowRepository creates a new borrow repository
func NewBorrowRepository(db *pgxpool.Pool) *BorrowRepository {
	return &BorrowRepository{
		db: db,
	}
}

func scanBorrowRecord(row rowScanner) (*models.BorrowRecord, error) {
	var record models.BorrowRecord
	err := row.Scan(
		&record.ID,
		&record.StockItemID,
		&record.ItemName,
		&record.BorrowedBy,
		&record.BorrowedQuantity,
		&record.BorrowDate,
		&record.ExpectedReturnDate,
		&record.ActualReturnDate,
		&record.Status,
		&record.Remarks,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a new borrow record and fills in its generated fields
func (r *BorrowRepository) Create(ctx context.Context, record *models.BorrowRecord) error {
	query := `
		INSERT INTO borrow_records (stock_item_id, item_name, borrowed_by, borrowed_quantity, borrow_date, expected_return_date, status, remarks)
		VALUES ($1, $2, $3, $4, NOW(), $5, $6, $7)
		RETURNING id, borrow_date, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		record.StockItemID,
		record.ItemName,
		record.BorrowedBy,
		record.BorrowedQuantity,
		record.ExpectedReturnDate,
		record.Status,
		record.Remarks,
	).Scan(&record.ID, &record.BorrowDate, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating borrow record: %w", err)
	}

	return nil
}

// GetByID retrieves a borrow record by ID
func (r *BorrowRepository) GetByID(ctx context.Context, id int64) (*models.BorrowRecord, error) {
	query := `
		SELECT ` + borrowRecordColumns + `
		FROM borrow_records
		WHERE id = $1
	`

	record, err := scanBorrowRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrBorrowRecordNotFound
		}
		return nil, fmt.Errorf("error retrieving borrow record: %w", err)
	}

	return record, nil
}

// GetAll retrieves all borrow records, latest borrow first
func (r *BorrowRepository) GetAll(ctx context.Context) ([]*models.BorrowRecord, error) {
	query := `
		SELECT ` + borrowRecordColumns + `
		FROM borrow_records
		ORDER BY borrow_date DESC
	`

	rows, err := r.db.Query(ctx, query)
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

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// MarkReturned stamps the terminal return state on a borrow record
func (r *BorrowRepository) MarkReturned(ctx context.Context, id int64, status models.BorrowStatus, returnedAt time.Time) (*models.BorrowRecord, error) {
	query := `
		UPDATE borrow_records
		SET status = $2, actual_return_date = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + borrowRecordColumns + `
	`

	record, err := scanBorrowRecord(r.db.QueryRow(ctx, query, id, status, returnedAt))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrBorrowRecordNotFound
		}
		return nil, fmt.Errorf("error updating borrow record: %w", err)
	}

	return record, nil
}
