package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekurt/depot/internal/app/models"
)

// StockTransactionRepository handles the append-only stock transaction log
type StockTransactionRepository struct {
	db *pgxpool.Pool
}

// NewStockTransactionRepository creates a new stock transaction repository
func NewStockTransactionRepository(db *pgxpool.Pool) *StockTransactionRepository {
	return &StockTransactionRepository{
		db: db,
	}
}

// Append writes one transaction row and fills in its generated fields.
// Rows are never updated or deleted afterwards.
func (r *StockTransactionRepository) Append(ctx context.Context, txn *models.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (stock_item_id, type, quantity, reason, performed_by, date)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, date
	`

	err := r.db.QueryRow(ctx, query,
		txn.StockItemID,
		txn.Type,
		txn.Quantity,
		txn.Reason,
		txn.PerformedBy,
	).Scan(&txn.ID, &txn.Date)
	if err != nil {
		return fmt.Errorf("error appending stock transaction: %w", err)
	}

	return nil
}

// ListByStockItem retrieves the transaction history of one item, latest first
func (r *StockTransactionRepository) ListByStockItem(ctx context.Context, stockItemID int64) ([]*models.StockTransaction, error) {
	query := `
		SELECT id, stock_item_id, type, quantity, reason, performed_by, date
		FROM stock_transactions
		WHERE stock_item_id = $1
		ORDER BY date DESC
	`

	rows, err := r.db.Query(ctx, query, stockItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*models.StockTransaction
	for rows.Next() {
		var txn models.StockTransaction
		if err := rows.Scan(
			&txn.ID,
			&txn.StockItemID,
			&txn.Type,
			&txn.Quantity,
			&txn.Reason,
			&txn.PerformedBy,
			&txn.Date,
		); err != nil {
			return nil, err
		}
		txns = append(txns, &txn)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return txns, nil
}
