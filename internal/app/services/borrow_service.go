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

// BorrowStockStore is the slice of the stock store the borrow workflow needs.
type BorrowStockStore interface {
	GetByID(ctx context.Context, id int64) (*models.StockItem, error)
	ReserveAvailable(ctx context.Context, id int64, qty int) (*models.StockItem, error)
	ReleaseAvailable(ctx context.Context, id int64, qty int) (*models.StockItem, error)
}

// BorrowStore is the persistence surface for borrow records.
type BorrowStore interface {
	Create(ctx context.Context, record *models.BorrowRecord) error
	GetByID(ctx context.Context, id int64) (*models.BorrowRecord, error)
	GetAll(ctx context.Context) ([]*models.BorrowRecord, error)
	MarkReturned(ctx context.Context, id int64, status models.BorrowStatus, returnedAt time.Time) (*models.BorrowRecord, error)
}

// BorrowService implements checkout and return of stock items.
type BorrowService struct {
	stock   BorrowStockStore
	borrows BorrowStore
	logger  zerolog.Logger
}

// NewBorrowService creates a new borrow service instance
func NewBorrowService(stock BorrowStockStore, borrows BorrowStore, logger zerolog.Logger) *BorrowService {
	return &BorrowService{
		stock:   stock,
		borrows: borrows,
		logger:  logger,
	}
}

// Checkout removes quantity from the available pool of a stock item and
// opens a borrow record. The total quantity is untouched; borrowed items
// remain owned, just unavailable. The item name is denormalized onto the
// record so it survives later renames.
func (s *BorrowService) Checkout(ctx context.Context, stockItemID int64, borrowedBy string, borrowedQuantity int, expectedReturnDate time.Time, remarks *string) (*models.BorrowRecord, error) {
	if strings.TrimSpace(borrowedBy) == "" {
		return nil, apperrors.NewBadRequestError("borrowedBy cannot be empty")
	}
	if borrowedQuantity <= 0 {
		return nil, apperrors.NewBadRequestError("borrowed quantity must be positive")
	}

	item, err := s.stock.GetByID(ctx, stockItemID)
	if err != nil {
		if errors.Is(err, repositories.ErrStockItemNotFound) {
			return nil, apperrors.ErrStockItemNotFound
		}
		return nil, fmt.Errorf("error retrieving stock item: %w", err)
	}

	if borrowedQuantity > item.AvailableQuantity {
		return nil, apperrors.ErrInsufficientStock
	}

	// The guard repeats inside the update, so a concurrent checkout that
	// got there first turns into a clean rejection instead of a negative
	// available quantity.
	if _, err := s.stock.ReserveAvailable(ctx, stockItemID, borrowedQuantity); err != nil {
		if errors.Is(err, repositories.ErrStockConditionFailed) {
			return nil, apperrors.ErrInsufficientStock
		}
		return nil, fmt.Errorf("error reserving stock for checkout: %w", err)
	}

	record := &models.BorrowRecord{
		StockItemID:        stockItemID,
		ItemName:           item.Name,
		BorrowedBy:         borrowedBy,
		BorrowedQuantity:   borrowedQuantity,
		ExpectedReturnDate: expectedReturnDate,
		Status:             models.BorrowStatusActive,
		Remarks:            remarks,
	}
	if err := s.borrows.Create(ctx, record); err != nil {
		// Put the quantity back so a failed insert does not strand it.
		if _, relErr := s.stock.ReleaseAvailable(ctx, stockItemID, borrowedQuantity); relErr != nil {
			s.logger.Error().Err(relErr).Int64("stockItemId", stockItemID).Int("quantity", borrowedQuantity).Msg("Failed to release stock after checkout insert failure")
		}
		return nil, fmt.Errorf("error creating borrow record: %w", err)
	}

	s.logger.Info().Int64("borrowRecordId", record.ID).Int64("stockItemId", stockItemID).Str("borrowedBy", borrowedBy).Int("quantity", borrowedQuantity).Msg("Stock checked out")
	return record, nil
}

// Return closes an active borrow record and puts the returned quantity
// back into the available pool. A record can be returned exactly once;
// returning less than was borrowed leaves the record partially_returned
// and the remainder written off.
func (s *BorrowService) Return(ctx context.Context, borrowRecordID int64, returnedQuantity int) (*models.BorrowRecord, error) {
	if returnedQuantity <= 0 {
		return nil, apperrors.NewBadRequestError("returned quantity must be positive")
	}

	record, err := s.borrows.GetByID(ctx, borrowRecordID)
	if err != nil {
		if errors.Is(err, repositories.ErrBorrowRecordNotFound) {
			return nil, apperrors.ErrBorrowRecordNotFound
		}
		return nil, fmt.Errorf("error retrieving borrow record: %w", err)
	}

	if record.Status != models.BorrowStatusActive {
		return nil, apperrors.ErrBorrowNotActive
	}
	if returnedQuantity > record.BorrowedQuantity {
		return nil, apperrors.ErrReturnExceedsBorrow
	}

	// The stock reference is weak: the item may have been deleted since
	// checkout. The return still completes on the record.
	if _, err := s.stock.ReleaseAvailable(ctx, record.StockItemID, returnedQuantity); err != nil {
		if !errors.Is(err, repositories.ErrStockItemNotFound) {
			return nil, fmt.Errorf("error releasing stock on return: %w", err)
		}
		s.logger.Warn().Int64("borrowRecordId", borrowRecordID).Int64("stockItemId", record.StockItemID).Msg("Stock item missing on return, closing record anyway")
	}

	status := models.BorrowStatusPartiallyReturned
	if returnedQuantity >= record.BorrowedQuantity {
		status = models.BorrowStatusReturned
	}

	updated, err := s.borrows.MarkReturned(ctx, borrowRecordID, status, time.Now())
	if err != nil {
		return nil, fmt.Errorf("error closing borrow record: %w", err)
	}

	s.logger.Info().Int64("borrowRecordId", borrowRecordID).Int("quantity", returnedQuantity).Str("status", string(status)).Msg("Stock returned")
	return updated, nil
}

// ListBorrowRecords retrieves all borrow records, latest borrow first
func (s *BorrowService) ListBorrowRecords(ctx context.Context) ([]*models.BorrowRecord, error) {
	records, err := s.borrows.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving borrow records: %w", err)
	}
	return records, nil
}
