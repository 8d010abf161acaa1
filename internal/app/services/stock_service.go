package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ekurt/depot/internal/app/models"
	"github.com/ekurt/depot/internal/app/repositories"
	"github.com/ekurt/depot/internal/pkg/apperrors"
)

// StockStore is the persistence surface the stock workflows need.
type StockStore interface {
	Create(ctx context.Context, item *models.StockItem) error
	GetByID(ctx context.Context, id int64) (*models.StockItem, error)
	GetAll(ctx context.Context) ([]*models.StockItem, error)
	UpdateDetails(ctx context.Context, id int64, name string, purchasePrice *float64, location, courseTag *string) (*models.StockItem, error)
	FindByNameAndCourseTag(ctx context.Context, name string, courseTag *string) (*models.StockItem, error)
	AddQuantities(ctx context.Context, id int64, qty int) (*models.StockItem, error)
	RemoveQuantities(ctx context.Context, id int64, qty int) (*models.StockItem, error)
}

// TransactionLog is the append-only audit log of quantity changes.
type TransactionLog interface {
	Append(ctx context.Context, txn *models.StockTransaction) error
	ListByStockItem(ctx context.Context, stockItemID int64) ([]*models.StockTransaction, error)
}

// SystemActor is recorded as performer on transactions written by
// workflows rather than by a named person.
const SystemActor = "System"

// StockDetailsUpdate carries a partial update of descriptive stock item
// fields. Nil pointers mean "keep the current value". Quantities are never
// part of it; quantity changes go through RecordTransaction.
type StockDetailsUpdate struct {
	Name          *string
	PurchasePrice *float64
	Location      *string
	CourseTag     *string
}

// StockService implements the stock item store and the quantity
// transaction workflows.
type StockService struct {
	stock  StockStore
	txnLog TransactionLog
	logger zerolog.Logger
}

// NewStockService creates a new stock service instance
func NewStockService(stock StockStore, txnLog TransactionLog, logger zerolog.Logger) *StockService {
	return &StockService{
		stock:  stock,
		txnLog: txnLog,
		logger: logger,
	}
}

// CreateStockItem creates a stock item with its full quantity available.
// A positive opening quantity is recorded in the transaction log.
func (s *StockService) CreateStockItem(ctx context.Context, name string, quantity int, purchasePrice *float64, location, courseTag *string) (*models.StockItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewBadRequestError("stock item name cannot be empty")
	}
	if quantity < 0 {
		return nil, apperrors.NewBadRequestError("stock item quantity cannot be negative")
	}

	item := &models.StockItem{
		Name:              name,
		Quantity:          quantity,
		AvailableQuantity: quantity,
		PurchasePrice:     purchasePrice,
		Location:          location,
		CourseTag:         courseTag,
		Status:            models.InitialStockStatus(quantity),
	}

	if err := s.stock.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("error creating stock item: %w", err)
	}

	if quantity > 0 {
		reason := models.ReasonInitialStock
		if err := s.appendTransaction(ctx, item.ID, models.TransactionTypeIn, quantity, &reason, SystemActor); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Int64("stockItemId", item.ID).Str("name", item.Name).Int("quantity", quantity).Msg("Stock item created")
	return item, nil
}

// UpdateStockItem updates descriptive fields only. It never touches
// quantity, available quantity or status.
func (s *StockService) UpdateStockItem(ctx context.Context, id int64, update StockDetailsUpdate) (*models.StockItem, error) {
	current, err := s.getItem(ctx, id)
	if err != nil {
		return nil, err
	}

	name := current.Name
	if update.Name != nil {
		name = *update.Name
	}
	purchasePrice := current.PurchasePrice
	if update.PurchasePrice != nil {
		purchasePrice = update.PurchasePrice
	}
	location := current.Location
	if update.Location != nil {
		location = update.Location
	}
	courseTag := current.CourseTag
	if update.CourseTag != nil {
		courseTag = update.CourseTag
	}

	item, err := s.stock.UpdateDetails(ctx, id, name, purchasePrice, location, courseTag)
	if err != nil {
		if errors.Is(err, repositories.ErrStockItemNotFound) {
			return nil, apperrors.ErrStockItemNotFound
		}
		return nil, fmt.Errorf("error updating stock item: %w", err)
	}

	return item, nil
}

// GetStockItem retrieves one stock item
func (s *StockService) GetStockItem(ctx context.Context, id int64) (*models.StockItem, error) {
	return s.getItem(ctx, id)
}

// ListStockItems retrieves all stock items, latest first
func (s *StockService) ListStockItems(ctx context.Context) ([]*models.StockItem, error) {
	items, err := s.stock.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving stock items: %w", err)
	}
	return items, nil
}

// RecordTransaction applies an in/out quantity adjustment to a stock item
// and appends the matching transaction row. An out adjustment that would
// drive either quantity negative is rejected with no writes.
func (s *StockService) RecordTransaction(ctx context.Context, stockItemID int64, txnType models.TransactionType, quantity int, reason *string, performedBy string) (*models.StockTransaction, error) {
	if quantity <= 0 {
		return nil, apperrors.NewBadRequestError("transaction quantity must be positive")
	}
	if txnType != models.TransactionTypeIn && txnType != models.TransactionTypeOut {
		return nil, apperrors.NewBadRequestError("transaction type must be 'in' or 'out'")
	}
	if strings.TrimSpace(performedBy) == "" {
		return nil, apperrors.NewBadRequestError("performedBy cannot be empty")
	}

	// Surfaces NotFound before the guarded update distinguishes anything.
	if _, err := s.getItem(ctx, stockItemID); err != nil {
		return nil, err
	}

	var err error
	if txnType == models.TransactionTypeIn {
		_, err = s.stock.AddQuantities(ctx, stockItemID, quantity)
	} else {
		_, err = s.stock.RemoveQuantities(ctx, stockItemID, quantity)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrStockConditionFailed) {
			return nil, apperrors.ErrStockWouldGoNegative
		}
		if errors.Is(err, repositories.ErrStockItemNotFound) {
			return nil, apperrors.ErrStockItemNotFound
		}
		return nil, fmt.Errorf("error adjusting stock quantities: %w", err)
	}

	txn := &models.StockTransaction{
		StockItemID: stockItemID,
		Type:        txnType,
		Quantity:    quantity,
		Reason:      reason,
		PerformedBy: performedBy,
	}
	if err := s.txnLog.Append(ctx, txn); err != nil {
		return nil, fmt.Errorf("error recording stock transaction: %w", err)
	}

	return txn, nil
}

// AddFromPurchase merges an arrived purchase into stock. An existing item
// with the same name and course tag absorbs the quantity; otherwise a new
// item is created. Either path appends one transaction row.
func (s *StockService) AddFromPurchase(ctx context.Context, name string, quantity int, purchasePrice *float64, courseTag *string) (*models.StockItem, error) {
	if quantity <= 0 {
		return nil, apperrors.NewBadRequestError("purchase quantity must be positive")
	}

	existing, err := s.stock.FindByNameAndCourseTag(ctx, name, courseTag)
	if err != nil {
		return nil, fmt.Errorf("error looking up stock item: %w", err)
	}

	var item *models.StockItem
	if existing != nil {
		item, err = s.stock.AddQuantities(ctx, existing.ID, quantity)
		if err != nil {
			return nil, fmt.Errorf("error merging purchase into stock: %w", err)
		}
	} else {
		item = &models.StockItem{
			Name:              name,
			Quantity:          quantity,
			AvailableQuantity: quantity,
			PurchasePrice:     purchasePrice,
			CourseTag:         courseTag,
			Status:            models.InitialStockStatus(quantity),
		}
		if err := s.stock.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("error creating stock item from purchase: %w", err)
		}
	}

	reason := models.ReasonFromPurchase
	if err := s.appendTransaction(ctx, item.ID, models.TransactionTypeIn, quantity, &reason, SystemActor); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("stockItemId", item.ID).Str("name", name).Int("quantity", quantity).Msg("Purchase merged into stock")
	return item, nil
}

// ListTransactions retrieves the transaction history of a stock item
func (s *StockService) ListTransactions(ctx context.Context, stockItemID int64) ([]*models.StockTransaction, error) {
	if _, err := s.getItem(ctx, stockItemID); err != nil {
		return nil, err
	}

	txns, err := s.txnLog.ListByStockItem(ctx, stockItemID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving stock transactions: %w", err)
	}
	return txns, nil
}

func (s *StockService) getItem(ctx context.Context, id int64) (*models.StockItem, error) {
	item, err := s.stock.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrStockItemNotFound) {
			return nil, apperrors.ErrStockItemNotFound
		}
		return nil, fmt.Errorf("error retrieving stock item: %w", err)
	}
	return item, nil
}

func (s *StockService) appendTransaction(ctx context.Context, stockItemID int64, txnType models.TransactionType, quantity int, reason *string, performedBy string) error {
	txn := &models.StockTransaction{
		StockItemID: stockItemID,
		Type:        txnType,
		Quantity:    quantity,
		Reason:      reason,
		PerformedBy: performedBy,
	}
	if err := s.txnLog.Append(ctx, txn); err != nil {
		return fmt.Errorf("error recording stock transaction: %w", err)
	}
	return nil
}
