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

// PurchaseStore is the persistence surface for purchase items.
type PurchaseStore interface {
	Create(ctx context.Context, item *models.PurchaseItem) error
	GetByID(ctx context.Context, id int64) (*models.PurchaseItem, error)
	GetAll(ctx context.Context) ([]*models.PurchaseItem, error)
	UpdateStatus(ctx context.Context, id int64, status models.PurchaseStatus) (*models.PurchaseItem, error)
	Delete(ctx context.Context, id int64) error
}

// StockReceiver absorbs an arrived purchase into the stock inventory.
type StockReceiver interface {
	AddFromPurchase(ctx context.Context, name string, quantity int, purchasePrice *float64, courseTag *string) (*models.StockItem, error)
}

// PurchaseInput carries the fields of a new purchase item.
type PurchaseInput struct {
	Name       string
	WhereToBuy *string
	Price      *float64
	Quantity   int
	CourseTag  *string
	Link       *string
}

// PurchaseService manages the purchase pipeline and hands arrived
// purchases over to the stock inventory.
type PurchaseService struct {
	purchases PurchaseStore
	stock     StockReceiver
	logger    zerolog.Logger
}

// NewPurchaseService creates a new purchase service instance
func NewPurchaseService(purchases PurchaseStore, stock StockReceiver, logger zerolog.Logger) *PurchaseService {
	return &PurchaseService{
		purchases: purchases,
		stock:     stock,
		logger:    logger,
	}
}

// CreatePurchaseItem creates a purchase item in the considering state
func (s *PurchaseService) CreatePurchaseItem(ctx context.Context, input PurchaseInput) (*models.PurchaseItem, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewBadRequestError("purchase item name cannot be empty")
	}
	if input.Quantity <= 0 {
		return nil, apperrors.NewBadRequestError("purchase quantity must be positive")
	}

	item := &models.PurchaseItem{
		Name:       input.Name,
		WhereToBuy: input.WhereToBuy,
		Price:      input.Price,
		Quantity:   input.Quantity,
		CourseTag:  input.CourseTag,
		Link:       input.Link,
		Status:     models.PurchaseStatusConsidering,
	}
	if err := s.purchases.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("error creating purchase item: %w", err)
	}

	return item, nil
}

// GetPurchaseItem retrieves a single purchase item
func (s *PurchaseService) GetPurchaseItem(ctx context.Context, id int64) (*models.PurchaseItem, error) {
	return s.getItem(ctx, id)
}

// ListPurchaseItems retrieves all purchase items, latest first
func (s *PurchaseService) ListPurchaseItems(ctx context.Context) ([]*models.PurchaseItem, error) {
	items, err := s.purchases.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving purchase items: %w", err)
	}
	return items, nil
}

// UpdateStatus advances a purchase through its pipeline. Arrived and
// stored are terminal: the first transition into either merges the
// purchase into stock, and no further status change is accepted
// afterwards, so the merge can never run twice.
func (s *PurchaseService) UpdateStatus(ctx context.Context, id int64, status models.PurchaseStatus) (*models.PurchaseItem, error) {
	switch status {
	case models.PurchaseStatusConsidering, models.PurchaseStatusApproved, models.PurchaseStatusWaitingDelivery,
		models.PurchaseStatusArrived, models.PurchaseStatusStored:
	default:
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid purchase status: %s", status))
	}

	current, err := s.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.Arrived() {
		return nil, apperrors.ErrPurchaseAlreadyArrived
	}

	updated, err := s.purchases.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repositories.ErrPurchaseItemNotFound) {
			return nil, apperrors.ErrPurchaseItemNotFound
		}
		return nil, fmt.Errorf("error updating purchase status: %w", err)
	}

	if status.Arrived() {
		if _, err := s.stock.AddFromPurchase(ctx, updated.Name, updated.Quantity, updated.Price, updated.CourseTag); err != nil {
			return nil, fmt.Errorf("error adding arrived purchase to stock: %w", err)
		}
		s.logger.Info().Int64("purchaseItemId", id).Str("name", updated.Name).Int("quantity", updated.Quantity).Msg("Arrived purchase merged into stock")
	}

	return updated, nil
}

// DeletePurchaseItem removes a purchase item from the pipeline
func (s *PurchaseService) DeletePurchaseItem(ctx context.Context, id int64) error {
	if err := s.purchases.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPurchaseItemNotFound) {
			return apperrors.ErrPurchaseItemNotFound
		}
		return fmt.Errorf("error deleting purchase item: %w", err)
	}
	return nil
}

func (s *PurchaseService) getItem(ctx context.Context, id int64) (*models.PurchaseItem, error) {
	item, err := s.purchases.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPurchaseItemNotFound) {
			return nil, apperrors.ErrPurchaseItemNotFound
		}
		return nil, fmt.Errorf("error retrieving purchase item: %w", err)
	}
	return item, nil
}
