package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ekurt/depot/internal/app/models"
	"github.com/ekurt/depot/internal/pkg/apperrors"
)

// SearchStore runs substring searches across the three searchable entities.
type SearchStore interface {
	SearchPurchaseItems(ctx context.Context, term string) ([]*models.PurchaseItem, error)
	SearchStockItems(ctx context.Context, term string) ([]*models.StockItem, error)
	SearchBorrowRecords(ctx context.Context, term string) ([]*models.BorrowRecord, error)
}

// SearchResults groups the matches of one global search query.
type SearchResults struct {
	Purchases []*models.PurchaseItem
	Stock     []*models.StockItem
	Borrows   []*models.BorrowRecord
}

// Total returns the combined match count across all entity groups.
func (r *SearchResults) Total() int {
	return len(r.Purchases) + len(r.Stock) + len(r.Borrows)
}

// SearchService answers global case-insensitive substring searches.
type SearchService struct {
	store  SearchStore
	logger zerolog.Logger
}

// NewSearchService creates a new search service instance
func NewSearchService(store SearchStore, logger zerolog.Logger) *SearchService {
	return &SearchService{
		store:  store,
		logger: logger,
	}
}

// Search runs one term against purchases, stock and borrow records
func (s *SearchService) Search(ctx context.Context, term string) (*SearchResults, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperrors.NewBadRequestError("search term cannot be empty")
	}

	purchases, err := s.store.SearchPurchaseItems(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("error searching purchase items: %w", err)
	}

	stock, err := s.store.SearchStockItems(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("error searching stock items: %w", err)
	}

	borrows, err := s.store.SearchBorrowRecords(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("error searching borrow records: %w", err)
	}

	results := &SearchResults{Purchases: purchases, Stock: stock, Borrows: borrows}
	s.logger.Debug().Str("term", term).Int("matches", results.Total()).Msg("Global search executed")
	return results, nil
}
