package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekurt/depot/internal/app/models"
	"github.com/ekurt/depot/internal/pkg/apperrors"
)

type fakeSearchStore struct {
	purchases []*models.PurchaseItem
	stock     []*models.StockItem
	borrows   []*models.BorrowRecord
}

func (f *fakeSearchStore) SearchPurchaseItems(_ context.Context, term string) ([]*models.PurchaseItem, error) {
	var out []*models.PurchaseItem
	for _, item := range f.purchases {
		if strings.Contains(strings.ToLower(item.Name), strings.ToLower(term)) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeSearchStore) SearchStockItems(_ context.Context, term string) ([]*models.StockItem, error) {
	var out []*models.StockItem
	for _, item := range f.stock {
		if strings.Contains(strings.ToLower(item.Name), strings.ToLower(term)) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeSearchStore) SearchBorrowRecords(_ context.Context, term string) ([]*models.BorrowRecord, error) {
	var out []*models.BorrowRecord
	for _, record := range f.borrows {
		if strings.Contains(strings.ToLower(record.ItemName), strings.ToLower(term)) {
			out = append(out, record)
		}
	}
	return out, nil
}

func TestSearch(t *testing.T) {
	store := &fakeSearchStore{
		purchases: []*models.PurchaseItem{{Name: "Arduino Mega"}},
		stock:     []*models.StockItem{{Name: "Arduino Uno"}, {Name: "Servo motor"}},
		borrows:   []*models.BorrowRecord{{ItemName: "Arduino Uno"}},
	}
	svc := NewSearchService(store, zerolog.Nop())

	results, err := svc.Search(context.Background(), "arduino")
	require.NoError(t, err)

	assert.Len(t, results.Purchases, 1)
	assert.Len(t, results.Stock, 1)
	assert.Len(t, results.Borrows, 1)
	assert.Equal(t, 3, results.Total())
}

func TestSearch_EmptyTerm(t *testing.T) {
	svc := NewSearchService(&fakeSearchStore{}, zerolog.Nop())

	_, err := svc.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
