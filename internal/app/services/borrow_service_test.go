package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekurt/depot/internal/app/models"
	"github.com/ekurt/depot/internal/pkg/apperrors"
)

func borrowFixture(t *testing.T, quantity int) (*BorrowService, *fakeStockStore, *fakeBorrowStore, *models.StockItem) {
	t.Helper()
	stock := newFakeStockStore()
	borrows := newFakeBorrowStore()
	item := stock.add(&models.StockItem{
		Name:              "Projector",
		Quantity:          quantity,
		AvailableQuantity: quantity,
		Status:            models.StockStatusInStock,
	})
	svc := NewBorrowService(stock, borrows, zerolog.Nop())
	return svc, stock, borrows, item
}

func TestCheckout(t *testing.T) {
	svc, stock, _, item := borrowFixture(t, 10)

	due := time.Now().Add(72 * time.Hour)
	record, err := svc.Checkout(context.Background(), item.ID, "Mr. Aydin", 3, due, nil)
	require.NoError(t, err)

	assert.Equal(t, models.BorrowStatusActive, record.Status)
	assert.Equal(t, "Projector", record.ItemName)
	assert.Equal(t, 3, record.BorrowedQuantity)

	got, err := stock.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity, "checkout must not change total quantity")
	assert.Equal(t, 7, got.AvailableQuantity)
}

func TestCheckout_InsufficientStock(t *testing.T) {
	svc, stock, _, item := borrowFixture(t, 2)

	_, err := svc.Checkout(context.Background(), item.ID, "Mr. Aydin", 5, time.Now(), nil)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	got, err := stock.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.AvailableQuantity)
}

func TestCheckout_UnknownItem(t *testing.T) {
	svc, _, _, _ := borrowFixture(t, 2)

	_, err := svc.Checkout(context.Background(), 999, "Mr. Aydin", 1, time.Now(), nil)
	assert.ErrorIs(t, err, apperrors.ErrStockItemNotFound)
}

func TestCheckout_InsertFailureReleasesStock(t *testing.T) {
	svc, stock, borrows, item := borrowFixture(t, 5)
	borrows.createErr = errors.New("insert failed")

	_, err := svc.Checkout(context.Background(), item.ID, "Mr. Aydin", 2, time.Now(), nil)
	require.Error(t, err)

	got, err := stock.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.AvailableQuantity, "reserved quantity must be released when the record insert fails")
}

func TestReturn_Full(t *testing.T) {
	svc, stock, _, item := borrowFixture(t, 10)

	record, err := svc.Checkout(context.Background(), item.ID, "Mr. Aydin", 4, time.Now(), nil)
	require.NoError(t, err)

	returned, err := svc.Return(context.Background(), record.ID, 4)
	require.NoError(t, err)

	assert.Equal(t, models.BorrowStatusReturned, returned.Status)
	require.NotNil(t, returned.ActualReturnDate)

	got, err := stock.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.AvailableQuantity)
}

func TestReturn_PartialIsFinal(t *testing.T) {
	svc, stock, _, item := borrowFixture(t, 10)

	record, err := svc.Checkout(context.Background(), item.ID, "Mr. Aydin", 4, time.Now(), nil)
	require.NoError(t, err)

	returned, err := svc.Return(context.Background(), record.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, models.BorrowStatusPartiallyReturned, returned.Status)

	got, err := stock.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, got.AvailableQuantity, "only the returned quantity comes back")

	// The record is closed; the missing unit cannot be returned later.
	_, err = svc.Return(context.Background(), record.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrBorrowNotActive)
}

func TestReturn_ExceedsBorrowed(t *testing.T) {
	svc, _, _, item := borrowFixture(t, 10)

	record, err := svc.Checkout(context.Background(), item.ID, "Mr. Aydin", 4, time.Now(), nil)
	require.NoError(t, err)

	_, err = svc.Return(context.Background(), record.ID, 5)
	assert.ErrorIs(t, err, apperrors.ErrReturnExceedsBorrow)
}

func TestReturn_StockItemDeleted(t *testing.T) {
	svc, stock, _, item := borrowFixture(t, 10)

	record, err := svc.Checkout(context.Background(), item.ID, "Mr. Aydin", 4, time.Now(), nil)
	require.NoError(t, err)

	// The reference is weak: the return completes on the record even
	// when the stock item has vanished.
	delete(stock.items, item.ID)

	returned, err := svc.Return(context.Background(), record.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, models.BorrowStatusReturned, returned.Status)
}

func TestReturn_UnknownRecord(t *testing.T) {
	svc, _, _, _ := borrowFixture(t, 10)

	_, err := svc.Return(context.Background(), 404, 1)
	assert.ErrorIs(t, err, apperrors.ErrBorrowRecordNotFound)
}
