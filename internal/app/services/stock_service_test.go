package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekurt/depot/internal/app/models"
	"github.com/ekurt/depot/internal/pkg/apperrors"
)

func newStockService(store *fakeStockStore, log *fakeTransactionLog) *StockService {
	return NewStockService(store, log, zerolog.Nop())
}

func TestCreateStockItem(t *testing.T) {
	store := newFakeStockStore()
	log := &fakeTransactionLog{}
	svc := newStockService(store, log)

	item, err := svc.CreateStockItem(context.Background(), "Arduino Uno", 5, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 5, item.AvailableQuantity)
	assert.Equal(t, models.StockStatusInStock, item.Status)

	require.Len(t, log.entries, 1)
	assert.Equal(t, models.TransactionTypeIn, log.entries[0].Type)
	assert.Equal(t, models.ReasonInitialStock, log.lastReason())
	assert.Equal(t, SystemActor, log.entries[0].PerformedBy)
}

func TestCreateStockItem_ZeroQuantity(t *testing.T) {
	store := newFakeStockStore()
	log := &fakeTransactionLog{}
	svc := newStockService(store, log)

	item, err := svc.CreateStockItem(context.Background(), "Soldering iron", 0, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, models.StockStatusOutOfStock, item.Status)
	assert.Empty(t, log.entries, "no transaction for a zero opening quantity")
}

func TestCreateStockItem_Invalid(t *testing.T) {
	svc := newStockService(newFakeStockStore(), &fakeTransactionLog{})

	_, err := svc.CreateStockItem(context.Background(), "  ", 5, nil, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.CreateStockItem(context.Background(), "Multimeter", -1, nil, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestUpdateStockItem_NeverTouchesQuantities(t *testing.T) {
	store := newFakeStockStore()
	svc := newStockService(store, &fakeTransactionLog{})

	item, err := svc.CreateStockItem(context.Background(), "Raspberry Pi", 8, nil, nil, nil)
	require.NoError(t, err)

	newName := "Raspberry Pi 5"
	updated, err := svc.UpdateStockItem(context.Background(), item.ID, StockDetailsUpdate{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Raspberry Pi 5", updated.Name)
	assert.Equal(t, 8, updated.Quantity)
	assert.Equal(t, 8, updated.AvailableQuantity)
}

func TestUpdateStockItem_PartialKeepsOmittedFields(t *testing.T) {
	store := newFakeStockStore()
	svc := newStockService(store, &fakeTransactionLog{})

	price := 19.90
	loc := "Shelf B2"
	item, err := svc.CreateStockItem(context.Background(), "HDMI cable", 3, &price, &loc, nil)
	require.NoError(t, err)

	newLoc := "Shelf C1"
	updated, err := svc.UpdateStockItem(context.Background(), item.ID, StockDetailsUpdate{Location: &newLoc})
	require.NoError(t, err)

	assert.Equal(t, "HDMI cable", updated.Name)
	require.NotNil(t, updated.PurchasePrice)
	assert.Equal(t, 19.90, *updated.PurchasePrice)
	require.NotNil(t, updated.Location)
	assert.Equal(t, "Shelf C1", *updated.Location)
}

func TestRecordTransaction_InAndOut(t *testing.T) {
	store := newFakeStockStore()
	log := &fakeTransactionLog{}
	svc := newStockService(store, log)

	item, err := svc.CreateStockItem(context.Background(), "Breadboard", 12, nil, nil, nil)
	require.NoError(t, err)

	_, err = svc.RecordTransaction(context.Background(), item.ID, models.TransactionTypeOut, 4, nil, "Ms. Kaya")
	require.NoError(t, err)

	got, err := svc.GetStockItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Quantity)
	assert.Equal(t, 8, got.AvailableQuantity)
	assert.Equal(t, models.StockStatusLowStock, got.Status)

	_, err = svc.RecordTransaction(context.Background(), item.ID, models.TransactionTypeIn, 6, nil, "Ms. Kaya")
	require.NoError(t, err)

	got, err = svc.GetStockItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 14, got.Quantity)
	assert.Equal(t, models.StockStatusInStock, got.Status)
}

func TestRecordTransaction_RejectsNegativeStock(t *testing.T) {
	store := newFakeStockStore()
	log := &fakeTransactionLog{}
	svc := newStockService(store, log)

	item, err := svc.CreateStockItem(context.Background(), "Jumper wires", 3, nil, nil, nil)
	require.NoError(t, err)
	entriesBefore := len(log.entries)

	_, err = svc.RecordTransaction(context.Background(), item.ID, models.TransactionTypeOut, 5, nil, "Mr. Demir")
	assert.ErrorIs(t, err, apperrors.ErrStockWouldGoNegative)

	got, err := svc.GetStockItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity, "rejected transaction must not change quantities")
	assert.Len(t, log.entries, entriesBefore, "rejected transaction must not be logged")
}

func TestRecordTransaction_Validation(t *testing.T) {
	store := newFakeStockStore()
	svc := newStockService(store, &fakeTransactionLog{})

	item, err := svc.CreateStockItem(context.Background(), "LED pack", 10, nil, nil, nil)
	require.NoError(t, err)

	_, err = svc.RecordTransaction(context.Background(), item.ID, models.TransactionTypeOut, 0, nil, "x")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.RecordTransaction(context.Background(), item.ID, models.TransactionType("transfer"), 1, nil, "x")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.RecordTransaction(context.Background(), item.ID, models.TransactionTypeIn, 1, nil, " ")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.RecordTransaction(context.Background(), 999, models.TransactionTypeIn, 1, nil, "x")
	assert.ErrorIs(t, err, apperrors.ErrStockItemNotFound)
}

func TestAddFromPurchase_MergesExisting(t *testing.T) {
	store := newFakeStockStore()
	log := &fakeTransactionLog{}
	svc := newStockService(store, log)

	tag := "robotics"
	item, err := svc.CreateStockItem(context.Background(), "Servo motor", 4, nil, nil, &tag)
	require.NoError(t, err)

	merged, err := svc.AddFromPurchase(context.Background(), "Servo motor", 6, nil, &tag)
	require.NoError(t, err)

	assert.Equal(t, item.ID, merged.ID)
	assert.Equal(t, 10, merged.Quantity)
	assert.Equal(t, 10, merged.AvailableQuantity)
	assert.Equal(t, models.ReasonFromPurchase, log.lastReason())
}

func TestAddFromPurchase_CourseTagMustMatch(t *testing.T) {
	store := newFakeStockStore()
	svc := newStockService(store, &fakeTransactionLog{})

	tag := "robotics"
	existing, err := svc.CreateStockItem(context.Background(), "Servo motor", 4, nil, nil, &tag)
	require.NoError(t, err)

	// Same name, no tag: a separate item, not a merge.
	created, err := svc.AddFromPurchase(context.Background(), "Servo motor", 6, nil, nil)
	require.NoError(t, err)

	assert.NotEqual(t, existing.ID, created.ID)
	assert.Equal(t, 6, created.Quantity)
}

func TestAddFromPurchase_CreatesNew(t *testing.T) {
	store := newFakeStockStore()
	log := &fakeTransactionLog{}
	svc := newStockService(store, log)

	price := 249.0
	item, err := svc.AddFromPurchase(context.Background(), "Oscilloscope", 2, &price, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 2, item.AvailableQuantity)
	assert.Equal(t, models.StockStatusInStock, item.Status)
	assert.Equal(t, models.ReasonFromPurchase, log.lastReason())
}

func TestListTransactions_UnknownItem(t *testing.T) {
	svc := newStockService(newFakeStockStore(), &fakeTransactionLog{})

	_, err := svc.ListTransactions(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrStockItemNotFound)
}
