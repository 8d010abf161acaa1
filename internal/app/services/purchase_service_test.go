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

type purchaseFixture struct {
	svc       *PurchaseService
	purchases *fakePurchaseStore
	stock     *fakeStockStore
	txnLog    *fakeTransactionLog
}

func newPurchaseFixture() *purchaseFixture {
	f := &purchaseFixture{
		purchases: newFakePurchaseStore(),
		stock:     newFakeStockStore(),
		txnLog:    &fakeTransactionLog{},
	}
	stockSvc := NewStockService(f.stock, f.txnLog, zerolog.Nop())
	f.svc = NewPurchaseService(f.purchases, stockSvc, zerolog.Nop())
	return f
}

func TestCreatePurchaseItem(t *testing.T) {
	f := newPurchaseFixture()

	item, err := f.svc.CreatePurchaseItem(context.Background(), PurchaseInput{Name: "Stepper motor", Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseStatusConsidering, item.Status)

	_, err = f.svc.CreatePurchaseItem(context.Background(), PurchaseInput{Name: " ", Quantity: 5})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = f.svc.CreatePurchaseItem(context.Background(), PurchaseInput{Name: "Stepper motor", Quantity: 0})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestUpdateStatus_PipelineTransition(t *testing.T) {
	f := newPurchaseFixture()

	item, err := f.svc.CreatePurchaseItem(context.Background(), PurchaseInput{Name: "Stepper motor", Quantity: 5})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(context.Background(), item.ID, models.PurchaseStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseStatusApproved, updated.Status)

	// No stock write for a non-terminal transition.
	items, err := f.stock.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateStatus_ArrivedMergesIntoStock(t *testing.T) {
	f := newPurchaseFixture()

	price := 12.5
	tag := "robotics"
	item, err := f.svc.CreatePurchaseItem(context.Background(), PurchaseInput{
		Name: "Stepper motor", Quantity: 5, Price: &price, CourseTag: &tag,
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(context.Background(), item.ID, models.PurchaseStatusArrived)
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseStatusArrived, updated.Status)

	items, err := f.stock.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Stepper motor", items[0].Name)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, items[0].AvailableQuantity)
	assert.Equal(t, models.ReasonFromPurchase, f.txnLog.lastReason())
}

func TestUpdateStatus_ArrivedMergesIntoExistingItem(t *testing.T) {
	f := newPurchaseFixture()

	f.stock.add(&models.StockItem{
		Name:              "Stepper motor",
		Quantity:          3,
		AvailableQuantity: 3,
		Status:            models.StockStatusLowStock,
	})

	item, err := f.svc.CreatePurchaseItem(context.Background(), PurchaseInput{Name: "Stepper motor", Quantity: 5})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), item.ID, models.PurchaseStatusStored)
	require.NoError(t, err)

	items, err := f.stock.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1, "an existing item with matching name and tag absorbs the purchase")
	assert.Equal(t, 8, items[0].Quantity)
}

func TestUpdateStatus_FrozenAfterArrival(t *testing.T) {
	f := newPurchaseFixture()

	item, err := f.svc.CreatePurchaseItem(context.Background(), PurchaseInput{Name: "Stepper motor", Quantity: 5})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), item.ID, models.PurchaseStatusArrived)
	require.NoError(t, err)

	// Even a re-send of the same terminal status is rejected, so the
	// stock merge can never run twice.
	_, err = f.svc.UpdateStatus(context.Background(), item.ID, models.PurchaseStatusStored)
	assert.ErrorIs(t, err, apperrors.ErrPurchaseAlreadyArrived)

	items, err := f.stock.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	f := newPurchaseFixture()

	item, err := f.svc.CreatePurchaseItem(context.Background(), PurchaseInput{Name: "Stepper motor", Quantity: 5})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), item.ID, models.PurchaseStatus("shipped"))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestDeletePurchaseItem(t *testing.T) {
	f := newPurchaseFixture()

	item, err := f.svc.CreatePurchaseItem(context.Background(), PurchaseInput{Name: "Stepper motor", Quantity: 5})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeletePurchaseItem(context.Background(), item.ID))

	err = f.svc.DeletePurchaseItem(context.Background(), item.ID)
	assert.ErrorIs(t, err, apperrors.ErrPurchaseItemNotFound)
}
