package models

import "testing"

func TestDeriveStockStatus(t *testing.T) {
	cases := []struct {
		quantity int
		want     StockStatus
	}{
		{-1, StockStatusOutOfStock},
		{0, StockStatusOutOfStock},
		{1, StockStatusLowStock},
		{9, StockStatusLowStock},
		{10, StockStatusInStock},
		{100, StockStatusInStock},
	}
	for _, tc := range cases {
		if got := DeriveStockStatus(tc.quantity); got != tc.want {
			t.Errorf("DeriveStockStatus(%d) = %q, want %q", tc.quantity, got, tc.want)
		}
	}
}

func TestInitialStockStatus(t *testing.T) {
	// Creation does not apply the low stock threshold.
	if got := InitialStockStatus(1); got != StockStatusInStock {
		t.Errorf("InitialStockStatus(1) = %q, want %q", got, StockStatusInStock)
	}
	if got := InitialStockStatus(0); got != StockStatusOutOfStock {
		t.Errorf("InitialStockStatus(0) = %q, want %q", got, StockStatusOutOfStock)
	}
}

func TestPurchaseStatusArrived(t *testing.T) {
	arrived := []PurchaseStatus{PurchaseStatusArrived, PurchaseStatusStored}
	for _, s := range arrived {
		if !s.Arrived() {
			t.Errorf("expected %q to count as arrived", s)
		}
	}
	notArrived := []PurchaseStatus{PurchaseStatusConsidering, PurchaseStatusApproved, PurchaseStatusWaitingDelivery}
	for _, s := range notArrived {
		if s.Arrived() {
			t.Errorf("expected %q to not count as arrived", s)
		}
	}
}
