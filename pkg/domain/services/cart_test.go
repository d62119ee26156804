package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

func cartProduct(id entities.ProductID, price string, qty int64) entities.ProductWithStock {
	return entities.ProductWithStock{
		Product: entities.Product{
			ID:        id,
			Name:      "P",
			Code:      "C",
			SalePrice: decimal.RequireFromString(price),
		},
		StockID:  int64(id),
		Quantity: qty,
		MinAlert: entities.DefaultMinAlert,
		HasStock: true,
	}
}

func TestCart_AddMergesAndTotals(t *testing.T) {
	cart := NewCart()
	a := cartProduct(1, "10.50", 5)
	b := cartProduct(2, "3", 10)

	if err := cart.Add(a, 2); err != nil {
		t.Fatalf("Add a: %v", err)
	}
	if err := cart.Add(b, 1); err != nil {
		t.Fatalf("Add b: %v", err)
	}
	if err := cart.Add(a, 1); err != nil {
		t.Fatalf("Add a again: %v", err)
	}

	if len(cart.Lines()) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(cart.Lines()))
	}
	if cart.ItemCount() != 4 {
		t.Errorf("Expected 4 items, got %d", cart.ItemCount())
	}
	if !cart.Total().Equal(decimal.RequireFromString("34.5")) {
		t.Errorf("Expected total 34.5, got %s", cart.Total())
	}
}

func TestCart_StockLimits(t *testing.T) {
	cart := NewCart()

	if err := cart.Add(cartProduct(1, "1", 0), 1); !errors.Is(err, ErrOutOfStock) {
		t.Errorf("Expected ErrOutOfStock, got %v", err)
	}

	p := cartProduct(2, "1", 3)
	if err := cart.Add(p, 4); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("Expected ErrInsufficientStock on first add, got %v", err)
	}
	if err := cart.Add(p, 3); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := cart.Add(p, 1); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("Expected ErrInsufficientStock on merge, got %v", err)
	}
	if err := cart.SetQuantity(2, 5); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("Expected ErrInsufficientStock on update, got %v", err)
	}
	if err := cart.Add(p, 0); err == nil {
		t.Error("Expected error for zero quantity")
	}
}

func TestCart_SetQuantityAndRemove(t *testing.T) {
	cart := NewCart()
	_ = cart.Add(cartProduct(1, "2", 10), 1)
	_ = cart.Add(cartProduct(2, "5", 10), 1)

	if err := cart.SetQuantity(1, 4); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if !cart.Total().Equal(decimal.NewFromInt(13)) {
		t.Errorf("Expected total 13, got %s", cart.Total())
	}

	if err := cart.SetQuantity(2, 0); err != nil {
		t.Fatalf("SetQuantity to zero: %v", err)
	}
	if len(cart.Lines()) != 1 {
		t.Errorf("Expected line removed, got %d lines", len(cart.Lines()))
	}
	if err := cart.SetQuantity(99, 1); err == nil {
		t.Error("Expected error for product not in cart")
	}

	cart.Clear()
	if !cart.IsEmpty() {
		t.Error("Expected empty cart after Clear")
	}
}
