package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	domainservices "github.com/Garbi-Collector/stokea2/pkg/domain/services"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/events"
	testhelpers "github.com/Garbi-Collector/stokea2/pkg/infrastructure/testing"
)

func TestSaleService_Checkout(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	sessions := NewCashSessionService(f.deps)
	svc := NewSaleService(f.deps, sessions)

	if _, err := sessions.Open(ctx, decimal.NewFromInt(1000)); err != nil {
		t.Fatalf("Failed to open session: %v", err)
	}

	yerba := testhelpers.MustProduct(f.store, "YER-1KG")
	fideos := testhelpers.MustProduct(f.store, "FID-500")

	cart := domainservices.NewCart()
	if err := cart.Add(yerba, 2); err != nil {
		t.Fatalf("Failed to add yerba: %v", err)
	}
	if err := cart.Add(fideos, 3); err != nil {
		t.Fatalf("Failed to add fideos: %v", err)
	}
	wantTotal := cart.Total()

	sale, err := svc.Checkout(ctx, cart)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if !sale.Total.Equal(wantTotal) {
		t.Errorf("Expected total %s, got %s", wantTotal, sale.Total)
	}
	if !cart.IsEmpty() {
		t.Error("Expected cart to be cleared after checkout")
	}

	items, err := svc.Items(ctx, sale.ID)
	if err != nil {
		t.Fatalf("Failed to load items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if !entities.SaleTotal(items).Equal(sale.Total) {
		t.Errorf("Expected item subtotals to add up to %s", sale.Total)
	}

	stock, _ := f.store.Stock().GetByProduct(ctx, yerba.ID)
	if stock.Quantity != yerba.Quantity-2 {
		t.Errorf("Expected yerba stock %d, got %d", yerba.Quantity-2, stock.Quantity)
	}

	open, _ := sessions.GetOpen(ctx)
	if want := decimal.NewFromInt(1000).Add(wantTotal); !open.CurrentAmount.Equal(want) {
		t.Errorf("Expected session amount %s, got %s", want, open.CurrentAmount)
	}

	movements, _ := f.store.CashMovements().GetBySession(ctx, open.ID)
	if len(movements) != 1 || movements[0].Type != entities.MovementSale || !movements[0].Amount.Equal(wantTotal) {
		t.Errorf("Expected one SALE movement of %s, got %+v", wantTotal, movements)
	}

	sales, _ := svc.GetBySession(ctx, open.ID)
	if len(sales) != 1 {
		t.Errorf("Expected 1 sale in session, got %d", len(sales))
	}

	if countType(f.eventTypes(), events.SaleRecordedEvent) != 1 {
		t.Error("Expected a sale.recorded event")
	}
}

func TestSaleService_CheckoutEmptyCart(t *testing.T) {
	f := newFixture()
	svc := NewSaleService(f.deps, NewCashSessionService(f.deps))

	if _, err := svc.Checkout(context.Background(), domainservices.NewCart()); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("Expected ErrEmptyCart, got %v", err)
	}
	if _, err := svc.Checkout(context.Background(), nil); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("Expected ErrEmptyCart for nil cart, got %v", err)
	}
}

func TestSaleService_CheckoutRollsBackOnStockChange(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	sessions := NewCashSessionService(f.deps)
	svc := NewSaleService(f.deps, sessions)

	session, _ := sessions.Open(ctx, decimal.NewFromInt(500))
	yerba := testhelpers.MustProduct(f.store, "YER-1KG")
	azucar := testhelpers.MustProduct(f.store, "AZU-1KG")

	cart := domainservices.NewCart()
	_ = cart.Add(yerba, 1)
	_ = cart.Add(azucar, 3)

	// Someone else sells the sugar before this checkout completes.
	if _, err := f.store.Stock().Decrement(ctx, azucar.ID, 2); err != nil {
		t.Fatalf("Failed to decrement: %v", err)
	}

	if _, err := svc.Checkout(ctx, cart); !errors.Is(err, domainservices.ErrInsufficientStock) {
		t.Fatalf("Expected ErrInsufficientStock, got %v", err)
	}
	if cart.IsEmpty() {
		t.Error("Expected cart to be kept after a failed checkout")
	}

	stock, _ := f.store.Stock().GetByProduct(ctx, yerba.ID)
	if stock.Quantity != yerba.Quantity {
		t.Errorf("Expected yerba stock restored to %d, got %d", yerba.Quantity, stock.Quantity)
	}
	all, _ := svc.GetAll(ctx)
	if len(all) != 0 {
		t.Errorf("Expected no sales after rollback, got %d", len(all))
	}
	current, _ := f.store.CashSessions().GetByID(ctx, session.ID)
	if !current.CurrentAmount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected session amount unchanged, got %s", current.CurrentAmount)
	}
}
