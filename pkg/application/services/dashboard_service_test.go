package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	domainservices "github.com/Garbi-Collector/stokea2/pkg/domain/services"
	testhelpers "github.com/Garbi-Collector/stokea2/pkg/infrastructure/testing"
)

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	users := NewUserService(f.deps)
	sessions := NewCashSessionService(f.deps)
	svc := NewDashboardService(f.deps, users)

	summary, err := svc.Summary(ctx, nil)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.OwnerName != "Marta" || summary.ProductCount != len(testhelpers.ShopProducts) {
		t.Errorf("Unexpected summary %+v", summary)
	}
	if summary.Session != nil || !summary.CurrentAmount.IsZero() {
		t.Errorf("Expected no session yet, got %+v", summary.Session)
	}
	if summary.LowStockCount != 2 {
		t.Errorf("Expected 2 low stock products, got %d", summary.LowStockCount)
	}

	if _, err := sessions.Open(ctx, decimal.NewFromInt(300)); err != nil {
		t.Fatalf("Failed to open session: %v", err)
	}
	cart := domainservices.NewCart()
	_ = cart.Add(testhelpers.MustProduct(f.store, "YER-1KG"), 1)
	if _, err := NewSaleService(f.deps, sessions).Checkout(ctx, cart); err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	summary, err = svc.Summary(ctx, monday.Location())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if !summary.CurrentAmount.Equal(decimal.NewFromInt(3800)) {
		t.Errorf("Expected current amount 3800, got %s", summary.CurrentAmount)
	}
	if !summary.TodaySales.Equal(decimal.NewFromInt(3500)) {
		t.Errorf("Expected today's sales 3500, got %s", summary.TodaySales)
	}
	if summary.Greeting != "Buenos días" || !summary.ShopOpen {
		t.Errorf("Unexpected greeting/open %q/%v", summary.Greeting, summary.ShopOpen)
	}
}
