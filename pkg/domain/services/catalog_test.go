package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

func catalogFixture() []*entities.ProductWithStock {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func(id entities.ProductID, name, code, price string, qty int64, age int) *entities.ProductWithStock {
		return &entities.ProductWithStock{
			Product: entities.Product{
				ID:        id,
				Name:      name,
				Code:      code,
				SalePrice: decimal.RequireFromString(price),
				CreatedAt: base.AddDate(0, 0, age),
			},
			Quantity: qty,
			MinAlert: entities.DefaultMinAlert,
			HasStock: true,
		}
	}
	return []*entities.ProductWithStock{
		mk(1, "yerba", "YB", "1500", 20, 2),
		mk(2, "Azúcar", "AZ", "900", 3, 0),
		mk(3, "Café", "CF", "4200", 5, 1),
	}
}

func ids(products []*entities.ProductWithStock) []entities.ProductID {
	out := make([]entities.ProductID, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestSortProducts(t *testing.T) {
	tests := []struct {
		field      SortField
		descending bool
		expected   []entities.ProductID
	}{
		{SortByName, false, []entities.ProductID{2, 3, 1}},
		{SortByPrice, true, []entities.ProductID{3, 1, 2}},
		{SortByQuantity, false, []entities.ProductID{2, 3, 1}},
		{SortByDate, false, []entities.ProductID{2, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			products := catalogFixture()
			SortProducts(products, tt.field, tt.descending)
			got := ids(products)
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Fatalf("order = %v, want %v", got, tt.expected)
				}
			}
		})
	}
}

func TestSearchAndLowStock(t *testing.T) {
	products := catalogFixture()

	if got := SearchProducts(products, "caf"); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("SearchProducts(caf) = %v", ids(got))
	}

	low := LowStock(products)
	if len(low) != 2 {
		t.Fatalf("Expected 2 low stock products, got %v", ids(low))
	}
}

func TestParseSortField(t *testing.T) {
	if f, err := ParseSortField(""); err != nil || f != SortByName {
		t.Errorf("ParseSortField(\"\") = %v, %v", f, err)
	}
	if _, err := ParseSortField("color"); err == nil {
		t.Error("Expected error for unknown field")
	}
}
