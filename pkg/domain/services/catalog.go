package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

// SortField selects the column used to order the catalog
type SortField string

const (
	SortByName     SortField = "name"
	SortByPrice    SortField = "price"
	SortByQuantity SortField = "quantity"
	SortByDate     SortField = "date"
)

// ParseSortField accepts the known sort columns; empty means name
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return SortByName, nil
	case SortByName, SortByPrice, SortByQuantity, SortByDate:
		return f, nil
	default:
		return "", fmt.Errorf("unknown sort field %q", s)
	}
}

// SearchProducts keeps the products matching term
func SearchProducts(products []*entities.ProductWithStock, term string) []*entities.ProductWithStock {
	out := make([]*entities.ProductWithStock, 0, len(products))
	for _, p := range products {
		if p.Matches(term) {
			out = append(out, p)
		}
	}
	return out
}

// SortProducts orders products in place by field
func SortProducts(products []*entities.ProductWithStock, field SortField, descending bool) {
	less := func(a, b *entities.ProductWithStock) bool {
		switch field {
		case SortByPrice:
			return a.SalePrice.LessThan(b.SalePrice)
		case SortByQuantity:
			return a.Quantity < b.Quantity
		case SortByDate:
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
	sort.SliceStable(products, func(i, j int) bool {
		if descending {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

// LowStock keeps the products whose quantity is at or below their alert level
func LowStock(products []*entities.ProductWithStock) []*entities.ProductWithStock {
	var out []*entities.ProductWithStock
	for _, p := range products {
		if p.HasStock && p.Low() {
			out = append(out, p)
		}
	}
	return out
}
