package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

// ProductInput carries the editable fields of a product and its stock row.
// A missing profit percentage or sale price is derived from the other.
type ProductInput struct {
	Name             string
	Description      string
	Brand            string
	Code             string
	WholesalePrice   decimal.Decimal
	ProfitPercentage decimal.NullDecimal
	SalePrice        decimal.NullDecimal
	Quantity         int64
	// MinAlert below zero selects entities.DefaultMinAlert
	MinAlert int64
}

// ProductQuery selects and orders the catalog listing
type ProductQuery struct {
	Search     string
	SortBy     string
	Descending bool
	LowOnly    bool
	// InStockOnly keeps products with units on hand, as the sale screen does
	InStockOnly bool
}

// ImportRow is one valid line of an import file
type ImportRow struct {
	Line     int
	Product  *entities.Product
	Quantity int64
	MinAlert int64
}

// ValidationError describes a problem with one field of one import line.
// Row 0 refers to the file as a whole.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ImportResult summarises a parsed import file
type ImportResult struct {
	Rows        []ImportRow       `json:"-"`
	Errors      []ValidationError `json:"errors"`
	TotalRows   int               `json:"total_rows"`
	ValidRows   int               `json:"valid_rows"`
	InvalidRows int               `json:"invalid_rows"`
	Imported    int               `json:"imported"`
}

// Success reports whether every line passed validation
func (r *ImportResult) Success() bool {
	return len(r.Errors) == 0
}
