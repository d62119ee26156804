package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SalePrice applies a profit percentage on top of the wholesale price
func SalePrice(wholesale, profitPct decimal.Decimal) decimal.Decimal {
	return wholesale.Add(wholesale.Mul(profitPct).Div(hundred)).Round(2)
}

// ProfitPercentage derives the margin implied by a sale price, rounded to two places
func ProfitPercentage(wholesale, salePrice decimal.Decimal) (decimal.Decimal, error) {
	if !wholesale.IsPositive() {
		return decimal.Zero, fmt.Errorf("wholesale price must be positive, got %s", wholesale)
	}
	return salePrice.Sub(wholesale).Div(wholesale).Mul(hundred).Round(2), nil
}

// ResolvePricing fills in whichever of profit percentage and sale price is
// missing. With neither given the margin is zero. When both are given they
// are kept as entered.
func ResolvePricing(wholesale decimal.Decimal, profitPct, salePrice decimal.NullDecimal) (decimal.Decimal, decimal.Decimal, error) {
	switch {
	case profitPct.Valid && salePrice.Valid:
		return profitPct.Decimal, salePrice.Decimal, nil
	case salePrice.Valid:
		pct, err := ProfitPercentage(wholesale, salePrice.Decimal)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return pct, salePrice.Decimal, nil
	case profitPct.Valid:
		return profitPct.Decimal, SalePrice(wholesale, profitPct.Decimal), nil
	default:
		return decimal.Zero, wholesale.Round(2), nil
	}
}
