package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductID identifies a product row
type ProductID int64

// Product represents a catalog entry that can be sold
type Product struct {
	ID               ProductID
	Name             string
	Description      string
	Brand            string
	Code             string
	WholesalePrice   decimal.Decimal
	ProfitPercentage decimal.Decimal
	SalePrice        decimal.Decimal
	CreatedAt        time.Time
}

// NewProduct creates a validated Product. Text fields are trimmed and prices
// are rounded to the cent before validation.
func NewProduct(name, description, brand, code string, wholesale, profitPct, salePrice decimal.Decimal) (*Product, error) {
	p := &Product{
		Name:             strings.TrimSpace(name),
		Description:      strings.TrimSpace(description),
		Brand:            strings.TrimSpace(brand),
		Code:             strings.TrimSpace(code),
		WholesalePrice:   RoundMoney(wholesale),
		ProfitPercentage: RoundMoney(profitPct),
		SalePrice:        RoundMoney(salePrice),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the product invariants
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name cannot be empty")
	}
	if strings.TrimSpace(p.Code) == "" {
		return fmt.Errorf("product code cannot be empty")
	}
	if !p.WholesalePrice.IsPositive() {
		return fmt.Errorf("wholesale price must be positive, got %s", p.WholesalePrice)
	}
	if p.ProfitPercentage.IsNegative() {
		return fmt.Errorf("profit percentage cannot be negative, got %s", p.ProfitPercentage)
	}
	if p.SalePrice.IsNegative() {
		return fmt.Errorf("sale price cannot be negative, got %s", p.SalePrice)
	}
	return nil
}

// Matches reports whether term appears in the name, code, brand or description,
// ignoring case. An empty term matches everything.
func (p *Product) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{p.Name, p.Code, p.Brand, p.Description} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
