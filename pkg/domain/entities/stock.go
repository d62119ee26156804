package entities

import "fmt"

// DefaultMinAlert is the low-stock threshold used when none is given
const DefaultMinAlert = 5

// Stock holds the on-hand quantity of a single product
type Stock struct {
	ID        int64
	ProductID ProductID
	Quantity  int64
	MinAlert  int64
}

// NewStock creates a validated Stock row. A negative minAlert selects the default.
func NewStock(productID ProductID, quantity, minAlert int64) (*Stock, error) {
	if productID <= 0 {
		return nil, fmt.Errorf("product id must be positive, got %d", productID)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative, got %d", quantity)
	}
	if minAlert < 0 {
		minAlert = DefaultMinAlert
	}
	return &Stock{
		ProductID: productID,
		Quantity:  quantity,
		MinAlert:  minAlert,
	}, nil
}

// Low reports whether the quantity is at or below the alert threshold
func (s *Stock) Low() bool {
	return s.Quantity <= s.MinAlert
}

// ProductWithStock joins a product with its stock row
type ProductWithStock struct {
	Product
	StockID  int64
	Quantity int64
	MinAlert int64
	HasStock bool
}

// Low reports whether the joined quantity is at or below the alert threshold
func (p *ProductWithStock) Low() bool {
	return p.Quantity <= p.MinAlert
}

// Available reports whether at least one unit can be sold
func (p *ProductWithStock) Available() bool {
	return p.HasStock && p.Quantity > 0
}
