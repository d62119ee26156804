package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

var (
	// ErrOutOfStock is returned when a product has no units left
	ErrOutOfStock = errors.New("product has no stock available")
	// ErrInsufficientStock is returned when the requested quantity exceeds what is on hand
	ErrInsufficientStock = errors.New("insufficient stock")
)

// CartLine is one product in the cart
type CartLine struct {
	Product  entities.ProductWithStock
	Quantity int64
}

// Subtotal is quantity times the product sale price
func (l *CartLine) Subtotal() decimal.Decimal {
	return l.Product.SalePrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Cart accumulates products before checkout. Quantities never exceed the
// stock known when each product was added.
type Cart struct {
	lines []*CartLine
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{}
}

// Add puts quantity units of p in the cart, merging with an existing line
func (c *Cart) Add(p entities.ProductWithStock, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	if !p.Available() {
		return fmt.Errorf("%s: %w", p.Name, ErrOutOfStock)
	}

	if line := c.find(p.ID); line != nil {
		newQty := line.Quantity + quantity
		if newQty > p.Quantity {
			return fmt.Errorf("%w: available %d", ErrInsufficientStock, p.Quantity)
		}
		line.Quantity = newQty
		line.Product = p
		return nil
	}

	if quantity > p.Quantity {
		return fmt.Errorf("%w: available %d", ErrInsufficientStock, p.Quantity)
	}
	c.lines = append(c.lines, &CartLine{Product: p, Quantity: quantity})
	return nil
}

// SetQuantity changes the quantity of a line; zero or less removes it
func (c *Cart) SetQuantity(productID entities.ProductID, quantity int64) error {
	line := c.find(productID)
	if line == nil {
		return fmt.Errorf("product %d is not in the cart", productID)
	}
	if quantity <= 0 {
		c.Remove(productID)
		return nil
	}
	if quantity > line.Product.Quantity {
		return fmt.Errorf("%w: available %d", ErrInsufficientStock, line.Product.Quantity)
	}
	line.Quantity = quantity
	return nil
}

// Remove drops the line of a product, if present
func (c *Cart) Remove(productID entities.ProductID) {
	for i, line := range c.lines {
		if line.Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns the cart lines in insertion order
func (c *Cart) Lines() []*CartLine {
	return c.lines
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Total sums every line subtotal
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// ItemCount sums every line quantity
func (c *Cart) ItemCount() int64 {
	var n int64
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

func (c *Cart) find(productID entities.ProductID) *CartLine {
	for _, line := range c.lines {
		if line.Product.ID == productID {
			return line
		}
	}
	return nil
}
