package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SaleID identifies a sale
type SaleID int64

// Sale is the header of a completed checkout
type Sale struct {
	ID        SaleID
	SessionID SessionID
	Total     decimal.Decimal
	CreatedAt time.Time
}

// SaleItem is one line of a sale
type SaleItem struct {
	ID        int64
	SaleID    SaleID
	ProductID ProductID
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// NewSaleItem creates a line whose subtotal is quantity times unit price
func NewSaleItem(productID ProductID, quantity int64, unitPrice decimal.Decimal) (*SaleItem, error) {
	if productID <= 0 {
		return nil, fmt.Errorf("product id must be positive, got %d", productID)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	unitPrice = RoundMoney(unitPrice)
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative, got %s", unitPrice)
	}
	return &SaleItem{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(quantity)),
	}, nil
}

// SaleTotal sums the subtotals of the given lines
func SaleTotal(items []*SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}
	return total
}
