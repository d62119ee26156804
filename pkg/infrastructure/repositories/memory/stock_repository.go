package memory

import (
	"context"
	"fmt"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
)

// StockRepository provides in-memory stock storage
type StockRepository struct {
	store *Store
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

// GetAll returns every stock row
func (r *StockRepository) GetAll(ctx context.Context) ([]*entities.Stock, error) {
	defer r.store.lock()()

	out := make([]*entities.Stock, 0, len(r.store.data.stock))
	for i := range r.store.data.stock {
		s := r.store.data.stock[i]
		out = append(out, &s)
	}
	return out, nil
}

// GetByProduct returns the stock row of a product
func (r *StockRepository) GetByProduct(ctx context.Context, productID entities.ProductID) (*entities.Stock, error) {
	defer r.store.lock()()

	if i := r.indexByProduct(productID); i >= 0 {
		s := r.store.data.stock[i]
		return &s, nil
	}
	return nil, fmt.Errorf("stock for product %d: %w", productID, repositories.ErrNotFound)
}

// Create inserts a stock row, one per product
func (r *StockRepository) Create(ctx context.Context, s *entities.Stock) (int64, error) {
	defer r.store.lock()()

	if r.indexByProduct(s.ProductID) >= 0 {
		return 0, fmt.Errorf("stock for product %d: %w", s.ProductID, repositories.ErrAlreadyExists)
	}
	r.store.data.lastStockID++
	row := *s
	row.ID = r.store.data.lastStockID
	r.store.data.stock = append(r.store.data.stock, row)
	return row.ID, nil
}

// Update sets quantity and alert level of a stock row
func (r *StockRepository) Update(ctx context.Context, id int64, quantity, minAlert int64) (int64, error) {
	defer r.store.lock()()

	for i := range r.store.data.stock {
		if r.store.data.stock[i].ID == id {
			r.store.data.stock[i].Quantity = quantity
			r.store.data.stock[i].MinAlert = minAlert
			return 1, nil
		}
	}
	return 0, nil
}

// Decrement removes units when enough are on hand
func (r *StockRepository) Decrement(ctx context.Context, productID entities.ProductID, quantity int64) (int64, error) {
	defer r.store.lock()()

	i := r.indexByProduct(productID)
	if i < 0 || r.store.data.stock[i].Quantity < quantity {
		return 0, nil
	}
	r.store.data.stock[i].Quantity -= quantity
	return 1, nil
}

// DeleteByProduct removes the stock row of a product
func (r *StockRepository) DeleteByProduct(ctx context.Context, productID entities.ProductID) (int64, error) {
	defer r.store.lock()()

	i := r.indexByProduct(productID)
	if i < 0 {
		return 0, nil
	}
	rows := r.store.data.stock
	r.store.data.stock = append(rows[:i:i], rows[i+1:]...)
	return 1, nil
}

func (r *StockRepository) indexByProduct(productID entities.ProductID) int {
	for i, s := range r.store.data.stock {
		if s.ProductID == productID {
			return i
		}
	}
	return -1
}
