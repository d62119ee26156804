package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
)

// ProductRepository provides in-memory product storage
type ProductRepository struct {
	store *Store
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// GetAll returns every product in insertion order
func (r *ProductRepository) GetAll(ctx context.Context) ([]*entities.Product, error) {
	defer r.store.lock()()

	products := make([]*entities.Product, 0, len(r.store.data.products))
	for i := range r.store.data.products {
		p := r.store.data.products[i]
		products = append(products, &p)
	}
	return products, nil
}

// GetByID returns one product
func (r *ProductRepository) GetByID(ctx context.Context, id entities.ProductID) (*entities.Product, error) {
	defer r.store.lock()()

	if i := r.index(id); i >= 0 {
		p := r.store.data.products[i]
		return &p, nil
	}
	return nil, fmt.Errorf("product %d: %w", id, repositories.ErrNotFound)
}

// GetByCode returns the product with the given code
func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*entities.Product, error) {
	defer r.store.lock()()

	code = strings.TrimSpace(code)
	for _, p := range r.store.data.products {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product code %q: %w", code, repositories.ErrNotFound)
}

// Create inserts a product
func (r *ProductRepository) Create(ctx context.Context, p *entities.Product) (entities.ProductID, error) {
	defer r.store.lock()()
	return r.create(p)
}

func (r *ProductRepository) create(p *entities.Product) (entities.ProductID, error) {
	for _, existing := range r.store.data.products {
		if existing.Code == p.Code {
			return 0, fmt.Errorf("product code %q: %w", p.Code, repositories.ErrAlreadyExists)
		}
	}
	r.store.data.lastProductID++
	row := *p
	row.ID = entities.ProductID(r.store.data.lastProductID)
	row.CreatedAt = r.store.stamp(p.CreatedAt)
	roundPrices(&row)
	r.store.data.products = append(r.store.data.products, row)
	return row.ID, nil
}

// CreateMany inserts every product or none
func (r *ProductRepository) CreateMany(ctx context.Context, products []*entities.Product) (int, error) {
	err := r.store.WithinTx(ctx, func(tx repositories.Store) error {
		repo := tx.Products().(*ProductRepository)
		for _, p := range products {
			if _, err := repo.create(p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(products), nil
}

// Update overwrites the editable fields of a product
func (r *ProductRepository) Update(ctx context.Context, id entities.ProductID, p *entities.Product) (int64, error) {
	defer r.store.lock()()

	i := r.index(id)
	if i < 0 {
		return 0, nil
	}
	for _, existing := range r.store.data.products {
		if existing.Code == p.Code && existing.ID != id {
			return 0, fmt.Errorf("product code %q: %w", p.Code, repositories.ErrAlreadyExists)
		}
	}
	row := &r.store.data.products[i]
	row.Name = p.Name
	row.Description = p.Description
	row.Brand = p.Brand
	row.Code = p.Code
	row.WholesalePrice = p.WholesalePrice
	row.ProfitPercentage = p.ProfitPercentage
	row.SalePrice = p.SalePrice
	roundPrices(row)
	return 1, nil
}

// roundPrices keeps the same precision the SQL store persists
func roundPrices(p *entities.Product) {
	p.WholesalePrice = entities.RoundMoney(p.WholesalePrice)
	p.ProfitPercentage = entities.RoundMoney(p.ProfitPercentage)
	p.SalePrice = entities.RoundMoney(p.SalePrice)
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id entities.ProductID) (int64, error) {
	defer r.store.lock()()

	i := r.index(id)
	if i < 0 {
		return 0, nil
	}
	products := r.store.data.products
	r.store.data.products = append(products[:i:i], products[i+1:]...)
	return 1, nil
}

// Count returns the number of products
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	defer r.store.lock()()
	return len(r.store.data.products), nil
}

// GetAllWithStock returns products that have a stock row with units on hand
func (r *ProductRepository) GetAllWithStock(ctx context.Context) ([]*entities.ProductWithStock, error) {
	defer r.store.lock()()

	var out []*entities.ProductWithStock
	for _, joined := range r.join() {
		if joined.HasStock && joined.Quantity > 0 {
			out = append(out, joined)
		}
	}
	return out, nil
}

// ListWithStock returns every product joined with its stock row when present
func (r *ProductRepository) ListWithStock(ctx context.Context) ([]*entities.ProductWithStock, error) {
	defer r.store.lock()()
	return r.join(), nil
}

func (r *ProductRepository) join() []*entities.ProductWithStock {
	byProduct := make(map[entities.ProductID]entities.Stock, len(r.store.data.stock))
	for _, s := range r.store.data.stock {
		byProduct[s.ProductID] = s
	}

	out := make([]*entities.ProductWithStock, 0, len(r.store.data.products))
	for _, p := range r.store.data.products {
		joined := &entities.ProductWithStock{Product: p}
		if s, ok := byProduct[p.ID]; ok {
			joined.StockID = s.ID
			joined.Quantity = s.Quantity
			joined.MinAlert = s.MinAlert
			joined.HasStock = true
		}
		out = append(out, joined)
	}
	return out
}

func (r *ProductRepository) index(id entities.ProductID) int {
	for i, p := range r.store.data.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
