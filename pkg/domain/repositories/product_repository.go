package repositories

import (
	"context"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

// ProductRepository provides access to the product catalog
type ProductRepository interface {
	GetAll(ctx context.Context) ([]*entities.Product, error)
	GetByID(ctx context.Context, id entities.ProductID) (*entities.Product, error)
	GetByCode(ctx context.Context, code string) (*entities.Product, error)
	// Create inserts p and returns the new id. A duplicate code yields ErrAlreadyExists.
	Create(ctx context.Context, p *entities.Product) (entities.ProductID, error)
	// CreateMany inserts every product or none of them
	CreateMany(ctx context.Context, products []*entities.Product) (int, error)
	Update(ctx context.Context, id entities.ProductID, p *entities.Product) (int64, error)
	Delete(ctx context.Context, id entities.ProductID) (int64, error)
	Count(ctx context.Context) (int, error)

	// GetAllWithStock returns the products that have units on hand
	GetAllWithStock(ctx context.Context) ([]*entities.ProductWithStock, error)
	// ListWithStock returns every product, joined with its stock row when present
	ListWithStock(ctx context.Context) ([]*entities.ProductWithStock, error)
}
