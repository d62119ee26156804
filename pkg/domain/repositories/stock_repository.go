package repositories

import (
	"context"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

// StockRepository provides access to on-hand quantities
type StockRepository interface {
	GetAll(ctx context.Context) ([]*entities.Stock, error)
	GetByProduct(ctx context.Context, productID entities.ProductID) (*entities.Stock, error)
	Create(ctx context.Context, s *entities.Stock) (int64, error)
	Update(ctx context.Context, id int64, quantity, minAlert int64) (int64, error)
	// Decrement removes quantity units from a product. It changes nothing and
	// returns 0 when fewer units are on hand.
	Decrement(ctx context.Context, productID entities.ProductID, quantity int64) (int64, error)
	DeleteByProduct(ctx context.Context, productID entities.ProductID) (int64, error)
}
