package repositories

import (
	"context"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

// SaleRepository provides access to sale headers
type SaleRepository interface {
	Create(ctx context.Context, s *entities.Sale) (entities.SaleID, error)
	GetByID(ctx context.Context, id entities.SaleID) (*entities.Sale, error)
	GetBySession(ctx context.Context, sessionID entities.SessionID) ([]*entities.Sale, error)
	GetAll(ctx context.Context) ([]*entities.Sale, error)
}

// SaleItemRepository provides access to sale lines
type SaleItemRepository interface {
	Create(ctx context.Context, item *entities.SaleItem) (int64, error)
	GetBySale(ctx context.Context, saleID entities.SaleID) ([]*entities.SaleItem, error)
}
