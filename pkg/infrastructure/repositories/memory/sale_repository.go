package memory

import (
	"context"
	"fmt"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
)

// SaleRepository provides in-memory sale storage
type SaleRepository struct {
	store *Store
}

// SaleItemRepository provides in-memory sale line storage
type SaleItemRepository struct {
	store *Store
}

// Verify interface compliance
var (
	_ repositories.SaleRepository     = (*SaleRepository)(nil)
	_ repositories.SaleItemRepository = (*SaleItemRepository)(nil)
)

// Create inserts a sale header
func (r *SaleRepository) Create(ctx context.Context, s *entities.Sale) (entities.SaleID, error) {
	defer r.store.lock()()

	r.store.data.lastSaleID++
	row := *s
	row.ID = entities.SaleID(r.store.data.lastSaleID)
	row.CreatedAt = r.store.stamp(s.CreatedAt)
	row.Total = entities.RoundMoney(s.Total)
	r.store.data.sales = append(r.store.data.sales, row)
	return row.ID, nil
}

// GetByID returns one sale
func (r *SaleRepository) GetByID(ctx context.Context, id entities.SaleID) (*entities.Sale, error) {
	defer r.store.lock()()

	for _, s := range r.store.data.sales {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("sale %d: %w", id, repositories.ErrNotFound)
}

// GetBySession returns the sales of one session
func (r *SaleRepository) GetBySession(ctx context.Context, sessionID entities.SessionID) ([]*entities.Sale, error) {
	defer r.store.lock()()

	var out []*entities.Sale
	for _, s := range r.store.data.sales {
		if s.SessionID == sessionID {
			out = append(out, &s)
		}
	}
	return out, nil
}

// GetAll returns every sale
func (r *SaleRepository) GetAll(ctx context.Context) ([]*entities.Sale, error) {
	defer r.store.lock()()

	out := make([]*entities.Sale, 0, len(r.store.data.sales))
	for _, s := range r.store.data.sales {
		out = append(out, &s)
	}
	return out, nil
}

// Create inserts a sale line
func (r *SaleItemRepository) Create(ctx context.Context, item *entities.SaleItem) (int64, error) {
	defer r.store.lock()()

	r.store.data.lastSaleItemID++
	row := *item
	row.ID = r.store.data.lastSaleItemID
	row.UnitPrice = entities.RoundMoney(item.UnitPrice)
	row.Subtotal = entities.RoundMoney(item.Subtotal)
	r.store.data.saleItems = append(r.store.data.saleItems, row)
	return row.ID, nil
}

// GetBySale returns the lines of one sale
func (r *SaleItemRepository) GetBySale(ctx context.Context, saleID entities.SaleID) ([]*entities.SaleItem, error) {
	defer r.store.lock()()

	var out []*entities.SaleItem
	for _, item := range r.store.data.saleItems {
		if item.SaleID == saleID {
			out = append(out, &item)
		}
	}
	return out, nil
}
