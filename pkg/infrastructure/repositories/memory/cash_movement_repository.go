package memory

import (
	"context"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
)

// CashMovementRepository provides in-memory cash movement storage
type CashMovementRepository struct {
	store *Store
}

// Verify interface compliance
var _ repositories.CashMovementRepository = (*CashMovementRepository)(nil)

// Create inserts a movement
func (r *CashMovementRepository) Create(ctx context.Context, m *entities.CashMovement) (int64, error) {
	defer r.store.lock()()

	r.store.data.lastMovementID++
	row := *m
	row.ID = r.store.data.lastMovementID
	row.CreatedAt = r.store.stamp(m.CreatedAt)
	row.Amount = entities.RoundMoney(m.Amount)
	r.store.data.movements = append(r.store.data.movements, row)
	return row.ID, nil
}

// GetBySession returns the movements of one session in insertion order
func (r *CashMovementRepository) GetBySession(ctx context.Context, sessionID entities.SessionID) ([]*entities.CashMovement, error) {
	defer r.store.lock()()

	var out []*entities.CashMovement
	for _, m := range r.store.data.movements {
		if m.SessionID == sessionID {
			out = append(out, &m)
		}
	}
	return out, nil
}

// GetAll returns every movement in insertion order
func (r *CashMovementRepository) GetAll(ctx context.Context) ([]*entities.CashMovement, error) {
	defer r.store.lock()()

	out := make([]*entities.CashMovement, 0, len(r.store.data.movements))
	for _, m := range r.store.data.movements {
		out = append(out, &m)
	}
	return out, nil
}
