package repositories

import (
	"context"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

// CashMovementRepository provides access to manual and sale cash movements
type CashMovementRepository interface {
	Create(ctx context.Context, m *entities.CashMovement) (int64, error)
	GetBySession(ctx context.Context, sessionID entities.SessionID) ([]*entities.CashMovement, error)
	GetAll(ctx context.Context) ([]*entities.CashMovement, error)
}
