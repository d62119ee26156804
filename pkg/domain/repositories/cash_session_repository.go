package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

// CashSessionRepository provides access to till sessions
type CashSessionRepository interface {
	// Open inserts a session whose current amount equals startAmount
	Open(ctx context.Context, startAmount decimal.Decimal, openedAt time.Time) (entities.SessionID, error)
	// GetOpen returns the session with no closing time, or ErrNotFound
	GetOpen(ctx context.Context) (*entities.CashSession, error)
	GetByID(ctx context.Context, id entities.SessionID) (*entities.CashSession, error)
	// GetAll lists sessions newest first
	GetAll(ctx context.Context) ([]*entities.CashSession, error)
	// LastClosed returns the most recently opened closed session, or ErrNotFound
	LastClosed(ctx context.Context) (*entities.CashSession, error)
	Close(ctx context.Context, id entities.SessionID, amount decimal.Decimal, closedAt time.Time) (int64, error)
	CloseAll(ctx context.Context, amount decimal.Decimal, closedAt time.Time) (int64, error)
	// UpdateCurrentAmount adds delta to an open session. It returns 0 when the
	// session is closed or missing.
	UpdateCurrentAmount(ctx context.Context, id entities.SessionID, delta decimal.Decimal) (int64, error)
}
