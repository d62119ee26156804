package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
)

// CashSessionRepository provides in-memory till session storage
type CashSessionRepository struct {
	store *Store
}

// Verify interface compliance
var _ repositories.CashSessionRepository = (*CashSessionRepository)(nil)

// Open inserts a new session
func (r *CashSessionRepository) Open(ctx context.Context, startAmount decimal.Decimal, openedAt time.Time) (entities.SessionID, error) {
	defer r.store.lock()()

	r.store.data.lastSessionID++
	id := entities.SessionID(r.store.data.lastSessionID)
	startAmount = entities.RoundMoney(startAmount)
	r.store.data.sessions = append(r.store.data.sessions, entities.CashSession{
		ID:            id,
		StartAmount:   startAmount,
		CurrentAmount: startAmount,
		OpenedAt:      r.store.stamp(openedAt),
	})
	return id, nil
}

// GetOpen returns the newest session that has not been closed
func (r *CashSessionRepository) GetOpen(ctx context.Context) (*entities.CashSession, error) {
	defer r.store.lock()()

	for _, s := range r.sorted() {
		if s.IsOpen() {
			return s, nil
		}
	}
	return nil, fmt.Errorf("open cash session: %w", repositories.ErrNotFound)
}

// GetByID returns one session
func (r *CashSessionRepository) GetByID(ctx context.Context, id entities.SessionID) (*entities.CashSession, error) {
	defer r.store.lock()()

	if i := r.index(id); i >= 0 {
		s := r.store.data.sessions[i]
		return &s, nil
	}
	return nil, fmt.Errorf("cash session %d: %w", id, repositories.ErrNotFound)
}

// GetAll lists sessions newest first
func (r *CashSessionRepository) GetAll(ctx context.Context) ([]*entities.CashSession, error) {
	defer r.store.lock()()
	return r.sorted(), nil
}

// LastClosed returns the newest closed session
func (r *CashSessionRepository) LastClosed(ctx context.Context) (*entities.CashSession, error) {
	defer r.store.lock()()

	for _, s := range r.sorted() {
		if !s.IsOpen() {
			return s, nil
		}
	}
	return nil, fmt.Errorf("closed cash session: %w", repositories.ErrNotFound)
}

// Close sets the final amount and closing time of a session
func (r *CashSessionRepository) Close(ctx context.Context, id entities.SessionID, amount decimal.Decimal, closedAt time.Time) (int64, error) {
	defer r.store.lock()()

	i := r.index(id)
	if i < 0 || !r.store.data.sessions[i].IsOpen() {
		return 0, nil
	}
	closed := r.store.stamp(closedAt)
	r.store.data.sessions[i].CurrentAmount = entities.RoundMoney(amount)
	r.store.data.sessions[i].ClosedAt = &closed
	return 1, nil
}

// CloseAll closes every open session at the given amount
func (r *CashSessionRepository) CloseAll(ctx context.Context, amount decimal.Decimal, closedAt time.Time) (int64, error) {
	defer r.store.lock()()

	closed := r.store.stamp(closedAt)
	amount = entities.RoundMoney(amount)
	var n int64
	for i := range r.store.data.sessions {
		if r.store.data.sessions[i].IsOpen() {
			r.store.data.sessions[i].CurrentAmount = amount
			r.store.data.sessions[i].ClosedAt = &closed
			n++
		}
	}
	return n, nil
}

// UpdateCurrentAmount adds delta to an open session
func (r *CashSessionRepository) UpdateCurrentAmount(ctx context.Context, id entities.SessionID, delta decimal.Decimal) (int64, error) {
	defer r.store.lock()()

	i := r.index(id)
	if i < 0 || !r.store.data.sessions[i].IsOpen() {
		return 0, nil
	}
	s := &r.store.data.sessions[i]
	s.CurrentAmount = s.CurrentAmount.Add(entities.RoundMoney(delta))
	return 1, nil
}

func (r *CashSessionRepository) sorted() []*entities.CashSession {
	out := make([]*entities.CashSession, 0, len(r.store.data.sessions))
	for i := range r.store.data.sessions {
		s := r.store.data.sessions[i]
		out = append(out, &s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OpenedAt.Equal(out[j].OpenedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].OpenedAt.After(out[j].OpenedAt)
	})
	return out
}

func (r *CashSessionRepository) index(id entities.SessionID) int {
	for i, s := range r.store.data.sessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}
