package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
)

type sessionStore struct {
	s *Store
}

const sessionColumns = `id, start_amount, current_amount, opened_at, closed_at`

func scanSession(row rowScanner) (*entities.CashSession, error) {
	var (
		cs             entities.CashSession
		start, current int64
		openedAt       int64
		closedAt       sql.NullInt64
	)
	if err := row.Scan(&cs.ID, &start, &current, &openedAt, &closedAt); err != nil {
		return nil, err
	}
	cs.StartAmount = entities.FromCents(start)
	cs.CurrentAmount = entities.FromCents(current)
	cs.OpenedAt = fromMillis(openedAt)
	if closedAt.Valid {
		t := fromMillis(closedAt.Int64)
		cs.ClosedAt = &t
	}
	return &cs, nil
}

func (r *sessionStore) one(ctx context.Context, what, query string, args ...any) (*entities.CashSession, error) {
	cs, err := scanSession(r.s.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("get %s: %w", what, err)
	}
	return cs, nil
}

// Open inserts a new session seeded with startAmount
func (r *sessionStore) Open(ctx context.Context, startAmount decimal.Decimal, openedAt time.Time) (entities.SessionID, error) {
	cents := entities.Cents(startAmount)
	res, err := r.s.q.ExecContext(ctx,
		`INSERT INTO cash_session (start_amount, current_amount, opened_at) VALUES (?, ?, ?)`,
		cents, cents, toMillis(r.s.stamp(openedAt)))
	if err != nil {
		return 0, fmt.Errorf("open cash session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("cash session id: %w", err)
	}
	return entities.SessionID(id), nil
}

// GetOpen returns the session that has not been closed
func (r *sessionStore) GetOpen(ctx context.Context) (*entities.CashSession, error) {
	return r.one(ctx, "open cash session",
		`SELECT `+sessionColumns+` FROM cash_session
		  WHERE closed_at IS NULL
		  ORDER BY opened_at DESC, id DESC
		  LIMIT 1`)
}

// GetByID returns one session
func (r *sessionStore) GetByID(ctx context.Context, id entities.SessionID) (*entities.CashSession, error) {
	return r.one(ctx, fmt.Sprintf("cash session %d", id),
		`SELECT `+sessionColumns+` FROM cash_session WHERE id = ?`, int64(id))
}

// GetAll lists sessions newest first
func (r *sessionStore) GetAll(ctx context.Context) ([]*entities.CashSession, error) {
	rows, err := r.s.q.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM cash_session ORDER BY opened_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list cash sessions: %w", err)
	}
	defer rows.Close()

	var out []*entities.CashSession
	for rows.Next() {
		cs, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash session: %w", err)
		}
		out = append(out, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cash sessions: %w", err)
	}
	return out, nil
}

// LastClosed returns the most recently opened closed session
func (r *sessionStore) LastClosed(ctx context.Context) (*entities.CashSession, error) {
	return r.one(ctx, "closed cash session",
		`SELECT `+sessionColumns+` FROM cash_session
		  WHERE closed_at IS NOT NULL
		  ORDER BY opened_at DESC, id DESC
		  LIMIT 1`)
}

// Close records the final amount and closing time of a session
func (r *sessionStore) Close(ctx context.Context, id entities.SessionID, amount decimal.Decimal, closedAt time.Time) (int64, error) {
	res, err := r.s.q.ExecContext(ctx,
		`UPDATE cash_session SET current_amount = ?, closed_at = ? WHERE id = ? AND closed_at IS NULL`,
		entities.Cents(amount), toMillis(r.s.stamp(closedAt)), int64(id))
	if err != nil {
		return 0, fmt.Errorf("close cash session: %w", err)
	}
	return rowsAffected(res)
}

// CloseAll closes every open session with the given amount
func (r *sessionStore) CloseAll(ctx context.Context, amount decimal.Decimal, closedAt time.Time) (int64, error) {
	res, err := r.s.q.ExecContext(ctx,
		`UPDATE cash_session SET current_amount = ?, closed_at = ? WHERE closed_at IS NULL`,
		entities.Cents(amount), toMillis(r.s.stamp(closedAt)))
	if err != nil {
		return 0, fmt.Errorf("close cash sessions: %w", err)
	}
	return rowsAffected(res)
}

// UpdateCurrentAmount adds delta to the current amount of an open session
func (r *sessionStore) UpdateCurrentAmount(ctx context.Context, id entities.SessionID, delta decimal.Decimal) (int64, error) {
	res, err := r.s.q.ExecContext(ctx,
		`UPDATE cash_session SET current_amount = current_amount + ? WHERE id = ? AND closed_at IS NULL`,
		entities.Cents(delta), int64(id))
	if err != nil {
		return 0, fmt.Errorf("update cash session amount: %w", err)
	}
	return rowsAffected(res)
}
