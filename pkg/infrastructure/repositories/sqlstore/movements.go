package sqlstore

import (
	"context"
	"fmt"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

type movementStore struct {
	s *Store
}

const movementColumns = `id, cash_session_id, type, amount, description, created_at`

// Create inserts a cash movement
func (r *movementStore) Create(ctx context.Context, m *entities.CashMovement) (int64, error) {
	res, err := r.s.q.ExecContext(ctx,
		`INSERT INTO cash_movements (cash_session_id, type, amount, description, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		int64(m.SessionID), string(m.Type), entities.Cents(m.Amount), m.Description,
		toMillis(r.s.stamp(m.CreatedAt)))
	if err != nil {
		return 0, fmt.Errorf("create cash movement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("cash movement id: %w", err)
	}
	return id, nil
}

// GetBySession lists the movements of a session, newest first
func (r *movementStore) GetBySession(ctx context.Context, sessionID entities.SessionID) ([]*entities.CashMovement, error) {
	return r.list(ctx,
		`SELECT `+movementColumns+` FROM cash_movements
		  WHERE cash_session_id = ?
		  ORDER BY created_at DESC, id DESC`, int64(sessionID))
}

// GetAll lists every movement, newest first
func (r *movementStore) GetAll(ctx context.Context) ([]*entities.CashMovement, error) {
	return r.list(ctx,
		`SELECT `+movementColumns+` FROM cash_movements ORDER BY created_at DESC, id DESC`)
}

func (r *movementStore) list(ctx context.Context, query string, args ...any) ([]*entities.CashMovement, error) {
	rows, err := r.s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	defer rows.Close()

	var out []*entities.CashMovement
	for rows.Next() {
		var (
			m         entities.CashMovement
			typ       string
			amount    int64
			createdAt int64
		)
		if err := rows.Scan(&m.ID, &m.SessionID, &typ, &amount, &m.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		m.Type = entities.MovementType(typ)
		m.Amount = entities.FromCents(amount)
		m.CreatedAt = fromMillis(createdAt)
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cash movements: %w", err)
	}
	return out, nil
}
