package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
)

type stockStore struct {
	s *Store
}

func scanStock(row rowScanner) (*entities.Stock, error) {
	var st entities.Stock
	if err := row.Scan(&st.ID, &st.ProductID, &st.Quantity, &st.MinAlert); err != nil {
		return nil, err
	}
	return &st, nil
}

// GetAll returns every stock row
func (r *stockStore) GetAll(ctx context.Context) ([]*entities.Stock, error) {
	rows, err := r.s.q.QueryContext(ctx, `SELECT id, product_id, quantity, min_alert FROM stock ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var out []*entities.Stock
	for rows.Next() {
		st, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock: %w", err)
	}
	return out, nil
}

// GetByProduct returns the stock row of a product
func (r *stockStore) GetByProduct(ctx context.Context, productID entities.ProductID) (*entities.Stock, error) {
	row := r.s.q.QueryRowContext(ctx,
		`SELECT id, product_id, quantity, min_alert FROM stock WHERE product_id = ?`, int64(productID))
	st, err := scanStock(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("stock for product %d: %w", productID, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return st, nil
}

// Create inserts a stock row
func (r *stockStore) Create(ctx context.Context, st *entities.Stock) (int64, error) {
	res, err := r.s.q.ExecContext(ctx,
		`INSERT INTO stock (product_id, quantity, min_alert) VALUES (?, ?, ?)`,
		int64(st.ProductID), st.Quantity, st.MinAlert)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("stock for product %d: %w", st.ProductID, repositories.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("create stock: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("stock id: %w", err)
	}
	return id, nil
}

// Update sets quantity and alert level
func (r *stockStore) Update(ctx context.Context, id int64, quantity, minAlert int64) (int64, error) {
	res, err := r.s.q.ExecContext(ctx,
		`UPDATE stock SET quantity = ?, min_alert = ? WHERE id = ?`, quantity, minAlert, id)
	if err != nil {
		return 0, fmt.Errorf("update stock: %w", err)
	}
	return rowsAffected(res)
}

// Decrement removes units only when enough are on hand
func (r *stockStore) Decrement(ctx context.Context, productID entities.ProductID, quantity int64) (int64, error) {
	res, err := r.s.q.ExecContext(ctx,
		`UPDATE stock SET quantity = quantity - ? WHERE product_id = ? AND quantity >= ?`,
		quantity, int64(productID), quantity)
	if err != nil {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}
	return rowsAffected(res)
}

// DeleteByProduct removes the stock row of a product
func (r *stockStore) DeleteByProduct(ctx context.Context, productID entities.ProductID) (int64, error) {
	res, err := r.s.q.ExecContext(ctx, `DELETE FROM stock WHERE product_id = ?`, int64(productID))
	if err != nil {
		return 0, fmt.Errorf("delete stock: %w", err)
	}
	return rowsAffected(res)
}
