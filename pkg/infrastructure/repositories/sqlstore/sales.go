package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
)

type saleStore struct {
	s *Store
}

type saleItemStore struct {
	s *Store
}

func scanSale(row rowScanner) (*entities.Sale, error) {
	var (
		sale             entities.Sale
		total, createdAt int64
	)
	if err := row.Scan(&sale.ID, &sale.SessionID, &total, &createdAt); err != nil {
		return nil, err
	}
	sale.Total = entities.FromCents(total)
	sale.CreatedAt = fromMillis(createdAt)
	return &sale, nil
}

// Create inserts a sale header
func (r *saleStore) Create(ctx context.Context, sale *entities.Sale) (entities.SaleID, error) {
	res, err := r.s.q.ExecContext(ctx,
		`INSERT INTO sales (cash_session_id, total, created_at) VALUES (?, ?, ?)`,
		int64(sale.SessionID), entities.Cents(sale.Total), toMillis(r.s.stamp(sale.CreatedAt)))
	if err != nil {
		return 0, fmt.Errorf("create sale: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sale id: %w", err)
	}
	return entities.SaleID(id), nil
}

// GetByID returns one sale
func (r *saleStore) GetByID(ctx context.Context, id entities.SaleID) (*entities.Sale, error) {
	sale, err := scanSale(r.s.q.QueryRowContext(ctx,
		`SELECT id, cash_session_id, total, created_at FROM sales WHERE id = ?`, int64(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sale %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return sale, nil
}

// GetBySession lists the sales of a session, newest first
func (r *saleStore) GetBySession(ctx context.Context, sessionID entities.SessionID) ([]*entities.Sale, error) {
	return r.list(ctx,
		`SELECT id, cash_session_id, total, created_at FROM sales
		  WHERE cash_session_id = ?
		  ORDER BY created_at DESC, id DESC`, int64(sessionID))
}

// GetAll lists every sale, newest first
func (r *saleStore) GetAll(ctx context.Context) ([]*entities.Sale, error) {
	return r.list(ctx,
		`SELECT id, cash_session_id, total, created_at FROM sales ORDER BY created_at DESC, id DESC`)
}

func (r *saleStore) list(ctx context.Context, query string, args ...any) ([]*entities.Sale, error) {
	rows, err := r.s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []*entities.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}
	return out, nil
}

// Create inserts a sale line
func (r *saleItemStore) Create(ctx context.Context, item *entities.SaleItem) (int64, error) {
	res, err := r.s.q.ExecContext(ctx,
		`INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, subtotal) VALUES (?, ?, ?, ?, ?)`,
		int64(item.SaleID), int64(item.ProductID), item.Quantity,
		entities.Cents(item.UnitPrice), entities.Cents(item.Subtotal))
	if err != nil {
		return 0, fmt.Errorf("create sale item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sale item id: %w", err)
	}
	return id, nil
}

// GetBySale lists the lines of a sale in insertion order
func (r *saleItemStore) GetBySale(ctx context.Context, saleID entities.SaleID) ([]*entities.SaleItem, error) {
	rows, err := r.s.q.QueryContext(ctx,
		`SELECT id, sale_id, product_id, quantity, unit_price, subtotal FROM sale_items
		  WHERE sale_id = ? ORDER BY id`, int64(saleID))
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var out []*entities.SaleItem
	for rows.Next() {
		var (
			item           entities.SaleItem
			unit, subtotal int64
		)
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &unit, &subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		item.UnitPrice = entities.FromCents(unit)
		item.Subtotal = entities.FromCents(subtotal)
		out = append(out, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale items: %w", err)
	}
	return out, nil
}
