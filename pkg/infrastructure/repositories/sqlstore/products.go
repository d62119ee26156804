package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
)

type productStore struct {
	s *Store
}

const productColumns = `p.id, p.name, p.description, p.brand, p.code,
        p.wholesale_price, p.profit_percentage, p.sale_price, p.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, extra ...any) (*entities.Product, error) {
	var (
		p                             entities.Product
		wholesale, profit, sale, made int64
	)
	dest := []any{&p.ID, &p.Name, &p.Description, &p.Brand, &p.Code, &wholesale, &profit, &sale, &made}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	p.WholesalePrice = entities.FromCents(wholesale)
	p.ProfitPercentage = entities.FromCents(profit)
	p.SalePrice = entities.FromCents(sale)
	p.CreatedAt = fromMillis(made)
	return &p, nil
}

// GetAll returns every product ordered by id
func (r *productStore) GetAll(ctx context.Context) ([]*entities.Product, error) {
	rows, err := r.s.q.QueryContext(ctx, `SELECT `+productColumns+` FROM products p ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entities.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return out, nil
}

// GetByID returns one product
func (r *productStore) GetByID(ctx context.Context, id entities.ProductID) (*entities.Product, error) {
	row := r.s.q.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = ?`, int64(id))
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByCode returns the product with the given code
func (r *productStore) GetByCode(ctx context.Context, code string) (*entities.Product, error) {
	code = strings.TrimSpace(code)
	row := r.s.q.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products p WHERE p.code = ?`, code)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product code %q: %w", code, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

// Create inserts one product
func (r *productStore) Create(ctx context.Context, p *entities.Product) (entities.ProductID, error) {
	res, err := r.s.q.ExecContext(ctx,
		`INSERT INTO products
		   (name, description, brand, code, wholesale_price, profit_percentage, sale_price, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name,
		p.Description,
		p.Brand,
		p.Code,
		entities.Cents(p.WholesalePrice),
		entities.Cents(p.ProfitPercentage),
		entities.Cents(p.SalePrice),
		toMillis(r.s.stamp(p.CreatedAt)),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("product code %q: %w", p.Code, repositories.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("create product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("product id: %w", err)
	}
	return entities.ProductID(id), nil
}

// CreateMany inserts every product in one transaction
func (r *productStore) CreateMany(ctx context.Context, products []*entities.Product) (int, error) {
	err := r.s.WithinTx(ctx, func(tx repositories.Store) error {
		repo := tx.Products()
		for i, p := range products {
			if _, err := repo.Create(ctx, p); err != nil {
				return fmt.Errorf("product %d of %d: %w", i+1, len(products), err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(products), nil
}

// Update overwrites the editable fields of a product
func (r *productStore) Update(ctx context.Context, id entities.ProductID, p *entities.Product) (int64, error) {
	res, err := r.s.q.ExecContext(ctx,
		`UPDATE products SET
		   name = ?, description = ?, brand = ?, code = ?,
		   wholesale_price = ?, profit_percentage = ?, sale_price = ?
		 WHERE id = ?`,
		p.Name,
		p.Description,
		p.Brand,
		p.Code,
		entities.Cents(p.WholesalePrice),
		entities.Cents(p.ProfitPercentage),
		entities.Cents(p.SalePrice),
		int64(id),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("product code %q: %w", p.Code, repositories.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("update product: %w", err)
	}
	return rowsAffected(res)
}

// Delete removes one product
func (r *productStore) Delete(ctx context.Context, id entities.ProductID) (int64, error) {
	res, err := r.s.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, int64(id))
	if err != nil {
		return 0, fmt.Errorf("delete product: %w", err)
	}
	return rowsAffected(res)
}

// Count returns the number of products
func (r *productStore) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// GetAllWithStock returns products that have units on hand
func (r *productStore) GetAllWithStock(ctx context.Context) ([]*entities.ProductWithStock, error) {
	return r.queryWithStock(ctx,
		`SELECT `+productColumns+`, s.id, s.quantity, s.min_alert
		   FROM products p
		  INNER JOIN stock s ON s.product_id = p.id
		  WHERE s.quantity > 0
		  ORDER BY p.id`)
}

// ListWithStock returns every product and its stock row when present
func (r *productStore) ListWithStock(ctx context.Context) ([]*entities.ProductWithStock, error) {
	return r.queryWithStock(ctx,
		`SELECT `+productColumns+`, s.id, s.quantity, s.min_alert
		   FROM products p
		   LEFT JOIN stock s ON s.product_id = p.id
		  ORDER BY p.id`)
}

func (r *productStore) queryWithStock(ctx context.Context, query string) ([]*entities.ProductWithStock, error) {
	rows, err := r.s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products with stock: %w", err)
	}
	defer rows.Close()

	var out []*entities.ProductWithStock
	for rows.Next() {
		var stockID, quantity, minAlert sql.NullInt64
		p, err := scanProduct(rows, &stockID, &quantity, &minAlert)
		if err != nil {
			return nil, fmt.Errorf("scan product with stock: %w", err)
		}
		out = append(out, &entities.ProductWithStock{
			Product:  *p,
			StockID:  stockID.Int64,
			Quantity: quantity.Int64,
			MinAlert: minAlert.Int64,
			HasStock: stockID.Valid,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products with stock: %w", err)
	}
	return out, nil
}
