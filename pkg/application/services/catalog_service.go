package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Garbi-Collector/stokea2/pkg/application/dto"
	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
	domainservices "github.com/Garbi-Collector/stokea2/pkg/domain/services"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/events"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/repositories/csv"
)

// ErrInvalidImport is returned when an import file has validation errors.
// Nothing is written in that case.
var ErrInvalidImport = errors.New("import file has invalid rows")

// CatalogService manages products and their stock
type CatalogService struct {
	deps   Dependencies
	loader *csv.Loader
}

// NewCatalogService creates a catalog service
func NewCatalogService(deps Dependencies) *CatalogService {
	return &CatalogService{deps: deps, loader: csv.NewLoader()}
}

func productFromInput(in dto.ProductInput) (*entities.Product, error) {
	profit, sale, err := domainservices.ResolvePricing(in.WholesalePrice, in.ProfitPercentage, in.SalePrice)
	if err != nil {
		return nil, err
	}
	return entities.NewProduct(in.Name, in.Description, in.Brand, in.Code, in.WholesalePrice, profit, sale)
}

// CreateProduct inserts a product together with its stock row
func (s *CatalogService) CreateProduct(ctx context.Context, in dto.ProductInput) (product *entities.ProductWithStock, err error) {
	ctx, span := tracer.Start(ctx, "CatalogService.CreateProduct")
	defer func() { endSpan(span, err) }()

	p, err := productFromInput(in)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = s.deps.now()

	err = s.deps.Store.WithinTx(ctx, func(tx repositories.Store) error {
		id, err := tx.Products().Create(ctx, p)
		if err != nil {
			return err
		}
		p.ID = id
		st, err := entities.NewStock(id, in.Quantity, in.MinAlert)
		if err != nil {
			return err
		}
		if st.ID, err = tx.Stock().Create(ctx, st); err != nil {
			return err
		}
		product = &entities.ProductWithStock{
			Product:  *p,
			StockID:  st.ID,
			Quantity: st.Quantity,
			MinAlert: st.MinAlert,
			HasStock: true,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("product.id", int64(p.ID)))
	s.deps.publish(events.NewProductEvent(events.ProductCreatedEvent, p.ID, p.Code))
	return product, nil
}

// UpdateProduct overwrites a product and its stock row, creating the row if missing
func (s *CatalogService) UpdateProduct(ctx context.Context, id entities.ProductID, in dto.ProductInput) (err error) {
	ctx, span := tracer.Start(ctx, "CatalogService.UpdateProduct",
		trace.WithAttributes(attribute.Int64("product.id", int64(id))))
	defer func() { endSpan(span, err) }()

	p, err := productFromInput(in)
	if err != nil {
		return err
	}

	err = s.deps.Store.WithinTx(ctx, func(tx repositories.Store) error {
		changes, err := tx.Products().Update(ctx, id, p)
		if err != nil {
			return err
		}
		if changes == 0 {
			return fmt.Errorf("product %d: %w", id, repositories.ErrNotFound)
		}
		return upsertStock(ctx, tx, id, in.Quantity, in.MinAlert)
	})
	if err != nil {
		return err
	}

	s.deps.publish(events.NewProductEvent(events.ProductUpdatedEvent, id, p.Code))
	return nil
}

// AdjustStock sets the quantity and alert level of a product
func (s *CatalogService) AdjustStock(ctx context.Context, id entities.ProductID, quantity, minAlert int64) (err error) {
	ctx, span := tracer.Start(ctx, "CatalogService.AdjustStock",
		trace.WithAttributes(attribute.Int64("product.id", int64(id))))
	defer func() { endSpan(span, err) }()

	var code string
	err = s.deps.Store.WithinTx(ctx, func(tx repositories.Store) error {
		p, err := tx.Products().GetByID(ctx, id)
		if err != nil {
			return err
		}
		code = p.Code
		return upsertStock(ctx, tx, id, quantity, minAlert)
	})
	if err != nil {
		return err
	}

	s.deps.publish(events.NewProductEvent(events.ProductUpdatedEvent, id, code))
	return nil
}

func upsertStock(ctx context.Context, tx repositories.Store, id entities.ProductID, quantity, minAlert int64) error {
	st, err := entities.NewStock(id, quantity, minAlert)
	if err != nil {
		return err
	}
	existing, err := tx.Stock().GetByProduct(ctx, id)
	switch {
	case err == nil:
		_, err = tx.Stock().Update(ctx, existing.ID, st.Quantity, st.MinAlert)
		return err
	case errors.Is(err, repositories.ErrNotFound):
		_, err = tx.Stock().Create(ctx, st)
		return err
	default:
		return err
	}
}

// DeleteProduct removes a product and its stock row
func (s *CatalogService) DeleteProduct(ctx context.Context, id entities.ProductID) (err error) {
	ctx, span := tracer.Start(ctx, "CatalogService.DeleteProduct",
		trace.WithAttributes(attribute.Int64("product.id", int64(id))))
	defer func() { endSpan(span, err) }()

	var code string
	err = s.deps.Store.WithinTx(ctx, func(tx repositories.Store) error {
		p, err := tx.Products().GetByID(ctx, id)
		if err != nil {
			return err
		}
		code = p.Code
		if _, err := tx.Stock().DeleteByProduct(ctx, id); err != nil {
			return err
		}
		_, err = tx.Products().Delete(ctx, id)
		return err
	})
	if err != nil {
		return err
	}

	s.deps.publish(events.NewProductEvent(events.ProductDeletedEvent, id, code))
	return nil
}

// Get returns one product with its stock
func (s *CatalogService) Get(ctx context.Context, id entities.ProductID) (product *entities.ProductWithStock, err error) {
	ctx, span := tracer.Start(ctx, "CatalogService.Get",
		trace.WithAttributes(attribute.Int64("product.id", int64(id))))
	defer func() { endSpan(span, err) }()

	p, err := s.deps.Store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product = &entities.ProductWithStock{Product: *p}
	st, err := s.deps.Store.Stock().GetByProduct(ctx, id)
	switch {
	case err == nil:
		product.StockID = st.ID
		product.Quantity = st.Quantity
		product.MinAlert = st.MinAlert
		product.HasStock = true
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}
	return product, nil
}

// Count returns the number of products
func (s *CatalogService) Count(ctx context.Context) (count int, err error) {
	ctx, span := tracer.Start(ctx, "CatalogService.Count")
	defer func() { endSpan(span, err) }()

	return s.deps.Store.Products().Count(ctx)
}

// List returns the catalog filtered and sorted by q
func (s *CatalogService) List(ctx context.Context, q dto.ProductQuery) (products []*entities.ProductWithStock, err error) {
	ctx, span := tracer.Start(ctx, "CatalogService.List")
	defer func() { endSpan(span, err) }()

	field, err := domainservices.ParseSortField(q.SortBy)
	if err != nil {
		return nil, err
	}

	if q.InStockOnly {
		products, err = s.deps.Store.Products().GetAllWithStock(ctx)
	} else {
		products, err = s.deps.Store.Products().ListWithStock(ctx)
	}
	if err != nil {
		return nil, err
	}

	products = domainservices.SearchProducts(products, q.Search)
	if q.LowOnly {
		products = domainservices.LowStock(products)
	}
	domainservices.SortProducts(products, field, q.Descending)

	span.SetAttributes(attribute.Int("products.count", len(products)))
	return products, nil
}

// LowStock lists products at or below their alert level
func (s *CatalogService) LowStock(ctx context.Context) ([]*entities.ProductWithStock, error) {
	return s.List(ctx, dto.ProductQuery{LowOnly: true, SortBy: string(domainservices.SortByQuantity)})
}

// LoadForSale fetches products and stock rows concurrently and joins them,
// keeping only products with a stock row.
func (s *CatalogService) LoadForSale(ctx context.Context) (products []*entities.ProductWithStock, err error) {
	ctx, span := tracer.Start(ctx, "CatalogService.LoadForSale")
	defer func() { endSpan(span, err) }()

	var (
		all    []*entities.Product
		stocks []*entities.Stock
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = s.deps.Store.Products().GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stocks, err = s.deps.Store.Stock().GetAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byProduct := make(map[entities.ProductID]*entities.Stock, len(stocks))
	for _, st := range stocks {
		byProduct[st.ProductID] = st
	}
	for _, p := range all {
		st, ok := byProduct[p.ID]
		if !ok {
			continue
		}
		products = append(products, &entities.ProductWithStock{
			Product:  *p,
			StockID:  st.ID,
			Quantity: st.Quantity,
			MinAlert: st.MinAlert,
			HasStock: true,
		})
	}
	return products, nil
}

// Import validates a CSV product file and creates every row in one
// transaction. When any row is invalid nothing is written and the result
// is returned with ErrInvalidImport.
func (s *CatalogService) Import(ctx context.Context, r io.Reader) (result *dto.ImportResult, err error) {
	ctx, span := tracer.Start(ctx, "CatalogService.Import")
	defer func() { endSpan(span, err) }()

	result, err = s.loader.LoadProducts(r)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("import.total_rows", result.TotalRows),
		attribute.Int("import.invalid_rows", result.InvalidRows),
	)
	if !result.Success() {
		return result, ErrInvalidImport
	}

	now := s.deps.now()
	products := make([]*entities.Product, 0, len(result.Rows))
	for _, row := range result.Rows {
		row.Product.CreatedAt = now
		products = append(products, row.Product)
	}

	err = s.deps.Store.WithinTx(ctx, func(tx repositories.Store) error {
		created, err := tx.Products().CreateMany(ctx, products)
		if err != nil {
			return err
		}
		for _, row := range result.Rows {
			p, err := tx.Products().GetByCode(ctx, row.Product.Code)
			if err != nil {
				return fmt.Errorf("row %d: %w", row.Line, err)
			}
			if err := upsertStock(ctx, tx, p.ID, row.Quantity, row.MinAlert); err != nil {
				return fmt.Errorf("row %d: %w", row.Line, err)
			}
		}
		result.Imported = created
		return nil
	})
	if err != nil {
		return result, err
	}

	s.deps.publish(events.NewProductsImportedEvent(result.Imported))
	return result, nil
}

// Export writes the catalog in the import layout
func (s *CatalogService) Export(ctx context.Context, w io.Writer) (err error) {
	ctx, span := tracer.Start(ctx, "CatalogService.Export")
	defer func() { endSpan(span, err) }()

	products, err := s.deps.Store.Products().ListWithStock(ctx)
	if err != nil {
		return err
	}
	return s.loader.WriteProducts(w, products)
}
