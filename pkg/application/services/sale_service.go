package services

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
	domainservices "github.com/Garbi-Collector/stokea2/pkg/domain/services"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/events"
)

// ErrEmptyCart is returned when checking out a cart with no lines
var ErrEmptyCart = errors.New("cart is empty")

// SaleDescription labels the cash movement written for each sale
const SaleDescription = "Venta #%d"

// SaleService turns carts into sales
type SaleService struct {
	deps     Dependencies
	sessions *CashSessionService
}

// NewSaleService creates a sale service on top of the session service
func NewSaleService(deps Dependencies, sessions *CashSessionService) *SaleService {
	return &SaleService{deps: deps, sessions: sessions}
}

// Checkout records the cart as one sale. The sale, its items, the stock
// decrements, the session balance and the SALE movement are written in a
// single transaction.
func (s *SaleService) Checkout(ctx context.Context, cart *domainservices.Cart) (sale *entities.Sale, err error) {
	ctx, span := tracer.Start(ctx, "SaleService.Checkout")
	defer func() { endSpan(span, err) }()

	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	now := s.deps.now()
	var items []entities.SaleItem
	err = s.sessions.withSession(ctx, now, false, func(tx repositories.Store, session *entities.CashSession) error {
		lines := make([]*entities.SaleItem, 0, len(cart.Lines()))
		for _, line := range cart.Lines() {
			item, err := entities.NewSaleItem(line.Product.ID, line.Quantity, line.Product.SalePrice)
			if err != nil {
				return fmt.Errorf("%s: %w", line.Product.Name, err)
			}
			lines = append(lines, item)
		}

		sale = &entities.Sale{SessionID: session.ID, Total: entities.SaleTotal(lines), CreatedAt: now}
		id, err := tx.Sales().Create(ctx, sale)
		if err != nil {
			return err
		}
		sale.ID = id

		for _, item := range lines {
			item.SaleID = id
			if item.ID, err = tx.SaleItems().Create(ctx, item); err != nil {
				return err
			}
			decremented, err := tx.Stock().Decrement(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if decremented == 0 {
				return fmt.Errorf("product %d: %w", item.ProductID, domainservices.ErrInsufficientStock)
			}
			items = append(items, *item)
		}

		if err := applyDelta(ctx, tx, session.ID, sale.Total); err != nil {
			return err
		}

		if sale.Total.IsPositive() {
			m, err := entities.NewCashMovement(session.ID, entities.MovementSale, sale.Total, fmt.Sprintf(SaleDescription, id), now)
			if err != nil {
				return err
			}
			if _, err := tx.CashMovements().Create(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("sale.id", int64(sale.ID)),
		attribute.Int("sale.items", len(items)),
	)
	cart.Clear()
	s.deps.publish(events.NewSaleRecordedEvent(*sale, items))
	return sale, nil
}

// GetBySession lists the sales of one session, newest first
func (s *SaleService) GetBySession(ctx context.Context, id entities.SessionID) (sales []*entities.Sale, err error) {
	ctx, span := tracer.Start(ctx, "SaleService.GetBySession",
		trace.WithAttributes(attribute.Int64("session.id", int64(id))))
	defer func() { endSpan(span, err) }()

	return s.deps.Store.Sales().GetBySession(ctx, id)
}

// GetAll lists every sale, newest first
func (s *SaleService) GetAll(ctx context.Context) (sales []*entities.Sale, err error) {
	ctx, span := tracer.Start(ctx, "SaleService.GetAll")
	defer func() { endSpan(span, err) }()

	return s.deps.Store.Sales().GetAll(ctx)
}

// Get returns one sale
func (s *SaleService) Get(ctx context.Context, id entities.SaleID) (sale *entities.Sale, err error) {
	ctx, span := tracer.Start(ctx, "SaleService.Get",
		trace.WithAttributes(attribute.Int64("sale.id", int64(id))))
	defer func() { endSpan(span, err) }()

	return s.deps.Store.Sales().GetByID(ctx, id)
}

// Items lists the lines of a sale
func (s *SaleService) Items(ctx context.Context, id entities.SaleID) (items []*entities.SaleItem, err error) {
	ctx, span := tracer.Start(ctx, "SaleService.Items",
		trace.WithAttributes(attribute.Int64("sale.id", int64(id))))
	defer func() { endSpan(span, err) }()

	if _, err := s.deps.Store.Sales().GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.deps.Store.SaleItems().GetBySale(ctx, id)
}
