package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Garbi-Collector/stokea2/pkg/application/dto"
	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
	domainservices "github.com/Garbi-Collector/stokea2/pkg/domain/services"
)

// DashboardService assembles the start screen summary
type DashboardService struct {
	deps  Dependencies
	users *UserService
}

// NewDashboardService creates a dashboard service
func NewDashboardService(deps Dependencies, users *UserService) *DashboardService {
	return &DashboardService{deps: deps, users: users}
}

// Summary gathers owner, catalog, session and today's sales figures
func (s *DashboardService) Summary(ctx context.Context, loc *time.Location) (summary *dto.DashboardSummary, err error) {
	ctx, span := tracer.Start(ctx, "DashboardService.Summary")
	defer func() { endSpan(span, err) }()

	if loc == nil {
		loc = time.Local
	}
	now := s.deps.now().In(loc)

	var (
		cfg      *entities.UserConfig
		products []*entities.ProductWithStock
		session  *entities.CashSession
		sales    []*entities.Sale
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cfg, err = s.users.Get(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.deps.Store.Products().ListWithStock(gctx)
		return err
	})
	g.Go(func() error {
		open, err := s.deps.Store.CashSessions().GetOpen(gctx)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		session = open
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = s.deps.Store.Sales().GetAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary = &dto.DashboardSummary{
		OwnerName:     cfg.Name,
		Greeting:      entities.Greeting(now),
		IsFirstTime:   cfg.IsFirstTime,
		ProductCount:  len(products),
		LowStockCount: len(domainservices.LowStock(products)),
		Session:       session,
		CurrentAmount: decimal.Zero,
		TodaySales:    SalesByDay(sales, loc)[now.Format(dayKey)],
		MoneyGoal:     cfg.MoneyGoal,
		ShopOpen:      cfg.Schedule.IsOpenAt(now),
		GeneratedAt:   now,
	}
	if session != nil {
		summary.CurrentAmount = session.CurrentAmount
	}
	return summary, nil
}
