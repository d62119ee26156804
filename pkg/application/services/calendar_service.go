package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Garbi-Collector/stokea2/pkg/application/dto"
	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

const dayKey = "2006-01-02"

// CalendarService builds the monthly performance calendar
type CalendarService struct {
	deps  Dependencies
	users *UserService
}

// NewCalendarService creates a calendar service
func NewCalendarService(deps Dependencies, users *UserService) *CalendarService {
	return &CalendarService{deps: deps, users: users}
}

// Month returns the grid for year/month in loc with a status per day.
// Past days without a session are past-no-session; past days whose sales
// reach the money goal are past-high; other past days are past-low.
func (s *CalendarService) Month(ctx context.Context, year int, month time.Month, loc *time.Location) (cal *dto.CalendarMonth, err error) {
	ctx, span := tracer.Start(ctx, "CalendarService.Month",
		trace.WithAttributes(attribute.Int("calendar.year", year), attribute.Int("calendar.month", int(month))))
	defer func() { endSpan(span, err) }()

	if month < time.January || month > time.December {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if loc == nil {
		loc = time.Local
	}

	var (
		cfg      *entities.UserConfig
		sessions []*entities.CashSession
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
		sessions, err = s.deps.Store.CashSessions().GetAll(gctx)
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

	opened := make(map[string]bool, len(sessions))
	for _, session := range sessions {
		opened[session.OpenedAt.In(loc).Format(dayKey)] = true
	}
	totals := SalesByDay(sales, loc)
	today := entities.StartOfDay(s.deps.now().In(loc))

	days := entities.MonthGrid(year, month, loc)
	for i := range days {
		key := days[i].Date.Format(dayKey)
		switch {
		case days[i].Date.After(today):
			days[i].Status = entities.DayFuture
		case days[i].Date.Equal(today):
			days[i].Status = entities.DayToday
		case !opened[key]:
			days[i].Status = entities.DayPastNoSession
		case cfg.HasMoneyGoal() && totals[key].GreaterThanOrEqual(cfg.MoneyGoal):
			days[i].Status = entities.DayPastHigh
		default:
			days[i].Status = entities.DayPastLow
		}
	}

	return &dto.CalendarMonth{
		Year:  year,
		Month: month,
		Name:  entities.MonthName(month),
		Days:  days,
		Sales: totals,
	}, nil
}

// SalesByDay sums sale totals per calendar day in loc, keyed as 2006-01-02
func SalesByDay(sales []*entities.Sale, loc *time.Location) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, sale := range sales {
		key := sale.CreatedAt.In(loc).Format(dayKey)
		totals[key] = totals[key].Add(sale.Total)
	}
	return totals
}
