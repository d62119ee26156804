package commands

import (
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/application/services"
	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/events"
	"github.com/Garbi-Collector/stokea2/pkg/interfaces/cli/output"
)

// Config holds everything the commands need to run
type Config struct {
	Store    repositories.Store
	Events   events.Bus
	Logger   *log.Logger
	Output   output.Config
	Out      io.Writer
	Location *time.Location
	Now      func() time.Time
}

// app bundles the application services behind the commands
type app struct {
	config    Config
	out       io.Writer
	printer   *output.Printer
	sessions  *services.CashSessionService
	movements *services.MovementService
	sales     *services.SaleService
	catalog   *services.CatalogService
	users     *services.UserService
	calendar  *services.CalendarService
	dashboard *services.DashboardService
}

func newApp(config Config) (*app, error) {
	if config.Store == nil {
		return nil, fmt.Errorf("no store configured")
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	printer, err := output.NewPrinter(config.Out, config.Output)
	if err != nil {
		return nil, err
	}

	deps := services.Dependencies{
		Store:  config.Store,
		Events: config.Events,
		Now:    config.Now,
		Logger: config.Logger,
	}
	sessions := services.NewCashSessionService(deps)
	users := services.NewUserService(deps)
	return &app{
		config:    config,
		out:       config.Out,
		printer:   printer,
		sessions:  sessions,
		movements: services.NewMovementService(deps, sessions),
		sales:     services.NewSaleService(deps, sessions),
		catalog:   services.NewCatalogService(deps),
		users:     users,
		calendar:  services.NewCalendarService(deps, users),
		dashboard: services.NewDashboardService(deps, users),
	}, nil
}

func (a *app) now() time.Time {
	return a.config.Now().In(a.config.Location)
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// parseAmount accepts 1234.50 or 1234,50
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// parseClockArg parses HH:MM into hour and minute
func parseClockArg(s string) (int, int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}

func productID(s string) (entities.ProductID, error) {
	id, err := parseID(s)
	return entities.ProductID(id), err
}

func sessionID(s string) (entities.SessionID, error) {
	id, err := parseID(s)
	return entities.SessionID(id), err
}
