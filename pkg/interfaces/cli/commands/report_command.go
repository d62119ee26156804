package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	domainservices "github.com/Garbi-Collector/stokea2/pkg/domain/services"
)

type historyCommand struct {
	*app
}

func (c *historyCommand) Execute(ctx context.Context, args []string) error {
	fs := c.newFlagSet("history")
	var (
		text     = fs.String("q", "", "search in descriptions")
		kind     = fs.String("type", "ALL", "ALL, IN, OUT or SALE")
		minimum  = fs.String("min", "", "minimum amount")
		maximum  = fs.String("max", "", "maximum amount")
		from     = fs.String("from", "", "first day, YYYY-MM-DD")
		fromTime = fs.String("from-time", "", "start time on the first day, HH:MM")
		to       = fs.String("to", "", "last day, YYYY-MM-DD")
		toTime   = fs.String("to-time", "", "end time on the last day, HH:MM")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter, err := c.buildFilter(*text, *kind, *minimum, *maximum, *from, *fromTime, *to, *toTime)
	if err != nil {
		return err
	}
	days, err := c.movements.History(ctx, filter, c.config.Location)
	if err != nil {
		return err
	}
	return c.printer.History(days)
}

func (c *historyCommand) buildFilter(text, kind, minimum, maximum, from, fromTime, to, toTime string) (domainservices.MovementFilter, error) {
	filter := domainservices.MovementFilter{Text: text}

	if k := strings.ToUpper(strings.TrimSpace(kind)); k != "" && k != "ALL" {
		typ, err := entities.ParseMovementType(k)
		if err != nil {
			return filter, err
		}
		filter.Type = typ
	}

	bound := func(s string) (*decimal.Decimal, error) {
		if s == "" {
			return nil, nil
		}
		d, err := parseAmount(s)
		if err != nil {
			return nil, err
		}
		return &d, nil
	}
	var err error
	if filter.AmountMin, err = bound(minimum); err != nil {
		return filter, err
	}
	if filter.AmountMax, err = bound(maximum); err != nil {
		return filter, err
	}

	if from != "" {
		day, err := time.ParseInLocation("2006-01-02", from, c.config.Location)
		if err != nil {
			return filter, fmt.Errorf("invalid -from date %q", from)
		}
		if filter.From, err = domainservices.RangeStart(day, fromTime); err != nil {
			return filter, err
		}
	}
	if to != "" {
		day, err := time.ParseInLocation("2006-01-02", to, c.config.Location)
		if err != nil {
			return filter, fmt.Errorf("invalid -to date %q", to)
		}
		if filter.To, err = domainservices.RangeEnd(day, toTime); err != nil {
			return filter, err
		}
	}
	return filter, nil
}

type calendarCommand struct {
	*app
}

func (c *calendarCommand) Execute(ctx context.Context, args []string) error {
	now := c.now()
	fs := c.newFlagSet("calendar")
	year := fs.Int("year", now.Year(), "year")
	month := fs.Int("month", int(now.Month()), "month, 1-12")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cal, err := c.calendar.Month(ctx, *year, time.Month(*month), c.config.Location)
	if err != nil {
		return err
	}
	return c.printer.Calendar(cal)
}

type summaryCommand struct {
	*app
}

func (c *summaryCommand) Execute(ctx context.Context, args []string) error {
	summary, err := c.dashboard.Summary(ctx, c.config.Location)
	if err != nil {
		return err
	}
	return c.printer.Summary(summary)
}
