package services

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

// MovementFilter narrows the movement history. Zero values disable a criterion.
type MovementFilter struct {
	Text string
	// Type is empty for all movement types
	Type      entities.MovementType
	AmountMin *decimal.Decimal
	AmountMax *decimal.Decimal
	// From and To bound CreatedAt inclusively
	From time.Time
	To   time.Time
}

// Matches reports whether m satisfies every configured criterion
func (f MovementFilter) Matches(m *entities.CashMovement) bool {
	if f.Text != "" && !strings.Contains(strings.ToLower(m.Description), strings.ToLower(f.Text)) {
		return false
	}
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.AmountMin != nil && m.Amount.LessThan(*f.AmountMin) {
		return false
	}
	if f.AmountMax != nil && m.Amount.GreaterThan(*f.AmountMax) {
		return false
	}
	if !f.From.IsZero() && m.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && m.CreatedAt.After(f.To) {
		return false
	}
	return true
}

// RangeStart builds the lower bound of a date filter. An empty clock means
// start of day; otherwise the minute given as HH:MM.
func RangeStart(date time.Time, clock string) (time.Time, error) {
	day := entities.StartOfDay(date)
	if clock == "" {
		return day, nil
	}
	h, m, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), nil
}

// RangeEnd builds the upper bound of a date filter. An empty clock means the
// last instant of the day; otherwise the last instant of the HH:MM minute.
func RangeEnd(date time.Time, clock string) (time.Time, error) {
	day := entities.StartOfDay(date)
	if clock == "" {
		return day.AddDate(0, 0, 1).Add(-time.Millisecond), nil
	}
	h, m, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m+1)*time.Minute - time.Millisecond), nil
}

func parseClock(clock string) (int, int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

// DayGroup collects the movements of one calendar day
type DayGroup struct {
	Date      time.Time
	Movements []*entities.CashMovement
	TotalIn   decimal.Decimal
	TotalOut  decimal.Decimal
	TotalSale decimal.Decimal
}

// Net is money in plus sales minus money out
func (g *DayGroup) Net() decimal.Decimal {
	return g.TotalIn.Add(g.TotalSale).Sub(g.TotalOut)
}

// GroupByDay buckets movements by calendar day in loc. Days are ordered newest
// first and so are the movements inside each day.
func GroupByDay(movements []*entities.CashMovement, loc *time.Location) []*DayGroup {
	byDay := make(map[string]*DayGroup)
	for _, m := range movements {
		day := entities.StartOfDay(m.CreatedAt.In(loc))
		key := day.Format("2006-01-02")
		g, ok := byDay[key]
		if !ok {
			g = &DayGroup{Date: day, TotalIn: decimal.Zero, TotalOut: decimal.Zero, TotalSale: decimal.Zero}
			byDay[key] = g
		}
		g.Movements = append(g.Movements, m)
		switch m.Type {
		case entities.MovementIn:
			g.TotalIn = g.TotalIn.Add(m.Amount)
		case entities.MovementOut:
			g.TotalOut = g.TotalOut.Add(m.Amount)
		case entities.MovementSale:
			g.TotalSale = g.TotalSale.Add(m.Amount)
		}
	}

	groups := make([]*DayGroup, 0, len(byDay))
	for _, g := range byDay {
		sort.SliceStable(g.Movements, func(i, j int) bool {
			return g.Movements[i].CreatedAt.After(g.Movements[j].CreatedAt)
		})
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})
	return groups
}

// FilterMovements keeps the movements that match f
func FilterMovements(movements []*entities.CashMovement, f MovementFilter) []*entities.CashMovement {
	var out []*entities.CashMovement
	for _, m := range movements {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}
