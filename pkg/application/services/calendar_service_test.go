package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

func TestCalendarService_Month(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	users := NewUserService(f.deps)
	svc := NewCalendarService(f.deps, users)
	store := f.store

	if err := users.UpdateMoneyGoal(ctx, decimal.NewFromInt(1000)); err != nil {
		t.Fatalf("Failed to set goal: %v", err)
	}

	f.clock.Set(time.Date(2026, time.February, 27, 11, 0, 0, 0, time.UTC))

	// Feb 25: session with a big day; Feb 26: session with a small day.
	high := time.Date(2026, time.February, 25, 10, 0, 0, 0, time.UTC)
	low := time.Date(2026, time.February, 26, 10, 0, 0, 0, time.UTC)
	for _, day := range []struct {
		at    time.Time
		total int64
	}{{high, 1500}, {low, 200}} {
		id, err := store.CashSessions().Open(ctx, decimal.Zero, day.at)
		if err != nil {
			t.Fatalf("Failed to open: %v", err)
		}
		if _, err := store.Sales().Create(ctx, &entities.Sale{SessionID: id, Total: decimal.NewFromInt(day.total), CreatedAt: day.at}); err != nil {
			t.Fatalf("Failed to create sale: %v", err)
		}
		if _, err := store.CashSessions().Close(ctx, id, decimal.NewFromInt(day.total), day.at.Add(8*time.Hour)); err != nil {
			t.Fatalf("Failed to close: %v", err)
		}
	}

	cal, err := svc.Month(ctx, 2026, time.February, time.UTC)
	if err != nil {
		t.Fatalf("Month failed: %v", err)
	}
	if cal.Name != "febrero" {
		t.Errorf("Expected febrero, got %s", cal.Name)
	}
	if len(cal.Days) != 28 {
		t.Errorf("Expected 28 days for February 2026, got %d", len(cal.Days))
	}

	statuses := make(map[string]entities.DayStatus)
	for _, d := range cal.Days {
		statuses[d.Date.Format("2006-01-02")] = d.Status
	}

	tests := []struct {
		day  string
		want entities.DayStatus
	}{
		{"2026-02-24", entities.DayPastNoSession},
		{"2026-02-25", entities.DayPastHigh},
		{"2026-02-26", entities.DayPastLow},
		{"2026-02-27", entities.DayToday},
		{"2026-02-28", entities.DayFuture},
	}
	for _, tt := range tests {
		if got := statuses[tt.day]; got != tt.want {
			t.Errorf("Day %s: expected %s, got %s", tt.day, tt.want, got)
		}
	}

	if !cal.Sales["2026-02-25"].Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Expected 1500 sold on Feb 25, got %s", cal.Sales["2026-02-25"])
	}

	if _, err := svc.Month(ctx, 2026, 13, time.UTC); err == nil {
		t.Error("Expected error for month 13")
	}
}

func TestCalendarService_NoGoalMeansLow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewCalendarService(f.deps, NewUserService(f.deps))

	day := time.Date(2026, time.February, 20, 12, 0, 0, 0, time.UTC)
	id, _ := f.store.CashSessions().Open(ctx, decimal.Zero, day)
	_, _ = f.store.Sales().Create(ctx, &entities.Sale{SessionID: id, Total: decimal.NewFromInt(99999), CreatedAt: day})

	cal, err := svc.Month(ctx, 2026, time.February, time.UTC)
	if err != nil {
		t.Fatalf("Month failed: %v", err)
	}
	for _, d := range cal.Days {
		if d.Date.Equal(entities.StartOfDay(day)) && d.Status != entities.DayPastLow {
			t.Errorf("Expected past-low without a goal, got %s", d.Status)
		}
	}
}
