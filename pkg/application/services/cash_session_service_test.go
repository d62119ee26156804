package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/events"
)

func TestCashSessionService_OpenRefusesSecondSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewCashSessionService(f.deps)

	session, err := svc.Open(ctx, decimal.NewFromInt(5000))
	if err != nil {
		t.Fatalf("Failed to open session: %v", err)
	}
	if !session.CurrentAmount.Equal(decimal.NewFromInt(5000)) || !session.IsOpen() {
		t.Errorf("Unexpected session %+v", session)
	}

	if _, err := svc.Open(ctx, decimal.NewFromInt(10)); !errors.Is(err, ErrSessionAlreadyOpen) {
		t.Errorf("Expected ErrSessionAlreadyOpen, got %v", err)
	}
	if _, err := svc.Open(ctx, decimal.NewFromInt(-1)); err == nil {
		t.Error("Expected error for negative start amount")
	}
}

func TestCashSessionService_CloseAndUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewCashSessionService(f.deps)

	if _, err := svc.GetOpen(ctx); !errors.Is(err, ErrNoOpenSession) {
		t.Fatalf("Expected ErrNoOpenSession, got %v", err)
	}

	session, _ := svc.Open(ctx, decimal.NewFromInt(100))
	if err := svc.UpdateCurrentAmount(ctx, session.ID, decimal.NewFromInt(50)); err != nil {
		t.Fatalf("Failed to update amount: %v", err)
	}
	open, _ := svc.GetOpen(ctx)
	if !open.CurrentAmount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("Expected 150, got %s", open.CurrentAmount)
	}

	if err := svc.Close(ctx, session.ID, decimal.NewFromInt(140)); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}
	if err := svc.Close(ctx, session.ID, decimal.NewFromInt(140)); !errors.Is(err, ErrNoOpenSession) {
		t.Errorf("Expected ErrNoOpenSession closing twice, got %v", err)
	}
	if err := svc.UpdateCurrentAmount(ctx, session.ID, decimal.NewFromInt(1)); !errors.Is(err, ErrNoOpenSession) {
		t.Errorf("Expected ErrNoOpenSession updating a closed session, got %v", err)
	}

	types := f.eventTypes()
	if countType(types, events.SessionOpenedEvent) != 1 || countType(types, events.SessionClosedEvent) != 1 {
		t.Errorf("Expected one opened and one closed event, got %v", types)
	}
}

func TestCashSessionService_CloseAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewCashSessionService(f.deps)

	if _, err := svc.Open(ctx, decimal.NewFromInt(100)); err != nil {
		t.Fatalf("Failed to open: %v", err)
	}
	closed, err := svc.CloseAll(ctx, decimal.NewFromInt(80))
	if err != nil || closed != 1 {
		t.Fatalf("CloseAll = %d, %v", closed, err)
	}
	closed, err = svc.CloseAll(ctx, decimal.NewFromInt(80))
	if err != nil || closed != 0 {
		t.Fatalf("Expected nothing left to close, got %d, %v", closed, err)
	}
}

func TestCashSessionService_EnsureSession(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		setup     func(t *testing.T, svc *CashSessionService, f *fixture)
		wantStart string
		wantTotal int
	}{
		{
			name:      "first_ever_session_starts_at_zero",
			setup:     func(t *testing.T, svc *CashSessionService, f *fixture) {},
			wantStart: "0",
			wantTotal: 1,
		},
		{
			name: "seeded_from_last_closed_session",
			setup: func(t *testing.T, svc *CashSessionService, f *fixture) {
				f.clock.Set(monday.AddDate(0, 0, -1))
				s, err := svc.Open(ctx, decimal.NewFromInt(100))
				if err != nil {
					t.Fatalf("Failed to open: %v", err)
				}
				if err := svc.Close(ctx, s.ID, decimal.NewFromInt(730)); err != nil {
					t.Fatalf("Failed to close: %v", err)
				}
				f.clock.Set(monday)
			},
			wantStart: "730",
			wantTotal: 2,
		},
		{
			name: "stale_open_session_rolls_over",
			setup: func(t *testing.T, svc *CashSessionService, f *fixture) {
				f.clock.Set(monday.AddDate(0, 0, -3))
				s, err := svc.Open(ctx, decimal.NewFromInt(200))
				if err != nil {
					t.Fatalf("Failed to open: %v", err)
				}
				if err := svc.UpdateCurrentAmount(ctx, s.ID, decimal.RequireFromString("55.25")); err != nil {
					t.Fatalf("Failed to update: %v", err)
				}
				f.clock.Set(monday)
			},
			wantStart: "255.25",
			wantTotal: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			svc := NewCashSessionService(f.deps)
			tt.setup(t, svc, f)

			session, err := svc.EnsureSession(ctx, monday)
			if err != nil {
				t.Fatalf("EnsureSession failed: %v", err)
			}
			if !session.StartAmount.Equal(decimal.RequireFromString(tt.wantStart)) {
				t.Errorf("Expected start %s, got %s", tt.wantStart, session.StartAmount)
			}
			if !session.OpenedOn(monday) {
				t.Errorf("Expected session opened today, got %v", session.OpenedAt)
			}

			again, err := svc.EnsureSession(ctx, monday.Add(2*time.Hour))
			if err != nil {
				t.Fatalf("Second EnsureSession failed: %v", err)
			}
			if again.ID != session.ID {
				t.Errorf("Expected the same session %d, got %d", session.ID, again.ID)
			}

			all, _ := svc.GetAll(ctx)
			if len(all) != tt.wantTotal {
				t.Errorf("Expected %d sessions, got %d", tt.wantTotal, len(all))
			}
			openCount := 0
			for _, s := range all {
				if s.IsOpen() {
					openCount++
				}
			}
			if openCount != 1 {
				t.Errorf("Expected exactly one open session, got %d", openCount)
			}
		})
	}
}

func TestCashSessionService_RolloverClosesAtCurrentAmount(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewCashSessionService(f.deps)

	f.clock.Set(monday.AddDate(0, 0, -1))
	old, _ := svc.Open(ctx, decimal.NewFromInt(300))
	_ = svc.UpdateCurrentAmount(ctx, old.ID, decimal.NewFromInt(45))

	if _, err := svc.EnsureSession(ctx, monday); err != nil {
		t.Fatalf("EnsureSession failed: %v", err)
	}

	closed, err := f.store.CashSessions().GetByID(ctx, old.ID)
	if err != nil {
		t.Fatalf("Failed to load old session: %v", err)
	}
	if closed.IsOpen() {
		t.Error("Expected the stale session to be closed")
	}
	if !closed.CurrentAmount.Equal(decimal.NewFromInt(345)) {
		t.Errorf("Expected closing amount 345, got %s", closed.CurrentAmount)
	}

	types := f.eventTypes()
	if countType(types, events.SessionRolledOverEvent) != 1 {
		t.Errorf("Expected a rollover event, got %v", types)
	}
}

func TestCashSessionService_CreateNewSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewCashSessionService(f.deps)

	first, err := svc.CreateNewSession(ctx, monday)
	if err != nil {
		t.Fatalf("CreateNewSession failed: %v", err)
	}
	if _, err := svc.CreateNewSession(ctx, monday.Add(time.Hour)); !errors.Is(err, ErrSessionAlreadyOpen) {
		t.Errorf("Expected ErrSessionAlreadyOpen, got %v", err)
	}

	next, err := svc.CreateNewSession(ctx, monday.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("CreateNewSession on the next day failed: %v", err)
	}
	if next.ID == first.ID {
		t.Error("Expected a new session on the next day")
	}
}

func TestCashSessionService_ConcurrentEnsureOpensOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	// Separate service values share only the store, like two app windows.
	var wg sync.WaitGroup
	ids := make(chan int64, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := NewCashSessionService(f.deps).EnsureSession(ctx, monday)
			if err != nil {
				t.Errorf("EnsureSession failed: %v", err)
				return
			}
			ids <- int64(s.ID)
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		seen[id] = true
	}
	if len(seen) != 1 {
		t.Errorf("Expected every caller to get the same session, got %v", seen)
	}
	all, _ := f.store.CashSessions().GetAll(ctx)
	if len(all) != 1 {
		t.Errorf("Expected exactly one session, got %d", len(all))
	}
}
