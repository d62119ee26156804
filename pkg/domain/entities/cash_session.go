package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SessionID identifies a cash session
type SessionID int64

// CashSession is one till period. It is open while ClosedAt is nil.
type CashSession struct {
	ID            SessionID
	StartAmount   decimal.Decimal
	CurrentAmount decimal.Decimal
	OpenedAt      time.Time
	ClosedAt      *time.Time
}

// NewCashSession creates an open session whose current amount equals the
// start amount, rounded to the cent.
func NewCashSession(startAmount decimal.Decimal, openedAt time.Time) (*CashSession, error) {
	startAmount = RoundMoney(startAmount)
	if startAmount.IsNegative() {
		return nil, fmt.Errorf("start amount cannot be negative, got %s", startAmount)
	}
	return &CashSession{
		StartAmount:   startAmount,
		CurrentAmount: startAmount,
		OpenedAt:      openedAt,
	}, nil
}

// IsOpen reports whether the session has not been closed
func (s *CashSession) IsOpen() bool {
	return s.ClosedAt == nil
}

// OpenedOn reports whether the session was opened on the same calendar day as t,
// in t's location.
func (s *CashSession) OpenedOn(t time.Time) bool {
	return SameDay(s.OpenedAt.In(t.Location()), t)
}

// Balance is the difference between the current and the start amount
func (s *CashSession) Balance() decimal.Decimal {
	return s.CurrentAmount.Sub(s.StartAmount)
}

// SameDay reports whether a and b fall on the same calendar day in a's location
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
