package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies a cash movement
type MovementType string

const (
	MovementIn   MovementType = "IN"
	MovementOut  MovementType = "OUT"
	MovementSale MovementType = "SALE"
)

// ParseMovementType accepts IN, OUT or SALE in any case
func ParseMovementType(s string) (MovementType, error) {
	switch MovementType(strings.ToUpper(strings.TrimSpace(s))) {
	case MovementIn:
		return MovementIn, nil
	case MovementOut:
		return MovementOut, nil
	case MovementSale:
		return MovementSale, nil
	default:
		return "", fmt.Errorf("unknown movement type %q", s)
	}
}

// String method for MovementType
func (t MovementType) String() string {
	return string(t)
}

// CashMovement records money entering or leaving the till
type CashMovement struct {
	ID          int64
	SessionID   SessionID
	Type        MovementType
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}

// NewCashMovement creates a validated movement. The amount is rounded to the
// cent before it is checked.
func NewCashMovement(sessionID SessionID, typ MovementType, amount decimal.Decimal, description string, createdAt time.Time) (*CashMovement, error) {
	if sessionID <= 0 {
		return nil, fmt.Errorf("cash session id must be positive, got %d", sessionID)
	}
	if _, err := ParseMovementType(string(typ)); err != nil {
		return nil, err
	}
	amount = RoundMoney(amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive, got %s", amount)
	}
	return &CashMovement{
		SessionID:   sessionID,
		Type:        typ,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		CreatedAt:   createdAt,
	}, nil
}

// SignedAmount is the effect of the movement on the session balance
func (m *CashMovement) SignedAmount() decimal.Decimal {
	if m.Type == MovementOut {
		return m.Amount.Neg()
	}
	return m.Amount
}
