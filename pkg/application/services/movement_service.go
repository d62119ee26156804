package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
	domainservices "github.com/Garbi-Collector/stokea2/pkg/domain/services"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/events"
)

// MovementService records manual cash movements and builds the history view
type MovementService struct {
	deps     Dependencies
	sessions *CashSessionService
}

// NewMovementService creates a movement service on top of the session service
func NewMovementService(deps Dependencies, sessions *CashSessionService) *MovementService {
	return &MovementService{deps: deps, sessions: sessions}
}

// Record stores an IN or OUT movement against today's session and applies it
// to the session balance in the same transaction.
func (s *MovementService) Record(
	ctx context.Context,
	typ entities.MovementType,
	amount decimal.Decimal,
	description string,
) (movement *entities.CashMovement, err error) {
	ctx, span := tracer.Start(ctx, "MovementService.Record",
		trace.WithAttributes(attribute.String("movement.type", string(typ))))
	defer func() { endSpan(span, err) }()

	if typ != entities.MovementIn && typ != entities.MovementOut {
		return nil, fmt.Errorf("movement type %s cannot be recorded manually", typ)
	}
	amount = entities.RoundMoney(amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive, got %s", amount)
	}

	now := s.deps.now()
	err = s.sessions.withSession(ctx, now, false, func(tx repositories.Store, session *entities.CashSession) error {
		m, err := entities.NewCashMovement(session.ID, typ, amount, description, now)
		if err != nil {
			return err
		}
		m.ID, err = tx.CashMovements().Create(ctx, m)
		if err != nil {
			return err
		}
		if err := applyDelta(ctx, tx, session.ID, m.SignedAmount()); err != nil {
			return err
		}
		movement = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deps.publish(events.NewMovementRecordedEvent(*movement))
	return movement, nil
}

// GetBySession lists the movements of one session, newest first
func (s *MovementService) GetBySession(ctx context.Context, id entities.SessionID) (movements []*entities.CashMovement, err error) {
	ctx, span := tracer.Start(ctx, "MovementService.GetBySession",
		trace.WithAttributes(attribute.Int64("session.id", int64(id))))
	defer func() { endSpan(span, err) }()

	return s.deps.Store.CashMovements().GetBySession(ctx, id)
}

// History filters every movement and groups the result by day in loc
func (s *MovementService) History(
	ctx context.Context,
	filter domainservices.MovementFilter,
	loc *time.Location,
) (days []*domainservices.DayGroup, err error) {
	ctx, span := tracer.Start(ctx, "MovementService.History")
	defer func() { endSpan(span, err) }()

	all, err := s.deps.Store.CashMovements().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.Local
	}
	return domainservices.GroupByDay(domainservices.FilterMovements(all, filter), loc), nil
}

func applyDelta(ctx context.Context, tx repositories.Store, id entities.SessionID, delta decimal.Decimal) error {
	updated, err := tx.CashSessions().UpdateCurrentAmount(ctx, id, delta)
	if err != nil {
		return err
	}
	if updated == 0 {
		return fmt.Errorf("session %d: %w", id, ErrNoOpenSession)
	}
	return nil
}
