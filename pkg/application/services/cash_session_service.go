package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/events"
)

var (
	// ErrSessionAlreadyOpen is returned when opening a session while today's is still open
	ErrSessionAlreadyOpen = errors.New("a cash session is already open")
	// ErrNoOpenSession is returned when an operation needs an open session and there is none
	ErrNoOpenSession = errors.New("no open cash session")
)

// CashSessionService manages the till lifecycle: open, close and the daily rollover
type CashSessionService struct {
	deps Dependencies

	// mu serializes check-then-act sequences within this process; the store
	// transaction covers other processes sharing the database.
	mu sync.Mutex
}

// NewCashSessionService creates a session service
func NewCashSessionService(deps Dependencies) *CashSessionService {
	return &CashSessionService{deps: deps}
}

// Open starts a session with startAmount. It fails when any session is open.
func (s *CashSessionService) Open(ctx context.Context, startAmount decimal.Decimal) (session *entities.CashSession, err error) {
	ctx, span := tracer.Start(ctx, "CashSessionService.Open")
	defer func() { endSpan(span, err) }()

	now := s.deps.now()
	draft, err := entities.NewCashSession(startAmount, now)
	if err != nil {
		return nil, err
	}
	startAmount = draft.StartAmount

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.deps.Store.WithinTx(ctx, func(tx repositories.Store) error {
		open, err := tx.CashSessions().GetOpen(ctx)
		if err == nil {
			return fmt.Errorf("session %d: %w", open.ID, ErrSessionAlreadyOpen)
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		session, err = openIn(ctx, tx, startAmount, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("session.id", int64(session.ID)))
	s.deps.publish(events.NewSessionOpenedEvent(*session))
	return session, nil
}

// GetOpen returns the open session or ErrNoOpenSession
func (s *CashSessionService) GetOpen(ctx context.Context) (session *entities.CashSession, err error) {
	ctx, span := tracer.Start(ctx, "CashSessionService.GetOpen")
	defer func() { endSpan(span, err) }()

	session, err = s.deps.Store.CashSessions().GetOpen(ctx)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNoOpenSession
	}
	return session, err
}

// GetAll lists sessions newest first
func (s *CashSessionService) GetAll(ctx context.Context) (sessions []*entities.CashSession, err error) {
	ctx, span := tracer.Start(ctx, "CashSessionService.GetAll")
	defer func() { endSpan(span, err) }()

	return s.deps.Store.CashSessions().GetAll(ctx)
}

// Close records the counted amount of an open session. The amount may be
// negative, as a rolled-over session can be.
func (s *CashSessionService) Close(ctx context.Context, id entities.SessionID, amount decimal.Decimal) (err error) {
	ctx, span := tracer.Start(ctx, "CashSessionService.Close",
		trace.WithAttributes(attribute.Int64("session.id", int64(id))))
	defer func() { endSpan(span, err) }()

	amount = entities.RoundMoney(amount)

	s.mu.Lock()
	defer s.mu.Unlock()

	closed, err := s.deps.Store.CashSessions().Close(ctx, id, amount, s.deps.now())
	if err != nil {
		return err
	}
	if closed == 0 {
		return fmt.Errorf("session %d: %w", id, ErrNoOpenSession)
	}
	s.deps.publish(events.NewSessionClosedEvent(id, amount))
	return nil
}

// CloseAll closes every open session with amount and returns how many were closed
func (s *CashSessionService) CloseAll(ctx context.Context, amount decimal.Decimal) (closed int64, err error) {
	ctx, span := tracer.Start(ctx, "CashSessionService.CloseAll")
	defer func() { endSpan(span, err) }()

	amount = entities.RoundMoney(amount)

	s.mu.Lock()
	defer s.mu.Unlock()

	var open *entities.CashSession
	err = s.deps.Store.WithinTx(ctx, func(tx repositories.Store) error {
		var err error
		open, err = tx.CashSessions().GetOpen(ctx)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		closed, err = tx.CashSessions().CloseAll(ctx, amount, s.deps.now())
		return err
	})
	if err != nil {
		return 0, err
	}
	if open != nil && closed > 0 {
		s.deps.publish(events.NewSessionClosedEvent(open.ID, amount))
	}
	return closed, nil
}

// UpdateCurrentAmount adds delta to an open session
func (s *CashSessionService) UpdateCurrentAmount(ctx context.Context, id entities.SessionID, delta decimal.Decimal) (err error) {
	ctx, span := tracer.Start(ctx, "CashSessionService.UpdateCurrentAmount",
		trace.WithAttributes(attribute.Int64("session.id", int64(id))))
	defer func() { endSpan(span, err) }()

	updated, err := s.deps.Store.CashSessions().UpdateCurrentAmount(ctx, id, entities.RoundMoney(delta))
	if err != nil {
		return err
	}
	if updated == 0 {
		return fmt.Errorf("session %d: %w", id, ErrNoOpenSession)
	}
	return nil
}

// EnsureSession returns today's open session, rolling over a stale one or
// opening a new one seeded from the last closed session when needed.
func (s *CashSessionService) EnsureSession(ctx context.Context, now time.Time) (session *entities.CashSession, err error) {
	ctx, span := tracer.Start(ctx, "CashSessionService.EnsureSession")
	defer func() { endSpan(span, err) }()

	err = s.withSession(ctx, now, false, func(_ repositories.Store, current *entities.CashSession) error {
		session = current
		return nil
	})
	return session, err
}

// CreateNewSession behaves like EnsureSession but refuses when today's session
// is already open.
func (s *CashSessionService) CreateNewSession(ctx context.Context, now time.Time) (session *entities.CashSession, err error) {
	ctx, span := tracer.Start(ctx, "CashSessionService.CreateNewSession")
	defer func() { endSpan(span, err) }()

	err = s.withSession(ctx, now, true, func(_ repositories.Store, current *entities.CashSession) error {
		session = current
		return nil
	})
	return session, err
}

// withSession ensures a session for now and runs fn with it inside the same
// transaction. Events are published only after commit.
func (s *CashSessionService) withSession(
	ctx context.Context,
	now time.Time,
	refuseToday bool,
	fn func(tx repositories.Store, session *entities.CashSession) error,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []events.Event
	err := s.deps.Store.WithinTx(ctx, func(tx repositories.Store) error {
		session, evts, err := ensureIn(ctx, tx, now, refuseToday)
		if err != nil {
			return err
		}
		pending = append(pending, evts...)
		return fn(tx, session)
	})
	if err != nil {
		return err
	}
	s.deps.publish(pending...)
	return nil
}

func ensureIn(ctx context.Context, tx repositories.Store, now time.Time, refuseToday bool) (*entities.CashSession, []events.Event, error) {
	sessions := tx.CashSessions()

	open, err := sessions.GetOpen(ctx)
	switch {
	case err == nil:
		if open.OpenedOn(now) {
			if refuseToday {
				return nil, nil, fmt.Errorf("session %d: %w", open.ID, ErrSessionAlreadyOpen)
			}
			return open, nil, nil
		}
		if _, err := sessions.Close(ctx, open.ID, open.CurrentAmount, now); err != nil {
			return nil, nil, fmt.Errorf("close stale session %d: %w", open.ID, err)
		}
		next, err := openIn(ctx, tx, open.CurrentAmount, now)
		if err != nil {
			return nil, nil, err
		}
		return next, []events.Event{
			events.NewSessionClosedEvent(open.ID, open.CurrentAmount),
			events.NewSessionRolledOverEvent(open.ID, next.ID, open.CurrentAmount),
			events.NewSessionOpenedEvent(*next),
		}, nil

	case errors.Is(err, repositories.ErrNotFound):
		start := decimal.Zero
		last, err := sessions.LastClosed(ctx)
		switch {
		case err == nil:
			start = last.CurrentAmount
		case !errors.Is(err, repositories.ErrNotFound):
			return nil, nil, err
		}
		next, err := openIn(ctx, tx, start, now)
		if err != nil {
			return nil, nil, err
		}
		return next, []events.Event{events.NewSessionOpenedEvent(*next)}, nil

	default:
		return nil, nil, err
	}
}

func openIn(ctx context.Context, tx repositories.Store, start decimal.Decimal, now time.Time) (*entities.CashSession, error) {
	id, err := tx.CashSessions().Open(ctx, start, now)
	if err != nil {
		return nil, err
	}
	return tx.CashSessions().GetByID(ctx, id)
}
