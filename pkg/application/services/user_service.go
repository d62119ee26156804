package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/events"
)

// UserService manages the owner configuration row
type UserService struct {
	deps Dependencies
}

// NewUserService creates a configuration service
func NewUserService(deps Dependencies) *UserService {
	return &UserService{deps: deps}
}

// Init creates the configuration row when missing and returns it
func (s *UserService) Init(ctx context.Context, name string) (cfg *entities.UserConfig, err error) {
	ctx, span := tracer.Start(ctx, "UserService.Init")
	defer func() { endSpan(span, err) }()

	initial := entities.NewUserConfig(name)
	initial.CreatedAt = s.deps.now()
	if _, err := s.deps.Store.Users().CreateIfNotExists(ctx, initial); err != nil {
		return nil, err
	}
	return s.deps.Store.Users().Get(ctx)
}

// Get returns the configuration, creating the default row on first use
func (s *UserService) Get(ctx context.Context) (cfg *entities.UserConfig, err error) {
	ctx, span := tracer.Start(ctx, "UserService.Get")
	defer func() { endSpan(span, err) }()

	cfg, err = s.deps.Store.Users().Get(ctx)
	if errors.Is(err, repositories.ErrNotFound) {
		return s.Init(ctx, entities.DefaultUserName)
	}
	return cfg, err
}

// UpdateName sets the owner name
func (s *UserService) UpdateName(ctx context.Context, name string) (err error) {
	ctx, span := tracer.Start(ctx, "UserService.UpdateName")
	defer func() { endSpan(span, err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return s.update(ctx, "name", func(users repositories.UserConfigRepository) (int64, error) {
		return users.UpdateName(ctx, name)
	})
}

// UpdateSchedule sets the opening window
func (s *UserService) UpdateSchedule(ctx context.Context, schedule entities.Schedule) (err error) {
	ctx, span := tracer.Start(ctx, "UserService.UpdateSchedule")
	defer func() { endSpan(span, err) }()

	if err := schedule.Validate(); err != nil {
		return err
	}
	return s.update(ctx, "schedule", func(users repositories.UserConfigRepository) (int64, error) {
		return users.UpdateSchedule(ctx, schedule)
	})
}

// UpdateMoneyGoal sets the daily sales target
func (s *UserService) UpdateMoneyGoal(ctx context.Context, goal decimal.Decimal) (err error) {
	ctx, span := tracer.Start(ctx, "UserService.UpdateMoneyGoal")
	defer func() { endSpan(span, err) }()

	return s.update(ctx, "money_goal", func(users repositories.UserConfigRepository) (int64, error) {
		return users.UpdateMoneyGoal(ctx, goal)
	})
}

// MarkVisited records that the first-run setup has been completed
func (s *UserService) MarkVisited(ctx context.Context) (err error) {
	ctx, span := tracer.Start(ctx, "UserService.MarkVisited")
	defer func() { endSpan(span, err) }()

	return s.update(ctx, "is_first_time", func(users repositories.UserConfigRepository) (int64, error) {
		return users.MarkVisited(ctx)
	})
}

// ResetFirstVisit makes the next start behave like the first one
func (s *UserService) ResetFirstVisit(ctx context.Context) (err error) {
	ctx, span := tracer.Start(ctx, "UserService.ResetFirstVisit")
	defer func() { endSpan(span, err) }()

	return s.update(ctx, "is_first_time", func(users repositories.UserConfigRepository) (int64, error) {
		return users.ResetFirstVisit(ctx)
	})
}

// IsOpenAt reports whether t falls inside the configured schedule
func (s *UserService) IsOpenAt(ctx context.Context, t time.Time) (bool, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return cfg.Schedule.IsOpenAt(t), nil
}

// Greeting returns the salutation for the current time and the owner name
func (s *UserService) Greeting(ctx context.Context) (string, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s, %s", entities.Greeting(s.deps.now()), cfg.Name), nil
}

func (s *UserService) update(ctx context.Context, field string, fn func(users repositories.UserConfigRepository) (int64, error)) error {
	if _, err := s.Get(ctx); err != nil {
		return err
	}
	if _, err := fn(s.deps.Store.Users()); err != nil {
		return err
	}
	s.deps.publish(events.NewConfigUpdatedEvent(field))
	return nil
}
