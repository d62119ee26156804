package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
)

type userStore struct {
	s *Store
}

// Get returns the configuration row
func (r *userStore) Get(ctx context.Context) (*entities.UserConfig, error) {
	var (
		cfg        entities.UserConfig
		firstTime  bool
		goal, made int64
	)
	err := r.s.q.QueryRowContext(ctx,
		`SELECT name, is_first_time, open_hour, open_minute, close_hour, close_minute, money_goal, created_at
		   FROM user_config WHERE id = ?`, entities.UserConfigID,
	).Scan(
		&cfg.Name,
		&firstTime,
		&cfg.Schedule.OpenHour,
		&cfg.Schedule.OpenMinute,
		&cfg.Schedule.CloseHour,
		&cfg.Schedule.CloseMinute,
		&goal,
		&made,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user config: %w", repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("get user config: %w", err)
	}
	cfg.IsFirstTime = firstTime
	cfg.MoneyGoal = entities.FromCents(goal)
	cfg.CreatedAt = fromMillis(made)
	return &cfg, nil
}

// CreateIfNotExists inserts the configuration row unless it is already there
func (r *userStore) CreateIfNotExists(ctx context.Context, cfg *entities.UserConfig) (int64, error) {
	res, err := r.s.q.ExecContext(ctx,
		r.s.dialect.InsertIgnore+` INTO user_config
		   (id, name, is_first_time, open_hour, open_minute, close_hour, close_minute, money_goal, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entities.UserConfigID,
		cfg.Name,
		cfg.IsFirstTime,
		cfg.Schedule.OpenHour,
		cfg.Schedule.OpenMinute,
		cfg.Schedule.CloseHour,
		cfg.Schedule.CloseMinute,
		entities.Cents(cfg.MoneyGoal),
		toMillis(r.s.stamp(cfg.CreatedAt)),
	)
	if err != nil {
		return 0, fmt.Errorf("create user config: %w", err)
	}
	return rowsAffected(res)
}

// UpdateSchedule replaces the opening window
func (r *userStore) UpdateSchedule(ctx context.Context, s entities.Schedule) (int64, error) {
	return r.exec(ctx, "update schedule",
		`UPDATE user_config SET open_hour = ?, open_minute = ?, close_hour = ?, close_minute = ? WHERE id = ?`,
		s.OpenHour, s.OpenMinute, s.CloseHour, s.CloseMinute, entities.UserConfigID)
}

// UpdateName sets the owner name
func (r *userStore) UpdateName(ctx context.Context, name string) (int64, error) {
	return r.exec(ctx, "update user name",
		`UPDATE user_config SET name = ? WHERE id = ?`, name, entities.UserConfigID)
}

// UpdateMoneyGoal sets the daily sales target
func (r *userStore) UpdateMoneyGoal(ctx context.Context, goal decimal.Decimal) (int64, error) {
	goal, err := entities.NewMoneyGoal(goal)
	if err != nil {
		return 0, err
	}
	return r.exec(ctx, "update money goal",
		`UPDATE user_config SET money_goal = ? WHERE id = ?`, entities.Cents(goal), entities.UserConfigID)
}

// MarkVisited clears the first-visit flag
func (r *userStore) MarkVisited(ctx context.Context) (int64, error) {
	return r.exec(ctx, "mark visited",
		`UPDATE user_config SET is_first_time = ? WHERE id = ?`, false, entities.UserConfigID)
}

// ResetFirstVisit sets the first-visit flag again
func (r *userStore) ResetFirstVisit(ctx context.Context) (int64, error) {
	return r.exec(ctx, "reset first visit",
		`UPDATE user_config SET is_first_time = ? WHERE id = ?`, true, entities.UserConfigID)
}

func (r *userStore) exec(ctx context.Context, what, query string, args ...any) (int64, error) {
	res, err := r.s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", what, err)
	}
	return rowsAffected(res)
}
