package memory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
)

// UserConfigRepository provides in-memory storage of the configuration row
type UserConfigRepository struct {
	store *Store
}

// Verify interface compliance
var _ repositories.UserConfigRepository = (*UserConfigRepository)(nil)

// Get returns the configuration row
func (r *UserConfigRepository) Get(ctx context.Context) (*entities.UserConfig, error) {
	defer r.store.lock()()

	if r.store.data.user == nil {
		return nil, fmt.Errorf("user config: %w", repositories.ErrNotFound)
	}
	u := *r.store.data.user
	return &u, nil
}

// CreateIfNotExists inserts the row unless present
func (r *UserConfigRepository) CreateIfNotExists(ctx context.Context, cfg *entities.UserConfig) (int64, error) {
	defer r.store.lock()()

	if r.store.data.user != nil {
		return 0, nil
	}
	u := *cfg
	u.CreatedAt = r.store.stamp(cfg.CreatedAt)
	r.store.data.user = &u
	return 1, nil
}

// UpdateSchedule replaces the opening window
func (r *UserConfigRepository) UpdateSchedule(ctx context.Context, s entities.Schedule) (int64, error) {
	return r.update(func(u *entities.UserConfig) { u.Schedule = s })
}

// UpdateName replaces the owner name
func (r *UserConfigRepository) UpdateName(ctx context.Context, name string) (int64, error) {
	return r.update(func(u *entities.UserConfig) { u.Name = name })
}

// UpdateMoneyGoal sets the daily target, which must be positive
func (r *UserConfigRepository) UpdateMoneyGoal(ctx context.Context, goal decimal.Decimal) (int64, error) {
	goal, err := entities.NewMoneyGoal(goal)
	if err != nil {
		return 0, err
	}
	return r.update(func(u *entities.UserConfig) { u.MoneyGoal = goal })
}

// MarkVisited clears the first-time flag
func (r *UserConfigRepository) MarkVisited(ctx context.Context) (int64, error) {
	return r.update(func(u *entities.UserConfig) { u.IsFirstTime = false })
}

// ResetFirstVisit sets the first-time flag again
func (r *UserConfigRepository) ResetFirstVisit(ctx context.Context) (int64, error) {
	return r.update(func(u *entities.UserConfig) { u.IsFirstTime = true })
}

func (r *UserConfigRepository) update(apply func(*entities.UserConfig)) (int64, error) {
	defer r.store.lock()()

	if r.store.data.user == nil {
		return 0, nil
	}
	apply(r.store.data.user)
	return 1, nil
}
