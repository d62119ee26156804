package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

// UserConfigRepository provides access to the single configuration row
type UserConfigRepository interface {
	Get(ctx context.Context) (*entities.UserConfig, error)
	// CreateIfNotExists inserts cfg unless the row already exists; it returns
	// the number of rows created.
	CreateIfNotExists(ctx context.Context, cfg *entities.UserConfig) (int64, error)
	UpdateSchedule(ctx context.Context, s entities.Schedule) (int64, error)
	UpdateName(ctx context.Context, name string) (int64, error)
	UpdateMoneyGoal(ctx context.Context, goal decimal.Decimal) (int64, error)
	MarkVisited(ctx context.Context) (int64, error)
	ResetFirstVisit(ctx context.Context) (int64, error)
}
