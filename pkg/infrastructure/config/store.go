package config

import (
	"context"
	"fmt"

	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/repositories/memory"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/repositories/sqlstore"
)

// OpenStore opens the storage backend selected by DBDriver
func (c *Config) OpenStore(ctx context.Context) (repositories.Store, error) {
	switch c.DBDriver {
	case DriverSQLite:
		return sqlstore.OpenSQLite(ctx, c.DBPath)
	case DriverMySQL:
		return sqlstore.OpenMySQL(ctx, c.MySQLConfig())
	case DriverMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", c.DBDriver)
	}
}
