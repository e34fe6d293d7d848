// Package persistence selects and opens the configured storage driver.
package persistence

import (
	"context"
	"fmt"

	"clinicore/internal/config"
	"clinicore/internal/infra/persistence/memory"
	"clinicore/internal/infra/persistence/postgres"
	"clinicore/internal/infra/persistence/sqlite"
	"clinicore/internal/migrate"
	"clinicore/internal/schema"
	"clinicore/pkg/domain"
)

// Open returns the persistent store named by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config, registry *schema.Registry, engine *migrate.Engine) (domain.PersistentStore, error) {
	if registry == nil {
		registry = schema.Default()
	}
	if engine == nil {
		engine = migrate.Default()
	}
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return memory.Open(registry), nil
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.SQLitePath, registry, engine)
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.PostgresDSN, registry, engine)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
