// Package store opens the recharge circle backend selected by STORE_DRIVER.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vighnaharta/internal/config"
	"github.com/vighnaharta/internal/db"
	"github.com/vighnaharta/internal/domain"
	"github.com/vighnaharta/internal/postgres"
	"github.com/vighnaharta/internal/supabase"
)

// Open returns the configured CircleRepository. The caller owns Close.
func Open(ctx context.Context, cfg config.StoreConfig) (domain.CircleRepository, error) {
	switch cfg.Driver {
	case config.StoreDriverSupabase:
		slog.Info("using supabase circle store", "url", cfg.Supabase.URL)
		return supabase.NewClient(cfg.Supabase), nil

	case config.StoreDriverPostgres:
		slog.Info("using postgres circle store")
		return postgres.Open(ctx, cfg.PostgresURL)

	case config.StoreDriverSQLite:
		slog.Info("using sqlite circle store", "path", cfg.SQLitePath)
		database, err := db.Init(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("init sqlite: %w", err)
		}
		if cfg.SeedFile != "" {
			circles, err := db.LoadSeedFile(cfg.SeedFile)
			if err == nil {
				err = database.Seed(ctx, circles)
			}
			if err != nil {
				database.Close()
				return nil, err
			}
		}
		return database, nil

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownStoreDriver, cfg.Driver)
	}
}
