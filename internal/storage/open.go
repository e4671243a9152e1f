package storage

import (
	"context"
	"fmt"

	"github.com/Aur71/Workout-Tracker-sub000/internal/config"
	"github.com/Aur71/Workout-Tracker-sub000/internal/planner"
)

// Open connects to the configured database and returns it with its close
// function. Postgres schemas are managed by RunMigrations; SQLite creates
// its schema on open.
func Open(ctx context.Context, cfg config.DatabaseConfig) (planner.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := New(ctx, cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case config.DriverSQLite:
		db, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
