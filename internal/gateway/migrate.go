package gateway

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"retail-insights/internal/logger"
)

//go:embed migrations/*.sql
var retailSchema embed.FS

// migrateSchema applies the embedded retail schema to the database at dbPath
// and returns the resulting schema version.
//
// The migrator gets its own handle: closing it closes the underlying
// *sql.DB, which must not be the store's pool.
func migrateSchema(ctx context.Context, dbPath string) (uint, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, fmt.Errorf("open %s for migration: %w", dbPath, err)
	}
	defer db.Close()

	target, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return 0, fmt.Errorf("sqlite migration target: %w", err)
	}
	schema, err := iofs.New(retailSchema, "migrations")
	if err != nil {
		return 0, fmt.Errorf("load retail schema: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", schema, "sqlite", target)
	if err != nil {
		return 0, fmt.Errorf("prepare migration: %w", err)
	}
	defer m.Close()

	log := logger.FromContext(ctx)
	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		log.Debug().Str("db", dbPath).Msg("retail schema already current")
	case err != nil:
		return 0, fmt.Errorf("migrate retail schema: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("retail schema version %d is dirty", version)
	}
	log.Debug().Uint("version", version).Str("db", dbPath).Msg("retail schema ready")
	return version, nil
}
