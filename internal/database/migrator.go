package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

func newMigrationProvider(db *sql.DB, fsys fs.FS) (*goose.Provider, error) {
	return goose.NewProvider(goose.DialectMySQL, db, fsys)
}

// Migrate applies the embedded migrations newer than the version recorded
// in goose_db_version.
func Migrate(ctx context.Context, db *sql.DB, logger *zerolog.Logger) error {
	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}
	return migrate(ctx, db, subtree, logger)
}

func migrate(ctx context.Context, db *sql.DB, fsys fs.FS, logger *zerolog.Logger) error {
	provider, err := newMigrationProvider(db, fsys)
	if err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	results, err := provider.Up(ctx)
	for _, res := range results {
		event := logger.Info()
		if res.Error != nil {
			event = logger.Error().Err(res.Error)
		}
		event.Int64("version", res.Source.Version).
			Str("path", res.Source.Path).
			Dur("duration", res.Duration).
			Msg("applied database migration")
	}
	if err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	to, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving migrated database version: %w", err)
	}
	if to == from {
		logger.Info().Msgf("database schema up to date, version %d", from)
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, to)
	}
	return nil
}
