package database

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// RunMigrations applies all pending migrations from migrationsPath. It returns
// the version reached, and no error when nothing was pending.
func RunMigrations(dsn string, migrationsPath string, log *zap.Logger) (uint, error) {
	abs, err := filepath.Abs(migrationsPath)
	if err != nil {
		return 0, fmt.Errorf("migration path: %w", err)
	}
	m, err := migrate.New(
		fmt.Sprintf("file://%s", filepath.ToSlash(abs)),
		dsn,
	)
	if err != nil {
		return 0, fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migration up: %w", err)
	}

	version, dirty, _ := m.Version()
	if log != nil {
		log.Info("✅ Migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty), zap.Bool("no_change", errors.Is(err, migrate.ErrNoChange)))
	}
	return version, nil
}
