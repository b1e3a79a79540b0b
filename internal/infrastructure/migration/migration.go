// Package migration runs the versioned SQL migrations with golang-migrate.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"kursly/internal/shared/logger"
)

// Runner applies versioned SQL migrations from a scripts directory.
type Runner struct {
	scriptsPath string
	driver      string // mysql or sqlite
	logger      logger.Interface
}

// NewRunner creates a migration runner for the given database driver.
func NewRunner(scriptsPath, driver string) *Runner {
	return &Runner{
		scriptsPath: scriptsPath,
		driver:      driver,
		logger:      logger.NewLogger().With("component", "migration"),
	}
}

// Up applies all pending migrations.
func (r *Runner) Up(db *gorm.DB) error {
	m, err := r.instance(db)
	if err != nil {
		return err
	}
	defer m.Close()

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d", currentVersion)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get final migration version: %w", err)
	}

	r.logger.Infow("migration completed",
		"from_version", currentVersion,
		"to_version", finalVersion,
	)
	return nil
}

// Down rolls back the given number of migrations.
func (r *Runner) Down(db *gorm.DB, steps int) error {
	m, err := r.instance(db)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run down migrations: %w", err)
	}

	r.logger.Infow("down migration completed", "steps", steps)
	return nil
}

// Version returns the current migration version and dirty flag.
func (r *Runner) Version(db *gorm.DB) (uint, bool, error) {
	m, err := r.instance(db)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Force sets the migration version and clears the dirty flag.
func (r *Runner) Force(db *gorm.DB, version int) error {
	m, err := r.instance(db)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Force(version); err != nil {
		return fmt.Errorf("failed to force version: %w", err)
	}

	r.logger.Infow("migration version forced", "version", version)
	return nil
}

func (r *Runner) instance(db *gorm.DB) (*migrate.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	driver, name, err := r.databaseDriver(sqlDB)
	if err != nil {
		return nil, err
	}

	// Scripts are split per dialect: migrations/mysql and migrations/sqlite
	// carry the same versions in each database's own DDL.
	sourceURL := fmt.Sprintf("file://%s", filepath.Join(r.scriptsPath, r.dialectDir()))
	m, err := migrate.NewWithDatabaseInstance(sourceURL, name, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

func (r *Runner) dialectDir() string {
	if r.driver == "sqlite" {
		return "sqlite"
	}
	return "mysql"
}

func (r *Runner) databaseDriver(sqlDB *sql.DB) (database.Driver, string, error) {
	switch r.driver {
	case "sqlite":
		driver, err := sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
		if err != nil {
			return nil, "", fmt.Errorf("failed to create sqlite driver: %w", err)
		}
		return driver, "sqlite3", nil
	default:
		driver, err := mysql.WithInstance(sqlDB, &mysql.Config{})
		if err != nil {
			return nil, "", fmt.Errorf("failed to create mysql driver: %w", err)
		}
		return driver, "mysql", nil
	}
}
