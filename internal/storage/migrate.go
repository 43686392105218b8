package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/carson-networks/expense-server/internal/storage/migrations"
)

// NewMigrator builds a migrate instance over the embedded migrations.
func NewMigrator(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres.WithInstance: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("iofs.New: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migrate.NewWithInstance: %w", err)
	}
	return m, nil
}

// Migrate applies all pending up migrations and returns the schema version
// before and after.
func Migrate(db *sql.DB) (preVersion, postVersion uint, err error) {
	m, err := NewMigrator(db)
	if err != nil {
		return 0, 0, err
	}

	preVersion, err = Version(m)
	if err != nil {
		return 0, 0, err
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return preVersion, 0, fmt.Errorf("migrate.Up: %w", err)
	}

	postVersion, err = Version(m)
	if err != nil {
		return preVersion, 0, err
	}
	return preVersion, postVersion, nil
}

// Version returns the current schema version, 0 when no migration has run.
func Version(m *migrate.Migrate) (uint, error) {
	version, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("migrate.Version: %w", err)
	}
	return version, nil
}
