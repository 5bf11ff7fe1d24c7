// Package migration drives the SQL schema files under migrations/ with
// golang-migrate. The API server never touches the schema at startup; the
// migrate CLI is the only writer of the schema_migrations table.
package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/infrastructure/config"
)

// Migrator applies versioned schema migrations to a Postgres database.
type Migrator struct {
	migrate *migrate.Migrate
	db      *sql.DB // owned only when built through Open
	logger  *zap.Logger
}

// Open dials the database described by cfg and prepares a Migrator that
// reads SQL pairs from dir. The lib/pq driver must be registered by the
// caller. Close releases the connection.
func Open(cfg *config.DatabaseConfig, dir string, logger *zap.Logger) (*Migrator, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	m, err := New(db, dir, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	m.db = db
	return m, nil
}

// New wraps an existing connection. The caller keeps ownership of db.
func New(db *sql.DB, dir string, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("prepare postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("prepare migrate instance: %w", err)
	}

	return &Migrator{migrate: m, logger: logger}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up() error {
	err := m.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.migrate.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	m.logger.Info("Schema migrated",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// Down reverts every applied migration.
func (m *Migrator) Down() error {
	err := m.migrate.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Nothing to revert")
		return nil
	}
	if err != nil {
		return fmt.Errorf("revert migrations: %w", err)
	}
	m.logger.Info("Schema reverted to empty")
	return nil
}

// Steps applies n migrations forward, or reverts -n when n is negative.
func (m *Migrator) Steps(n int) error {
	err := m.migrate.Steps(n)
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("step migrations by %d: %w", n, err)
	}

	version, dirty, err := m.migrate.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", err)
	}
	m.logger.Info("Schema stepped",
		zap.Int("steps", n),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// GoTo migrates up or down until the schema sits at version.
func (m *Migrator) GoTo(version uint) error {
	err := m.migrate.Migrate(version)
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Schema already at version", zap.Uint("version", version))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate to version %d: %w", version, err)
	}
	m.logger.Info("Schema moved to version", zap.Uint("version", version))
	return nil
}

// Version reports the current schema version. A fresh database reports
// version 0 without error.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version without running any SQL. Only
// useful for clearing a dirty flag after a failed migration.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Overwriting schema version record", zap.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object in the connected database.
func (m *Migrator) Drop() error {
	m.logger.Warn("Dropping all database objects")
	if err := m.migrate.Drop(); err != nil {
		return fmt.Errorf("drop database objects: %w", err)
	}
	m.logger.Info("Database objects dropped")
	return nil
}

// Close releases the migrate instance and, when the Migrator owns the
// connection, the database handle as well.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.migrate.Close()
	if m.db != nil {
		_ = m.db.Close()
	}
	if srcErr != nil {
		return fmt.Errorf("close migration source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}
