package database

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

// MigrationManager handles schema migrations for either supported driver.
type MigrationManager struct {
	db             *sql.DB
	driver         string
	migrationsPath string
	logger         *logrus.Logger
}

// NewMigrationManager creates a new migration manager.
func NewMigrationManager(db *sql.DB, driver, migrationsPath string, logger *logrus.Logger) *MigrationManager {
	if logger == nil {
		logger = logrus.New()
	}
	return &MigrationManager{
		db:             db,
		driver:         driver,
		migrationsPath: migrationsPath,
		logger:         logger,
	}
}

// RunMigrations executes all pending migrations.
func (m *MigrationManager) RunMigrations() error {
	m.logger.Info("Starting database migrations...")

	mig, err := m.initMigrate()
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer mig.Close()

	currentVersion, dirty, err := mig.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		m.logger.Warn("Database is in dirty state, forcing current version")
		if err := mig.Force(int(currentVersion)); err != nil {
			return fmt.Errorf("failed to force migration version: %w", err)
		}
	}

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newVersion, _, err := mig.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get new migration version: %w", err)
	}
	m.logger.WithField("version", newVersion).Info("Migrations completed successfully")
	return nil
}

// RollbackMigration rolls back the last migration.
func (m *MigrationManager) RollbackMigration() error {
	m.logger.Info("Rolling back last migration...")

	mig, err := m.initMigrate()
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer mig.Close()

	if err := mig.Steps(-1); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}
	m.logger.Info("Rollback completed successfully")
	return nil
}

// Version returns the current migration version.
func (m *MigrationManager) Version() (uint, bool, error) {
	mig, err := m.initMigrate()
	if err != nil {
		return 0, false, fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer mig.Close()

	version, dirty, err := mig.Version()
	if err == migrate.ErrNilVersion {
		return 0, false, nil
	}
	return version, dirty, err
}

func (m *MigrationManager) initMigrate() (*migrate.Migrate, error) {
	var (
		dbDriver database.Driver
		err      error
	)
	switch m.driver {
	case DriverSQLite:
		dbDriver, err = sqlite3.WithInstance(m.db, &sqlite3.Config{})
	case DriverPostgres:
		dbDriver, err = postgres.WithInstance(m.db, &postgres.Config{})
	default:
		return nil, fmt.Errorf("unsupported driver: %s", m.driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	return migrate.NewWithDatabaseInstance("file://"+m.migrationsPath, m.driver, dbDriver)
}
