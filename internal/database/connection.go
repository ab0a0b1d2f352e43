package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// ConnectionConfig holds database connection configuration.
type ConnectionConfig struct {
	Driver          string
	DSN             string
	MigrationsPath  string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Logger          *logrus.Logger
}

// DefaultConnectionConfig returns a local-development configuration.
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		Driver:          DriverSQLite,
		DSN:             "./data/samples.db",
		MigrationsPath:  "./migrations/sqlite",
		MaxOpenConns:    1, // SQLite works best with a single writer connection
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		Logger:          logrus.New(),
	}
}

// ConnectionManager owns the process-wide connection pool. It is constructed
// once at startup and handed to the container; handlers never build pools
// themselves.
type ConnectionManager struct {
	config *ConnectionConfig
	db     *sql.DB
}

// NewConnectionManager creates a new connection manager.
func NewConnectionManager(config *ConnectionConfig) *ConnectionManager {
	return &ConnectionManager{config: config}
}

// Connect opens the pool and runs pending migrations.
func (cm *ConnectionManager) Connect() error {
	if cm.db != nil {
		return fmt.Errorf("database connection already established")
	}

	db, err := sql.Open(cm.config.Driver, cm.config.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("database ping failed: %w", err)
	}

	db.SetMaxOpenConns(cm.config.MaxOpenConns)
	db.SetMaxIdleConns(cm.config.MaxIdleConns)
	db.SetConnMaxLifetime(cm.config.ConnMaxLifetime)

	if cm.config.MigrationsPath != "" {
		mm := NewMigrationManager(db, cm.config.Driver, cm.config.MigrationsPath, cm.config.Logger)
		if err := mm.RunMigrations(); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	cm.db = db
	cm.config.Logger.WithFields(logrus.Fields{
		"driver": cm.config.Driver,
	}).Info("Database connection established")
	return nil
}

// GetDB returns the database connection.
func (cm *ConnectionManager) GetDB() *sql.DB {
	return cm.db
}

// GetMigrationManager returns a migration manager for the open connection.
func (cm *ConnectionManager) GetMigrationManager() *MigrationManager {
	return NewMigrationManager(cm.db, cm.config.Driver, cm.config.MigrationsPath, cm.config.Logger)
}

// Close closes the database connection.
func (cm *ConnectionManager) Close() error {
	if cm.db == nil {
		return nil
	}
	err := cm.db.Close()
	cm.db = nil
	if err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	cm.config.Logger.Info("Database connection closed")
	return nil
}

// HealthCheck verifies the connection answers a trivial query.
func (cm *ConnectionManager) HealthCheck() error {
	if cm.db == nil {
		return fmt.Errorf("database connection not established")
	}
	var result int
	if err := cm.db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("test query failed: %w", err)
	}
	if result != 1 {
		return fmt.Errorf("test query returned unexpected result: %d", result)
	}
	return nil
}
