package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"sample-catalog-api/internal/database"
)

func main() {
	var (
		driver         = flag.String("driver", database.DriverSQLite, "Database driver: sqlite3 or pgx")
		dsn            = flag.String("dsn", "./data/samples.db", "Database DSN or file path")
		migrationsPath = flag.String("migrations", "./migrations/sqlite", "Migrations directory path")
		action         = flag.String("action", "up", "Migration action: up, down, version")
		verbose        = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absMigrationsPath, err := filepath.Abs(*migrationsPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute migrations path")
	}

	logger.WithFields(logrus.Fields{
		"driver":          *driver,
		"migrations_path": absMigrationsPath,
		"action":          *action,
	}).Info("Starting migration tool")

	// MigrationsPath stays empty here so Connect does not auto-apply
	// migrations before a down or version action.
	cm := database.NewConnectionManager(&database.ConnectionConfig{
		Driver:       *driver,
		DSN:          *dsn,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		Logger:       logger,
	})
	if err := cm.Connect(); err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer cm.Close()

	mm := database.NewMigrationManager(cm.GetDB(), *driver, absMigrationsPath, logger)

	switch *action {
	case "up":
		if err := mm.RunMigrations(); err != nil {
			logger.WithError(err).Fatal("Migration up failed")
		}
	case "down":
		if err := mm.RollbackMigration(); err != nil {
			logger.WithError(err).Fatal("Migration down failed")
		}
	case "version":
		version, dirty, err := mm.Version()
		if err != nil {
			logger.WithError(err).Fatal("Failed to get migration version")
		}
		fmt.Printf("version=%d dirty=%v\n", version, dirty)
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: up, down, version")
	}

	logger.Info("Migration tool completed successfully")
}
