package server

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"sample-catalog-api/internal/adapters/storage"
	"sample-catalog-api/internal/auth"
	"sample-catalog-api/internal/config"
	"sample-catalog-api/internal/database"
	"sample-catalog-api/internal/repositories"
	"sample-catalog-api/internal/repositories/samplesql"
	"sample-catalog-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	SampleService services.SampleService
	BatchService  services.BatchService
	UploadService services.UploadService
	Verifier      auth.TokenVerifier
	Cognito       *auth.CognitoClient
	OAuth         *auth.OAuthClient
	Storage       storage.ObjectStorage

	connManager *database.ConnectionManager
	logger      *logrus.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := logrus.StandardLogger()

	connManager := database.NewConnectionManager(&database.ConnectionConfig{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MigrationsPath:  cfg.Database.MigrationsPath,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: 30 * time.Minute,
		Logger:          logger,
	})
	if err := connManager.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var dialect samplesql.Dialect
	switch cfg.Database.Driver {
	case database.DriverPostgres:
		dialect = samplesql.PostgresDialect{}
	case database.DriverSQLite:
		dialect = samplesql.SQLiteDialect{}
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	var repo repositories.SampleRepository = samplesql.NewSampleRepository(connManager.GetDB(), dialect, logger)

	store, err := storage.NewObjectStorage(ctx, storage.Config{
		Type:     cfg.Storage.Type,
		Bucket:   cfg.Storage.Bucket,
		Region:   cfg.Storage.Region,
		Endpoint: cfg.Storage.Endpoint,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	container := &Container{
		Config:        cfg,
		SampleService: services.NewSampleService(repo, logger),
		BatchService:  services.NewBatchService(repo, store, logger),
		UploadService: services.NewUploadService(store, logger),
		Storage:       store,
		connManager:   connManager,
		logger:        logger,
	}

	// Auth wiring is optional so local runs without a user pool still work.
	if cfg.Auth.JWKSURL != "" {
		verifier, err := auth.NewJWKSVerifier(ctx, cfg.Auth.JWKSURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
		}
		container.Verifier = verifier
	}
	if cfg.Auth.UserPoolID != "" && cfg.Auth.ClientID != "" {
		cognito, err := auth.NewCognitoClient(ctx, cfg.Auth.Region, cfg.Auth.UserPoolID, cfg.Auth.ClientID, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize identity provider client: %w", err)
		}
		container.Cognito = cognito
	}
	if cfg.Auth.TokenEndpoint != "" && cfg.Auth.ClientID != "" {
		container.OAuth = auth.NewOAuthClient(cfg.Auth.TokenEndpoint, cfg.Auth.ClientID, logger)
	}

	return container, nil
}

// Authenticator returns the configured identity provider, or nil when no
// user pool is wired. The nil check must happen on the concrete pointer so
// handlers receive a truly nil interface.
func (c *Container) Authenticator() auth.Authenticator {
	if c.Cognito == nil {
		return nil
	}
	return c.Cognito
}

// HealthCheck verifies the database connection is alive.
func (c *Container) HealthCheck() error {
	return c.connManager.HealthCheck()
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.Storage != nil {
		if err := c.Storage.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}
	if c.connManager != nil {
		if err := c.connManager.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
