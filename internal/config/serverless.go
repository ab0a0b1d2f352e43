package config

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Region       string
	Stage        string
}

// Global serverless configuration
var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = &ServerlessConfig{
			IsLambda:     isRunningInLambda(),
			FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
			Region:       os.Getenv("AWS_REGION"),
			Stage:        GetEnv("STAGE", "dev"),
		}
	})
	return serverlessConfig
}

// isRunningInLambda detects if the application is running in AWS Lambda
func isRunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return GetServerlessConfig().IsLambda
}

// AdaptConfigForServerless rewrites configuration for Lambda deployment: the
// database becomes the managed Postgres instance with credentials resolved
// from Secrets Manager, storage becomes S3, and the Cognito pool/client ids
// come from SSM Parameter Store.
func AdaptConfigForServerless(ctx context.Context, config *Config) (*Config, error) {
	if !IsServerlessMode() {
		return config, nil
	}

	secrets, err := NewSecretsClient(ctx, config.Auth.Region)
	if err != nil {
		return nil, err
	}

	dsn, err := buildPostgresDSN(ctx, secrets)
	if err != nil {
		return nil, err
	}
	config.Database.Driver = "pgx"
	config.Database.DSN = dsn
	// Migrations are applied by the migrate function, not per-invocation.
	config.Database.MigrationsPath = ""
	config.Database.MaxOpenConns = 2
	config.Database.MaxIdleConns = 2

	config.Storage.Type = "s3"
	if config.Storage.Bucket == "" {
		config.Storage.Bucket = os.Getenv("DATA_BUCKET")
	}

	if config.Auth.StackBaseName != "" {
		base := fmt.Sprintf("/%s/%s", config.Auth.StackBaseName, config.Auth.Stage)
		if config.Auth.UserPoolID == "" {
			if config.Auth.UserPoolID, err = secrets.GetParameter(ctx, base+"/userpool/id"); err != nil {
				return nil, err
			}
		}
		if config.Auth.ClientID == "" {
			if config.Auth.ClientID, err = secrets.GetParameter(ctx, base+"/userpool/client/id"); err != nil {
				return nil, err
			}
		}
	}
	if config.Auth.JWKSURL == "" && config.Auth.UserPoolID != "" {
		config.Auth.JWKSURL = fmt.Sprintf(
			"https://cognito-idp.%s.amazonaws.com/%s/.well-known/jwks.json",
			config.Auth.Region, config.Auth.UserPoolID)
	}

	return config, nil
}

func buildPostgresDSN(ctx context.Context, secrets *SecretsClient) (string, error) {
	secretName := os.Getenv("DB_SECRET_KEY")
	if secretName == "" {
		return "", fmt.Errorf("DB_SECRET_KEY is not set")
	}
	creds, err := secrets.GetDatabaseCredentials(ctx, secretName)
	if err != nil {
		return "", err
	}

	host := os.Getenv("DB_HOST_NAME")
	port := GetEnv("DB_PORT", "5432")
	name := os.Getenv("DB_NAME")
	if host == "" || name == "" {
		return "", fmt.Errorf("DB_HOST_NAME and DB_NAME must be set")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=require",
		host, port, creds.Username, creds.Password, name), nil
}

// GetOptimizedConfig returns configuration adapted for the current deployment mode
func GetOptimizedConfig(ctx context.Context) (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}
	return AdaptConfigForServerless(ctx, config)
}
