package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Database    DatabaseConfig
	Storage     StorageConfig
	Auth        AuthConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver         string
	DSN            string
	MigrationsPath string
	MaxOpenConns   int
	MaxIdleConns   int
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Type     string // "memory" or "s3"
	Bucket   string
	Region   string
	Endpoint string // optional, for S3-compatible local stacks
}

// AuthConfig holds identity provider configuration
type AuthConfig struct {
	Region        string
	UserPoolID    string
	ClientID      string
	JWKSURL       string
	TokenEndpoint string
	WebClientURL  string // where the OAuth callback redirects the browser
	StackBaseName string
	Stage         string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_DRIVER", "sqlite3")
	viper.SetDefault("DB_DSN", "./data/samples.db")
	viper.SetDefault("DB_MIGRATIONS_PATH", "./migrations/sqlite")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 25)
	viper.SetDefault("STORAGE_TYPE", "memory")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("STAGE", "dev")
	viper.SetDefault("WEB_CLIENT_URL", "http://localhost:3000")

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		Database: DatabaseConfig{
			Driver:         viper.GetString("DB_DRIVER"),
			DSN:            viper.GetString("DB_DSN"),
			MigrationsPath: viper.GetString("DB_MIGRATIONS_PATH"),
			MaxOpenConns:   viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:   viper.GetInt("DB_MAX_IDLE_CONNS"),
		},
		Storage: StorageConfig{
			Type:     viper.GetString("STORAGE_TYPE"),
			Bucket:   viper.GetString("DATA_BUCKET"),
			Region:   viper.GetString("AWS_REGION"),
			Endpoint: viper.GetString("S3_ENDPOINT"),
		},
		Auth: AuthConfig{
			Region:        viper.GetString("AWS_REGION"),
			UserPoolID:    viper.GetString("USER_POOL_ID"),
			ClientID:      viper.GetString("USER_POOL_CLIENT_ID"),
			JWKSURL:       viper.GetString("JWKS_URL"),
			TokenEndpoint: viper.GetString("TOKEN_ENDPOINT"),
			WebClientURL:  viper.GetString("WEB_CLIENT_URL"),
			StackBaseName: viper.GetString("STACK_BASE_NAME"),
			Stage:         viper.GetString("STAGE"),
		},
	}

	return config, nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt gets an environment variable as integer with a fallback value
func GetEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
