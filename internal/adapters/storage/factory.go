package storage

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Storage backend types.
const (
	TypeS3     = "s3"
	TypeMemory = "memory"
)

// Config selects and parameterizes a storage backend.
type Config struct {
	Type     string
	Bucket   string
	Region   string
	Endpoint string
}

// NewObjectStorage creates the ObjectStorage named by cfg.Type.
func NewObjectStorage(ctx context.Context, cfg Config, logger *logrus.Logger) (ObjectStorage, error) {
	switch cfg.Type {
	case TypeS3:
		return NewS3Storage(ctx, S3Config{
			Bucket:   cfg.Bucket,
			Region:   cfg.Region,
			Endpoint: cfg.Endpoint,
		}, logger)
	case TypeMemory, "":
		return NewMemoryStorage(cfg.Bucket), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
