package storage

import (
	"context"
	"time"
)

// ObjectStorage abstracts the object store holding uploaded spreadsheets.
// The S3 implementation backs deployments; the in-memory implementation backs
// local development and tests.
type ObjectStorage interface {
	// Store writes an object. Used by tests and local tooling; deployed
	// clients write directly through presigned URLs.
	Store(ctx context.Context, key string, data []byte, contentType string) error

	// Retrieve reads an object in full.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// PresignUpload returns a time-limited URL granting a single PUT of the
	// given content type to key.
	PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)

	// URI returns the canonical storage URI recorded in batch provenance
	// columns, e.g. s3://bucket/key.
	URI(key string) string

	// Close cleans up any resources used by the storage implementation.
	Close() error
}
