package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStorage is an in-memory ObjectStorage used in tests and local runs.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	bucket  string
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage(bucket string) *MemoryStorage {
	if bucket == "" {
		bucket = "memory"
	}
	return &MemoryStorage{
		objects: make(map[string][]byte),
		bucket:  bucket,
	}
}

func (m *MemoryStorage) Store(ctx context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.objects[key] = cp
	return nil
}

func (m *MemoryStorage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, NewStorageError("retrieve", key, ErrNotFound)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (m *MemoryStorage) PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://%s.local/%s?expires=%d", m.bucket, key, int64(expiry.Seconds())), nil
}

func (m *MemoryStorage) URI(key string) string {
	return fmt.Sprintf("s3://%s/%s", m.bucket, key)
}

func (m *MemoryStorage) Close() error {
	return nil
}
