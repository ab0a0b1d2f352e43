package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sample-catalog-api/internal/adapters/storage"
	"sample-catalog-api/internal/models"
)

// presignTTL is how long an issued upload URL stays valid.
const presignTTL = time.Hour

// PresignUploadService issues presigned upload URLs under unique keys so
// concurrent uploads of identically named files never collide.
type PresignUploadService struct {
	storage storage.ObjectStorage
	logger  *logrus.Logger
}

// NewUploadService creates an upload service.
func NewUploadService(store storage.ObjectStorage, logger *logrus.Logger) *PresignUploadService {
	if logger == nil {
		logger = logrus.New()
	}
	return &PresignUploadService{storage: store, logger: logger}
}

// PresignUpload returns a one-hour PUT URL for a fresh upload/ key, together
// with the key and the original file name for the later import call.
func (s *PresignUploadService) PresignUpload(ctx context.Context, fileName, contentType string) (*models.PresignedUpload, error) {
	key := fmt.Sprintf("upload/%s", uuid.New().String())
	url, err := s.storage.PresignUpload(ctx, key, contentType, presignTTL)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"key": key, "file": fileName}).Info("Upload URL issued")
	return &models.PresignedUpload{
		URL:            url,
		SourceFileName: fileName,
		DestS3FileName: key,
	}, nil
}
