package services

import (
	"context"

	"sample-catalog-api/internal/models"
)

// SampleService manages the sample catalog.
type SampleService interface {
	Create(ctx context.Context, data map[string]interface{}, userUUID string) error
	Get(ctx context.Context, id int64) (*models.Sample, error)
	List(ctx context.Context) ([]*models.Sample, error)
	Delete(ctx context.Context, id int64, userUUID string) error
	SearchByFilters(ctx context.Context, params models.FilterParams) ([]*models.Sample, error)
	SearchFulltext(ctx context.Context, term string) ([]*models.Sample, error)
	SearchByLocation(ctx context.Context, bounds models.RectangleBounds) ([]*models.Sample, error)
}

// BatchService ingests spreadsheet files of samples.
type BatchService interface {
	ImportSpreadsheet(ctx context.Context, key, fileName, userUUID string) (int, error)
}

// UploadService issues presigned upload URLs.
type UploadService interface {
	PresignUpload(ctx context.Context, fileName, contentType string) (*models.PresignedUpload, error)
}
