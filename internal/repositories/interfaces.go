package repositories

import (
	"context"
	"database/sql"

	"sample-catalog-api/internal/models"
)

// InsertOptions carries the audit identity and batch provenance recorded in
// the system columns of every inserted row.
type InsertOptions struct {
	UserUUID       string
	IsBatchUpload  bool
	BatchSourceFN  string
	BatchUploadURI string
}

// SampleRepository is the persistence surface for sample records. Writes take
// the sparse external record as a key→value map; the implementation consults
// the field registry to decide which keys are persisted.
type SampleRepository interface {
	// Create inserts one sample row outside any explicit transaction.
	Create(ctx context.Context, data map[string]interface{}, opts InsertOptions) error

	// CreateTx inserts one sample row on the supplied transaction. The caller
	// owns commit/rollback.
	CreateTx(ctx context.Context, tx *sql.Tx, data map[string]interface{}, opts InsertOptions) error

	// GetByID fetches one sample regardless of its active flag.
	GetByID(ctx context.Context, id int64) (*models.Sample, error)

	// ListActive returns all samples that have not been soft-deleted.
	ListActive(ctx context.Context) ([]*models.Sample, error)

	// SoftDelete marks a sample inactive and records the delete audit
	// columns. Missing ids yield a not-found error and mutate nothing.
	SoftDelete(ctx context.Context, id int64, userUUID string) error

	// SearchByFilters returns active samples matching every supplied filter.
	SearchByFilters(ctx context.Context, filters models.FilterParams) ([]*models.Sample, error)

	// SearchFulltext returns active samples where any textual field matches
	// the term case-insensitively.
	SearchFulltext(ctx context.Context, term string) ([]*models.Sample, error)

	// SearchByLocation returns active samples whose marker lies inside the
	// rectangle or whose own rectangle is contained in it.
	SearchByLocation(ctx context.Context, bounds models.RectangleBounds) ([]*models.Sample, error)

	// BeginTx opens a transaction for batch use.
	BeginTx(ctx context.Context) (*sql.Tx, error)
}
