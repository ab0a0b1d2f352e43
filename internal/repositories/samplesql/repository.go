package samplesql

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sample-catalog-api/internal/models"
	"sample-catalog-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// execer is satisfied by both *sql.DB and *sql.Tx so inserts can run inside
// or outside an explicit transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SampleRepository implements repositories.SampleRepository on database/sql.
type SampleRepository struct {
	db      *sql.DB
	dialect Dialect
	logger  *logrus.Logger
}

// NewSampleRepository creates a sample repository for the given connection
// and dialect.
func NewSampleRepository(db *sql.DB, dialect Dialect, logger *logrus.Logger) repositories.SampleRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &SampleRepository{
		db:      db,
		dialect: dialect,
		logger:  logger,
	}
}

// Create inserts one sample row outside any explicit transaction.
func (r *SampleRepository) Create(ctx context.Context, data map[string]interface{}, opts repositories.InsertOptions) error {
	return r.insert(ctx, r.db, data, opts)
}

// CreateTx inserts one sample row on the supplied transaction.
func (r *SampleRepository) CreateTx(ctx context.Context, tx *sql.Tx, data map[string]interface{}, opts repositories.InsertOptions) error {
	return r.insert(ctx, tx, data, opts)
}

func (r *SampleRepository) insert(ctx context.Context, ex execer, data map[string]interface{}, opts repositories.InsertOptions) error {
	query, values, err := BuildInsert(r.dialect, data, opts, time.Now())
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = ex.ExecContext(ctx, query, values...)
	r.logQuery("create", query, values, time.Since(start), err)

	if err != nil {
		if r.dialect.IsUniqueViolation(err) {
			id, _ := data["sampleId"].(string)
			return repositories.DuplicateError("sample", "sampleId", id)
		}
		return repositories.NewRepositoryError("create", "sample", "", err)
	}
	return nil
}

// GetByID fetches one sample by primary key regardless of its active flag,
// so soft-deleted records remain addressable for audit purposes.
func (r *SampleRepository) GetByID(ctx context.Context, id int64) (*models.Sample, error) {
	query := fmt.Sprintf("SELECT %s FROM sample WHERE id = %s",
		selectColumns(), r.dialect.Placeholder(1))

	start := time.Now()
	row := r.db.QueryRowContext(ctx, query, id)
	r.logQuery("get_by_id", query, []interface{}{id}, time.Since(start), nil)

	sample, err := scanSample(r.dialect, row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.NotFoundError("sample", strconv.FormatInt(id, 10))
		}
		return nil, repositories.NewRepositoryError("get_by_id", "sample", strconv.FormatInt(id, 10), err)
	}
	return sample, nil
}

// ListActive returns all samples that have not been soft-deleted.
func (r *SampleRepository) ListActive(ctx context.Context) ([]*models.Sample, error) {
	query := fmt.Sprintf("SELECT %s FROM sample WHERE sys_is_active = TRUE", selectColumns())
	return r.querySamples(ctx, "list", query, nil)
}

// SoftDelete marks a sample inactive and records the delete audit columns.
func (r *SampleRepository) SoftDelete(ctx context.Context, id int64, userUUID string) error {
	query := fmt.Sprintf(
		"UPDATE sample SET sys_is_active = FALSE, sys_delete_timestamp = %s, sys_delete_user_uuid = %s WHERE id = %s",
		r.dialect.Placeholder(1), r.dialect.Placeholder(2), r.dialect.Placeholder(3))
	values := []interface{}{time.Now().UTC().Format(time.RFC3339), userUUID, id}

	start := time.Now()
	result, err := r.db.ExecContext(ctx, query, values...)
	r.logQuery("soft_delete", query, values, time.Since(start), err)
	if err != nil {
		return repositories.NewRepositoryError("soft_delete", "sample", strconv.FormatInt(id, 10), err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return repositories.NewRepositoryError("soft_delete", "sample", strconv.FormatInt(id, 10), err)
	}
	if affected == 0 {
		return repositories.NotFoundError("sample", strconv.FormatInt(id, 10))
	}
	return nil
}

// SearchByFilters returns active samples matching every supplied filter.
func (r *SampleRepository) SearchByFilters(ctx context.Context, filters models.FilterParams) ([]*models.Sample, error) {
	conditions, values, err := FilterConditions(r.dialect, filterMap(filters))
	if err != nil {
		return nil, err
	}
	conditions = append(conditions, "sys_is_active = TRUE")

	query := fmt.Sprintf("SELECT %s FROM sample WHERE %s",
		selectColumns(), strings.Join(conditions, " AND "))
	return r.querySamples(ctx, "search_filters", query, values)
}

// SearchFulltext returns active samples where any textual field matches the
// term case-insensitively. One bound value backs every condition.
func (r *SampleRepository) SearchFulltext(ctx context.Context, term string) ([]*models.Sample, error) {
	conditions := FulltextConditions(r.dialect)
	query := fmt.Sprintf("SELECT %s FROM sample WHERE (%s) AND sys_is_active = TRUE",
		selectColumns(), strings.Join(conditions, " OR "))
	return r.querySamples(ctx, "search_fulltext", query, []interface{}{FulltextValue(term)})
}

// SearchByLocation returns active samples whose marker lies inside the given
// rectangle or whose own rectangle is contained in it. Placeholders are bound
// once in south/west/north/east order and shared between both branches.
func (r *SampleRepository) SearchByLocation(ctx context.Context, bounds models.RectangleBounds) ([]*models.Sample, error) {
	d := r.dialect
	s, w, n, e := d.Placeholder(1), d.Placeholder(2), d.Placeholder(3), d.Placeholder(4)
	query := fmt.Sprintf(`SELECT %s FROM sample
		WHERE ((location_marker_lat >= %s AND location_marker_lat <= %s
			AND location_marker_lng >= %s AND location_marker_lng <= %s)
		OR (location_rectangle_south >= %s AND location_rectangle_north <= %s
			AND location_rectangle_west >= %s AND location_rectangle_east <= %s))
		AND sys_is_active = TRUE`,
		selectColumns(), s, n, w, e, s, n, w, e)
	values := []interface{}{bounds.South, bounds.West, bounds.North, bounds.East}
	return r.querySamples(ctx, "search_location", query, values)
}

// BeginTx opens a transaction for batch use.
func (r *SampleRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, repositories.TransactionError("begin", err)
	}
	return tx, nil
}

func (r *SampleRepository) querySamples(ctx context.Context, operation, query string, values []interface{}) ([]*models.Sample, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, values...)
	r.logQuery(operation, query, values, time.Since(start), err)
	if err != nil {
		return nil, repositories.NewRepositoryError(operation, "sample", "", err)
	}
	defer rows.Close()

	var samples []*models.Sample
	for rows.Next() {
		sample, err := scanSample(r.dialect, rows)
		if err != nil {
			return nil, repositories.NewRepositoryError(operation, "sample", "", err)
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError(operation, "sample", "", err)
	}
	return samples, nil
}

func (r *SampleRepository) logQuery(operation, query string, args []interface{}, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     "sample",
		"query":     query,
		"args":      len(args),
		"duration":  duration,
	}
	if err != nil {
		fields["error"] = err.Error()
		r.logger.WithFields(fields).Error("Query failed")
	} else {
		r.logger.WithFields(fields).Debug("Query executed")
	}
}

// filterMap converts the typed filter params into the sparse map shape the
// condition builder consumes.
func filterMap(f models.FilterParams) map[string]interface{} {
	m := map[string]interface{}{}
	if f.Category != "" {
		m["category"] = f.Category
	}
	if f.CollectorName != "" {
		m["collectorName"] = f.CollectorName
	}
	if f.AdvisorName != "" {
		m["advisorName"] = f.AdvisorName
	}
	if f.StorageBuilding != "" {
		m["storageBuilding"] = f.StorageBuilding
	}
	if f.StorageRoom != "" {
		m["storageRoom"] = f.StorageRoom
	}
	return m
}
