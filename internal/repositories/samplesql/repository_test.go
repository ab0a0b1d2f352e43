package samplesql

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"sample-catalog-api/internal/models"
	"sample-catalog-api/internal/repositories"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "samplesql_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tempDir, "test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE sample (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sample_id TEXT UNIQUE,
			category TEXT,
			collector_name TEXT,
			advisor_name TEXT,
			advisor_other_name TEXT,
			collection_year REAL,
			collection_reason TEXT,
			collection_reason_other TEXT,
			collection_location TEXT,
			short_description TEXT,
			long_description TEXT,
			sample_form TEXT,
			sample_form_other TEXT,
			sample_type TEXT,
			sample_type_other TEXT,
			sample_img TEXT,
			storage_building TEXT,
			storage_building_other TEXT,
			storage_room TEXT,
			storage_room_other TEXT,
			storage_details TEXT,
			storage_duration REAL,
			location_rectangle_south REAL,
			location_rectangle_west REAL,
			location_rectangle_north REAL,
			location_rectangle_east REAL,
			location_marker_lat REAL,
			location_marker_lng REAL,
			sys_is_active INTEGER NOT NULL DEFAULT 1,
			sys_create_timestamp TEXT,
			sys_create_user_uuid TEXT,
			sys_is_batch_upload INTEGER NOT NULL DEFAULT 0,
			sys_batch_upload_s3_uri TEXT,
			sys_batch_upload_original_fname TEXT,
			sys_delete_timestamp TEXT,
			sys_delete_user_uuid TEXT
		)
	`)
	if err != nil {
		t.Fatalf("Failed to create sample table: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tempDir)
	}
	return db, cleanup
}

func testRepo(t *testing.T) (repositories.SampleRepository, func()) {
	t.Helper()
	db, cleanup := setupTestDB(t)
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return NewSampleRepository(db, SQLiteDialect{}, logger), cleanup
}

func TestSampleRepository_CreateAndGet(t *testing.T) {
	repo, cleanup := testRepo(t)
	defer cleanup()
	ctx := context.Background()

	data := map[string]interface{}{
		"sampleId":       "GEO-001",
		"category":       "rock",
		"collectorName":  "Jane Field",
		"collectionYear": 1998.0,
		"sampleType":     []interface{}{"igneous", "volcanic"},
		"locationRectangleBounds": map[string]interface{}{
			"south": -1.5, "west": 10.0, "north": 2.5, "east": 20.0,
		},
		"locationMarkerlat": 0.5,
		"locationMarkerlng": 15.0,
	}
	if err := repo.Create(ctx, data, repositories.InsertOptions{UserUUID: "user-123"}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	sample, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}

	if sample.SampleID == nil || *sample.SampleID != "GEO-001" {
		t.Errorf("SampleID = %v", sample.SampleID)
	}
	if sample.CollectionYear == nil || *sample.CollectionYear != 1998 {
		t.Errorf("CollectionYear = %v", sample.CollectionYear)
	}
	if len(sample.SampleType) != 2 || sample.SampleType[0] != "igneous" {
		t.Errorf("SampleType = %v", sample.SampleType)
	}
	if sample.LocationRectangle == nil {
		t.Fatal("LocationRectangle was not reconstructed")
	}
	if sample.LocationRectangle.South != -1.5 || sample.LocationRectangle.East != 20 {
		t.Errorf("LocationRectangle = %+v", sample.LocationRectangle)
	}
	if sample.AdvisorName != nil {
		t.Errorf("absent field came back non-nil: %v", *sample.AdvisorName)
	}
	if !sample.IsActive {
		t.Error("new sample should be active")
	}
}

func TestSampleRepository_GetMissing(t *testing.T) {
	repo, cleanup := testRepo(t)
	defer cleanup()

	_, err := repo.GetByID(context.Background(), 999)
	if !repositories.IsNotFound(err) {
		t.Errorf("GetByID(missing) error = %v, want not-found", err)
	}
}

func TestSampleRepository_DuplicateSampleID(t *testing.T) {
	repo, cleanup := testRepo(t)
	defer cleanup()
	ctx := context.Background()

	data := map[string]interface{}{"sampleId": "GEO-001", "category": "rock"}
	if err := repo.Create(ctx, data, repositories.InsertOptions{}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	err := repo.Create(ctx, data, repositories.InsertOptions{})
	if !repositories.IsDuplicate(err) {
		t.Errorf("Create(duplicate) error = %v, want duplicate", err)
	}
}

func TestSampleRepository_SoftDelete(t *testing.T) {
	repo, cleanup := testRepo(t)
	defer cleanup()
	ctx := context.Background()

	if err := repo.Create(ctx, map[string]interface{}{"sampleId": "GEO-001"}, repositories.InsertOptions{}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := repo.SoftDelete(ctx, 1, "user-456"); err != nil {
		t.Fatalf("SoftDelete() failed: %v", err)
	}

	// Row survives and stays addressable by id.
	sample, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID() after delete failed: %v", err)
	}
	if sample.IsActive {
		t.Error("sample still active after soft delete")
	}

	// But it disappears from listings and searches.
	active, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("ListActive() returned %d samples, want 0", len(active))
	}

	results, err := repo.SearchFulltext(ctx, "GEO")
	if err != nil {
		t.Fatalf("SearchFulltext() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("SearchFulltext() returned retired sample")
	}
}

func TestSampleRepository_SoftDeleteMissing(t *testing.T) {
	repo, cleanup := testRepo(t)
	defer cleanup()

	err := repo.SoftDelete(context.Background(), 42, "user-456")
	if !repositories.IsNotFound(err) {
		t.Errorf("SoftDelete(missing) error = %v, want not-found", err)
	}
}

func TestSampleRepository_SearchByFilters(t *testing.T) {
	repo, cleanup := testRepo(t)
	defer cleanup()
	ctx := context.Background()

	seed := []map[string]interface{}{
		{"sampleId": "GEO-001", "category": "rock", "collectorName": "Jane Field"},
		{"sampleId": "GEO-002", "category": "rock", "collectorName": "Sam Drill"},
		{"sampleId": "GEO-003", "category": "mineral", "collectorName": "Jane Field"},
	}
	for _, data := range seed {
		if err := repo.Create(ctx, data, repositories.InsertOptions{}); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}

	results, err := repo.SearchByFilters(ctx, models.FilterParams{Category: "rock"})
	if err != nil {
		t.Fatalf("SearchByFilters() failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("category filter returned %d samples, want 2", len(results))
	}

	results, err = repo.SearchByFilters(ctx, models.FilterParams{Category: "rock", CollectorName: "Jane Field"})
	if err != nil {
		t.Fatalf("SearchByFilters() failed: %v", err)
	}
	if len(results) != 1 || *results[0].SampleID != "GEO-001" {
		t.Errorf("combined filter results = %v", results)
	}

	// No filters means every active sample.
	results, err = repo.SearchByFilters(ctx, models.FilterParams{})
	if err != nil {
		t.Fatalf("SearchByFilters() failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("empty filter returned %d samples, want 3", len(results))
	}
}

func TestSampleRepository_SearchFulltext(t *testing.T) {
	repo, cleanup := testRepo(t)
	defer cleanup()
	ctx := context.Background()

	seed := []map[string]interface{}{
		{"sampleId": "GEO-001", "shortDescription": "Granite boulder from ridge"},
		{"sampleId": "GEO-002", "sampleType": []interface{}{"granite", "intrusive"}},
		{"sampleId": "GEO-003", "shortDescription": "Limestone shelf fragment"},
	}
	for _, data := range seed {
		if err := repo.Create(ctx, data, repositories.InsertOptions{}); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}

	// Case-insensitive, matches plain fields and array elements alike.
	results, err := repo.SearchFulltext(ctx, "GRANITE")
	if err != nil {
		t.Fatalf("SearchFulltext() failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("SearchFulltext(GRANITE) returned %d samples, want 2", len(results))
	}

	results, err = repo.SearchFulltext(ctx, "basalt")
	if err != nil {
		t.Fatalf("SearchFulltext() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("SearchFulltext(basalt) returned %d samples, want 0", len(results))
	}
}

func TestSampleRepository_SearchByLocation(t *testing.T) {
	repo, cleanup := testRepo(t)
	defer cleanup()
	ctx := context.Background()

	seed := []map[string]interface{}{
		// Marker inside the search rectangle.
		{"sampleId": "GEO-001", "locationMarkerlat": 5.0, "locationMarkerlng": 5.0},
		// Marker outside.
		{"sampleId": "GEO-002", "locationMarkerlat": 50.0, "locationMarkerlng": 50.0},
		// Own rectangle fully contained in the search rectangle.
		{"sampleId": "GEO-003", "locationRectangleBounds": map[string]interface{}{
			"south": 1.0, "west": 1.0, "north": 2.0, "east": 2.0,
		}},
		// Own rectangle extending beyond the search rectangle.
		{"sampleId": "GEO-004", "locationRectangleBounds": map[string]interface{}{
			"south": -5.0, "west": -5.0, "north": 20.0, "east": 20.0,
		}},
	}
	for _, data := range seed {
		if err := repo.Create(ctx, data, repositories.InsertOptions{}); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}

	results, err := repo.SearchByLocation(ctx, models.RectangleBounds{South: 0, West: 0, North: 10, East: 10})
	if err != nil {
		t.Fatalf("SearchByLocation() failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("SearchByLocation() returned %d samples, want 2", len(results))
	}
	found := map[string]bool{}
	for _, s := range results {
		found[*s.SampleID] = true
	}
	if !found["GEO-001"] || !found["GEO-003"] {
		t.Errorf("SearchByLocation() results = %v", found)
	}
}

func TestSampleRepository_TransactionRollback(t *testing.T) {
	repo, cleanup := testRepo(t)
	defer cleanup()
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx() failed: %v", err)
	}
	if err := repo.CreateTx(ctx, tx, map[string]interface{}{"sampleId": "GEO-001"}, repositories.InsertOptions{}); err != nil {
		t.Fatalf("CreateTx() failed: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback() failed: %v", err)
	}

	active, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("rolled-back insert visible: %d samples", len(active))
	}
}
