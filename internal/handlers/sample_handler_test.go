package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"sample-catalog-api/internal/models"
	"sample-catalog-api/internal/repositories"
)

// stubSampleService returns canned results so handler translation can be
// tested without a database.
type stubSampleService struct {
	sample    *models.Sample
	samples   []*models.Sample
	err       error
	createErr error
}

func (s *stubSampleService) Create(ctx context.Context, data map[string]interface{}, userUUID string) error {
	return s.createErr
}
func (s *stubSampleService) Get(ctx context.Context, id int64) (*models.Sample, error) {
	return s.sample, s.err
}
func (s *stubSampleService) List(ctx context.Context) ([]*models.Sample, error) {
	return s.samples, s.err
}
func (s *stubSampleService) Delete(ctx context.Context, id int64, userUUID string) error {
	return s.err
}
func (s *stubSampleService) SearchByFilters(ctx context.Context, params models.FilterParams) ([]*models.Sample, error) {
	return s.samples, s.err
}
func (s *stubSampleService) SearchFulltext(ctx context.Context, term string) ([]*models.Sample, error) {
	return s.samples, s.err
}
func (s *stubSampleService) SearchByLocation(ctx context.Context, bounds models.RectangleBounds) ([]*models.Sample, error) {
	return s.samples, s.err
}

func testRouter(svc *stubSampleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewSampleHandler(svc, nil)
	router.POST("/samples", h.CreateSample)
	router.GET("/samples", h.ListSamples)
	router.GET("/samples/:id", h.GetSample)
	router.DELETE("/samples/:id", h.DeleteSample)
	return router
}

func TestCreateSample(t *testing.T) {
	router := testRouter(&stubSampleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/samples", strings.NewReader(`{"sampleId":"GEO-001"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	var result models.ResultStatus
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !result.Success {
		t.Errorf("result = %+v", result)
	}
}

func TestCreateSample_InvalidBody(t *testing.T) {
	router := testRouter(&stubSampleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/samples", strings.NewReader(`{broken`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateSample_NoFields(t *testing.T) {
	router := testRouter(&stubSampleService{
		createErr: repositories.NoFieldsError("sample"),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/samples", strings.NewReader(`{"unknown":"x"}`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
}

func TestCreateSample_Duplicate(t *testing.T) {
	router := testRouter(&stubSampleService{
		createErr: repositories.DuplicateError("sample", "sampleId", "GEO-001"),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/samples", strings.NewReader(`{"sampleId":"GEO-001"}`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetSample_NotFound(t *testing.T) {
	router := testRouter(&stubSampleService{
		err: repositories.NotFoundError("sample", "42"),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/samples/42", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404: %s", w.Code, w.Body.String())
	}
}

func TestGetSample_InvalidID(t *testing.T) {
	router := testRouter(&stubSampleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/samples/not-a-number", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDeleteSample_Accepted(t *testing.T) {
	router := testRouter(&stubSampleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/samples/7", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202: %s", w.Code, w.Body.String())
	}
}

func TestDeleteSample_NotFound(t *testing.T) {
	router := testRouter(&stubSampleService{
		err: repositories.NotFoundError("sample", "7"),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/samples/7", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListSamples_InternalErrorStaysGeneric(t *testing.T) {
	router := testRouter(&stubSampleService{
		err: repositories.NewRepositoryError("list", "sample", "", context.DeadlineExceeded),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/samples", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "deadline") {
		t.Errorf("internal detail leaked: %s", w.Body.String())
	}
}
