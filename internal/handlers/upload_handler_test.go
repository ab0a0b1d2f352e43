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
	"sample-catalog-api/pkg/lambda"
)

type stubUploadService struct {
	upload *models.PresignedUpload
	err    error
}

func (s *stubUploadService) PresignUpload(ctx context.Context, fileName, contentType string) (*models.PresignedUpload, error) {
	return s.upload, s.err
}

type stubBatchService struct {
	count int
	err   error
}

func (s *stubBatchService) ImportSpreadsheet(ctx context.Context, key, fileName, userUUID string) (int, error) {
	return s.count, s.err
}

func uploadTestRouter(h *UploadHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/uploads/presign", h.PresignUpload)
	router.POST("/samples/batch", h.BatchImport)
	return router
}

func TestPresignUpload_Created(t *testing.T) {
	h := NewUploadHandler(&stubUploadService{
		upload: &models.PresignedUpload{
			URL:            "https://bucket.local/upload/abc",
			SourceFileName: "samples.xlsx",
			DestS3FileName: "upload/abc",
		},
	}, &stubBatchService{}, nil)
	router := uploadTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/uploads/presign", strings.NewReader(`{"name":"samples.xlsx","contentType":"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	var upload models.PresignedUpload
	if err := json.Unmarshal(w.Body.Bytes(), &upload); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if upload.URL == "" || upload.DestS3FileName == "" {
		t.Errorf("upload = %+v", upload)
	}
}

func TestPresignUpload_MissingName(t *testing.T) {
	h := NewUploadHandler(&stubUploadService{}, &stubBatchService{}, nil)
	router := uploadTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/uploads/presign", strings.NewReader(`{"contentType":"text/csv"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
}

func TestHandlePresign_Created(t *testing.T) {
	h := NewUploadHandler(&stubUploadService{
		upload: &models.PresignedUpload{
			URL:            "https://bucket.local/upload/abc",
			SourceFileName: "samples.xlsx",
			DestS3FileName: "upload/abc",
		},
	}, &stubBatchService{}, nil)

	resp, err := h.HandlePresign(context.Background(), &lambda.Request{
		Method: "POST",
		Path:   "/uploads/presign",
		Body:   []byte(`{"name":"samples.xlsx"}`),
	})
	if err != nil {
		t.Fatalf("HandlePresign: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want 201: %s", resp.StatusCode, resp.Body)
	}
}

func TestBatchImport_ReportsCount(t *testing.T) {
	h := NewUploadHandler(&stubUploadService{}, &stubBatchService{count: 4}, nil)
	router := uploadTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/samples/batch", strings.NewReader(`{"sourceFileName":"samples.xlsx","destS3FileName":"upload/abc"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Imported 4 samples") {
		t.Errorf("body = %s", w.Body.String())
	}
}
