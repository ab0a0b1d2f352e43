package services

import (
	"context"
	"strings"
	"testing"

	"sample-catalog-api/internal/adapters/storage"
)

func TestPresignUpload(t *testing.T) {
	svc := NewUploadService(storage.NewMemoryStorage("test-bucket"), nil)

	upload, err := svc.PresignUpload(context.Background(), "samples.xlsx", "application/vnd.ms-excel")
	if err != nil {
		t.Fatalf("PresignUpload() failed: %v", err)
	}
	if upload.URL == "" {
		t.Error("presigned URL is empty")
	}
	if upload.SourceFileName != "samples.xlsx" {
		t.Errorf("SourceFileName = %q", upload.SourceFileName)
	}
	if !strings.HasPrefix(upload.DestS3FileName, "upload/") {
		t.Errorf("DestS3FileName = %q, want upload/ prefix", upload.DestS3FileName)
	}
}

func TestPresignUpload_UniqueKeys(t *testing.T) {
	svc := NewUploadService(storage.NewMemoryStorage("test-bucket"), nil)
	ctx := context.Background()

	first, err := svc.PresignUpload(ctx, "samples.xlsx", "")
	if err != nil {
		t.Fatalf("PresignUpload() failed: %v", err)
	}
	second, err := svc.PresignUpload(ctx, "samples.xlsx", "")
	if err != nil {
		t.Fatalf("PresignUpload() failed: %v", err)
	}
	if first.DestS3FileName == second.DestS3FileName {
		t.Errorf("identical file names produced the same key %q", first.DestS3FileName)
	}
}
