package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"sample-catalog-api/internal/adapters/storage"
	"sample-catalog-api/internal/repositories"
)

// SpreadsheetBatchService imports sample spreadsheets from object storage.
// An import is all-or-nothing: one bad row rolls back every row.
type SpreadsheetBatchService struct {
	repo    repositories.SampleRepository
	storage storage.ObjectStorage
	logger  *logrus.Logger
}

// NewBatchService creates a batch import service.
func NewBatchService(repo repositories.SampleRepository, store storage.ObjectStorage, logger *logrus.Logger) *SpreadsheetBatchService {
	if logger == nil {
		logger = logrus.New()
	}
	return &SpreadsheetBatchService{repo: repo, storage: store, logger: logger}
}

// ImportSpreadsheet loads the spreadsheet at key, reads the first sheet with
// its header row as property names, and inserts every data row in a single
// transaction. Returns the number of rows imported.
func (s *SpreadsheetBatchService) ImportSpreadsheet(ctx context.Context, key, fileName, userUUID string) (int, error) {
	data, err := s.storage.Retrieve(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch spreadsheet %s: %w", key, err)
	}

	records, err := parseSpreadsheet(data)
	if err != nil {
		return 0, repositories.ValidationError("sample", err)
	}
	if len(records) == 0 {
		return 0, repositories.NoFieldsError("sample")
	}

	opts := repositories.InsertOptions{
		UserUUID:       userUUID,
		IsBatchUpload:  true,
		BatchSourceFN:  fileName,
		BatchUploadURI: s.storage.URI(key),
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	for i, record := range records {
		if err := s.repo.CreateTx(ctx, tx, record, opts); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.WithError(rbErr).Error("Rollback failed after batch insert error")
			}
			return 0, fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, repositories.TransactionError("commit", err)
	}

	s.logger.WithFields(logrus.Fields{
		"file": fileName,
		"key":  key,
		"rows": len(records),
		"user": userUUID,
	}).Info("Batch import committed")
	return len(records), nil
}

// parseSpreadsheet reads the first sheet of an xlsx file. The first row names
// the properties; every following non-empty row becomes one sparse record.
func parseSpreadsheet(data []byte) ([]map[string]interface{}, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unreadable spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var records []map[string]interface{}
	for _, row := range rows[1:] {
		record := make(map[string]interface{})
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			record[headers[i]] = cell
		}
		if len(record) > 0 {
			records = append(records, record)
		}
	}
	return records, nil
}
