package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"sample-catalog-api/internal/models"
	"sample-catalog-api/internal/repositories"
)

// DefaultSampleService implements SampleService over a SampleRepository.
type DefaultSampleService struct {
	repo   repositories.SampleRepository
	logger *logrus.Logger
}

// NewSampleService creates a sample service.
func NewSampleService(repo repositories.SampleRepository, logger *logrus.Logger) *DefaultSampleService {
	if logger == nil {
		logger = logrus.New()
	}
	return &DefaultSampleService{repo: repo, logger: logger}
}

// Create persists one sample record attributed to userUUID.
func (s *DefaultSampleService) Create(ctx context.Context, data map[string]interface{}, userUUID string) error {
	err := s.repo.Create(ctx, data, repositories.InsertOptions{UserUUID: userUUID})
	if err != nil {
		return err
	}
	s.logger.WithField("user", userUUID).Info("Sample created")
	return nil
}

// Get fetches one sample by its numeric id, active or not.
func (s *DefaultSampleService) Get(ctx context.Context, id int64) (*models.Sample, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every active sample.
func (s *DefaultSampleService) List(ctx context.Context) ([]*models.Sample, error) {
	return s.repo.ListActive(ctx)
}

// Delete retires a sample, keeping the row for audit.
func (s *DefaultSampleService) Delete(ctx context.Context, id int64, userUUID string) error {
	if err := s.repo.SoftDelete(ctx, id, userUUID); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"id": id, "user": userUUID}).Info("Sample retired")
	return nil
}

// SearchByFilters returns active samples matching every supplied filter.
func (s *DefaultSampleService) SearchByFilters(ctx context.Context, params models.FilterParams) ([]*models.Sample, error) {
	return s.repo.SearchByFilters(ctx, params)
}

// SearchFulltext returns active samples whose textual fields match the term.
func (s *DefaultSampleService) SearchFulltext(ctx context.Context, term string) ([]*models.Sample, error) {
	return s.repo.SearchFulltext(ctx, term)
}

// SearchByLocation returns active samples within the rectangle.
func (s *DefaultSampleService) SearchByLocation(ctx context.Context, bounds models.RectangleBounds) ([]*models.Sample, error) {
	return s.repo.SearchByLocation(ctx, bounds)
}
