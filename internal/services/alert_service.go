package services

import (
	"context"

	"github.com/bundleguard/bundleguard/internal/domain/alert"
	"github.com/bundleguard/bundleguard/internal/pkg/logger"
)

// AlertService implements alert.Service
type AlertService struct {
	repo   alert.Repository
	logger *logger.Logger
}

// NewAlertService creates a new alert service
func NewAlertService(repo alert.Repository, log *logger.Logger) alert.Service {
	return &AlertService{
		repo:   repo,
		logger: log,
	}
}

// Record persists a batch of freshly detected alerts for a device. Returns
// the number of alerts stored.
func (s *AlertService) Record(ctx context.Context, deviceID string, alerts []alert.Alert) (int, error) {
	stored := 0
	for i := range alerts {
		if err := s.repo.Create(ctx, deviceID, &alerts[i]); err != nil {
			s.logger.ErrorWithErr(err, "Failed to store alert")
			return stored, err
		}
		stored++

		s.logger.WithFields(map[string]interface{}{
			"alert_id":   alerts[i].ID,
			"device_id":  deviceID,
			"type":       alerts[i].Type,
			"severity":   alerts[i].Severity,
			"app_name":   alerts[i].AppName,
			"percentage": alerts[i].PercentageIncrease,
		}).Info("Alert recorded")
	}
	return stored, nil
}

// GetByID retrieves an alert by ID
func (s *AlertService) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete deletes an alert record
func (s *AlertService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete alert")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"alert_id": id,
	}).Info("Alert deleted")

	return nil
}

// List retrieves alerts with filters and pagination
func (s *AlertService) List(ctx context.Context, filter alert.Filter, limit, offset int) ([]*alert.Alert, int64, error) {
	return s.repo.ListWithPagination(ctx, filter, limit, offset)
}

// GetSummary gets alert counts by severity
func (s *AlertService) GetSummary(ctx context.Context) (map[string]int, error) {
	return s.repo.CountBySeverity(ctx)
}
