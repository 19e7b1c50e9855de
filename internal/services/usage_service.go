package services

import (
	"context"
	"time"

	"github.com/bundleguard/bundleguard/internal/domain/usage"
	"github.com/bundleguard/bundleguard/internal/pkg/errors"
	"github.com/bundleguard/bundleguard/internal/pkg/logger"
	"github.com/bundleguard/bundleguard/internal/pkg/metrics"
)

// UsageService implements usage.Service
type UsageService struct {
	repo   usage.Repository
	logger *logger.Logger
}

// NewUsageService creates a new usage service
func NewUsageService(repo usage.Repository, log *logger.Logger) usage.Service {
	return &UsageService{
		repo:   repo,
		logger: log,
	}
}

// Ingest stores a batch of device usage records
func (s *UsageService) Ingest(ctx context.Context, records []*usage.Record) (int, error) {
	for _, rec := range records {
		if rec.DeviceID == "" {
			return 0, errors.BadRequest("usage record missing device id")
		}
		if rec.RxBytes < 0 || rec.TxBytes < 0 {
			return 0, errors.BadRequest("usage record has negative byte counts")
		}
	}

	n, err := s.repo.CreateBatch(ctx, records)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to ingest usage batch")
		return 0, err
	}

	metrics.RecordIngestedRecords(n)
	s.logger.WithFields(map[string]interface{}{
		"records": n,
	}).Info("Usage batch ingested")

	return n, nil
}

// GetRange returns records for a device set within a half-open time range
func (s *UsageService) GetRange(ctx context.Context, deviceIDs []string, from, to time.Time) ([]*usage.Record, error) {
	return s.repo.ListRange(ctx, deviceIDs, from, to)
}

// GetSummary aggregates today's usage for a device set
func (s *UsageService) GetSummary(ctx context.Context, deviceIDs []string, now time.Time) (*usage.Summary, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	records, err := s.repo.ListRange(ctx, deviceIDs, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	hourStart := now.Truncate(time.Hour)
	summary := &usage.Summary{ByApp: make(map[string]int64)}
	for _, rec := range records {
		bytes := rec.Bytes()
		summary.DailyTotal += bytes
		summary.RecordCount++
		if !rec.Timestamp.Before(hourStart) {
			summary.CurrentHourTotal += bytes
		}
		if rec.AppName != "" {
			summary.ByApp[rec.AppName] += bytes
		}
	}

	return summary, nil
}
