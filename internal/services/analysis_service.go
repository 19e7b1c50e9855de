package services

import (
	"context"
	"time"

	"github.com/bundleguard/bundleguard/internal/domain/alert"
	"github.com/bundleguard/bundleguard/internal/domain/usage"
	"github.com/bundleguard/bundleguard/internal/pkg/logger"
	"github.com/bundleguard/bundleguard/internal/pkg/metrics"
	"github.com/bundleguard/bundleguard/internal/spike"
)

// AnalysisOptions carries per-request detection overrides.
type AnalysisOptions struct {
	// ThresholdMB overrides the critical daily threshold, in megabytes.
	// Zero keeps the configured default.
	ThresholdMB int64
	// Sensitivity is "high", "medium" or "low"; empty keeps the service
	// default.
	Sensitivity string
	// Trigger labels the analysis source for metrics: "api", "scanner",
	// "manual".
	Trigger string
}

// AnalysisStats describes the data an analysis run looked at.
type AnalysisStats struct {
	DailyTotal        int64 `json:"dailyTotal"`
	CurrentHourTotal  int64 `json:"currentHourTotal"`
	RecordsAnalyzed   int   `json:"recordsAnalyzed"`
	HistoricalRecords int   `json:"historicalRecords"`
}

// AnalysisResult is the outcome of one spike analysis run.
type AnalysisResult struct {
	Alerts   []alert.Alert `json:"alerts"`
	Analyzed bool          `json:"analyzed"`
	Stats    AnalysisStats `json:"stats"`
}

// AnalysisService fetches usage data, reshapes it into detector inputs and
// runs the spike analysis pipeline. The detection itself is stateless; this
// service owns only the data plumbing around it.
type AnalysisService struct {
	usageRepo          usage.Repository
	defaultSensitivity string
	logger             *logger.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(usageRepo usage.Repository, defaultSensitivity string, log *logger.Logger) *AnalysisService {
	return &AnalysisService{
		usageRepo:          usageRepo,
		defaultSensitivity: defaultSensitivity,
		logger:             log,
	}
}

// buildConfig resolves the effective detection config for a run.
func (s *AnalysisService) buildConfig(opts AnalysisOptions) spike.Config {
	sensitivity := opts.Sensitivity
	if sensitivity == "" {
		sensitivity = s.defaultSensitivity
	}
	cfg := spike.DefaultConfig().WithSensitivity(sensitivity)

	if opts.ThresholdMB > 0 {
		threshold := opts.ThresholdMB * 1024 * 1024
		cfg = cfg.Merge(spike.Overrides{CriticalDailyThreshold: &threshold})
	}
	return cfg
}

// AnalyzeDevices loads today's usage and the trailing seven days of history
// for a device set, then runs all detectors over it.
func (s *AnalysisService) AnalyzeDevices(ctx context.Context, deviceIDs []string, now time.Time, opts AnalysisOptions) (*AnalysisResult, error) {
	start := time.Now()

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := dayStart.AddDate(0, 0, -7)

	currentRecords, err := s.usageRepo.ListRange(ctx, deviceIDs, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to load current usage records")
		return nil, err
	}

	if len(currentRecords) == 0 {
		return &AnalysisResult{Alerts: []alert.Alert{}, Analyzed: true}, nil
	}

	historicalRecords, err := s.usageRepo.ListRange(ctx, deviceIDs, weekAgo, dayStart)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to load historical usage records")
		return nil, err
	}

	current := toSamples(currentRecords)
	historical := toSamples(historicalRecords)

	result := s.analyze(current, historical, now, opts)
	result.Stats.HistoricalRecords = len(historical)

	s.logger.WithFields(map[string]interface{}{
		"devices":     len(deviceIDs),
		"alerts":      len(result.Alerts),
		"records":     result.Stats.RecordsAnalyzed,
		"historical":  result.Stats.HistoricalRecords,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Spike analysis completed")

	return result, nil
}

// AnalyzeSamples runs the detectors over caller-supplied samples, for clients
// that bring their own data instead of stored records.
func (s *AnalysisService) AnalyzeSamples(current, historical []usage.Sample, now time.Time, opts AnalysisOptions) *AnalysisResult {
	return s.analyze(current, historical, now, opts)
}

func (s *AnalysisService) analyze(current, historical []usage.Sample, now time.Time, opts AnalysisOptions) *AnalysisResult {
	start := time.Now()
	cfg := s.buildConfig(opts)

	var dailyTotal, currentHourTotal int64
	hourStart := now.Truncate(time.Hour)
	for _, sample := range current {
		dailyTotal += sample.BytesUsed
		if !sample.Timestamp.Before(hourStart) {
			currentHourTotal += sample.BytesUsed
		}
	}

	appHistory := make(map[string][]int64)
	for _, sample := range historical {
		if sample.AppName != "" {
			appHistory[sample.AppName] = append(appHistory[sample.AppName], sample.BytesUsed)
		}
	}
	currentAppUsage := make(map[string]int64)
	for _, sample := range current {
		if sample.AppName != "" {
			currentAppUsage[sample.AppName] += sample.BytesUsed
		}
	}

	alerts := spike.Analyze(current, historical, dailyTotal, currentHourTotal, appHistory, currentAppUsage, cfg)

	trigger := opts.Trigger
	if trigger == "" {
		trigger = "api"
	}
	metrics.RecordAnalysis(trigger, time.Since(start))
	for _, a := range alerts {
		metrics.RecordAlert(a.Type, string(a.Severity))
	}

	if alerts == nil {
		alerts = []alert.Alert{}
	}
	return &AnalysisResult{
		Alerts:   alerts,
		Analyzed: true,
		Stats: AnalysisStats{
			DailyTotal:       dailyTotal,
			CurrentHourTotal: currentHourTotal,
			RecordsAnalyzed:  len(current),
		},
	}
}

func toSamples(records []*usage.Record) []usage.Sample {
	samples := make([]usage.Sample, len(records))
	for i, rec := range records {
		samples[i] = rec.Sample()
	}
	return samples
}
