package services

import (
	"context"
	"testing"
	"time"

	"github.com/bundleguard/bundleguard/internal/domain/alert"
	"github.com/bundleguard/bundleguard/internal/domain/usage"
	"github.com/bundleguard/bundleguard/internal/pkg/logger"
	"github.com/bundleguard/bundleguard/internal/testutil"
)

const mb = 1024 * 1024

func TestAnalysisService_AnalyzeDevices_NoData(t *testing.T) {
	mockRepo := testutil.NewMockUsageRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewAnalysisService(mockRepo, "medium", log)

	result, err := service.AnalyzeDevices(context.Background(), []string{"device-1"}, time.Now(), AnalysisOptions{})
	if err != nil {
		t.Fatalf("AnalyzeDevices() error = %v", err)
	}
	if !result.Analyzed {
		t.Error("Analyzed = false, want true")
	}
	if len(result.Alerts) != 0 {
		t.Errorf("got %d alerts for empty data, want 0", len(result.Alerts))
	}
}

func TestAnalysisService_AnalyzeDevices_ThresholdBreach(t *testing.T) {
	mockRepo := testutil.NewMockUsageRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewAnalysisService(mockRepo, "medium", log)

	ctx := context.Background()
	now := time.Date(2025, 3, 10, 21, 30, 0, 0, time.UTC)

	mockRepo.CreateBatch(ctx, []*usage.Record{
		{DeviceID: "device-1", Timestamp: now.Add(-20 * time.Minute), RxBytes: 1536 * mb},
	})

	result, err := service.AnalyzeDevices(ctx, []string{"device-1"}, now, AnalysisOptions{})
	if err != nil {
		t.Fatalf("AnalyzeDevices() error = %v", err)
	}

	// Daily and hourly ceilings both fire, but they share a dedup key so only
	// the critical daily alert survives.
	if len(result.Alerts) != 1 {
		t.Fatalf("got %d alerts, want 1: %+v", len(result.Alerts), result.Alerts)
	}
	a := result.Alerts[0]
	if a.Type != alert.TypeThreshold || a.Severity != alert.SeverityCritical {
		t.Errorf("alert = %s/%s, want threshold/critical", a.Type, a.Severity)
	}
	if result.Stats.DailyTotal != 1536*mb {
		t.Errorf("DailyTotal = %d, want %d", result.Stats.DailyTotal, 1536*mb)
	}
	if result.Stats.CurrentHourTotal != 1536*mb {
		t.Errorf("CurrentHourTotal = %d, want %d", result.Stats.CurrentHourTotal, 1536*mb)
	}
	if result.Stats.RecordsAnalyzed != 1 {
		t.Errorf("RecordsAnalyzed = %d, want 1", result.Stats.RecordsAnalyzed)
	}
}

func TestAnalysisService_AnalyzeDevices_ThresholdOverride(t *testing.T) {
	mockRepo := testutil.NewMockUsageRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewAnalysisService(mockRepo, "medium", log)

	ctx := context.Background()
	now := time.Date(2025, 3, 10, 21, 30, 0, 0, time.UTC)

	// 150 MB daily total: below the 1 GB default, above a 100 MB override.
	mockRepo.CreateBatch(ctx, []*usage.Record{
		{DeviceID: "device-1", Timestamp: now.Add(-3 * time.Hour), RxBytes: 150 * mb},
	})

	result, err := service.AnalyzeDevices(ctx, []string{"device-1"}, now, AnalysisOptions{})
	if err != nil {
		t.Fatalf("AnalyzeDevices() error = %v", err)
	}
	if len(result.Alerts) != 0 {
		t.Fatalf("default threshold fired unexpectedly: %+v", result.Alerts)
	}

	result, err = service.AnalyzeDevices(ctx, []string{"device-1"}, now, AnalysisOptions{ThresholdMB: 100})
	if err != nil {
		t.Fatalf("AnalyzeDevices() error = %v", err)
	}
	if len(result.Alerts) != 1 || result.Alerts[0].Severity != alert.SeverityCritical {
		t.Fatalf("override threshold did not fire: %+v", result.Alerts)
	}
	if result.Alerts[0].PercentageIncrease != 50 {
		t.Errorf("PercentageIncrease = %d, want 50", result.Alerts[0].PercentageIncrease)
	}
}

func TestAnalysisService_AnalyzeSamples_Spike(t *testing.T) {
	mockRepo := testutil.NewMockUsageRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewAnalysisService(mockRepo, "medium", log)

	now := time.Date(2025, 3, 10, 20, 15, 0, 0, time.UTC)

	// A week of quiet evenings, then one very loud one.
	var historical []usage.Sample
	for day := 1; day <= 7; day++ {
		historical = append(historical, usage.Sample{
			Timestamp: time.Date(2025, 3, day, 20, 0, 0, 0, time.UTC),
			BytesUsed: 10 * mb,
		})
	}
	current := []usage.Sample{
		{Timestamp: now, BytesUsed: 60 * mb, AppName: "Instagram"},
	}

	result := service.AnalyzeSamples(current, historical, now, AnalysisOptions{})

	var spike *alert.Alert
	for i := range result.Alerts {
		if result.Alerts[i].Type == alert.TypeSpike {
			spike = &result.Alerts[i]
		}
	}
	if spike == nil {
		t.Fatalf("no spike alert in %+v", result.Alerts)
	}
	if spike.Severity != alert.SeverityCritical {
		t.Errorf("Severity = %s, want critical (500%% increase)", spike.Severity)
	}
	if spike.PercentageIncrease != 500 {
		t.Errorf("PercentageIncrease = %d, want 500", spike.PercentageIncrease)
	}
	if spike.AppName != "Instagram" {
		t.Errorf("AppName = %q, want Instagram", spike.AppName)
	}
	if spike.ExpectedUsage != 10*mb {
		t.Errorf("ExpectedUsage = %d, want %d", spike.ExpectedUsage, 10*mb)
	}
}

func TestAnalysisService_AnalyzeSamples_SensitivityLow(t *testing.T) {
	mockRepo := testutil.NewMockUsageRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewAnalysisService(mockRepo, "medium", log)

	now := time.Date(2025, 3, 10, 20, 15, 0, 0, time.UTC)

	var historical []usage.Sample
	for day := 1; day <= 7; day++ {
		historical = append(historical, usage.Sample{
			Timestamp: time.Date(2025, 3, day, 20, 0, 0, 0, time.UTC),
			BytesUsed: 80 * mb,
		})
	}
	// 75% above baseline: spike at medium sensitivity, quiet at low.
	current := []usage.Sample{
		{Timestamp: now, BytesUsed: 140 * mb},
	}

	result := service.AnalyzeSamples(current, historical, now, AnalysisOptions{})
	if len(result.Alerts) == 0 {
		t.Fatal("medium sensitivity produced no alerts")
	}

	result = service.AnalyzeSamples(current, historical, now, AnalysisOptions{Sensitivity: "low"})
	for _, a := range result.Alerts {
		if a.Type == alert.TypeSpike {
			t.Errorf("low sensitivity still produced a spike alert: %+v", a)
		}
	}
}
