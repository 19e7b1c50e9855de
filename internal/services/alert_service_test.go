package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bundleguard/bundleguard/internal/domain/alert"
	"github.com/bundleguard/bundleguard/internal/pkg/logger"
	"github.com/bundleguard/bundleguard/internal/testutil"
)

func TestAlertService_Record(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	tests := []struct {
		name       string
		alerts     []alert.Alert
		createErr  error
		wantStored int
		wantErr    bool
	}{
		{
			name: "record spike and threshold alerts",
			alerts: []alert.Alert{
				{ID: alert.NewID(), Type: alert.TypeSpike, Severity: alert.SeverityHigh, Title: "Unusual Data Spike Detected", AppName: "Instagram"},
				{ID: alert.NewID(), Type: alert.TypeThreshold, Severity: alert.SeverityCritical, Title: "Daily Data Limit Exceeded"},
			},
			wantStored: 2,
		},
		{
			name:       "empty batch stores nothing",
			alerts:     nil,
			wantStored: 0,
		},
		{
			name: "repository failure stops the batch",
			alerts: []alert.Alert{
				{ID: alert.NewID(), Type: alert.TypeSpike, Severity: alert.SeverityMedium, Title: "Unusual Data Spike Detected"},
			},
			createErr: errors.New("db locked"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := testutil.NewMockAlertRepository()
			mockRepo.CreateError = tt.createErr
			service := NewAlertService(mockRepo, log)

			stored, err := service.Record(context.Background(), "device-1", tt.alerts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Record() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && stored != tt.wantStored {
				t.Errorf("Record() stored = %d, want %d", stored, tt.wantStored)
			}
			if !tt.wantErr && len(mockRepo.Alerts) != tt.wantStored {
				t.Errorf("repository holds %d alerts, want %d", len(mockRepo.Alerts), tt.wantStored)
			}
		})
	}
}

func TestAlertService_GetByID(t *testing.T) {
	mockRepo := testutil.NewMockAlertRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewAlertService(mockRepo, log)

	ctx := context.Background()
	a := alert.Alert{ID: alert.NewID(), Type: alert.TypeAnomaly, Severity: alert.SeverityHigh, Title: "Unusual App Behavior", AppName: "TikTok"}
	if _, err := service.Record(ctx, "device-1", []alert.Alert{a}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := service.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.AppName != "TikTok" || got.Type != alert.TypeAnomaly {
		t.Errorf("GetByID() = %+v, want stored alert", got)
	}

	if _, err := service.GetByID(ctx, "alert_0_missing"); err == nil {
		t.Error("GetByID() expected error for unknown id")
	}
}

func TestAlertService_Delete(t *testing.T) {
	mockRepo := testutil.NewMockAlertRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewAlertService(mockRepo, log)

	ctx := context.Background()
	a := alert.Alert{ID: alert.NewID(), Type: alert.TypeSpike, Severity: alert.SeverityLow, Title: "Unusual Data Spike Detected"}
	service.Record(ctx, "device-1", []alert.Alert{a})

	if err := service.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := service.GetByID(ctx, a.ID); err == nil {
		t.Error("alert still present after Delete()")
	}
}

func TestAlertService_List(t *testing.T) {
	mockRepo := testutil.NewMockAlertRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewAlertService(mockRepo, log)

	ctx := context.Background()
	service.Record(ctx, "device-1", []alert.Alert{
		{ID: alert.NewID(), Type: alert.TypeSpike, Severity: alert.SeverityHigh, AppName: "Instagram"},
		{ID: alert.NewID(), Type: alert.TypeThreshold, Severity: alert.SeverityCritical},
	})
	service.Record(ctx, "device-2", []alert.Alert{
		{ID: alert.NewID(), Type: alert.TypeSpike, Severity: alert.SeverityMedium, AppName: "YouTube"},
	})

	alerts, total, err := service.List(ctx, alert.Filter{Type: alert.TypeSpike}, 20, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 2 || len(alerts) != 2 {
		t.Errorf("List(type=spike) = %d alerts, want 2", len(alerts))
	}

	alerts, _, err = service.List(ctx, alert.Filter{DeviceID: "device-2"}, 20, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(alerts) != 1 || alerts[0].AppName != "YouTube" {
		t.Errorf("List(device-2) = %+v, want the YouTube alert", alerts)
	}
}

func TestAlertService_GetSummary(t *testing.T) {
	mockRepo := testutil.NewMockAlertRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewAlertService(mockRepo, log)

	ctx := context.Background()
	service.Record(ctx, "device-1", []alert.Alert{
		{ID: alert.NewID(), Type: alert.TypeThreshold, Severity: alert.SeverityCritical},
		{ID: alert.NewID(), Type: alert.TypeSpike, Severity: alert.SeverityHigh, AppName: "Instagram"},
		{ID: alert.NewID(), Type: alert.TypeSpike, Severity: alert.SeverityHigh, AppName: "YouTube"},
	})

	summary, err := service.GetSummary(ctx)
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}
	if summary["critical"] != 1 || summary["high"] != 2 {
		t.Errorf("GetSummary() = %v, want critical=1 high=2", summary)
	}
}
