package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bundleguard/bundleguard/internal/domain/alert"
	"github.com/bundleguard/bundleguard/internal/domain/device"
	"github.com/bundleguard/bundleguard/internal/pkg/logger"
	"github.com/bundleguard/bundleguard/internal/services"
)

// SpikeScanner runs the spike analysis on a schedule for every registered
// device, persists the resulting alerts and pushes notifications for the ones
// not recently surfaced.
type SpikeScanner struct {
	deviceService   device.Service
	analysisService *services.AnalysisService
	alertService    alert.Service
	alertRepo       alert.Repository
	notifyService   *services.NotificationService
	schedule        string
	suppressionHrs  int
	logger          *logger.Logger

	scheduler *cron.Cron
}

// NewSpikeScanner creates a new spike scanner worker
func NewSpikeScanner(
	deviceService device.Service,
	analysisService *services.AnalysisService,
	alertService alert.Service,
	alertRepo alert.Repository,
	notifyService *services.NotificationService,
	schedule string,
	suppressionHrs int,
	log *logger.Logger,
) *SpikeScanner {
	return &SpikeScanner{
		deviceService:   deviceService,
		analysisService: analysisService,
		alertService:    alertService,
		alertRepo:       alertRepo,
		notifyService:   notifyService,
		schedule:        schedule,
		suppressionHrs:  suppressionHrs,
		logger:          log,
	}
}

// Start schedules the periodic scan and blocks until ctx is cancelled. An
// initial scan runs immediately.
func (s *SpikeScanner) Start(ctx context.Context) error {
	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc(s.schedule, func() {
		s.ScanAll(context.Background())
	}); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"schedule": s.schedule,
	}).Info("Starting spike scanner worker")

	s.ScanAll(ctx)
	s.scheduler.Start()

	<-ctx.Done()
	stopCtx := s.scheduler.Stop()
	<-stopCtx.Done()
	s.logger.Info("Spike scanner worker stopped")
	return nil
}

// ScanAll runs the spike analysis for every registered device.
func (s *SpikeScanner) ScanAll(ctx context.Context) {
	s.logger.Info("Starting spike scan for all devices")

	devices, err := s.deviceService.ListAll(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list devices for spike scan")
		return
	}

	for _, d := range devices {
		if err := s.scanDevice(ctx, d.ID); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"device_id": d.ID,
			}).ErrorWithErr(err, "Failed to scan device")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"devices": len(devices),
	}).Info("Completed spike scan for all devices")
}

// scanDevice analyzes one device, stores any alerts and notifies the ones
// whose dedup key has not fired within the suppression window. Suppression
// keys are read before the new alerts are stored so a freshly recorded alert
// cannot suppress its own notification.
func (s *SpikeScanner) scanDevice(ctx context.Context, deviceID string) error {
	result, err := s.analysisService.AnalyzeDevices(ctx, []string{deviceID}, time.Now(), services.AnalysisOptions{Trigger: "scanner"})
	if err != nil {
		return err
	}

	if len(result.Alerts) == 0 {
		return nil
	}

	recentKeys, err := s.alertRepo.RecentKeys(ctx, s.suppressionHrs)
	if err != nil {
		return err
	}
	suppressed := make(map[alert.Key]struct{}, len(recentKeys))
	for _, k := range recentKeys {
		suppressed[k] = struct{}{}
	}

	if _, err := s.alertService.Record(ctx, deviceID, result.Alerts); err != nil {
		return err
	}

	sent, err := s.notifyService.NotifyAll(ctx, result.Alerts, suppressed)
	if err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"device_id": deviceID,
		"alerts":    len(result.Alerts),
		"notified":  sent,
	}).Info("Device spike scan completed")

	return nil
}
