package services

import (
	"context"
	"fmt"

	"github.com/bundleguard/bundleguard/internal/domain/alert"
	"github.com/bundleguard/bundleguard/internal/pkg/logger"
	"github.com/bundleguard/bundleguard/internal/pkg/metrics"
	"github.com/bundleguard/bundleguard/internal/spike"
)

// Notification is a formatted push message built from an alert.
type Notification struct {
	AlertID  string         `json:"alertId"`
	Title    string         `json:"title"`
	Body     string         `json:"body"`
	Severity alert.Severity `json:"severity"`
	Urgency  string         `json:"urgency"` // low, normal, high
}

// Notifier delivers formatted notifications. Implementations may push to a
// device, post to a webhook, or just log.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the application log. Stands in for a
// real push channel.
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

// Send logs the notification
func (n *LogNotifier) Send(ctx context.Context, msg Notification) error {
	n.logger.WithFields(map[string]interface{}{
		"alert_id": msg.AlertID,
		"severity": msg.Severity,
		"title":    msg.Title,
		"body":     msg.Body,
	}).Info("Notification sent")
	return nil
}

// NotificationService formats alerts into user-facing notifications and
// delivers them. Cross-call deduplication lives here, in the delivery layer:
// the detection core stays stateless and callers pass in the keys that were
// already surfaced recently.
type NotificationService struct {
	notifier Notifier
	logger   *logger.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifier Notifier, log *logger.Logger) *NotificationService {
	return &NotificationService{
		notifier: notifier,
		logger:   log,
	}
}

// Format builds the push title and body for an alert. Title and urgency are
// selected by severity; the body leads with the app name when one is known.
func (s *NotificationService) Format(a alert.Alert) Notification {
	var title, urgency string
	switch a.Severity {
	case alert.SeverityCritical:
		title = "🚨 Critical Data Spike!"
		urgency = "high"
	case alert.SeverityHigh:
		title = "⚠️ High Data Usage Alert"
		urgency = "high"
	case alert.SeverityMedium:
		title = "📊 Data Spike Detected"
		urgency = "normal"
	default:
		title = "ℹ️ Usage Update"
		urgency = "low"
	}

	body := a.Description
	if a.AppName != "" {
		body = fmt.Sprintf("%s used %s today - %d%% more than usual (%s)",
			a.AppName,
			spike.FormatBytes(a.CurrentUsage),
			a.PercentageIncrease,
			spike.FormatBytes(a.ExpectedUsage))
	}

	return Notification{
		AlertID:  a.ID,
		Title:    title,
		Body:     body,
		Severity: a.Severity,
		Urgency:  urgency,
	}
}

// NotifyAll delivers notifications for alerts whose dedup key is not in the
// suppressed set, returning the number sent.
func (s *NotificationService) NotifyAll(ctx context.Context, alerts []alert.Alert, suppressed map[alert.Key]struct{}) (int, error) {
	sent := 0
	for _, a := range alerts {
		if _, ok := suppressed[a.Key()]; ok {
			continue
		}

		if err := s.notifier.Send(ctx, s.Format(a)); err != nil {
			s.logger.ErrorWithErr(err, "Failed to deliver notification")
			return sent, err
		}
		metrics.RecordNotification(string(a.Severity))
		sent++
	}
	return sent, nil
}
