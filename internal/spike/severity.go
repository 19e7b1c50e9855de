package spike

import "github.com/bundleguard/bundleguard/internal/domain/alert"

// severityFor assigns a severity from the percentage increase and absolute
// current usage. Shared by the time-bucket and app-anomaly detectors; the
// threshold detector hardcodes its own severities per breach type.
func severityFor(percentageIncrease float64, currentUsage int64, cfg Config) alert.Severity {
	if currentUsage >= cfg.CriticalDailyThreshold || percentageIncrease >= 500 {
		return alert.SeverityCritical
	}
	if currentUsage >= cfg.HighHourlyThreshold || percentageIncrease >= 200 {
		return alert.SeverityHigh
	}
	if percentageIncrease >= 100 {
		return alert.SeverityMedium
	}
	return alert.SeverityLow
}
