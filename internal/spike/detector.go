package spike

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/bundleguard/bundleguard/internal/domain/alert"
	"github.com/bundleguard/bundleguard/internal/domain/usage"
)

// Baselines with a mean below this are treated as insufficient history; a
// near-zero baseline would otherwise turn ordinary usage into absurd
// percentage increases.
const minBaselineBytes = 1000

// DetectSpikes flags current samples that deviate abnormally from their
// hour-of-day baseline, using the z-score and percentage-increase triggers.
// Historical samples are partitioned into 24 buckets by the hour component of
// their timestamp (local wall clock, no timezone normalization); a bucket's
// mean is the baseline for current samples at that hour, falling back to the
// overall historical mean when the bucket is empty.
func DetectSpikes(current, historical []usage.Sample, cfg Config) []alert.Alert {
	var alerts []alert.Alert
	if len(current) == 0 {
		return alerts
	}

	buckets := make(map[int][]int64)
	for _, s := range historical {
		hour := s.Timestamp.Hour()
		buckets[hour] = append(buckets[hour], s.BytesUsed)
	}

	allValues := make([]int64, 0, len(historical))
	for _, s := range historical {
		allValues = append(allValues, s.BytesUsed)
	}
	overallMean := Mean(allValues)
	overallStdDev := StdDev(allValues, overallMean)

	for _, s := range current {
		values, ok := buckets[s.Timestamp.Hour()]
		if !ok {
			values = allValues
		}

		baselineMean := overallMean
		if len(values) > 0 {
			baselineMean = Mean(values)
		}
		baselineStdDev := overallStdDev
		if len(values) > 1 {
			baselineStdDev = StdDev(values, Mean(values))
		}

		if baselineMean < minBaselineBytes {
			continue
		}

		var zScore float64
		if baselineStdDev > 0 {
			zScore = (float64(s.BytesUsed) - baselineMean) / baselineStdDev
		}
		var pctIncrease float64
		if baselineMean > 0 {
			pctIncrease = (float64(s.BytesUsed) - baselineMean) / baselineMean * 100
		}

		statisticalSpike := zScore > cfg.StdDevMultiplier
		percentageSpike := pctIncrease >= cfg.MinPercentageIncrease
		if (statisticalSpike || percentageSpike) && s.BytesUsed >= cfg.MinBytesThreshold {
			severity := severityFor(pctIncrease, s.BytesUsed, cfg)

			title := "Unusual data usage detected"
			if s.AppName != "" {
				title = fmt.Sprintf("Unusual usage from %s", s.AppName)
			}

			alerts = append(alerts, alert.Alert{
				ID:       alert.NewID(),
				Type:     alert.TypeSpike,
				Severity: severity,
				Title:    title,
				Description: fmt.Sprintf("Data usage of %s is %.0f%% higher than your typical %s at this time.",
					FormatBytes(s.BytesUsed), pctIncrease, FormatBytes(int64(math.Round(baselineMean)))),
				DetectedAt:         time.Now(),
				AppName:            s.AppName,
				CurrentUsage:       s.BytesUsed,
				ExpectedUsage:      int64(math.Round(baselineMean)),
				PercentageIncrease: int(math.Round(pctIncrease)),
				Recommendations:    recommendationsFor(severity, s.AppName, pctIncrease),
			})
		}
	}

	return alerts
}

// DetectThresholdBreaches checks the aggregate daily and current-hour totals
// against the absolute ceilings. Both checks are independent and inclusive,
// so a single call can produce 0, 1 or 2 alerts. No historical data needed.
func DetectThresholdBreaches(dailyTotal, currentHourTotal int64, cfg Config) []alert.Alert {
	var alerts []alert.Alert

	if dailyTotal >= cfg.CriticalDailyThreshold {
		alerts = append(alerts, alert.Alert{
			ID:       alert.NewID(),
			Type:     alert.TypeThreshold,
			Severity: alert.SeverityCritical,
			Title:    "Daily data limit exceeded",
			Description: fmt.Sprintf("You've used %s today, exceeding the %s threshold.",
				FormatBytes(dailyTotal), FormatBytes(cfg.CriticalDailyThreshold)),
			DetectedAt:         time.Now(),
			CurrentUsage:       dailyTotal,
			ExpectedUsage:      cfg.CriticalDailyThreshold,
			PercentageIncrease: ratioPercent(dailyTotal, cfg.CriticalDailyThreshold),
			Recommendations: []string{
				"Consider pausing non-essential downloads",
				"Enable data saver mode",
				"Check for apps using excessive background data",
				"Review your data plan limits",
			},
		})
	}

	if currentHourTotal >= cfg.HighHourlyThreshold {
		alerts = append(alerts, alert.Alert{
			ID:       alert.NewID(),
			Type:     alert.TypeThreshold,
			Severity: alert.SeverityHigh,
			Title:    "High hourly usage detected",
			Description: fmt.Sprintf("%s used in the last hour, which is unusually high.",
				FormatBytes(currentHourTotal)),
			DetectedAt:         time.Now(),
			CurrentUsage:       currentHourTotal,
			ExpectedUsage:      cfg.HighHourlyThreshold,
			PercentageIncrease: ratioPercent(currentHourTotal, cfg.HighHourlyThreshold),
			Recommendations: []string{
				"Check what apps are currently active",
				"Look for ongoing downloads or updates",
				"Verify no video streaming is running",
			},
		})
	}

	return alerts
}

// DetectAppAnomalies flags applications whose current usage is exceptional
// relative to their own historical distribution. The trigger is current usage
// above twice the historical P90: a single heavy day already in the history
// lifts the P90, so doubling it requires a genuinely exceptional value before
// alerting. Apps with fewer than 3 historical samples are skipped.
func DetectAppAnomalies(history map[string][]int64, current map[string]int64, cfg Config) []alert.Alert {
	var alerts []alert.Alert

	apps := make([]string, 0, len(current))
	for app := range current {
		apps = append(apps, app)
	}
	slices.Sort(apps)

	for _, app := range apps {
		currentBytes := current[app]
		values := history[app]
		if len(values) < 3 {
			continue
		}

		sorted := slices.Clone(values)
		slices.Sort(sorted)
		median := Percentile(sorted, 50)
		p90 := Percentile(sorted, 90)

		if currentBytes <= p90*2 || currentBytes < cfg.MinBytesThreshold {
			continue
		}

		var pctIncrease float64
		if median > 0 {
			pctIncrease = float64(currentBytes-median) / float64(median) * 100
		}
		severity := severityFor(pctIncrease, currentBytes, cfg)

		alerts = append(alerts, alert.Alert{
			ID:       alert.NewID(),
			Type:     alert.TypeAnomaly,
			Severity: severity,
			Title:    fmt.Sprintf("%s using more data than usual", app),
			Description: fmt.Sprintf("%s has used %s, compared to typical %s.",
				app, FormatBytes(currentBytes), FormatBytes(median)),
			DetectedAt:         time.Now(),
			AppName:            app,
			CurrentUsage:       currentBytes,
			ExpectedUsage:      median,
			PercentageIncrease: int(math.Round(pctIncrease)),
			Recommendations:    recommendationsFor(severity, app, pctIncrease),
		})
	}

	return alerts
}

// ratioPercent returns round((value/limit - 1) * 100).
func ratioPercent(value, limit int64) int {
	return int(math.Round((float64(value)/float64(limit) - 1) * 100))
}
