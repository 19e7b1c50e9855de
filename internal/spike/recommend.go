package spike

import (
	"fmt"

	"github.com/bundleguard/bundleguard/internal/domain/alert"
)

const maxRecommendations = 4

// recommendationsFor builds the ordered list of actionable suggestions for an
// alert. App-specific suggestions come first, then severity- and
// percentage-driven ones, then the generic monitoring suggestion; the list is
// truncated to the first four in that priority order.
func recommendationsFor(severity alert.Severity, appName string, percentageIncrease float64) []string {
	var recs []string

	if appName != "" {
		recs = append(recs,
			fmt.Sprintf("Check %s for auto-updates or background downloads", appName),
			fmt.Sprintf("Review %s's data usage settings", appName),
		)
	}

	if severity == alert.SeverityCritical || severity == alert.SeverityHigh {
		recs = append(recs,
			"Check for malware or unauthorized apps",
			"Review all background app refresh settings",
			"Consider enabling data saver mode",
		)
	}

	if percentageIncrease >= 200 {
		recs = append(recs,
			"Verify no unexpected video streaming occurred",
			"Check for large file downloads",
		)
	}

	recs = append(recs, "Monitor usage over the next few hours")

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
