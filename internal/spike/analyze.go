package spike

import (
	"sort"

	"github.com/bundleguard/bundleguard/internal/domain/alert"
	"github.com/bundleguard/bundleguard/internal/domain/usage"
)

// Analyze runs all three detection strategies and merges their results into a
// single prioritized alert list. The app anomaly detector only runs when both
// app maps are supplied. The combined list is stable-sorted by severity
// (critical first, ties retaining detector order) and deduplicated keeping
// the first alert per key, so the caller sees at most one alert per
// application plus one per non-app-scoped detector type.
//
// Every call is a pure function of its inputs and config: no state is kept
// between calls and the inputs are never mutated, so concurrent callers need
// no coordination.
func Analyze(
	currentHourly, historicalHourly []usage.Sample,
	dailyTotal, currentHourTotal int64,
	appHistory map[string][]int64,
	currentAppUsage map[string]int64,
	cfg Config,
) []alert.Alert {
	var all []alert.Alert

	all = append(all, DetectSpikes(currentHourly, historicalHourly, cfg)...)
	all = append(all, DetectThresholdBreaches(dailyTotal, currentHourTotal, cfg)...)
	if appHistory != nil && currentAppUsage != nil {
		all = append(all, DetectAppAnomalies(appHistory, currentAppUsage, cfg)...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Severity.Rank() < all[j].Severity.Rank()
	})

	seen := make(map[alert.Key]struct{}, len(all))
	deduped := all[:0]
	for _, a := range all {
		key := a.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, a)
	}

	return deduped
}
