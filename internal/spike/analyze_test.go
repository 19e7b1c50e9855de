package spike

import (
	"testing"

	"github.com/bundleguard/bundleguard/internal/domain/alert"
	"github.com/bundleguard/bundleguard/internal/domain/usage"
)

func TestAnalyze_SeverityOrdering(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinBytesThreshold = 10 * mb

	historical := []usage.Sample{
		sampleAt(20, 100*mb, ""),
		sampleAt(20, 110*mb, ""),
		sampleAt(20, 90*mb, ""),
	}
	current := []usage.Sample{sampleAt(20, 300*mb, "")}

	appHistory := map[string][]int64{
		"VideoStream": {10 * mb, 12 * mb, 11 * mb, 9 * mb, 10 * mb},
	}
	currentApp := map[string]int64{"VideoStream": 25 * mb}

	alerts := Analyze(current, historical, 1200000000, 50*mb, appHistory, currentApp, cfg)
	if len(alerts) < 2 {
		t.Fatalf("Analyze() returned %d alerts, want at least 2", len(alerts))
	}

	for i := 1; i < len(alerts); i++ {
		if alerts[i-1].Severity.Rank() > alerts[i].Severity.Rank() {
			t.Errorf("alerts out of severity order: %v before %v",
				alerts[i-1].Severity, alerts[i].Severity)
		}
	}

	// critical daily threshold breach must surface first
	if alerts[0].Type != alert.TypeThreshold || alerts[0].Severity != alert.SeverityCritical {
		t.Errorf("first alert = %v/%v, want threshold/critical", alerts[0].Type, alerts[0].Severity)
	}
}

func TestAnalyze_DedupByKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinBytesThreshold = 10 * mb

	// The same app trips both the hourly spike detector and the app anomaly
	// detector; only one alert for it may survive.
	historical := []usage.Sample{
		sampleAt(20, 100*mb, "VideoStream"),
		sampleAt(20, 110*mb, "VideoStream"),
		sampleAt(20, 90*mb, "VideoStream"),
	}
	current := []usage.Sample{sampleAt(20, 900*mb, "VideoStream")}

	appHistory := map[string][]int64{
		"VideoStream": {100 * mb, 110 * mb, 90 * mb},
	}
	currentApp := map[string]int64{"VideoStream": 900 * mb}

	alerts := Analyze(current, historical, 0, 0, appHistory, currentApp, cfg)

	seen := make(map[alert.Key]int)
	for _, a := range alerts {
		seen[a.Key()]++
	}
	for key, n := range seen {
		if n > 1 {
			t.Errorf("dedup key %+v appears %d times, want 1", key, n)
		}
	}

	count := 0
	for _, a := range alerts {
		if a.AppName == "VideoStream" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("VideoStream alerts = %d, want exactly 1", count)
	}
}

func TestAnalyze_AppNamedLikeDetectorType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinBytesThreshold = 10 * mb

	// An app literally named "threshold" must not collide with the threshold
	// detector's dedup slot.
	appHistory := map[string][]int64{
		"threshold": {10 * mb, 12 * mb, 11 * mb},
	}
	currentApp := map[string]int64{"threshold": 100 * mb}

	alerts := Analyze(nil, nil, 2*1024*1024*1024, 0, appHistory, currentApp, cfg)

	var gotApp, gotThreshold bool
	for _, a := range alerts {
		if a.AppName == "threshold" {
			gotApp = true
		}
		if a.Type == alert.TypeThreshold && a.AppName == "" {
			gotThreshold = true
		}
	}
	if !gotApp || !gotThreshold {
		t.Errorf("alerts = %+v, want both the app anomaly and the threshold breach to survive", alerts)
	}
}

func TestAnalyze_EmptyHistory(t *testing.T) {
	current := []usage.Sample{
		sampleAt(10, 500*mb, ""),
		sampleAt(11, 700*mb, ""),
	}

	// With no history, only threshold breaches may surface.
	alerts := Analyze(current, nil, 1200000000, 0, nil, nil, DefaultConfig())
	for _, a := range alerts {
		if a.Type != alert.TypeThreshold {
			t.Errorf("alert type %v produced with empty history, want only threshold", a.Type)
		}
	}
	if len(alerts) != 1 {
		t.Errorf("Analyze() returned %d alerts, want 1 threshold breach", len(alerts))
	}
}

func TestAnalyze_AppDetectorNeedsBothMaps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinBytesThreshold = 10 * mb

	appHistory := map[string][]int64{
		"VideoStream": {10 * mb, 12 * mb, 11 * mb},
	}

	// Missing the current-usage map: the app detector must not run.
	alerts := Analyze(nil, nil, 0, 0, appHistory, nil, cfg)
	if len(alerts) != 0 {
		t.Errorf("Analyze() returned %d alerts without a current app map, want 0", len(alerts))
	}
}

func TestAnalyze_NoInput(t *testing.T) {
	alerts := Analyze(nil, nil, 0, 0, nil, nil, DefaultConfig())
	if len(alerts) != 0 {
		t.Errorf("Analyze() with no input returned %d alerts, want 0", len(alerts))
	}
}
