package spike

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.StdDevMultiplier != 2.0 {
		t.Errorf("StdDevMultiplier = %v, want 2.0", cfg.StdDevMultiplier)
	}
	if cfg.MinPercentageIncrease != 50 {
		t.Errorf("MinPercentageIncrease = %v, want 50", cfg.MinPercentageIncrease)
	}
	if cfg.MinBytesThreshold != 50*1024*1024 {
		t.Errorf("MinBytesThreshold = %v, want 50 MiB", cfg.MinBytesThreshold)
	}
	if cfg.BaselineWindowDays != 7 {
		t.Errorf("BaselineWindowDays = %v, want 7", cfg.BaselineWindowDays)
	}
	if cfg.CriticalDailyThreshold != 1024*1024*1024 {
		t.Errorf("CriticalDailyThreshold = %v, want 1 GiB", cfg.CriticalDailyThreshold)
	}
	if cfg.HighHourlyThreshold != 200*1024*1024 {
		t.Errorf("HighHourlyThreshold = %v, want 200 MiB", cfg.HighHourlyThreshold)
	}
}

func TestConfigMerge(t *testing.T) {
	mult := 3.5
	threshold := int64(500 * 1024 * 1024)

	cfg := DefaultConfig().Merge(Overrides{
		StdDevMultiplier:       &mult,
		CriticalDailyThreshold: &threshold,
	})

	if cfg.StdDevMultiplier != 3.5 {
		t.Errorf("StdDevMultiplier = %v, want 3.5", cfg.StdDevMultiplier)
	}
	if cfg.CriticalDailyThreshold != threshold {
		t.Errorf("CriticalDailyThreshold = %v, want %v", cfg.CriticalDailyThreshold, threshold)
	}
	// untouched fields keep their defaults
	if cfg.MinPercentageIncrease != 50 {
		t.Errorf("MinPercentageIncrease = %v, want 50", cfg.MinPercentageIncrease)
	}
	if cfg.HighHourlyThreshold != 200*1024*1024 {
		t.Errorf("HighHourlyThreshold = %v, want 200 MiB", cfg.HighHourlyThreshold)
	}
}

func TestConfigWithSensitivity(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		wantMult float64
		wantPct  float64
	}{
		{name: "high alerts earlier", level: SensitivityHigh, wantMult: 1.5, wantPct: 30},
		{name: "low requires more", level: SensitivityLow, wantMult: 3.0, wantPct: 100},
		{name: "medium keeps defaults", level: SensitivityMedium, wantMult: 2.0, wantPct: 50},
		{name: "unknown keeps defaults", level: "bogus", wantMult: 2.0, wantPct: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig().WithSensitivity(tt.level)
			if cfg.StdDevMultiplier != tt.wantMult {
				t.Errorf("StdDevMultiplier = %v, want %v", cfg.StdDevMultiplier, tt.wantMult)
			}
			if cfg.MinPercentageIncrease != tt.wantPct {
				t.Errorf("MinPercentageIncrease = %v, want %v", cfg.MinPercentageIncrease, tt.wantPct)
			}
		})
	}
}
