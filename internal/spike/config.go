package spike

// Config contains the tunable thresholds for spike detection. All thresholds
// are non-negative. StdDevMultiplier and MinPercentageIncrease are independent
// OR-combined triggers, both gated by MinBytesThreshold.
type Config struct {
	// Z-score cutoff for a statistical spike
	StdDevMultiplier float64
	// Minimum percentage above baseline to qualify as a spike
	MinPercentageIncrease float64
	// Floor below which a deviation is ignored (noise floor)
	MinBytesThreshold int64
	// Rolling window in days for baseline calculation; informational, the
	// caller limits historical samples to this window
	BaselineWindowDays int
	// Absolute daily ceiling for critical threshold alerts
	CriticalDailyThreshold int64
	// Absolute hourly ceiling for high threshold alerts
	HighHourlyThreshold int64
}

// DefaultConfig returns the default detection thresholds.
func DefaultConfig() Config {
	return Config{
		StdDevMultiplier:       2.0,
		MinPercentageIncrease:  50,
		MinBytesThreshold:      50 * 1024 * 1024,
		BaselineWindowDays:     7,
		CriticalDailyThreshold: 1024 * 1024 * 1024,
		HighHourlyThreshold:    200 * 1024 * 1024,
	}
}

// Overrides carries optional per-call threshold overrides. Nil fields keep
// the base config's value.
type Overrides struct {
	StdDevMultiplier       *float64
	MinPercentageIncrease  *float64
	MinBytesThreshold      *int64
	BaselineWindowDays     *int
	CriticalDailyThreshold *int64
	HighHourlyThreshold    *int64
}

// Merge returns a copy of the config with non-nil overrides applied.
func (c Config) Merge(o Overrides) Config {
	if o.StdDevMultiplier != nil {
		c.StdDevMultiplier = *o.StdDevMultiplier
	}
	if o.MinPercentageIncrease != nil {
		c.MinPercentageIncrease = *o.MinPercentageIncrease
	}
	if o.MinBytesThreshold != nil {
		c.MinBytesThreshold = *o.MinBytesThreshold
	}
	if o.BaselineWindowDays != nil {
		c.BaselineWindowDays = *o.BaselineWindowDays
	}
	if o.CriticalDailyThreshold != nil {
		c.CriticalDailyThreshold = *o.CriticalDailyThreshold
	}
	if o.HighHourlyThreshold != nil {
		c.HighHourlyThreshold = *o.HighHourlyThreshold
	}
	return c
}

// Sensitivity presets
const (
	SensitivityHigh   = "high"
	SensitivityMedium = "medium"
	SensitivityLow    = "low"
)

// WithSensitivity returns the config adjusted for a sensitivity preset.
// "high" alerts earlier, "low" requires stronger deviations. Any other value
// keeps the config unchanged (medium).
func (c Config) WithSensitivity(level string) Config {
	switch level {
	case SensitivityHigh:
		c.StdDevMultiplier = 1.5
		c.MinPercentageIncrease = 30
	case SensitivityLow:
		c.StdDevMultiplier = 3.0
		c.MinPercentageIncrease = 100
	}
	return c
}
