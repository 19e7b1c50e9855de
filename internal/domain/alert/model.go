package alert

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Alert represents a detected usage spike, threshold breach or app anomaly.
// Alerts are value objects: once created by a detector they are never mutated.
type Alert struct {
	ID                 string    `json:"id"`
	Type               string    `json:"type"`
	Severity           Severity  `json:"severity"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	DetectedAt         time.Time `json:"detectedAt"`
	AppName            string    `json:"appName,omitempty"`
	CurrentUsage       int64     `json:"currentUsage"`
	ExpectedUsage      int64     `json:"expectedUsage"`
	PercentageIncrease int       `json:"percentageIncrease"`
	Recommendations    []string  `json:"recommendations"`
}

// Alert types
const (
	TypeSpike     = "spike"
	TypeThreshold = "threshold"
	TypeAnomaly   = "anomaly"
)

// Severity classifies alert urgency. Ordering is defined by Rank, never by
// comparing the string values themselves.
type Severity string

// Severity levels
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank returns the sort rank of a severity: critical=0, high=1, medium=2,
// low=3. Unknown severities sort last.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// Key identifies the deduplication slot an alert occupies. App-scoped alerts
// dedup by application name, everything else by detector type. The two fields
// are kept separate so an app that happens to be named "threshold" can never
// collide with the threshold detector's slot.
type Key struct {
	App  string
	Kind string
}

// Key returns the dedup key for this alert.
func (a *Alert) Key() Key {
	if a.AppName != "" {
		return Key{App: a.AppName}
	}
	return Key{Kind: a.Type}
}

// NewID generates an alert ID unique within a single analysis call.
func NewID() string {
	return fmt.Sprintf("alert_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Filter contains alert listing options.
type Filter struct {
	Type     string
	Severity string
	AppName  string
	DeviceID string
}
