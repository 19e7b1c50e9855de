package dto

import (
	"time"

	"github.com/bundleguard/bundleguard/internal/domain/alert"
)

// AlertDTO represents an alert in API responses
// Uses camelCase for client compatibility
type AlertDTO struct {
	ID                 string    `json:"id"`
	Type               string    `json:"type"`
	Severity           string    `json:"severity"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	DetectedAt         time.Time `json:"detectedAt"`
	AppName            string    `json:"appName,omitempty"`
	CurrentUsage       int64     `json:"currentUsage"`
	ExpectedUsage      int64     `json:"expectedUsage"`
	PercentageIncrease int       `json:"percentageIncrease"`
	Recommendations    []string  `json:"recommendations"`
}

// FromAlert converts a domain alert to its API representation
func FromAlert(a *alert.Alert) AlertDTO {
	return AlertDTO{
		ID:                 a.ID,
		Type:               a.Type,
		Severity:           string(a.Severity),
		Title:              a.Title,
		Description:        a.Description,
		DetectedAt:         a.DetectedAt,
		AppName:            a.AppName,
		CurrentUsage:       a.CurrentUsage,
		ExpectedUsage:      a.ExpectedUsage,
		PercentageIncrease: a.PercentageIncrease,
		Recommendations:    a.Recommendations,
	}
}

// SampleDTO is one usage measurement in an analyze request
type SampleDTO struct {
	Timestamp time.Time `json:"timestamp" validate:"required"`
	BytesUsed int64     `json:"bytesUsed" validate:"gte=0"`
	AppName   string    `json:"appName,omitempty"`
}

// AnalyzeConfigDTO carries per-request detection overrides
type AnalyzeConfigDTO struct {
	Sensitivity string `json:"sensitivity,omitempty" validate:"omitempty,oneof=high medium low"`
	ThresholdMB int64  `json:"thresholdMb,omitempty" validate:"gte=0"`
}

// AnalyzeRequest represents an on-demand spike analysis request with
// caller-supplied samples
type AnalyzeRequest struct {
	Samples           []SampleDTO       `json:"samples" validate:"required,min=1,dive"`
	HistoricalSamples []SampleDTO       `json:"historicalSamples" validate:"dive"`
	Config            *AnalyzeConfigDTO `json:"config,omitempty"`
}

// AnalyzeResponse represents a spike analysis result
type AnalyzeResponse struct {
	Alerts   []AlertDTO  `json:"alerts"`
	Analyzed bool        `json:"analyzed"`
	Stats    interface{} `json:"stats"`
}
