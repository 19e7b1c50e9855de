package client

import "time"

// Alert represents a detected usage alert
type Alert struct {
	ID                 string    `json:"id"`
	Type               string    `json:"type"`     // spike, threshold, anomaly
	Severity           string    `json:"severity"` // critical, high, medium, low
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	DetectedAt         time.Time `json:"detectedAt"`
	AppName            string    `json:"appName,omitempty"`
	CurrentUsage       int64     `json:"currentUsage"`
	ExpectedUsage      int64     `json:"expectedUsage"`
	PercentageIncrease int       `json:"percentageIncrease"`
	Recommendations    []string  `json:"recommendations"`
}

// Sample is one usage measurement submitted for analysis
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	BytesUsed int64     `json:"bytesUsed"`
	AppName   string    `json:"appName,omitempty"`
}

// UsageRecord is one stored usage measurement
type UsageRecord struct {
	Timestamp time.Time `json:"timestamp"`
	RxBytes   int64     `json:"rxBytes"`
	TxBytes   int64     `json:"txBytes"`
	AppName   string    `json:"appName,omitempty"`
}

// UsageSummary aggregates a device's usage for today
type UsageSummary struct {
	DailyTotal       int64            `json:"dailyTotal"`
	CurrentHourTotal int64            `json:"currentHourTotal"`
	RecordCount      int              `json:"recordCount"`
	ByApp            map[string]int64 `json:"byApp,omitempty"`
}

// Device represents a registered device
type Device struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"createdAt"`
	LastSeen  time.Time `json:"lastSeen,omitempty"`
}

// AnalysisStats describes the data an analysis run looked at
type AnalysisStats struct {
	DailyTotal        int64 `json:"dailyTotal"`
	CurrentHourTotal  int64 `json:"currentHourTotal"`
	RecordsAnalyzed   int   `json:"recordsAnalyzed"`
	HistoricalRecords int   `json:"historicalRecords"`
}

// AnalysisResult is the outcome of a spike analysis run
type AnalysisResult struct {
	Alerts   []Alert       `json:"alerts"`
	Analyzed bool          `json:"analyzed"`
	Stats    AnalysisStats `json:"stats"`
}

// ListOptions contains common options for list operations
type ListOptions struct {
	Page     int `json:"page,omitempty"`      // Page number (1-based)
	PageSize int `json:"page_size,omitempty"` // Items per page
}

// PaginatedAlerts represents a paginated alert list response
type PaginatedAlerts struct {
	Data       []Alert `json:"data"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalItems int64   `json:"total_items"`
	TotalPages int     `json:"total_pages"`
}
