package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AlertService handles alert-related API calls
type AlertService struct {
	client *Client
}

// AlertListOptions contains options for listing alerts
type AlertListOptions struct {
	ListOptions
	Type     string `json:"type,omitempty"`
	Severity string `json:"severity,omitempty"`
	AppName  string `json:"appName,omitempty"`
	DeviceID string `json:"deviceId,omitempty"`
}

// SpikeOptions contains options for on-demand spike analysis
type SpikeOptions struct {
	DeviceID    string // analyze one device
	UserID      string // or all of a user's devices
	ThresholdMB int64  // optional critical daily threshold override, in MB
	Sensitivity string // high, medium, low
}

// AnalyzeConfig carries detection overrides for Analyze
type AnalyzeConfig struct {
	Sensitivity string `json:"sensitivity,omitempty"`
	ThresholdMB int64  `json:"thresholdMb,omitempty"`
}

// AnalyzeRequest submits caller-supplied samples for analysis
type AnalyzeRequest struct {
	Samples           []Sample       `json:"samples"`
	HistoricalSamples []Sample       `json:"historicalSamples"`
	Config            *AnalyzeConfig `json:"config,omitempty"`
}

// List retrieves stored alerts
func (s *AlertService) List(ctx context.Context, opts *AlertListOptions) (*PaginatedAlerts, error) {
	query := url.Values{}

	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.Type != "" {
			query.Set("type", opts.Type)
		}
		if opts.Severity != "" {
			query.Set("severity", opts.Severity)
		}
		if opts.AppName != "" {
			query.Set("appName", opts.AppName)
		}
		if opts.DeviceID != "" {
			query.Set("deviceId", opts.DeviceID)
		}
	}

	path := "/api/v1/alerts"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page PaginatedAlerts
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// Get retrieves a single alert by ID
func (s *AlertService) Get(ctx context.Context, id string) (*Alert, error) {
	path := fmt.Sprintf("/api/v1/alerts/%s", url.PathEscape(id))

	var alert Alert
	if err := s.client.doRequest(ctx, "GET", path, nil, &alert); err != nil {
		return nil, err
	}

	return &alert, nil
}

// Delete deletes an alert
func (s *AlertService) Delete(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/v1/alerts/%s", url.PathEscape(id))
	return s.client.doRequest(ctx, "DELETE", path, nil, nil)
}

// Summary retrieves alert counts grouped by severity
func (s *AlertService) Summary(ctx context.Context) (map[string]int, error) {
	var summary map[string]int
	if err := s.client.doRequest(ctx, "GET", "/api/v1/alerts/summary", nil, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// Spikes runs the spike analysis over stored usage
func (s *AlertService) Spikes(ctx context.Context, opts SpikeOptions) (*AnalysisResult, error) {
	query := url.Values{}
	if opts.DeviceID != "" {
		query.Set("deviceId", opts.DeviceID)
	}
	if opts.UserID != "" {
		query.Set("userId", opts.UserID)
	}
	if opts.ThresholdMB > 0 {
		query.Set("threshold", strconv.FormatInt(opts.ThresholdMB, 10))
	}
	if opts.Sensitivity != "" {
		query.Set("sensitivity", opts.Sensitivity)
	}

	path := "/api/v1/alerts/spikes"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var result AnalysisResult
	if err := s.client.doRequest(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Analyze runs the spike analysis over caller-supplied samples
func (s *AlertService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalysisResult, error) {
	var result AnalysisResult
	if err := s.client.doRequest(ctx, "POST", "/api/v1/alerts/analyze", req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
