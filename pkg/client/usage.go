package client

import (
	"context"
	"net/url"
)

// UsageService handles usage reporting API calls
type UsageService struct {
	client *Client
}

// IngestRequest submits a batch of usage records for a device
type IngestRequest struct {
	DeviceID string        `json:"deviceId"`
	Records  []UsageRecord `json:"records"`
}

// IngestResult reports how many records were stored
type IngestResult struct {
	Ingested int `json:"ingested"`
}

// Ingest stores a batch of usage records
func (s *UsageService) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	var result IngestResult
	if err := s.client.doRequest(ctx, "POST", "/api/v1/usage", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Summary retrieves today's usage aggregates for a device
func (s *UsageService) Summary(ctx context.Context, deviceID string) (*UsageSummary, error) {
	path := "/api/v1/usage/summary?deviceId=" + url.QueryEscape(deviceID)

	var summary UsageSummary
	if err := s.client.doRequest(ctx, "GET", path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
