package client

import (
	"context"
	"fmt"
	"net/url"
)

// DeviceService handles device management API calls
type DeviceService struct {
	client *Client
}

// RegisterDeviceRequest registers a new device
type RegisterDeviceRequest struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Platform string `json:"platform"` // android, ios
}

// Register creates a new device
func (s *DeviceService) Register(ctx context.Context, req RegisterDeviceRequest) (*Device, error) {
	var d Device
	if err := s.client.doRequest(ctx, "POST", "/api/v1/devices", req, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Get retrieves a device by ID
func (s *DeviceService) Get(ctx context.Context, id string) (*Device, error) {
	path := fmt.Sprintf("/api/v1/devices/%s", url.PathEscape(id))

	var d Device
	if err := s.client.doRequest(ctx, "GET", path, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// List retrieves devices, optionally filtered by user
func (s *DeviceService) List(ctx context.Context, userID string) ([]Device, error) {
	path := "/api/v1/devices"
	if userID != "" {
		path += "?userId=" + url.QueryEscape(userID)
	}

	var devices []Device
	if err := s.client.doRequest(ctx, "GET", path, nil, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}
