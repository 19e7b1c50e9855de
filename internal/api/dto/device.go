package dto

import "time"

// DeviceDTO represents a device in API responses
type DeviceDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"createdAt"`
	LastSeen  time.Time `json:"lastSeen,omitempty"`
}

// RegisterDeviceRequest represents a device registration request
type RegisterDeviceRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=android ios"`
}
