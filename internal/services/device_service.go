package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bundleguard/bundleguard/internal/domain/device"
	"github.com/bundleguard/bundleguard/internal/pkg/logger"
)

// DeviceService implements device.Service
type DeviceService struct {
	repo   device.Repository
	logger *logger.Logger
}

// NewDeviceService creates a new device service
func NewDeviceService(repo device.Repository, log *logger.Logger) device.Service {
	return &DeviceService{
		repo:   repo,
		logger: log,
	}
}

// Register creates a new device record
func (s *DeviceService) Register(ctx context.Context, d *device.Device) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.ErrorWithErr(err, "Failed to register device")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"device_id": d.ID,
		"user_id":   d.UserID,
		"platform":  d.Platform,
	}).Info("Device registered")

	return nil
}

// GetByID retrieves a device by ID
func (s *DeviceService) GetByID(ctx context.Context, id string) (*device.Device, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByUser lists devices belonging to a user
func (s *DeviceService) ListByUser(ctx context.Context, userID string) ([]*device.Device, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll lists every registered device
func (s *DeviceService) ListAll(ctx context.Context) ([]*device.Device, error) {
	return s.repo.ListAll(ctx)
}
