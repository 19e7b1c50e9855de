package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/bundleguard/bundleguard/internal/domain/alert"
	"github.com/bundleguard/bundleguard/internal/domain/device"
	"github.com/bundleguard/bundleguard/internal/domain/usage"
)

// MockAlertRepository is a mock implementation of alert.Repository
type MockAlertRepository struct {
	Alerts      map[string]*alert.Alert
	DeviceIDs   map[string]string
	StoredAt    map[string]time.Time
	CreateError error
	GetError    error
	ListError   error
}

func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{
		Alerts:    make(map[string]*alert.Alert),
		DeviceIDs: make(map[string]string),
		StoredAt:  make(map[string]time.Time),
	}
}

func (m *MockAlertRepository) Create(ctx context.Context, deviceID string, a *alert.Alert) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	stored := *a
	m.Alerts[a.ID] = &stored
	m.DeviceIDs[a.ID] = deviceID
	m.StoredAt[a.ID] = time.Now()
	return nil
}

func (m *MockAlertRepository) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	a, ok := m.Alerts[id]
	if !ok {
		return nil, fmt.Errorf("alert not found")
	}
	return a, nil
}

func (m *MockAlertRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.Alerts[id]; !ok {
		return fmt.Errorf("alert not found")
	}
	delete(m.Alerts, id)
	delete(m.DeviceIDs, id)
	delete(m.StoredAt, id)
	return nil
}

func (m *MockAlertRepository) ListWithPagination(ctx context.Context, filter alert.Filter, limit, offset int) ([]*alert.Alert, int64, error) {
	if m.ListError != nil {
		return nil, 0, m.ListError
	}
	var result []*alert.Alert
	for id, a := range m.Alerts {
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		if filter.Severity != "" && string(a.Severity) != filter.Severity {
			continue
		}
		if filter.AppName != "" && a.AppName != filter.AppName {
			continue
		}
		if filter.DeviceID != "" && m.DeviceIDs[id] != filter.DeviceID {
			continue
		}
		result = append(result, a)
	}
	return result, int64(len(result)), nil
}

func (m *MockAlertRepository) CountBySeverity(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, a := range m.Alerts {
		counts[string(a.Severity)]++
	}
	return counts, nil
}

func (m *MockAlertRepository) RecentKeys(ctx context.Context, windowHours int) ([]alert.Key, error) {
	cutoff := time.Now().Add(-time.Duration(windowHours) * time.Hour)
	var keys []alert.Key
	for id, a := range m.Alerts {
		if m.StoredAt[id].After(cutoff) {
			keys = append(keys, a.Key())
		}
	}
	return keys, nil
}

// MockUsageRepository is a mock implementation of usage.Repository
type MockUsageRepository struct {
	Records     []*usage.Record
	NextID      int64
	CreateError error
	ListError   error
}

func NewMockUsageRepository() *MockUsageRepository {
	return &MockUsageRepository{NextID: 1}
}

func (m *MockUsageRepository) CreateBatch(ctx context.Context, records []*usage.Record) (int, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	for _, rec := range records {
		rec.ID = m.NextID
		m.NextID++
		m.Records = append(m.Records, rec)
	}
	return len(records), nil
}

func (m *MockUsageRepository) ListRange(ctx context.Context, deviceIDs []string, from, to time.Time) ([]*usage.Record, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	wanted := make(map[string]struct{}, len(deviceIDs))
	for _, id := range deviceIDs {
		wanted[id] = struct{}{}
	}
	var result []*usage.Record
	for _, rec := range m.Records {
		if _, ok := wanted[rec.DeviceID]; !ok {
			continue
		}
		if rec.Timestamp.Before(from) || !rec.Timestamp.Before(to) {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

// MockDeviceRepository is a mock implementation of device.Repository
type MockDeviceRepository struct {
	Devices     map[string]*device.Device
	CreateError error
	GetError    error
}

func NewMockDeviceRepository() *MockDeviceRepository {
	return &MockDeviceRepository{
		Devices: make(map[string]*device.Device),
	}
}

func (m *MockDeviceRepository) Create(ctx context.Context, d *device.Device) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Devices[d.ID] = d
	return nil
}

func (m *MockDeviceRepository) GetByID(ctx context.Context, id string) (*device.Device, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	d, ok := m.Devices[id]
	if !ok {
		return nil, fmt.Errorf("device not found")
	}
	return d, nil
}

func (m *MockDeviceRepository) ListByUser(ctx context.Context, userID string) ([]*device.Device, error) {
	var result []*device.Device
	for _, d := range m.Devices {
		if d.UserID == userID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *MockDeviceRepository) ListAll(ctx context.Context) ([]*device.Device, error) {
	var result []*device.Device
	for _, d := range m.Devices {
		result = append(result, d)
	}
	return result, nil
}

func (m *MockDeviceRepository) TouchLastSeen(ctx context.Context, id string) error {
	d, ok := m.Devices[id]
	if !ok {
		return fmt.Errorf("device not found")
	}
	d.LastSeen = time.Now()
	return nil
}
