package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/bundleguard/bundleguard/internal/domain/device"
	"github.com/bundleguard/bundleguard/internal/pkg/errors"
)

// DeviceRepository implements device.Repository over database/sql
type DeviceRepository struct {
	db *sql.DB
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *sql.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) Create(ctx context.Context, d *device.Device) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO devices (id, user_id, name, platform, created_at)
VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.Name, d.Platform, d.CreatedAt)
	if err != nil {
		return errors.DatabaseError("failed to insert device", err)
	}
	return nil
}

func (r *DeviceRepository) GetByID(ctx context.Context, id string) (*device.Device, error) {
	var d device.Device
	var lastSeen sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, platform, created_at, last_seen FROM devices WHERE id = ?`, id).
		Scan(&d.ID, &d.UserID, &d.Name, &d.Platform, &d.CreatedAt, &lastSeen)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("device")
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to get device", err)
	}
	if lastSeen.Valid {
		d.LastSeen = lastSeen.Time
	}
	return &d, nil
}

func (r *DeviceRepository) ListByUser(ctx context.Context, userID string) ([]*device.Device, error) {
	return r.list(ctx, `SELECT id, user_id, name, platform, created_at, last_seen FROM devices WHERE user_id = ?`, userID)
}

func (r *DeviceRepository) ListAll(ctx context.Context) ([]*device.Device, error) {
	return r.list(ctx, `SELECT id, user_id, name, platform, created_at, last_seen FROM devices`)
}

func (r *DeviceRepository) TouchLastSeen(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE devices SET last_seen = ? WHERE id = ?`, time.Now(), id)
	if err != nil {
		return errors.DatabaseError("failed to update device last_seen", err)
	}
	return nil
}

func (r *DeviceRepository) list(ctx context.Context, query string, args ...interface{}) ([]*device.Device, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("failed to list devices", err)
	}
	defer rows.Close()

	var devices []*device.Device
	for rows.Next() {
		var d device.Device
		var lastSeen sql.NullTime
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Platform, &d.CreatedAt, &lastSeen); err != nil {
			return nil, errors.DatabaseError("failed to scan device", err)
		}
		if lastSeen.Valid {
			d.LastSeen = lastSeen.Time
		}
		devices = append(devices, &d)
	}
	return devices, rows.Err()
}
