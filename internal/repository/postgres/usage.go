package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bundleguard/bundleguard/internal/domain/usage"
	"github.com/bundleguard/bundleguard/internal/pkg/errors"
)

// UsageRepository implements usage.Repository over database/sql with
// postgres placeholders
type UsageRepository struct {
	db *sql.DB
}

// NewUsageRepository creates a new usage repository
func NewUsageRepository(db *sql.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

func (r *UsageRepository) CreateBatch(ctx context.Context, records []*usage.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.DatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO usage_records (device_id, timestamp, rx_bytes, tx_bytes, app_name, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return 0, errors.DatabaseError("failed to prepare insert", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.DeviceID, rec.Timestamp, rec.RxBytes, rec.TxBytes, rec.AppName, now); err != nil {
			return 0, errors.DatabaseError("failed to insert usage record", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.DatabaseError("failed to commit usage batch", err)
	}
	return len(records), nil
}

func (r *UsageRepository) ListRange(ctx context.Context, deviceIDs []string, from, to time.Time) ([]*usage.Record, error) {
	if len(deviceIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(deviceIDs))
	args := make([]interface{}, 0, len(deviceIDs)+2)
	for i, id := range deviceIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args = append(args, id)
	}
	args = append(args, from, to)

	query := fmt.Sprintf(`
SELECT id, device_id, timestamp, rx_bytes, tx_bytes, app_name, created_at
FROM usage_records
WHERE device_id IN (%s) AND timestamp >= $%d AND timestamp < $%d
ORDER BY timestamp ASC`, strings.Join(placeholders, ","), len(deviceIDs)+1, len(deviceIDs)+2)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("failed to list usage records", err)
	}
	defer rows.Close()

	var records []*usage.Record
	for rows.Next() {
		var rec usage.Record
		if err := rows.Scan(&rec.ID, &rec.DeviceID, &rec.Timestamp, &rec.RxBytes, &rec.TxBytes, &rec.AppName, &rec.CreatedAt); err != nil {
			return nil, errors.DatabaseError("failed to scan usage record", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
