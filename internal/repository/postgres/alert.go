package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bundleguard/bundleguard/internal/domain/alert"
	"github.com/bundleguard/bundleguard/internal/pkg/errors"
)

// AlertRepository implements alert.Repository over database/sql with
// postgres placeholders
type AlertRepository struct {
	db *sql.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, deviceID string, a *alert.Alert) error {
	recs, err := json.Marshal(a.Recommendations)
	if err != nil {
		return errors.DatabaseError("failed to encode recommendations", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO alerts (id, device_id, type, severity, title, description, detected_at,
    app_name, current_usage, expected_usage, percentage_increase, recommendations)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, deviceID, a.Type, string(a.Severity), a.Title, a.Description, a.DetectedAt,
		a.AppName, a.CurrentUsage, a.ExpectedUsage, a.PercentageIncrease, string(recs))
	if err != nil {
		return errors.DatabaseError("failed to insert alert", err)
	}
	return nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, type, severity, title, description, detected_at, app_name,
    current_usage, expected_usage, percentage_increase, recommendations
FROM alerts WHERE id = $1`, id)

	a, err := scanAlert(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("alert")
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to get alert", err)
	}
	return a, nil
}

func (r *AlertRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return errors.DatabaseError("failed to delete alert", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("alert")
	}
	return nil
}

func (r *AlertRepository) ListWithPagination(ctx context.Context, filter alert.Filter, limit, offset int) ([]*alert.Alert, int64, error) {
	where, args := buildAlertFilter(filter)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alerts`+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("failed to count alerts", err)
	}

	query := fmt.Sprintf(`
SELECT id, type, severity, title, description, detected_at, app_name,
    current_usage, expected_usage, percentage_increase, recommendations
FROM alerts%s ORDER BY detected_at DESC LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.DatabaseError("failed to list alerts", err)
	}
	defer rows.Close()

	var alerts []*alert.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("failed to scan alert", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("failed to read alerts", err)
	}

	return alerts, total, nil
}

func (r *AlertRepository) CountBySeverity(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT severity, COUNT(*) FROM alerts GROUP BY severity`)
	if err != nil {
		return nil, errors.DatabaseError("failed to count alerts by severity", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var severity string
		var n int
		if err := rows.Scan(&severity, &n); err != nil {
			return nil, errors.DatabaseError("failed to scan severity count", err)
		}
		counts[severity] = n
	}
	return counts, rows.Err()
}

func (r *AlertRepository) RecentKeys(ctx context.Context, windowHours int) ([]alert.Key, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT app_name, type FROM alerts
WHERE detected_at >= NOW() - make_interval(hours => $1)`, windowHours)
	if err != nil {
		return nil, errors.DatabaseError("failed to query recent alert keys", err)
	}
	defer rows.Close()

	var keys []alert.Key
	for rows.Next() {
		var appName, alertType string
		if err := rows.Scan(&appName, &alertType); err != nil {
			return nil, errors.DatabaseError("failed to scan alert key", err)
		}
		if appName != "" {
			keys = append(keys, alert.Key{App: appName})
		} else {
			keys = append(keys, alert.Key{Kind: alertType})
		}
	}
	return keys, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAlert(row rowScanner) (*alert.Alert, error) {
	var a alert.Alert
	var severity, recs string
	err := row.Scan(&a.ID, &a.Type, &severity, &a.Title, &a.Description, &a.DetectedAt,
		&a.AppName, &a.CurrentUsage, &a.ExpectedUsage, &a.PercentageIncrease, &recs)
	if err != nil {
		return nil, err
	}
	a.Severity = alert.Severity(severity)
	if err := json.Unmarshal([]byte(recs), &a.Recommendations); err != nil {
		return nil, err
	}
	return &a, nil
}

func buildAlertFilter(filter alert.Filter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(column string, value interface{}) {
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if filter.Type != "" {
		add("type", filter.Type)
	}
	if filter.Severity != "" {
		add("severity", filter.Severity)
	}
	if filter.AppName != "" {
		add("app_name", filter.AppName)
	}
	if filter.DeviceID != "" {
		add("device_id", filter.DeviceID)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
