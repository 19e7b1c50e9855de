package alert

import "context"

// Repository defines alert persistence operations
type Repository interface {
	Create(ctx context.Context, deviceID string, a *Alert) error
	GetByID(ctx context.Context, id string) (*Alert, error)
	Delete(ctx context.Context, id string) error
	ListWithPagination(ctx context.Context, filter Filter, limit, offset int) ([]*Alert, int64, error)
	CountBySeverity(ctx context.Context) (map[string]int, error)
	// RecentKeys returns the dedup keys of alerts persisted within the given
	// window, used by the delivery layer to suppress repeat notifications.
	RecentKeys(ctx context.Context, windowHours int) ([]Key, error)
}
