package alert

import "context"

// Service defines alert business operations
type Service interface {
	Record(ctx context.Context, deviceID string, alerts []Alert) (int, error)
	GetByID(ctx context.Context, id string) (*Alert, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Alert, int64, error)
	GetSummary(ctx context.Context) (map[string]int, error)
}
