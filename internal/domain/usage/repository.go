package usage

import (
	"context"
	"time"
)

// Repository defines usage record persistence operations
type Repository interface {
	CreateBatch(ctx context.Context, records []*Record) (int, error)
	// ListRange returns records for the given devices with
	// from <= timestamp < to, ordered by timestamp ascending.
	ListRange(ctx context.Context, deviceIDs []string, from, to time.Time) ([]*Record, error)
}
