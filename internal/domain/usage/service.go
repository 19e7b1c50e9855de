package usage

import (
	"context"
	"time"
)

// Service defines usage business operations
type Service interface {
	Ingest(ctx context.Context, records []*Record) (int, error)
	GetRange(ctx context.Context, deviceIDs []string, from, to time.Time) ([]*Record, error)
	GetSummary(ctx context.Context, deviceIDs []string, now time.Time) (*Summary, error)
}
