package device

import "context"

// Repository defines device persistence operations
type Repository interface {
	Create(ctx context.Context, d *Device) error
	GetByID(ctx context.Context, id string) (*Device, error)
	ListByUser(ctx context.Context, userID string) ([]*Device, error)
	ListAll(ctx context.Context) ([]*Device, error)
	TouchLastSeen(ctx context.Context, id string) error
}
