package device

import "context"

// Service defines device business operations
type Service interface {
	Register(ctx context.Context, d *Device) error
	GetByID(ctx context.Context, id string) (*Device, error)
	ListByUser(ctx context.Context, userID string) ([]*Device, error)
	ListAll(ctx context.Context) ([]*Device, error)
}
