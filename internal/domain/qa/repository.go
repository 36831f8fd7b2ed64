package qa

import "context"

// Repository persists QA tests. Lookups of a missing test return (nil, nil).
type Repository interface {
	Create(ctx context.Context, t *Test) error
	Update(ctx context.Context, t *Test) error
	GetByID(ctx context.Context, id uint) (*Test, error)
	ListByTicket(ctx context.Context, ticketID uint) ([]*Test, error)
	ListAll(ctx context.Context) ([]*Test, error)
}
