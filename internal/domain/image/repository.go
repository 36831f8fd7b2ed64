package image

import "context"

// Repository persists image metadata. Lookups of a missing image return (nil, nil).
type Repository interface {
	Create(ctx context.Context, img *Image) error
	GetByID(ctx context.Context, id uint) (*Image, error)
	Delete(ctx context.Context, id uint) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Image, error)
	// CountByTests returns the number of images attached to each test in testIDs.
	CountByTests(ctx context.Context, testIDs []uint) (map[uint]int, error)
}
