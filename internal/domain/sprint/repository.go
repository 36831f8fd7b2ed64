package sprint

import (
	"context"
	"time"

	"github.com/XavierPelle/sprintly/internal/shared/query"
)

// Repository persists sprints. Lookups of a missing sprint return (nil, nil).
type Repository interface {
	Create(ctx context.Context, s *Sprint) error
	Update(ctx context.Context, s *Sprint) error
	GetByID(ctx context.Context, id uint) (*Sprint, error)
	// GetByIDForUpdate loads the sprint and locks its row for the rest of
	// the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id uint) (*Sprint, error)
	List(ctx context.Context, filter ListFilter) ([]*Sprint, int64, error)
	ListAll(ctx context.Context) ([]*Sprint, error)
	// ListOverdue returns open sprints whose last day is before now.
	ListOverdue(ctx context.Context, now time.Time) ([]*Sprint, error)
}

type ListFilter struct {
	query.BaseFilter
	IncludeClosed bool
}
