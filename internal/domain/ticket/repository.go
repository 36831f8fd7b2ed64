package ticket

import (
	"context"
	"time"

	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/query"
)

// TicketRepository persists tickets. Lookups of a missing ticket return (nil, nil).
type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	// GetByIDForUpdate loads the ticket and locks its row for the rest of
	// the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id uint) (*Ticket, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Ticket, error)
	ExistsByKey(ctx context.Context, key string) (bool, error)
	ListKeysWithPrefix(ctx context.Context, prefix string) ([]string, error)
	ListBySprint(ctx context.Context, sprintID uint) ([]*Ticket, error)
	// AssignSprint moves every ticket in ids to sprintID (nil detaches them)
	// and stamps their updatedAt with at.
	AssignSprint(ctx context.Context, ids []uint, sprintID *uint, at time.Time) error
	Search(ctx context.Context, filter SearchFilter) ([]*Ticket, int64, error)
	ListAll(ctx context.Context) ([]*Ticket, error)
}

// SearchFilter narrows ticket searches. Nil fields are not filtered on.
type SearchFilter struct {
	query.BaseFilter
	Query      string
	Status     *vo.TicketStatus
	Type       *vo.TicketType
	Priority   *vo.Priority
	AssigneeID *uint
	CreatorID  *uint
	SprintID   *uint
	MinPoints  *int
	MaxPoints  *int
	IsBlocked  *bool
}

// HistoryRepository stores the status audit trail.
type HistoryRepository interface {
	Create(ctx context.Context, h *History) error
	GetLatestByTicket(ctx context.Context, ticketID uint) (*History, error)
	ListByTicket(ctx context.Context, ticketID uint) ([]*History, error)
}

type TagRepository interface {
	Create(ctx context.Context, tag *Tag) error
	GetByID(ctx context.Context, id uint) (*Tag, error)
	ListByTicket(ctx context.Context, ticketID uint) ([]*Tag, error)
	Delete(ctx context.Context, id uint) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Comment, error)
	ListAll(ctx context.Context) ([]*Comment, error)
}
