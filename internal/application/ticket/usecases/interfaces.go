package usecases

import (
	"context"

	"github.com/XavierPelle/sprintly/internal/application/ticket/dto"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.CreateTicketDTO, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.ChangeStatusDTO, error)
}

type AssignTicketExecutor interface {
	Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketDTO, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error)
}

type SearchTicketsExecutor interface {
	Execute(ctx context.Context, q SearchTicketsQuery) (*dto.SearchResultDTO, error)
}

type GetTicketDetailsExecutor interface {
	Execute(ctx context.Context, q GetTicketDetailsQuery) (*dto.TicketDetailsDTO, error)
}

type GetTicketHistoryExecutor interface {
	Execute(ctx context.Context, q GetTicketHistoryQuery) ([]*dto.HistoryDTO, error)
}

type AddTagExecutor interface {
	Execute(ctx context.Context, cmd AddTagCommand) (*dto.TagDTO, error)
}

type RemoveTagExecutor interface {
	Execute(ctx context.Context, cmd RemoveTagCommand) (*RemoveTagResult, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error)
}

// WorkflowSettings carries the status workflow options from configuration.
type WorkflowSettings struct {
	EnforceTransitions bool
	TestLinkDomain     string
}
