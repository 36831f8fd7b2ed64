package usecases

import (
	"context"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/ticket/dto"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

// UpdateTicketCommand patches a ticket. Nil fields are left unchanged.
// Setting IsBlocked to true requires BlockedReason.
type UpdateTicketCommand struct {
	TicketID         uint
	Title            *string
	Description      *string
	Type             *string
	Priority         *string
	DifficultyPoints *int
	Branch           *string
	PullRequestLink  *string
	IsBlocked        *bool
	BlockedReason    *string
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewUpdateTicketUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID)

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}
	if t == nil {
		return nil, common.TicketNotFound(cmd.TicketID)
	}

	if err := uc.apply(t, cmd); err != nil {
		uc.logger.Warnw("invalid ticket update", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	uc.logger.Infow("ticket updated successfully", "ticket_id", t.ID())
	return dto.ToTicketDTO(t), nil
}

func (uc *UpdateTicketUseCase) apply(t *ticket.Ticket, cmd UpdateTicketCommand) error {
	var list errors.ErrorList

	title := stringOr(cmd.Title, t.Title())
	description := stringOr(cmd.Description, t.Description())
	points := t.DifficultyPoints()
	if cmd.DifficultyPoints != nil {
		points = *cmd.DifficultyPoints
	}

	ticketType := t.Type()
	if cmd.Type != nil {
		parsed, err := vo.NewTicketType(*cmd.Type)
		if err != nil {
			list.Add(errors.NewFieldValidationError("type", err.Error()))
		}
		ticketType = parsed
	}
	priority := t.Priority()
	if cmd.Priority != nil {
		parsed, err := vo.NewPriority(*cmd.Priority)
		if err != nil {
			list.Add(errors.NewFieldValidationError("priority", err.Error()))
		}
		priority = parsed
	}
	if list.Len() > 0 {
		return list.OrNil()
	}

	if err := t.UpdateDetails(title, description, ticketType, priority, points); err != nil {
		list.Add(errors.NewValidationError(err.Error()))
	}
	if cmd.Branch != nil {
		if err := t.SetBranch(*cmd.Branch); err != nil {
			list.Add(errors.NewFieldValidationError("branch", err.Error()))
		}
	}
	if cmd.PullRequestLink != nil {
		t.SetPullRequestLink(*cmd.PullRequestLink)
	}
	if cmd.IsBlocked != nil {
		if *cmd.IsBlocked {
			if err := t.Block(stringOr(cmd.BlockedReason, t.BlockedReason())); err != nil {
				list.Add(errors.NewFieldValidationError("blockedReason", err.Error()))
			}
		} else {
			t.Unblock()
		}
	}
	return list.OrNil()
}

func stringOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
