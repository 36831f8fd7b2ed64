package usecases

import (
	"context"
	"fmt"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/ticket/dto"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	"github.com/XavierPelle/sprintly/internal/shared/db"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

// AssignTicketCommand assigns a ticket. A nil AssigneeID unassigns it.
type AssignTicketCommand struct {
	TicketID   uint
	AssigneeID *uint
}

type AssignTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	txManager  db.TxManager
	notifier   common.Notifier
	logger     logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	txManager db.TxManager,
	notifier common.Notifier,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		txManager:  txManager,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing assign ticket use case", "ticket_id", cmd.TicketID, "assignee_id", cmd.AssigneeID)

	var (
		t        *ticket.Ticket
		assignee *user.User
		changed  bool
	)
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		t, err = uc.ticketRepo.GetByIDForUpdate(ctx, cmd.TicketID)
		if err != nil {
			return fmt.Errorf("failed to load ticket: %w", err)
		}
		if t == nil {
			return common.TicketNotFound(cmd.TicketID)
		}

		if cmd.AssigneeID != nil {
			assignee, err = uc.userRepo.GetByID(ctx, *cmd.AssigneeID)
			if err != nil {
				return fmt.Errorf("failed to load assignee: %w", err)
			}
			if assignee == nil {
				return common.UserNotFound(*cmd.AssigneeID)
			}
			if t.IsAssignedTo(assignee.ID()) {
				return nil
			}
		}

		t.AssignTo(cmd.AssigneeID)
		changed = true
		return uc.ticketRepo.Update(ctx, t)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to assign ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to assign ticket")
	}
	if !changed {
		return dto.ToTicketDTO(t), nil
	}

	if assignee != nil {
		if err := uc.notifier.TicketAssigned(ctx, common.AssignmentNotice{
			RecipientEmail: assignee.Email().String(),
			RecipientName:  assignee.FullName(),
			TicketKey:      t.Key(),
			TicketTitle:    t.Title(),
		}); err != nil {
			uc.logger.Warnw("failed to notify assignee", "ticket_id", t.ID(), "user_id", assignee.ID(), "error", err)
		}
	}

	uc.logger.Infow("ticket assignment updated", "ticket_id", t.ID(), "assignee_id", fmt.Sprint(derefID(cmd.AssigneeID)))
	return dto.ToTicketDTO(t), nil
}

func derefID(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}
