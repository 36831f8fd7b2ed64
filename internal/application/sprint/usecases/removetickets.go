package usecases

import (
	"context"
	"fmt"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/sprint/dto"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/db"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type RemoveTicketsCommand struct {
	SprintID  uint
	TicketIDs []uint
}

type RemoveTicketsUseCase struct {
	sprintRepo sprint.Repository
	ticketRepo ticket.TicketRepository
	txManager  db.TxManager
	clock      biztime.Clock
	logger     logger.Interface
}

func NewRemoveTicketsUseCase(
	sprintRepo sprint.Repository,
	ticketRepo ticket.TicketRepository,
	txManager db.TxManager,
	clock biztime.Clock,
	logger logger.Interface,
) *RemoveTicketsUseCase {
	return &RemoveTicketsUseCase{
		sprintRepo: sprintRepo,
		ticketRepo: ticketRepo,
		txManager:  txManager,
		clock:      clock,
		logger:     logger,
	}
}

// Execute detaches the tickets from the sprint. Either every ticket is
// removed or none is.
func (uc *RemoveTicketsUseCase) Execute(ctx context.Context, cmd RemoveTicketsCommand) (*dto.RemoveTicketsDTO, error) {
	uc.logger.Infow("executing remove tickets from sprint use case",
		"sprint_id", cmd.SprintID,
		"ticket_ids", cmd.TicketIDs,
	)

	if len(cmd.TicketIDs) == 0 {
		return nil, errors.NewFieldValidationError("ticketIds", "at least one ticket ID is required")
	}
	ids := common.UniqueIDs(cmd.TicketIDs)

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		s, err := uc.sprintRepo.GetByIDForUpdate(ctx, cmd.SprintID)
		if err != nil {
			return fmt.Errorf("failed to load sprint: %w", err)
		}
		if s == nil {
			return common.SprintNotFound(cmd.SprintID)
		}

		tickets, err := loadTickets(ctx, uc.ticketRepo, ids)
		if err != nil {
			return err
		}

		notInSprint := make([]uint, 0)
		for _, t := range tickets {
			if !t.InSprint(s.ID()) {
				notInSprint = append(notInSprint, t.ID())
			}
		}
		if len(notInSprint) > 0 {
			return errors.NewBusinessRuleError(common.ReasonTicketsNotInSprint,
				fmt.Sprintf("Tickets %v are not in sprint %s", notInSprint, s.Name()),
				map[string]any{"ticketIds": notInSprint, "sprintId": s.ID()})
		}

		if err := uc.ticketRepo.AssignSprint(ctx, ids, nil, uc.clock.Now()); err != nil {
			return fmt.Errorf("failed to detach tickets from sprint: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			uc.logger.Warnw("remove tickets from sprint rejected", "sprint_id", cmd.SprintID, "error", err)
			return nil, err
		}
		uc.logger.Errorw("failed to remove tickets from sprint", "sprint_id", cmd.SprintID, "error", err)
		return nil, errors.NewInternalError("failed to remove tickets from sprint")
	}

	uc.logger.Infow("tickets removed from sprint", "sprint_id", cmd.SprintID, "count", len(ids))
	return &dto.RemoveTicketsDTO{
		SprintID:         cmd.SprintID,
		RemovedTicketIDs: ids,
		Message:          fmt.Sprintf("Successfully removed %d ticket(s) from sprint", len(ids)),
	}, nil
}
