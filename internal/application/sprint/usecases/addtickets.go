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

type AddTicketsCommand struct {
	SprintID  uint
	TicketIDs []uint
}

type AddTicketsUseCase struct {
	sprintRepo sprint.Repository
	ticketRepo ticket.TicketRepository
	txManager  db.TxManager
	clock      biztime.Clock
	logger     logger.Interface
}

func NewAddTicketsUseCase(
	sprintRepo sprint.Repository,
	ticketRepo ticket.TicketRepository,
	txManager db.TxManager,
	clock biztime.Clock,
	logger logger.Interface,
) *AddTicketsUseCase {
	return &AddTicketsUseCase{
		sprintRepo: sprintRepo,
		ticketRepo: ticketRepo,
		txManager:  txManager,
		clock:      clock,
		logger:     logger,
	}
}

// Execute attaches the tickets to the sprint if their points fit. The
// sprint row stays locked from the capacity read to the update, so two
// concurrent additions cannot both pass the check. Tickets already in the
// sprint are accepted without being counted twice.
func (uc *AddTicketsUseCase) Execute(ctx context.Context, cmd AddTicketsCommand) (*dto.AddTicketsDTO, error) {
	uc.logger.Infow("executing add tickets to sprint use case",
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
		if err := s.EnsureOpen(); err != nil {
			return common.SprintClosed(s)
		}

		incoming, err := loadTickets(ctx, uc.ticketRepo, ids)
		if err != nil {
			return err
		}

		current, err := uc.ticketRepo.ListBySprint(ctx, s.ID())
		if err != nil {
			return fmt.Errorf("failed to load sprint tickets: %w", err)
		}

		toMove := make([]uint, 0, len(incoming))
		newPoints := 0
		for _, t := range incoming {
			if t.InSprint(s.ID()) {
				continue
			}
			toMove = append(toMove, t.ID())
			newPoints += t.DifficultyPoints()
		}
		if err := common.CapacityError(s.CheckCapacity(sprint.SumPoints(current), newPoints)); err != nil {
			return err
		}

		if len(toMove) == 0 {
			return nil
		}
		sprintID := s.ID()
		if err := uc.ticketRepo.AssignSprint(ctx, toMove, &sprintID, uc.clock.Now()); err != nil {
			return fmt.Errorf("failed to assign tickets to sprint: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			uc.logger.Warnw("add tickets to sprint rejected", "sprint_id", cmd.SprintID, "error", err)
			return nil, err
		}
		uc.logger.Errorw("failed to add tickets to sprint", "sprint_id", cmd.SprintID, "error", err)
		return nil, errors.NewInternalError("failed to add tickets to sprint")
	}

	uc.logger.Infow("tickets added to sprint", "sprint_id", cmd.SprintID, "count", len(ids))
	return &dto.AddTicketsDTO{
		SprintID:       cmd.SprintID,
		AddedTicketIDs: ids,
		Message:        fmt.Sprintf("Successfully added %d ticket(s) to sprint", len(ids)),
	}, nil
}

// loadTickets returns the tickets in request order or TICKETS_NOT_FOUND
// listing every id that does not exist.
func loadTickets(ctx context.Context, repo ticket.TicketRepository, ids []uint) ([]*ticket.Ticket, error) {
	found, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}

	byID := make(map[uint]*ticket.Ticket, len(found))
	present := make([]uint, 0, len(found))
	for _, t := range found {
		byID[t.ID()] = t
		present = append(present, t.ID())
	}
	if missing := common.MissingIDs(ids, present); len(missing) > 0 {
		return nil, errors.NewEntityNotFoundError(common.ReasonTicketsNotFound,
			fmt.Sprintf("Tickets not found: %v", missing),
			map[string]any{"missingTicketIds": missing})
	}

	ordered := make([]*ticket.Ticket, 0, len(ids))
	for _, id := range ids {
		ordered = append(ordered, byID[id])
	}
	return ordered, nil
}
