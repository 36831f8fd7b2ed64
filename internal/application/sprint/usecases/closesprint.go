package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/sprint/dto"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/db"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
	"github.com/XavierPelle/sprintly/internal/shared/mapper"
)

// CloseSprintCommand closes a sprint. MoveIncompleteTo and RemoveIncomplete
// are mutually exclusive; with neither, incomplete tickets stay on the
// closed sprint.
type CloseSprintCommand struct {
	SprintID         uint
	MoveIncompleteTo *uint
	RemoveIncomplete bool
}

type CloseSprintUseCase struct {
	sprintRepo sprint.Repository
	ticketRepo ticket.TicketRepository
	txManager  db.TxManager
	clock      biztime.Clock
	logger     logger.Interface
}

func NewCloseSprintUseCase(
	sprintRepo sprint.Repository,
	ticketRepo ticket.TicketRepository,
	txManager db.TxManager,
	clock biztime.Clock,
	logger logger.Interface,
) *CloseSprintUseCase {
	return &CloseSprintUseCase{
		sprintRepo: sprintRepo,
		ticketRepo: ticketRepo,
		txManager:  txManager,
		clock:      clock,
		logger:     logger,
	}
}

// Execute closes the sprint and redistributes its incomplete tickets in one
// transaction. Both the closed sprint and the target are locked, so the
// target's capacity tally cannot change while tickets are moved into it.
func (uc *CloseSprintUseCase) Execute(ctx context.Context, cmd CloseSprintCommand) (*dto.CloseSprintDTO, error) {
	uc.logger.Infow("executing close sprint use case",
		"sprint_id", cmd.SprintID,
		"move_incomplete_to", cmd.MoveIncompleteTo,
		"remove_incomplete", cmd.RemoveIncomplete,
	)

	if cmd.MoveIncompleteTo != nil && cmd.RemoveIncomplete {
		return nil, closureError(sprint.ErrConflictingClosure)
	}
	if cmd.MoveIncompleteTo != nil && *cmd.MoveIncompleteTo == cmd.SprintID {
		return nil, closureError(sprint.ErrTargetIsSameSprint)
	}

	now := uc.clock.Now()
	var (
		closed *sprint.Sprint
		report *sprint.ClosureReport
	)
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

		policy := sprint.ClosurePolicy{RemoveIncomplete: cmd.RemoveIncomplete}
		if cmd.MoveIncompleteTo != nil {
			if policy, err = uc.targetPolicy(ctx, *cmd.MoveIncompleteTo, now); err != nil {
				return err
			}
		}

		tickets, err := uc.ticketRepo.ListBySprint(ctx, s.ID())
		if err != nil {
			return fmt.Errorf("failed to load sprint tickets: %w", err)
		}

		report, err = sprint.PlanClosure(s, tickets, policy)
		if err != nil {
			return closureError(err)
		}

		if moved := report.Moved(); len(moved) > 0 {
			targetID := policy.Target.ID()
			if err := uc.ticketRepo.AssignSprint(ctx, moved, &targetID, now); err != nil {
				return fmt.Errorf("failed to move incomplete tickets: %w", err)
			}
		}
		if removed := report.Removed(); len(removed) > 0 {
			if err := uc.ticketRepo.AssignSprint(ctx, removed, nil, now); err != nil {
				return fmt.Errorf("failed to remove incomplete tickets: %w", err)
			}
		}

		if err := s.Close(*report, now); err != nil {
			return common.SprintClosed(s)
		}
		if err := uc.sprintRepo.Update(ctx, s); err != nil {
			return fmt.Errorf("failed to update sprint: %w", err)
		}
		closed = s
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			uc.logger.Warnw("close sprint rejected", "sprint_id", cmd.SprintID, "error", err)
			return nil, err
		}
		uc.logger.Errorw("failed to close sprint", "sprint_id", cmd.SprintID, "error", err)
		return nil, errors.NewInternalError("failed to close sprint")
	}

	stats := report.Statistics
	uc.logger.Infow("sprint closed successfully",
		"sprint_id", closed.ID(),
		"completed_tickets", stats.CompletedTickets,
		"total_tickets", stats.TotalTickets,
		"moved", len(report.Moved()),
		"removed", len(report.Removed()),
	)

	return &dto.CloseSprintDTO{
		Sprint:            dto.ToSprintDTO(closed),
		Statistics:        dto.ToClosureStatisticsDTO(stats),
		IncompleteTickets: mapper.MapSlice(report.Outcomes, dto.ToIncompleteTicketDTO),
		Message:           fmt.Sprintf("Sprint closed successfully. %d/%d tickets completed (%d%%)",
			stats.CompletedTickets, stats.TotalTickets, stats.CompletionRate),
	}, nil
}

func (uc *CloseSprintUseCase) targetPolicy(ctx context.Context, targetID uint, now time.Time) (sprint.ClosurePolicy, error) {
	target, err := uc.sprintRepo.GetByIDForUpdate(ctx, targetID)
	if err != nil {
		return sprint.ClosurePolicy{}, fmt.Errorf("failed to load target sprint: %w", err)
	}
	if target == nil {
		return sprint.ClosurePolicy{}, errors.NewEntityNotFoundError(common.ReasonTargetSprintNotFound,
			fmt.Sprintf("Target sprint with ID %d not found", targetID),
			map[string]any{"sprintId": targetID})
	}
	if err := target.EnsureCanReceive(now); err != nil {
		return sprint.ClosurePolicy{}, errors.NewBusinessRuleError(common.ReasonTargetSprintEnded,
			fmt.Sprintf("Target sprint %s has already ended", target.Name()),
			map[string]any{"sprintId": targetID, "endDate": biztime.FormatDate(target.EndDate())})
	}

	targetTickets, err := uc.ticketRepo.ListBySprint(ctx, targetID)
	if err != nil {
		return sprint.ClosurePolicy{}, fmt.Errorf("failed to load target sprint tickets: %w", err)
	}
	return sprint.ClosurePolicy{
		Target:       target,
		TargetPoints: sprint.SumPoints(targetTickets),
	}, nil
}

func closureError(err error) error {
	switch {
	case stderrors.Is(err, sprint.ErrConflictingClosure):
		return errors.NewBusinessRuleError(common.ReasonConflictingClosure,
			"Cannot both move and remove incomplete tickets", nil)
	case stderrors.Is(err, sprint.ErrTargetIsSameSprint):
		return errors.NewBusinessRuleError(common.ReasonTargetIsSameSprint,
			"Incomplete tickets cannot be moved to the sprint being closed", nil)
	default:
		return err
	}
}
