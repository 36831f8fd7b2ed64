package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/ticket/dto"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/db"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type ChangeStatusCommand struct {
	TicketID  uint
	NewStatus string
	ChangedBy uint
}

type ChangeStatusUseCase struct {
	ticketRepo  ticket.TicketRepository
	historyRepo ticket.HistoryRepository
	txManager   db.TxManager
	clock       biztime.Clock
	workflow    WorkflowSettings
	logger      logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.TicketRepository,
	historyRepo ticket.HistoryRepository,
	txManager db.TxManager,
	clock biztime.Clock,
	workflow WorkflowSettings,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		txManager:   txManager,
		clock:       clock,
		workflow:    workflow,
		logger:      logger,
	}
}

// Execute moves a ticket to a new status and appends the history row in the
// same transaction. The row's startedAt is the previous row's completedAt and
// its changedBy is the ticket's assignee; the acting user is only logged.
func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.ChangeStatusDTO, error) {
	uc.logger.Infow("executing change status use case",
		"ticket_id", cmd.TicketID,
		"new_status", cmd.NewStatus,
		"changed_by", cmd.ChangedBy,
	)

	if cmd.TicketID == 0 {
		return nil, errors.NewFieldValidationError("ticketId", "ticket ID is required")
	}
	newStatus, err := vo.NewTicketStatus(cmd.NewStatus)
	if err != nil {
		return nil, errors.NewFieldValidationError("newStatus", err.Error())
	}

	var (
		t        *ticket.Ticket
		previous vo.TicketStatus
		entry    *ticket.History
	)

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err = uc.ticketRepo.GetByIDForUpdate(ctx, cmd.TicketID)
		if err != nil {
			return fmt.Errorf("failed to load ticket: %w", err)
		}
		if t == nil {
			return common.TicketNotFound(cmd.TicketID)
		}

		now := uc.clock.Now()
		previous = t.Status()
		if err := t.ChangeStatus(newStatus, uc.workflow.EnforceTransitions, now); err != nil {
			return uc.mapTransitionError(t, newStatus, err)
		}

		if newStatus == vo.StatusTest && t.Branch() != "" && t.TestLink() == "" && uc.workflow.TestLinkDomain != "" {
			t.SetTestLink(ticket.TestLink(t.Branch(), uc.workflow.TestLinkDomain))
		}

		latest, err := uc.historyRepo.GetLatestByTicket(ctx, t.ID())
		if err != nil {
			return fmt.Errorf("failed to load latest history: %w", err)
		}

		entry, err = ticket.NewHistory(t.ID(), previous, newStatus, t.AssigneeID(), latest, now)
		if err != nil {
			return fmt.Errorf("failed to build history entry: %w", err)
		}
		if err := uc.historyRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to append history: %w", err)
		}
		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			uc.logger.Warnw("ticket status change rejected", "ticket_id", cmd.TicketID, "error", err)
			return nil, err
		}
		uc.logger.Errorw("failed to change ticket status", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to change ticket status")
	}

	uc.logger.Infow("ticket status changed successfully",
		"ticket_id", t.ID(),
		"previous_status", previous,
		"new_status", newStatus,
		"history_id", entry.ID(),
	)

	return &dto.ChangeStatusDTO{
		TicketID:        t.ID(),
		TicketKey:       t.Key(),
		PreviousStatus:  previous.String(),
		NewStatus:       newStatus.String(),
		HistoryID:       entry.ID(),
		DurationSeconds: entry.DurationSeconds(),
		TestLink:        t.TestLink(),
		Message:         fmt.Sprintf("Ticket status changed from %s to %s", previous, newStatus),
	}, nil
}

func (uc *ChangeStatusUseCase) mapTransitionError(t *ticket.Ticket, requested vo.TicketStatus, err error) error {
	if stderrors.Is(err, ticket.ErrAlreadyInStatus) {
		return errors.NewBusinessRuleError(common.ReasonTicketAlreadyInStatus,
			fmt.Sprintf("Ticket is already in status %s", requested),
			map[string]any{"currentStatus": t.Status().String()})
	}

	var transitionErr *ticket.TransitionError
	if stderrors.As(err, &transitionErr) {
		allowed := make([]string, 0, len(transitionErr.Allowed))
		for _, s := range transitionErr.Allowed {
			allowed = append(allowed, s.String())
		}
		return errors.NewBusinessRuleError(common.ReasonInvalidTransition,
			fmt.Sprintf("Cannot transition from %s to %s", transitionErr.From, transitionErr.To),
			map[string]any{
				"currentStatus":      transitionErr.From.String(),
				"requestedStatus":    transitionErr.To.String(),
				"allowedTransitions": allowed,
			})
	}
	return errors.NewValidationError(err.Error())
}
