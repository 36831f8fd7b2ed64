package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/ticket/dto"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	"github.com/XavierPelle/sprintly/internal/shared/constants"
	"github.com/XavierPelle/sprintly/internal/shared/db"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title            string
	Description      string
	Type             string
	Priority         string
	DifficultyPoints int
	CreatorID        uint
	AssigneeID       *uint
	SprintID         *uint
	ProjectPrefix    string
}

type CreateTicketUseCase struct {
	ticketRepo    ticket.TicketRepository
	userRepo      user.Repository
	sprintRepo    sprint.Repository
	keyGenerator  ticket.KeyGenerator
	txManager     db.TxManager
	notifier      common.Notifier
	defaultPrefix string
	newBackOff    func() backoff.BackOff
	logger        logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	sprintRepo sprint.Repository,
	keyGenerator ticket.KeyGenerator,
	txManager db.TxManager,
	notifier common.Notifier,
	defaultPrefix string,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:    ticketRepo,
		userRepo:      userRepo,
		sprintRepo:    sprintRepo,
		keyGenerator:  keyGenerator,
		txManager:     txManager,
		notifier:      notifier,
		defaultPrefix: defaultPrefix,
		newBackOff:    keyRetryBackOff,
		logger:        logger,
	}
}

func keyRetryBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 0
	return backoff.WithMaxRetries(b, uint64(constants.MaxKeyGenerateRetries-1))
}

// Execute generates the next key and inserts the ticket. A key taken by a
// concurrent insert surfaces as a unique index violation; the attempt is
// rolled back and retried with a fresh key.
func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.CreateTicketDTO, error) {
	uc.logger.Infow("executing create ticket use case",
		"title", cmd.Title,
		"creator_id", cmd.CreatorID,
		"sprint_id", cmd.SprintID,
	)

	ticketType, priority, err := uc.validateCommand(cmd)
	if err != nil {
		uc.logger.Warnw("invalid create ticket command", "error", err)
		return nil, err
	}

	prefix := cmd.ProjectPrefix
	if prefix == "" {
		prefix = uc.defaultPrefix
	}
	if err := ticket.ValidatePrefix(prefix); err != nil {
		return nil, errors.NewFieldValidationError("projectPrefix", err.Error())
	}

	creator, err := uc.userRepo.GetByID(ctx, cmd.CreatorID)
	if err != nil {
		uc.logger.Errorw("failed to load creator", "user_id", cmd.CreatorID, "error", err)
		return nil, errors.NewInternalError("failed to create ticket")
	}
	if creator == nil {
		return nil, common.UserNotFound(cmd.CreatorID)
	}

	var assignee *user.User
	if cmd.AssigneeID != nil {
		assignee, err = uc.userRepo.GetByID(ctx, *cmd.AssigneeID)
		if err != nil {
			uc.logger.Errorw("failed to load assignee", "user_id", *cmd.AssigneeID, "error", err)
			return nil, errors.NewInternalError("failed to create ticket")
		}
		if assignee == nil {
			return nil, errors.NewEntityNotFoundError(common.ReasonAssigneeNotFound,
				fmt.Sprintf("Assignee with ID %d not found", *cmd.AssigneeID),
				map[string]any{"assigneeId": *cmd.AssigneeID})
		}
	}

	var created *ticket.Ticket
	attempt := 0
	operation := func() error {
		attempt++
		t, err := uc.insert(ctx, cmd, prefix, ticketType, priority)
		if err == nil {
			created = t
			return nil
		}
		if errors.IsDuplicateError(err) {
			uc.logger.Warnw("ticket key collision, retrying", "prefix", prefix, "attempt", attempt)
			return err
		}
		return backoff.Permanent(err)
	}

	if err := backoff.Retry(operation, backoff.WithContext(uc.newBackOff(), ctx)); err != nil {
		if errors.IsAppError(err) {
			uc.logger.Warnw("ticket creation rejected", "error", err)
			return nil, err
		}
		if errors.IsDuplicateError(err) {
			uc.logger.Errorw("ticket key generation exhausted retries", "prefix", prefix, "attempts", attempt)
			return nil, errors.NewConflictError("could not allocate a unique ticket key").
				WithReason(common.ReasonKeyGenerationFailed).
				WithParam("attempts", attempt)
		}
		uc.logger.Errorw("failed to create ticket", "error", err)
		return nil, errors.NewInternalError("failed to create ticket")
	}

	if assignee != nil {
		uc.notifyAssignee(ctx, created, assignee)
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", created.ID(), "key", created.Key())

	return &dto.CreateTicketDTO{
		Ticket:          dto.ToTicketDTO(created),
		SuggestedBranch: ticket.BranchName(created.Key(), created.Title()),
	}, nil
}

func (uc *CreateTicketUseCase) insert(
	ctx context.Context,
	cmd CreateTicketCommand,
	prefix string,
	ticketType vo.TicketType,
	priority vo.Priority,
) (*ticket.Ticket, error) {
	var created *ticket.Ticket
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if cmd.SprintID != nil {
			if err := uc.checkSprint(ctx, *cmd.SprintID, cmd.DifficultyPoints); err != nil {
				return err
			}
		}

		key, err := uc.keyGenerator.Generate(ctx, prefix)
		if err != nil {
			return fmt.Errorf("failed to generate ticket key: %w", err)
		}

		t, err := ticket.NewTicket(key, cmd.Title, cmd.Description, ticketType, priority, cmd.DifficultyPoints, cmd.CreatorID)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if cmd.AssigneeID != nil {
			t.AssignTo(cmd.AssigneeID)
		}
		if cmd.SprintID != nil {
			t.MoveToSprint(cmd.SprintID)
		}

		if err := uc.ticketRepo.Create(ctx, t); err != nil {
			return err
		}
		created = t
		return nil
	})
	return created, err
}

// checkSprint locks the sprint row so concurrent inserts see each other's
// points before the capacity check.
func (uc *CreateTicketUseCase) checkSprint(ctx context.Context, sprintID uint, points int) error {
	sp, err := uc.sprintRepo.GetByIDForUpdate(ctx, sprintID)
	if err != nil {
		return fmt.Errorf("failed to load sprint: %w", err)
	}
	if sp == nil {
		return common.SprintNotFound(sprintID)
	}
	if err := sp.EnsureOpen(); err != nil {
		return common.SprintClosed(sp)
	}

	current, err := uc.ticketRepo.ListBySprint(ctx, sprintID)
	if err != nil {
		return fmt.Errorf("failed to load sprint tickets: %w", err)
	}
	return common.CapacityError(sp.CheckCapacity(sprint.SumPoints(current), points))
}

func (uc *CreateTicketUseCase) notifyAssignee(ctx context.Context, t *ticket.Ticket, assignee *user.User) {
	err := uc.notifier.TicketAssigned(ctx, common.AssignmentNotice{
		RecipientEmail: assignee.Email().String(),
		RecipientName:  assignee.FullName(),
		TicketKey:      t.Key(),
		TicketTitle:    t.Title(),
	})
	if err != nil {
		uc.logger.Warnw("failed to notify assignee", "ticket_id", t.ID(), "user_id", assignee.ID(), "error", err)
	}
}

func (uc *CreateTicketUseCase) validateCommand(cmd CreateTicketCommand) (vo.TicketType, vo.Priority, error) {
	var list errors.ErrorList

	if cmd.CreatorID == 0 {
		list.Add(errors.NewFieldValidationError("creatorId", "creator ID is required"))
	}
	ticketType, err := vo.NewTicketType(cmd.Type)
	if err != nil {
		list.Add(errors.NewFieldValidationError("type", err.Error()))
	}
	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		list.Add(errors.NewFieldValidationError("priority", err.Error()))
	}
	if cmd.DifficultyPoints < 0 || cmd.DifficultyPoints > ticket.MaxDifficultyPoints {
		list.Add(errors.NewFieldValidationError("difficultyPoints",
			fmt.Sprintf("difficulty points must be between 0 and %d", ticket.MaxDifficultyPoints)))
	}

	return ticketType, priority, list.OrNil()
}
