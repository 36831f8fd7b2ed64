package usecases

import (
	"context"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/qa/dto"
	"github.com/XavierPelle/sprintly/internal/domain/qa"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

const (
	messageTestValidated = "Test validated successfully"
	messageTestRejected  = "Test rejected"
)

// ValidateTestCommand records a reviewer's verdict. IsValidated false rejects
// the test.
type ValidateTestCommand struct {
	TestID      uint
	IsValidated bool
	ReviewerID  uint
}

type ValidateTestUseCase struct {
	testRepo   qa.Repository
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	notifier   common.Notifier
	clock      biztime.Clock
	logger     logger.Interface
}

func NewValidateTestUseCase(
	testRepo qa.Repository,
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	notifier common.Notifier,
	clock biztime.Clock,
	logger logger.Interface,
) *ValidateTestUseCase {
	return &ValidateTestUseCase{
		testRepo:   testRepo,
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		clock:      clock,
		logger:     logger,
	}
}

// Execute stores the verdict. A rejection notifies the ticket's assignee.
func (uc *ValidateTestUseCase) Execute(ctx context.Context, cmd ValidateTestCommand) (*dto.ValidateTestDTO, error) {
	uc.logger.Infow("executing validate test use case",
		"test_id", cmd.TestID,
		"is_validated", cmd.IsValidated,
		"reviewer_id", cmd.ReviewerID,
	)

	var list errors.ErrorList
	if cmd.TestID == 0 {
		list.Add(errors.NewFieldValidationError("testId", "test ID is required"))
	}
	if cmd.ReviewerID == 0 {
		list.Add(errors.NewFieldValidationError("validatedBy", "reviewer ID is required"))
	}
	if err := list.OrNil(); err != nil {
		return nil, err
	}

	test, err := uc.testRepo.GetByID(ctx, cmd.TestID)
	if err != nil {
		uc.logger.Errorw("failed to load test", "test_id", cmd.TestID, "error", err)
		return nil, errors.NewInternalError("failed to validate test")
	}
	if test == nil {
		return nil, common.TestNotFound(cmd.TestID)
	}

	reviewer, err := uc.userRepo.GetByID(ctx, cmd.ReviewerID)
	if err != nil {
		uc.logger.Errorw("failed to load reviewer", "user_id", cmd.ReviewerID, "error", err)
		return nil, errors.NewInternalError("failed to validate test")
	}
	if reviewer == nil {
		return nil, common.UserNotFound(cmd.ReviewerID)
	}

	test.Review(cmd.IsValidated, reviewer.ID(), uc.clock.Now())
	if err := uc.testRepo.Update(ctx, test); err != nil {
		uc.logger.Errorw("failed to update test", "test_id", test.ID(), "error", err)
		return nil, errors.NewInternalError("failed to validate test")
	}

	message := messageTestValidated
	if !cmd.IsValidated {
		message = messageTestRejected
		uc.notifyRejection(ctx, test, reviewer)
	}

	uc.logger.Infow("test reviewed", "test_id", test.ID(), "is_validated", cmd.IsValidated)
	return &dto.ValidateTestDTO{
		Test:    dto.ToTestDTO(test),
		Message: message,
	}, nil
}

func (uc *ValidateTestUseCase) notifyRejection(ctx context.Context, test *qa.Test, reviewer *user.User) {
	t, err := uc.ticketRepo.GetByID(ctx, test.TicketID())
	if err != nil || t == nil || t.AssigneeID() == nil {
		if err != nil {
			uc.logger.Warnw("failed to load ticket for rejection notice", "test_id", test.ID(), "error", err)
		}
		return
	}
	assignee, err := uc.userRepo.GetByID(ctx, *t.AssigneeID())
	if err != nil || assignee == nil {
		uc.logger.Warnw("failed to load assignee for rejection notice", "test_id", test.ID(), "error", err)
		return
	}

	if err := uc.notifier.TestRejected(ctx, common.TestRejectedNotice{
		RecipientEmail:  assignee.Email().String(),
		RecipientName:   assignee.FullName(),
		TicketKey:       t.Key(),
		TicketTitle:     t.Title(),
		ReviewerName:    reviewer.FullName(),
		TestDescription: test.Description(),
	}); err != nil {
		uc.logger.Warnw("failed to notify assignee of rejected test", "test_id", test.ID(), "error", err)
	}
}
