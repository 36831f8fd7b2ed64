package usecases

import (
	"context"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/qa/dto"
	userdto "github.com/XavierPelle/sprintly/internal/application/user/dto"
	"github.com/XavierPelle/sprintly/internal/domain/qa"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type CreateTestCommand struct {
	TicketID    uint
	UserID      uint
	Description string
}

type CreateTestUseCase struct {
	testRepo   qa.Repository
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	logger     logger.Interface
}

func NewCreateTestUseCase(
	testRepo qa.Repository,
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *CreateTestUseCase {
	return &CreateTestUseCase{
		testRepo:   testRepo,
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (uc *CreateTestUseCase) Execute(ctx context.Context, cmd CreateTestCommand) (*dto.TestDTO, error) {
	uc.logger.Infow("executing create test use case", "ticket_id", cmd.TicketID, "user_id", cmd.UserID)

	test, err := qa.NewTest(cmd.TicketID, cmd.UserID, cmd.Description)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to create test")
	}
	if t == nil {
		return nil, common.TicketNotFound(cmd.TicketID)
	}

	author, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load user", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to create test")
	}
	if author == nil {
		return nil, common.UserNotFound(cmd.UserID)
	}

	if err := uc.testRepo.Create(ctx, test); err != nil {
		uc.logger.Errorw("failed to create test", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to create test")
	}

	uc.logger.Infow("test created successfully", "test_id", test.ID(), "ticket_id", t.ID())
	result := dto.ToTestDTO(test)
	result.Author = userdto.ToUserSummary(author)
	return result, nil
}
