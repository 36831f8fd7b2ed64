package usecases

import (
	"context"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/sprint/dto"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type GetBurndownQuery struct {
	SprintID uint
}

type GetBurndownUseCase struct {
	sprintRepo sprint.Repository
	ticketRepo ticket.TicketRepository
	clock      biztime.Clock
	logger     logger.Interface
}

func NewGetBurndownUseCase(
	sprintRepo sprint.Repository,
	ticketRepo ticket.TicketRepository,
	clock biztime.Clock,
	logger logger.Interface,
) *GetBurndownUseCase {
	return &GetBurndownUseCase{
		sprintRepo: sprintRepo,
		ticketRepo: ticketRepo,
		clock:      clock,
		logger:     logger,
	}
}

func (uc *GetBurndownUseCase) Execute(ctx context.Context, q GetBurndownQuery) (*dto.BurndownDTO, error) {
	uc.logger.Infow("executing get sprint burndown use case", "sprint_id", q.SprintID)

	s, err := uc.sprintRepo.GetByID(ctx, q.SprintID)
	if err != nil {
		uc.logger.Errorw("failed to load sprint", "sprint_id", q.SprintID, "error", err)
		return nil, errors.NewInternalError("failed to compute burndown")
	}
	if s == nil {
		return nil, common.SprintNotFound(q.SprintID)
	}

	tickets, err := uc.ticketRepo.ListBySprint(ctx, s.ID())
	if err != nil {
		uc.logger.Errorw("failed to load sprint tickets", "sprint_id", s.ID(), "error", err)
		return nil, errors.NewInternalError("failed to compute burndown")
	}

	return dto.ToBurndownDTO(s, sprint.ComputeBurndown(s, tickets, uc.clock.Now())), nil
}
