package usecases

import (
	"context"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/ticket/dto"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
	"github.com/XavierPelle/sprintly/internal/shared/mapper"
)

type GetTicketHistoryQuery struct {
	TicketID uint
}

type GetTicketHistoryUseCase struct {
	ticketRepo  ticket.TicketRepository
	historyRepo ticket.HistoryRepository
	logger      logger.Interface
}

func NewGetTicketHistoryUseCase(
	ticketRepo ticket.TicketRepository,
	historyRepo ticket.HistoryRepository,
	logger logger.Interface,
) *GetTicketHistoryUseCase {
	return &GetTicketHistoryUseCase{
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// Execute returns the status history of a ticket ordered by completedAt.
func (uc *GetTicketHistoryUseCase) Execute(ctx context.Context, q GetTicketHistoryQuery) ([]*dto.HistoryDTO, error) {
	t, err := uc.ticketRepo.GetByID(ctx, q.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", q.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to get ticket history")
	}
	if t == nil {
		return nil, common.TicketNotFound(q.TicketID)
	}

	entries, err := uc.historyRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list ticket history", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get ticket history")
	}

	out := mapper.MapSlice(entries, dto.ToHistoryDTO)
	if out == nil {
		out = []*dto.HistoryDTO{}
	}
	return out, nil
}
