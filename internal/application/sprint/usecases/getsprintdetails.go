package usecases

import (
	"context"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/sprint/dto"
	userdto "github.com/XavierPelle/sprintly/internal/application/user/dto"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type GetSprintDetailsQuery struct {
	SprintID uint
}

type GetSprintDetailsUseCase struct {
	sprintRepo sprint.Repository
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	logger     logger.Interface
}

func NewGetSprintDetailsUseCase(
	sprintRepo sprint.Repository,
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *GetSprintDetailsUseCase {
	return &GetSprintDetailsUseCase{
		sprintRepo: sprintRepo,
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (uc *GetSprintDetailsUseCase) Execute(ctx context.Context, q GetSprintDetailsQuery) (*dto.SprintDetailsDTO, error) {
	uc.logger.Infow("executing get sprint details use case", "sprint_id", q.SprintID)

	s, err := uc.sprintRepo.GetByID(ctx, q.SprintID)
	if err != nil {
		uc.logger.Errorw("failed to load sprint", "sprint_id", q.SprintID, "error", err)
		return nil, errors.NewInternalError("failed to get sprint details")
	}
	if s == nil {
		return nil, common.SprintNotFound(q.SprintID)
	}

	tickets, err := uc.ticketRepo.ListBySprint(ctx, s.ID())
	if err != nil {
		uc.logger.Errorw("failed to load sprint tickets", "sprint_id", s.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get sprint details")
	}

	assignees, err := uc.loadAssignees(ctx, tickets)
	if err != nil {
		uc.logger.Errorw("failed to load assignees", "sprint_id", s.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get sprint details")
	}

	items := make([]*dto.SprintTicketDTO, 0, len(tickets))
	for _, t := range tickets {
		item := &dto.SprintTicketDTO{
			ID:               t.ID(),
			Key:              t.Key(),
			Title:            t.Title(),
			Status:           t.Status().String(),
			Type:             t.Type().String(),
			Priority:         t.Priority().String(),
			DifficultyPoints: t.DifficultyPoints(),
			IsBlocked:        t.IsBlocked(),
		}
		if id := t.AssigneeID(); id != nil {
			item.Assignee = userdto.ToUserSummary(assignees[*id])
		}
		items = append(items, item)
	}

	return &dto.SprintDetailsDTO{
		Sprint:  dto.ToSprintDTO(s),
		Tickets: items,
		Stats:   sprintStats(s, tickets),
	}, nil
}

func (uc *GetSprintDetailsUseCase) loadAssignees(ctx context.Context, tickets []*ticket.Ticket) (map[uint]*user.User, error) {
	ids := make([]uint, 0, len(tickets))
	for _, t := range tickets {
		if id := t.AssigneeID(); id != nil {
			ids = append(ids, *id)
		}
	}
	byID := make(map[uint]*user.User, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	users, err := uc.userRepo.GetByIDs(ctx, common.UniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		byID[u.ID()] = u
	}
	return byID, nil
}

// sprintStats counts every status and type, reporting zero for the ones no
// ticket uses.
func sprintStats(s *sprint.Sprint, tickets []*ticket.Ticket) dto.SprintStatsDTO {
	total := sprint.SumPoints(tickets)
	completed := sprint.CompletedPoints(tickets)

	byStatus := make(map[string]int, len(vo.AllStatuses()))
	for _, st := range vo.AllStatuses() {
		byStatus[st.String()] = 0
	}
	byType := make(map[string]int, len(vo.AllTypes()))
	for _, tt := range vo.AllTypes() {
		byType[tt.String()] = 0
	}
	for _, t := range tickets {
		byStatus[t.Status().String()]++
		byType[t.Type().String()]++
	}

	return dto.SprintStatsDTO{
		TotalTickets:       len(tickets),
		TotalPoints:        total,
		CompletedPoints:    completed,
		RemainingPoints:    total - completed,
		ProgressPercentage: sprint.Percent(completed, total),
		TicketsByStatus:    byStatus,
		TicketsByType:      byType,
		IsOverCapacity:     s.IsOverCapacity(total),
	}
}
