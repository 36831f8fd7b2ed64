package usecases

import (
	"context"
	"fmt"

	"github.com/XavierPelle/sprintly/internal/application/sprint/dto"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

// OverdueSprintsJob reports open sprints whose end date has passed. It is run
// by the worker on a cron schedule and never closes a sprint itself.
type OverdueSprintsJob struct {
	sprintRepo sprint.Repository
	ticketRepo ticket.TicketRepository
	clock      biztime.Clock
	logger     logger.Interface
}

func NewOverdueSprintsJob(
	sprintRepo sprint.Repository,
	ticketRepo ticket.TicketRepository,
	clock biztime.Clock,
	logger logger.Interface,
) *OverdueSprintsJob {
	return &OverdueSprintsJob{
		sprintRepo: sprintRepo,
		ticketRepo: ticketRepo,
		clock:      clock,
		logger:     logger,
	}
}

// Execute logs one warning per overdue sprint and returns how many were found.
func (j *OverdueSprintsJob) Execute(ctx context.Context) (int, error) {
	overdue, err := j.Find(ctx)
	if err != nil {
		return 0, err
	}
	for _, o := range overdue {
		j.logger.Warnw("sprint is overdue and still open",
			"sprint_id", o.Sprint.ID,
			"name", o.Sprint.Name,
			"days_overdue", o.DaysOverdue,
			"open_tickets", o.OpenTickets,
			"completion_rate", o.CompletionRate,
		)
	}
	return len(overdue), nil
}

// Find returns the overdue sprints with their remaining work.
func (j *OverdueSprintsJob) Find(ctx context.Context) ([]*dto.OverdueSprintDTO, error) {
	now := j.clock.Now()
	sprints, err := j.sprintRepo.ListOverdue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue sprints: %w", err)
	}

	result := make([]*dto.OverdueSprintDTO, 0, len(sprints))
	for _, s := range sprints {
		tickets, err := j.ticketRepo.ListBySprint(ctx, s.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to load tickets of sprint %d: %w", s.ID(), err)
		}
		open := 0
		for _, t := range tickets {
			if !t.IsCompleted() {
				open++
			}
		}
		result = append(result, &dto.OverdueSprintDTO{
			Sprint:         dto.ToSprintDTO(s),
			DaysOverdue:    max(biztime.DaysBetween(s.EndsAt(), now), 0) + 1,
			OpenTickets:    open,
			CompletionRate: sprint.Percent(sprint.CompletedPoints(tickets), sprint.SumPoints(tickets)),
		})
	}
	return result, nil
}
