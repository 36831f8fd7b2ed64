package sprint

import (
	"math"

	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
)

type ClosureAction string

const (
	ActionMoved   ClosureAction = "moved"
	ActionRemoved ClosureAction = "removed"
	ActionKept    ClosureAction = "kept"
)

// ClosurePolicy decides what happens to incomplete tickets. Target and
// RemoveIncomplete are mutually exclusive; with neither set tickets stay
// attached to the closed sprint.
type ClosurePolicy struct {
	Target           *Sprint
	TargetPoints     int
	RemoveIncomplete bool
}

func (p ClosurePolicy) Validate() error {
	if p.Target != nil && p.RemoveIncomplete {
		return ErrConflictingClosure
	}
	return nil
}

type ClosureStatistics struct {
	TotalTickets      int
	CompletedTickets  int
	IncompleteTickets int
	TotalPoints       int
	CompletedPoints   int
	IncompletePoints  int
	CompletionRate    int
	Velocity          float64
}

// TicketOutcome records what closing did to one incomplete ticket.
type TicketOutcome struct {
	TicketID      uint
	Key           string
	Title         string
	Status        vo.TicketStatus
	Points        int
	Action        ClosureAction
	NewSprintID   *uint
	NewSprintName string
}

type ClosureReport struct {
	Statistics ClosureStatistics
	Outcomes   []TicketOutcome
}

// Moved returns the IDs of tickets that go to the target sprint.
func (r ClosureReport) Moved() []uint {
	return r.idsWith(ActionMoved)
}

// Removed returns the IDs of tickets that go back to the backlog.
func (r ClosureReport) Removed() []uint {
	return r.idsWith(ActionRemoved)
}

func (r ClosureReport) idsWith(action ClosureAction) []uint {
	ids := make([]uint, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Action == action {
			ids = append(ids, o.TicketID)
		}
	}
	return ids
}

// PlanClosure partitions the sprint's tickets and decides the fate of each
// incomplete one, in order. A ticket moves only while it fits in the
// target's remaining capacity, which shrinks as tickets are moved; the rest
// are removed to the backlog.
func PlanClosure(s *Sprint, tickets []*ticket.Ticket, policy ClosurePolicy) (*ClosureReport, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if policy.Target != nil && policy.Target.ID() == s.ID() {
		return nil, ErrTargetIsSameSprint
	}

	report := &ClosureReport{Outcomes: []TicketOutcome{}}
	stats := &report.Statistics
	targetPoints := policy.TargetPoints

	for _, t := range tickets {
		stats.TotalTickets++
		stats.TotalPoints += t.DifficultyPoints()
		if t.IsCompleted() {
			stats.CompletedTickets++
			stats.CompletedPoints += t.DifficultyPoints()
			continue
		}
		stats.IncompleteTickets++
		stats.IncompletePoints += t.DifficultyPoints()

		outcome := TicketOutcome{
			TicketID: t.ID(),
			Key:      t.Key(),
			Title:    t.Title(),
			Status:   t.Status(),
			Points:   t.DifficultyPoints(),
			Action:   ActionKept,
		}
		switch {
		case policy.Target != nil:
			if targetPoints+t.DifficultyPoints() <= policy.Target.MaxPoints() {
				targetID := policy.Target.ID()
				outcome.Action = ActionMoved
				outcome.NewSprintID = &targetID
				outcome.NewSprintName = policy.Target.Name()
				targetPoints += t.DifficultyPoints()
			} else {
				outcome.Action = ActionRemoved
			}
		case policy.RemoveIncomplete:
			outcome.Action = ActionRemoved
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	stats.CompletionRate = Percent(stats.CompletedPoints, stats.TotalPoints)
	stats.Velocity = s.Velocity(stats.CompletedPoints)
	return report, nil
}

// Percent returns part/total as a rounded percentage, 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
