package sprint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
)

func burndownFixture(t *testing.T, completedStatus vo.TicketStatus) (*Sprint, []*ticket.Ticket) {
	t.Helper()
	s := mustSprint(t, 1, "Sprint 1", 40, date(2024, 5, 1), date(2024, 5, 10))
	return s, []*ticket.Ticket{
		mustTicket(t, 1, completedStatus, 8),
		mustTicket(t, 2, vo.StatusInProgress, 12),
	}
}

func TestComputeBurndown_MidSprint(t *testing.T) {
	s, tickets := burndownFixture(t, vo.StatusTestOK)
	now := time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC)

	b := ComputeBurndown(s, tickets, now)

	require.Len(t, b.Points, 11)
	assert.Equal(t, 20.0, b.Points[0].IdealRemainingPoints)
	assert.Equal(t, 0.0, b.Points[10].IdealRemainingPoints)
	assert.Equal(t, 0.0, b.Points[0].Velocity)

	day4 := b.Points[4]
	assert.Equal(t, date(2024, 5, 5), day4.Date)
	assert.Equal(t, 12, day4.ActualRemainingPoints)
	assert.Equal(t, 8, day4.CompletedPoints)
	assert.Equal(t, 2.0, day4.Velocity)

	assert.Equal(t, 20, b.Points[5].ActualRemainingPoints, "future days report the full total")
	assert.Zero(t, b.Points[5].CompletedPoints)

	sum := b.Summary
	assert.Equal(t, 20, sum.TotalPoints)
	assert.Equal(t, 8, sum.CompletedPoints)
	assert.Equal(t, 12, sum.RemainingPoints)
	assert.Equal(t, 10, sum.TotalDays)
	assert.Equal(t, 5, sum.DaysElapsed)
	assert.Equal(t, 6, sum.DaysRemaining)
	assert.Equal(t, 1.6, sum.AverageVelocity)
	assert.Equal(t, 40, sum.PercentComplete)
	assert.True(t, sum.IsOnTrack)
	require.NotNil(t, sum.ProjectedCompletionDate)
	assert.Equal(t, time.Date(2024, 5, 13, 12, 0, 0, 0, time.UTC), *sum.ProjectedCompletionDate)

	pred := b.Predictions
	assert.False(t, pred.WillCompleteOnTime)
	assert.Equal(t, 12, pred.PointsShortfall)
	assert.Equal(t, 2, pred.RecommendedDailyVelocity)
	assert.Equal(t, *sum.ProjectedCompletionDate, pred.EstimatedCompletionDate)
}

func TestComputeBurndown_AllDone(t *testing.T) {
	s := mustSprint(t, 1, "Sprint 1", 40, date(2024, 5, 1), date(2024, 5, 10))
	tickets := []*ticket.Ticket{mustTicket(t, 1, vo.StatusProduction, 8)}
	now := time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)

	b := ComputeBurndown(s, tickets, now)

	require.NotNil(t, b.Summary.ProjectedCompletionDate)
	assert.Equal(t, now, *b.Summary.ProjectedCompletionDate)
	assert.True(t, b.Predictions.WillCompleteOnTime)
	assert.Zero(t, b.Predictions.PointsShortfall)
	assert.Zero(t, b.Predictions.RecommendedDailyVelocity)
	assert.Equal(t, 100, b.Summary.PercentComplete)
}

func TestComputeBurndown_NoProgress(t *testing.T) {
	s, tickets := burndownFixture(t, vo.StatusTodo)
	now := time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)

	b := ComputeBurndown(s, tickets, now)

	assert.Nil(t, b.Summary.ProjectedCompletionDate)
	assert.False(t, b.Predictions.WillCompleteOnTime)
	assert.Equal(t, s.EndDate(), b.Predictions.EstimatedCompletionDate)
	assert.Equal(t, 20, b.Predictions.PointsShortfall)
	assert.False(t, b.Summary.IsOnTrack)
}

func TestComputeBurndown_BeforeStart(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
	}{
		{"days before start", date(2024, 4, 28)},
		{"half a day before start", time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, tickets := burndownFixture(t, vo.StatusTodo)

			b := ComputeBurndown(s, tickets, tt.now)

			assert.Equal(t, 0, b.Summary.DaysElapsed)
			assert.Equal(t, b.Summary.TotalDays+1, b.Summary.DaysRemaining)
			assert.Equal(t, 2, b.Predictions.RecommendedDailyVelocity)
			for _, p := range b.Points {
				assert.Equal(t, 20, p.ActualRemainingPoints)
				assert.Zero(t, p.CompletedPoints)
			}
		})
	}
}

func TestComputeBurndown_CompletionOnEndDate(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		onTime bool
	}{
		{"projected at midnight of the end date", date(2024, 5, 5), true},
		{"projected during the end date", time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSprint(t, 1, "Sprint 1", 40, date(2024, 5, 1), date(2024, 5, 10))
			tickets := []*ticket.Ticket{
				mustTicket(t, 1, vo.StatusTestOK, 10),
				mustTicket(t, 2, vo.StatusInProgress, 10),
			}

			b := ComputeBurndown(s, tickets, tt.now)

			require.NotNil(t, b.Summary.ProjectedCompletionDate)
			assert.Equal(t, biztime.AddDays(tt.now, 5), *b.Summary.ProjectedCompletionDate)
			assert.Equal(t, tt.onTime, b.Predictions.WillCompleteOnTime)
			if tt.onTime {
				assert.Zero(t, b.Predictions.PointsShortfall)
			} else {
				assert.Equal(t, 10, b.Predictions.PointsShortfall)
			}
		})
	}
}

func TestComputeBurndown_EmptySprint(t *testing.T) {
	s := mustSprint(t, 1, "Sprint 1", 40, date(2024, 5, 1), date(2024, 5, 10))

	b := ComputeBurndown(s, nil, date(2024, 5, 4))

	assert.Equal(t, 0.0, b.Points[0].IdealRemainingPoints)
	assert.True(t, b.Predictions.WillCompleteOnTime)
	assert.Zero(t, b.Summary.PercentComplete)
}
