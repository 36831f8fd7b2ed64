package sprint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
)

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		actual   float64
		expected float64
		want     Trend
	}{
		{50, 35, TrendAhead},
		{50, 45, TrendOnTrack},
		{50, 40, TrendOnTrack},
		{30, 45, TrendBehind},
		{0, 100, TrendBehind},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyTrend(tt.actual, tt.expected), "actual=%v expected=%v", tt.actual, tt.expected)
	}
}

func TestSprint_ExpectedCompletion(t *testing.T) {
	s := mustSprint(t, 1, "Sprint 1", 40, date(2024, 5, 1), date(2024, 5, 10))

	assert.Equal(t, 0.0, s.ExpectedCompletion(date(2024, 4, 30)))
	assert.Equal(t, 50.0, s.ExpectedCompletion(date(2024, 5, 6)))
	assert.Equal(t, 100.0, s.ExpectedCompletion(date(2024, 5, 12)))
}

func TestSummarize(t *testing.T) {
	s := mustSprint(t, 1, "Sprint 1", 40, date(2024, 5, 1), date(2024, 5, 10))
	tickets := []*ticket.Ticket{
		mustTicket(t, 1, vo.StatusProduction, 10),
		mustTicket(t, 2, vo.StatusTest, 10),
	}

	sum := Summarize(s, tickets, date(2024, 5, 6))

	assert.Equal(t, 50, sum.CompletionPercentage)
	assert.Equal(t, 5, sum.DaysRemaining)
	assert.Equal(t, 1.7, sum.Velocity)
	assert.Equal(t, TrendOnTrack, sum.Trend)
}
