package sprint

import (
	"time"

	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/shared/constants"
)

type Trend string

const (
	TrendAhead   Trend = "ahead"
	TrendOnTrack Trend = "on-track"
	TrendBehind  Trend = "behind"
)

// ExpectedCompletion is the completion percentage a linear burn would have
// reached at now.
func (s *Sprint) ExpectedCompletion(now time.Time) float64 {
	total := s.EndsAt().Sub(s.startDate)
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(s.startDate)
	switch {
	case elapsed <= 0:
		return 0
	case elapsed >= total:
		return 100
	}
	return float64(elapsed) / float64(total) * 100
}

// ClassifyTrend compares actual completion with the linear expectation,
// using a tolerance band of SprintTrendTolerance percentage points.
func ClassifyTrend(actualPercent, expectedPercent float64) Trend {
	switch diff := actualPercent - expectedPercent; {
	case diff > constants.SprintTrendTolerance:
		return TrendAhead
	case diff < -constants.SprintTrendTolerance:
		return TrendBehind
	default:
		return TrendOnTrack
	}
}

// Summary is the headline progress of a running sprint.
type Summary struct {
	Sprint               *Sprint
	DaysRemaining        int
	CompletionPercentage int
	Velocity             float64
	Trend                Trend
}

// Summarize computes progress figures for a sprint at now.
func Summarize(s *Sprint, tickets []*ticket.Ticket, now time.Time) Summary {
	total := SumPoints(tickets)
	completed := CompletedPoints(tickets)
	percent := Percent(completed, total)

	elapsedDays := max(int(now.Sub(s.startDate)/day)+1, 1)
	return Summary{
		Sprint:               s,
		DaysRemaining:        s.DaysRemaining(now),
		CompletionPercentage: percent,
		Velocity:             RoundTenth(float64(completed) / float64(elapsedDays)),
		Trend:                ClassifyTrend(float64(percent), s.ExpectedCompletion(now)),
	}
}
