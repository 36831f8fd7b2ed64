package sprint

import (
	"math"
	"time"

	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/constants"
)

// BurndownPoint is one day of the burndown chart. Days that have not
// happened yet report the full point total as remaining.
type BurndownPoint struct {
	Date                  time.Time
	DayNumber             int
	IdealRemainingPoints  float64
	ActualRemainingPoints int
	CompletedPoints       int
	Velocity              float64
}

type BurndownSummary struct {
	TotalPoints             int
	CompletedPoints         int
	RemainingPoints         int
	TotalDays               int
	DaysElapsed             int
	DaysRemaining           int
	AverageVelocity         float64
	ProjectedCompletionDate *time.Time
	IsOnTrack               bool
	PercentComplete         int
}

type BurndownPredictions struct {
	WillCompleteOnTime       bool
	EstimatedCompletionDate  time.Time
	PointsShortfall          int
	RecommendedDailyVelocity int
}

type Burndown struct {
	Points      []BurndownPoint
	Summary     BurndownSummary
	Predictions BurndownPredictions
}

// ComputeBurndown projects the sprint's ideal and actual remaining points.
// Completion dates are not tracked per ticket, so every past day reports the
// current completed-points snapshot.
func ComputeBurndown(s *Sprint, tickets []*ticket.Ticket, now time.Time) *Burndown {
	totalPoints := SumPoints(tickets)
	completed := CompletedPoints(tickets)
	remaining := totalPoints - completed

	totalDays := s.TotalDays()
	daysElapsed := min(max(biztime.DaysBetween(s.StartDate(), now)+1, 0), totalDays)
	daysRemaining := max(totalDays-daysElapsed+1, 0)
	dailyIdeal := float64(totalPoints) / float64(totalDays)

	points := make([]BurndownPoint, 0, totalDays+1)
	for dayNum := 0; dayNum <= totalDays; dayNum++ {
		date := biztime.AddDays(s.StartDate(), dayNum)
		point := BurndownPoint{
			Date:                  date,
			DayNumber:             dayNum,
			IdealRemainingPoints:  roundHundredth(math.Max(float64(totalPoints)-dailyIdeal*float64(dayNum), 0)),
			ActualRemainingPoints: totalPoints,
		}
		if dayNum == daysElapsed-1 || !date.After(now) {
			point.ActualRemainingPoints = max(remaining, 0)
			point.CompletedPoints = completed
			if dayNum > 0 {
				point.Velocity = RoundTenth(float64(completed) / float64(dayNum))
			}
		}
		points = append(points, point)
	}

	averageVelocity := 0.0
	if daysElapsed > 0 {
		averageVelocity = float64(completed) / float64(daysElapsed)
	}

	var projected *time.Time
	switch {
	case remaining <= 0:
		at := now
		projected = &at
	case averageVelocity > 0:
		daysNeeded := int(math.Ceil(float64(remaining) / averageVelocity))
		at := biztime.AddDays(now, daysNeeded)
		projected = &at
	}

	idealCompletedByNow := dailyIdeal * float64(daysElapsed)
	willCompleteOnTime := remaining <= 0 || (projected != nil && !projected.After(s.EndDate()))

	estimated := s.EndDate()
	if projected != nil {
		estimated = *projected
	}
	shortfall := 0
	if !willCompleteOnTime {
		shortfall = remaining
	}
	recommended := 0
	if daysRemaining > 0 && remaining > 0 {
		recommended = int(math.Ceil(float64(remaining) / float64(daysRemaining)))
	}

	return &Burndown{
		Points: points,
		Summary: BurndownSummary{
			TotalPoints:             totalPoints,
			CompletedPoints:         completed,
			RemainingPoints:         remaining,
			TotalDays:               totalDays,
			DaysElapsed:             daysElapsed,
			DaysRemaining:           daysRemaining,
			AverageVelocity:         RoundTenth(averageVelocity),
			ProjectedCompletionDate: projected,
			IsOnTrack:               float64(completed) >= idealCompletedByNow*constants.OnTrackRatio,
			PercentComplete:         Percent(completed, totalPoints),
		},
		Predictions: BurndownPredictions{
			WillCompleteOnTime:       willCompleteOnTime,
			EstimatedCompletionDate:  estimated,
			PointsShortfall:          shortfall,
			RecommendedDailyVelocity: recommended,
		},
	}
}

func roundHundredth(v float64) float64 {
	return math.Round(v*100) / 100
}
