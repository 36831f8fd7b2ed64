package dto

import (
	"time"

	ticketdto "github.com/XavierPelle/sprintly/internal/application/ticket/dto"
	userdto "github.com/XavierPelle/sprintly/internal/application/user/dto"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
)

// SprintDTO carries calendar dates as YYYY-MM-DD in the business timezone.
type SprintDTO struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	MaxPoints int        `json:"maxPoints"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
	IsClosed  bool       `json:"isClosed"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type SprintListDTO struct {
	Sprints    []*SprintDTO            `json:"sprints"`
	Pagination ticketdto.PaginationDTO `json:"pagination"`
}

type SprintTicketDTO struct {
	ID               uint                    `json:"id"`
	Key              string                  `json:"key"`
	Title            string                  `json:"title"`
	Status           string                  `json:"status"`
	Type             string                  `json:"type"`
	Priority         string                  `json:"priority"`
	DifficultyPoints int                     `json:"difficultyPoints"`
	IsBlocked        bool                    `json:"isBlocked"`
	Assignee         *userdto.UserSummaryDTO `json:"assignee"`
}

type SprintStatsDTO struct {
	TotalTickets       int            `json:"totalTickets"`
	TotalPoints        int            `json:"totalPoints"`
	CompletedPoints    int            `json:"completedPoints"`
	RemainingPoints    int            `json:"remainingPoints"`
	ProgressPercentage int            `json:"progressPercentage"`
	TicketsByStatus    map[string]int `json:"ticketsByStatus"`
	TicketsByType      map[string]int `json:"ticketsByType"`
	IsOverCapacity     bool           `json:"isOverCapacity"`
}

type SprintDetailsDTO struct {
	Sprint  *SprintDTO         `json:"sprint"`
	Tickets []*SprintTicketDTO `json:"tickets"`
	Stats   SprintStatsDTO     `json:"stats"`
}

type AddTicketsDTO struct {
	SprintID       uint   `json:"sprintId"`
	AddedTicketIDs []uint `json:"addedTicketIds"`
	Message        string `json:"message"`
}

type RemoveTicketsDTO struct {
	SprintID         uint   `json:"sprintId"`
	RemovedTicketIDs []uint `json:"removedTicketIds"`
	Message          string `json:"message"`
}

type ClosureStatisticsDTO struct {
	TotalTickets      int     `json:"totalTickets"`
	CompletedTickets  int     `json:"completedTickets"`
	IncompleteTickets int     `json:"incompleteTickets"`
	TotalPoints       int     `json:"totalPoints"`
	CompletedPoints   int     `json:"completedPoints"`
	IncompletePoints  int     `json:"incompletePoints"`
	CompletionRate    int     `json:"completionRate"`
	Velocity          float64 `json:"velocity"`
}

type IncompleteTicketDTO struct {
	TicketID      uint   `json:"ticketId"`
	Key           string `json:"key"`
	Title         string `json:"title"`
	Status        string `json:"status"`
	Points        int    `json:"points"`
	Action        string `json:"action"`
	NewSprintID   *uint  `json:"newSprintId,omitempty"`
	NewSprintName string `json:"newSprintName,omitempty"`
}

type CloseSprintDTO struct {
	Sprint            *SprintDTO             `json:"sprint"`
	Statistics        ClosureStatisticsDTO   `json:"statistics"`
	IncompleteTickets []*IncompleteTicketDTO `json:"incompleteTickets"`
	Message           string                 `json:"message"`
}

type BurndownPointDTO struct {
	Date                  string  `json:"date"`
	DayNumber             int     `json:"dayNumber"`
	IdealRemainingPoints  float64 `json:"idealRemainingPoints"`
	ActualRemainingPoints int     `json:"actualRemainingPoints"`
	CompletedPoints       int     `json:"completedPoints"`
	Velocity              float64 `json:"velocity"`
}

type BurndownSummaryDTO struct {
	TotalPoints             int     `json:"totalPoints"`
	CompletedPoints         int     `json:"completedPoints"`
	RemainingPoints         int     `json:"remainingPoints"`
	TotalDays               int     `json:"totalDays"`
	DaysElapsed             int     `json:"daysElapsed"`
	DaysRemaining           int     `json:"daysRemaining"`
	AverageVelocity         float64 `json:"averageVelocity"`
	ProjectedCompletionDate *string `json:"projectedCompletionDate"`
	IsOnTrack               bool    `json:"isOnTrack"`
	PercentComplete         int     `json:"percentComplete"`
}

type BurndownPredictionsDTO struct {
	WillCompleteOnTime       bool   `json:"willCompleteOnTime"`
	EstimatedCompletionDate  string `json:"estimatedCompletionDate"`
	PointsShortfall          int    `json:"pointsShortfall"`
	RecommendedDailyVelocity int    `json:"recommendedDailyVelocity"`
}

type BurndownDTO struct {
	Sprint       *SprintDTO             `json:"sprint"`
	BurndownData []BurndownPointDTO     `json:"burndownData"`
	Summary      BurndownSummaryDTO     `json:"summary"`
	Predictions  BurndownPredictionsDTO `json:"predictions"`
}

// OverdueSprintDTO describes an open sprint whose end date has passed.
type OverdueSprintDTO struct {
	Sprint         *SprintDTO `json:"sprint"`
	DaysOverdue    int        `json:"daysOverdue"`
	OpenTickets    int        `json:"openTickets"`
	CompletionRate int        `json:"completionRate"`
}

func ToSprintDTO(s *sprint.Sprint) *SprintDTO {
	if s == nil {
		return nil
	}
	return &SprintDTO{
		ID:        s.ID(),
		Name:      s.Name(),
		MaxPoints: s.MaxPoints(),
		StartDate: biztime.FormatDate(s.StartDate()),
		EndDate:   biztime.FormatDate(s.EndDate()),
		IsClosed:  s.IsClosed(),
		ClosedAt:  s.ClosedAt(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func ToClosureStatisticsDTO(st sprint.ClosureStatistics) ClosureStatisticsDTO {
	return ClosureStatisticsDTO{
		TotalTickets:      st.TotalTickets,
		CompletedTickets:  st.CompletedTickets,
		IncompleteTickets: st.IncompleteTickets,
		TotalPoints:       st.TotalPoints,
		CompletedPoints:   st.CompletedPoints,
		IncompletePoints:  st.IncompletePoints,
		CompletionRate:    st.CompletionRate,
		Velocity:          st.Velocity,
	}
}

func ToIncompleteTicketDTO(o sprint.TicketOutcome) *IncompleteTicketDTO {
	return &IncompleteTicketDTO{
		TicketID:      o.TicketID,
		Key:           o.Key,
		Title:         o.Title,
		Status:        o.Status.String(),
		Points:        o.Points,
		Action:        string(o.Action),
		NewSprintID:   o.NewSprintID,
		NewSprintName: o.NewSprintName,
	}
}

func ToBurndownDTO(s *sprint.Sprint, b *sprint.Burndown) *BurndownDTO {
	points := make([]BurndownPointDTO, 0, len(b.Points))
	for _, p := range b.Points {
		points = append(points, BurndownPointDTO{
			Date:                  biztime.FormatDate(p.Date),
			DayNumber:             p.DayNumber,
			IdealRemainingPoints:  p.IdealRemainingPoints,
			ActualRemainingPoints: p.ActualRemainingPoints,
			CompletedPoints:       p.CompletedPoints,
			Velocity:              p.Velocity,
		})
	}

	summary := BurndownSummaryDTO{
		TotalPoints:     b.Summary.TotalPoints,
		CompletedPoints: b.Summary.CompletedPoints,
		RemainingPoints: b.Summary.RemainingPoints,
		TotalDays:       b.Summary.TotalDays,
		DaysElapsed:     b.Summary.DaysElapsed,
		DaysRemaining:   b.Summary.DaysRemaining,
		AverageVelocity: b.Summary.AverageVelocity,
		IsOnTrack:       b.Summary.IsOnTrack,
		PercentComplete: b.Summary.PercentComplete,
	}
	if d := b.Summary.ProjectedCompletionDate; d != nil {
		formatted := biztime.FormatDate(*d)
		summary.ProjectedCompletionDate = &formatted
	}

	return &BurndownDTO{
		Sprint:       ToSprintDTO(s),
		BurndownData: points,
		Summary:      summary,
		Predictions: BurndownPredictionsDTO{
			WillCompleteOnTime:       b.Predictions.WillCompleteOnTime,
			EstimatedCompletionDate:  biztime.FormatDate(b.Predictions.EstimatedCompletionDate),
			PointsShortfall:          b.Predictions.PointsShortfall,
			RecommendedDailyVelocity: b.Predictions.RecommendedDailyVelocity,
		},
	}
}
