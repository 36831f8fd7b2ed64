package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/models"
)

type SprintMapper interface {
	ToModel(s *sprint.Sprint) (*models.SprintModel, error)
	ToDomain(model *models.SprintModel) (*sprint.Sprint, error)
}

type SprintMapperImpl struct{}

func NewSprintMapper() SprintMapper {
	return &SprintMapperImpl{}
}

// closureReportJSON is the stored shape of a sprint closure report.
type closureReportJSON struct {
	Statistics closureStatisticsJSON `json:"statistics"`
	Outcomes   []ticketOutcomeJSON   `json:"outcomes"`
}

type closureStatisticsJSON struct {
	TotalTickets      int     `json:"totalTickets"`
	CompletedTickets  int     `json:"completedTickets"`
	IncompleteTickets int     `json:"incompleteTickets"`
	TotalPoints       int     `json:"totalPoints"`
	CompletedPoints   int     `json:"completedPoints"`
	IncompletePoints  int     `json:"incompletePoints"`
	CompletionRate    int     `json:"completionRate"`
	Velocity          float64 `json:"velocity"`
}

type ticketOutcomeJSON struct {
	TicketID      uint   `json:"ticketId"`
	Key           string `json:"key"`
	Title         string `json:"title"`
	Status        string `json:"status"`
	Points        int    `json:"points"`
	Action        string `json:"action"`
	NewSprintID   *uint  `json:"newSprintId,omitempty"`
	NewSprintName string `json:"newSprintName,omitempty"`
}

func (m *SprintMapperImpl) ToModel(s *sprint.Sprint) (*models.SprintModel, error) {
	model := &models.SprintModel{
		ID:        s.ID(),
		Name:      s.Name(),
		MaxPoints: s.MaxPoints(),
		StartDate: datatypes.Date(s.StartDate()),
		EndDate:   datatypes.Date(s.EndDate()),
		ClosedAt:  toMillisPtr(s.ClosedAt()),
		CreatedAt: toMillis(s.CreatedAt()),
		UpdatedAt: toMillis(s.UpdatedAt()),
	}

	if report := s.Report(); report != nil {
		data, err := json.Marshal(reportToJSON(report))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal closure report (sprint id=%d): %w", s.ID(), err)
		}
		model.ClosureReport = datatypes.JSON(data)
	}
	return model, nil
}

func (m *SprintMapperImpl) ToDomain(model *models.SprintModel) (*sprint.Sprint, error) {
	var report *sprint.ClosureReport
	if len(model.ClosureReport) > 0 && string(model.ClosureReport) != "null" {
		var stored closureReportJSON
		if err := json.Unmarshal(model.ClosureReport, &stored); err != nil {
			return nil, fmt.Errorf("failed to unmarshal closure report (sprint id=%d): %w", model.ID, err)
		}
		report = reportFromJSON(stored)
	}

	s, err := sprint.ReconstructSprint(sprint.State{
		ID:        model.ID,
		Name:      model.Name,
		MaxPoints: model.MaxPoints,
		StartDate: dateToUTC(model.StartDate),
		EndDate:   dateToUTC(model.EndDate),
		ClosedAt:  fromMillisPtr(model.ClosedAt),
		Report:    report,
		CreatedAt: fromMillis(model.CreatedAt),
		UpdatedAt: fromMillis(model.UpdatedAt),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct sprint (id=%d): %w", model.ID, err)
	}
	return s, nil
}

// dateToUTC drops whatever location the driver attached to a DATE column.
func dateToUTC(d datatypes.Date) time.Time {
	y, mo, day := time.Time(d).Date()
	return time.Date(y, mo, day, 0, 0, 0, 0, time.UTC)
}

func reportToJSON(r *sprint.ClosureReport) closureReportJSON {
	st := r.Statistics
	out := closureReportJSON{
		Statistics: closureStatisticsJSON{
			TotalTickets:      st.TotalTickets,
			CompletedTickets:  st.CompletedTickets,
			IncompleteTickets: st.IncompleteTickets,
			TotalPoints:       st.TotalPoints,
			CompletedPoints:   st.CompletedPoints,
			IncompletePoints:  st.IncompletePoints,
			CompletionRate:    st.CompletionRate,
			Velocity:          st.Velocity,
		},
		Outcomes: make([]ticketOutcomeJSON, 0, len(r.Outcomes)),
	}
	for _, o := range r.Outcomes {
		out.Outcomes = append(out.Outcomes, ticketOutcomeJSON{
			TicketID:      o.TicketID,
			Key:           o.Key,
			Title:         o.Title,
			Status:        o.Status.String(),
			Points:        o.Points,
			Action:        string(o.Action),
			NewSprintID:   o.NewSprintID,
			NewSprintName: o.NewSprintName,
		})
	}
	return out
}

func reportFromJSON(in closureReportJSON) *sprint.ClosureReport {
	st := in.Statistics
	report := &sprint.ClosureReport{
		Statistics: sprint.ClosureStatistics{
			TotalTickets:      st.TotalTickets,
			CompletedTickets:  st.CompletedTickets,
			IncompleteTickets: st.IncompleteTickets,
			TotalPoints:       st.TotalPoints,
			CompletedPoints:   st.CompletedPoints,
			IncompletePoints:  st.IncompletePoints,
			CompletionRate:    st.CompletionRate,
			Velocity:          st.Velocity,
		},
		Outcomes: make([]sprint.TicketOutcome, 0, len(in.Outcomes)),
	}
	for _, o := range in.Outcomes {
		report.Outcomes = append(report.Outcomes, sprint.TicketOutcome{
			TicketID:      o.TicketID,
			Key:           o.Key,
			Title:         o.Title,
			Status:        vo.TicketStatus(o.Status),
			Points:        o.Points,
			Action:        sprint.ClosureAction(o.Action),
			NewSprintID:   o.NewSprintID,
			NewSprintName: o.NewSprintName,
		})
	}
	return report
}
