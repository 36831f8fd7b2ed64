package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

const (
	ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	ticketsSheet = "Tickets"
	summarySheet = "Summary"
)

var ticketsHeader = []any{"Key", "Title", "Type", "Priority", "Status", "Points", "Assignee", "Blocked"}

type ExportReportQuery struct {
	SprintID uint
}

// ReportFile is a rendered workbook ready to be streamed to the client.
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ExportReportUseCase struct {
	sprintRepo sprint.Repository
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	clock      biztime.Clock
	logger     logger.Interface
}

func NewExportReportUseCase(
	sprintRepo sprint.Repository,
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	clock biztime.Clock,
	logger logger.Interface,
) *ExportReportUseCase {
	return &ExportReportUseCase{
		sprintRepo: sprintRepo,
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		clock:      clock,
		logger:     logger,
	}
}

// Execute renders the sprint as an xlsx workbook with a ticket sheet and a
// summary sheet.
func (uc *ExportReportUseCase) Execute(ctx context.Context, q ExportReportQuery) (*ReportFile, error) {
	uc.logger.Infow("executing export sprint report use case", "sprint_id", q.SprintID)

	s, err := uc.sprintRepo.GetByID(ctx, q.SprintID)
	if err != nil {
		uc.logger.Errorw("failed to load sprint", "sprint_id", q.SprintID, "error", err)
		return nil, errors.NewInternalError("failed to export sprint report")
	}
	if s == nil {
		return nil, common.SprintNotFound(q.SprintID)
	}

	tickets, err := uc.ticketRepo.ListBySprint(ctx, s.ID())
	if err != nil {
		uc.logger.Errorw("failed to load sprint tickets", "sprint_id", s.ID(), "error", err)
		return nil, errors.NewInternalError("failed to export sprint report")
	}

	names, err := uc.assigneeNames(ctx, tickets)
	if err != nil {
		uc.logger.Errorw("failed to load assignees", "sprint_id", s.ID(), "error", err)
		return nil, errors.NewInternalError("failed to export sprint report")
	}

	content, err := renderWorkbook(s, tickets, names, uc.clock)
	if err != nil {
		uc.logger.Errorw("failed to render sprint report", "sprint_id", s.ID(), "error", err)
		return nil, errors.NewInternalError("failed to export sprint report")
	}

	uc.logger.Infow("sprint report exported", "sprint_id", s.ID(), "tickets", len(tickets), "bytes", len(content))
	return &ReportFile{
		Filename:    reportFilename(s),
		ContentType: ReportContentType,
		Content:     content,
	}, nil
}

func (uc *ExportReportUseCase) assigneeNames(ctx context.Context, tickets []*ticket.Ticket) (map[uint]string, error) {
	ids := make([]uint, 0, len(tickets))
	for _, t := range tickets {
		if id := t.AssigneeID(); id != nil {
			ids = append(ids, *id)
		}
	}
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	users, err := uc.userRepo.GetByIDs(ctx, common.UniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID()] = u.FullName()
	}
	return names, nil
}

func renderWorkbook(s *sprint.Sprint, tickets []*ticket.Ticket, names map[uint]string, clock biztime.Clock) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ticketsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(ticketsSheet, "A1", &ticketsHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, t := range tickets {
		assignee := ""
		if id := t.AssigneeID(); id != nil {
			assignee = names[*id]
		}
		row := []any{
			t.Key(), t.Title(), t.Type().String(), t.Priority().String(),
			t.Status().String(), t.DifficultyPoints(), assignee, yesNo(t.IsBlocked()),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(ticketsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write ticket %s: %w", t.Key(), err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}
	summary := sprint.Summarize(s, tickets, clock.Now())
	rows := [][]any{
		{"Sprint", s.Name()},
		{"Start date", biztime.FormatDate(s.StartDate())},
		{"End date", biztime.FormatDate(s.EndDate())},
		{"Max points", s.MaxPoints()},
		{"Total tickets", len(tickets)},
		{"Total points", sprint.SumPoints(tickets)},
		{"Completed points", sprint.CompletedPoints(tickets)},
		{"Completion (%)", summary.CompletionPercentage},
		{"Velocity", summary.Velocity},
		{"Trend", string(summary.Trend)},
		{"Closed", yesNo(s.IsClosed())},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func reportFilename(s *sprint.Sprint) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, s.Name())
	return fmt.Sprintf("sprint-%d-%s.xlsx", s.ID(), strings.Trim(slug, "-"))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
