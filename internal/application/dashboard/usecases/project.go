package usecases

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/XavierPelle/sprintly/internal/application/dashboard/dto"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/constants"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type GetProjectDashboardQuery struct {
	IncludeTrends bool
}

type GetProjectDashboardUseCase struct {
	loader *SnapshotLoader
	clock  biztime.Clock
	logger logger.Interface
}

func NewGetProjectDashboardUseCase(loader *SnapshotLoader, clock biztime.Clock, logger logger.Interface) *GetProjectDashboardUseCase {
	return &GetProjectDashboardUseCase{loader: loader, clock: clock, logger: logger}
}

func (uc *GetProjectDashboardUseCase) Execute(ctx context.Context, q GetProjectDashboardQuery) (*dto.ProjectDashboardDTO, error) {
	uc.logger.Infow("executing get project dashboard use case", "include_trends", q.IncludeTrends)

	snap, err := uc.loader.Load(ctx, true)
	if err != nil {
		uc.logger.Errorw("failed to load dashboard snapshot", "error", err)
		return nil, errors.NewInternalError("failed to build project dashboard")
	}

	now := uc.clock.Now()
	result := &dto.ProjectDashboardDTO{
		GeneratedAt: now,
		Overview:    overview(snap, now),
		Tickets:     ticketStats(snap),
		Sprints:     sprintOverview(snap, now),
		Team:        teamStats(snap),
		Quality:     quality(snap),
	}
	if q.IncludeTrends {
		result.Trends = weeklyTrends(snap, now)
	}
	return result, nil
}

func overview(snap *Snapshot, now time.Time) dto.OverviewDTO {
	o := dto.OverviewDTO{
		TotalTickets: len(snap.Tickets),
		TotalUsers:   len(snap.Users),
		TotalSprints: len(snap.Sprints),
	}
	for _, s := range snap.Sprints {
		switch {
		case s.IsClosed() || s.HasEnded(now):
			o.CompletedSprints++
		case s.IsCurrent(now):
			o.ActiveSprints++
		}
	}
	return o
}

func ticketStats(snap *Snapshot) dto.TicketStatsDTO {
	st := dto.TicketStatsDTO{
		ByStatus:   make(map[string]int),
		ByType:     make(map[string]int),
		ByPriority: make(map[string]int),
	}
	for _, s := range vo.AllStatuses() {
		st.ByStatus[s.String()] = 0
	}
	for _, t := range vo.AllTypes() {
		st.ByType[t.String()] = 0
	}
	for _, p := range []vo.Priority{vo.PriorityLow, vo.PriorityMedium, vo.PriorityHigh, vo.PriorityCritical} {
		st.ByPriority[p.String()] = 0
	}

	for _, t := range snap.Tickets {
		st.ByStatus[t.Status().String()]++
		st.ByType[t.Type().String()]++
		st.ByPriority[t.Priority().String()]++
		if t.AssigneeID() == nil {
			st.UnassignedCount++
		}
		if t.SprintID() == nil {
			st.WithoutSprintCount++
		}
		if t.IsBlocked() {
			st.BlockedCount++
		}
	}
	st.TotalPoints = sprint.SumPoints(snap.Tickets)
	st.CompletedPoints = sprint.CompletedPoints(snap.Tickets)
	if len(snap.Tickets) > 0 {
		st.AveragePointsPerTicket = sprint.RoundTenth(float64(st.TotalPoints) / float64(len(snap.Tickets)))
	}
	return st
}

func sprintOverview(snap *Snapshot, now time.Time) dto.SprintOverviewDTO {
	ov := dto.SprintOverviewDTO{
		Active:            []dto.ActiveSprintDTO{},
		Upcoming:          []dto.UpcomingSprintDTO{},
		RecentlyCompleted: []dto.CompletedSprintDTO{},
	}

	var active, upcoming, ended []*sprint.Sprint
	for _, s := range snap.Sprints {
		switch {
		case s.IsClosed() || s.HasEnded(now):
			ended = append(ended, s)
		case s.IsCurrent(now):
			active = append(active, s)
		default:
			upcoming = append(upcoming, s)
		}
	}

	sort.SliceStable(active, func(i, j int) bool { return active[i].EndDate().Before(active[j].EndDate()) })
	for _, s := range active {
		tickets := snap.SprintTickets(s.ID())
		total := sprint.SumPoints(tickets)
		completed := sprint.CompletedPoints(tickets)
		ov.Active = append(ov.Active, dto.ActiveSprintDTO{
			ID:                 s.ID(),
			Name:               s.Name(),
			StartDate:          biztime.FormatDate(s.StartDate()),
			EndDate:            biztime.FormatDate(s.EndDate()),
			TotalPoints:        total,
			CompletedPoints:    completed,
			ProgressPercentage: sprint.Percent(completed, total),
			TicketsCount:       len(tickets),
			DaysRemaining:      s.DaysRemaining(now),
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].StartDate().Before(upcoming[j].StartDate()) })
	for _, s := range upcoming[:min(len(upcoming), constants.UpcomingSprintsLimit)] {
		tickets := snap.SprintTickets(s.ID())
		ov.Upcoming = append(ov.Upcoming, dto.UpcomingSprintDTO{
			ID:           s.ID(),
			Name:         s.Name(),
			StartDate:    biztime.FormatDate(s.StartDate()),
			EndDate:      biztime.FormatDate(s.EndDate()),
			TicketsCount: len(tickets),
			TotalPoints:  sprint.SumPoints(tickets),
		})
	}

	sort.SliceStable(ended, func(i, j int) bool { return ended[i].EndDate().After(ended[j].EndDate()) })
	for _, s := range ended[:min(len(ended), constants.RecentlyClosedLimit)] {
		tickets := snap.SprintTickets(s.ID())
		completed := sprint.CompletedPoints(tickets)
		ov.RecentlyCompleted = append(ov.RecentlyCompleted, dto.CompletedSprintDTO{
			ID:             s.ID(),
			Name:           s.Name(),
			EndDate:        biztime.FormatDate(s.EndDate()),
			CompletionRate: sprint.Percent(completed, sprint.SumPoints(tickets)),
			Velocity:       s.Velocity(completed),
		})
	}
	return ov
}

// teamStats ranks users by completed×3 + comments + tests and reports each
// assignee's share of assigned points.
func teamStats(snap *Snapshot) dto.TeamStatsDTO {
	comments := make(map[uint]int)
	for _, c := range snap.Comments {
		comments[c.UserID()]++
	}
	tests := make(map[uint]int)
	for _, t := range snap.Tests {
		tests[t.UserID()]++
	}

	type userStat struct {
		row             dto.ActiveUserDTO
		assignedPoints  int
		completedPoints int
	}
	stats := make([]userStat, 0, len(snap.Users))
	totalAssigned := 0
	for _, u := range snap.Users {
		st := userStat{row: dto.ActiveUserDTO{
			ID:            u.ID(),
			Name:          u.FullName(),
			CommentsCount: comments[u.ID()],
			TestsCount:    tests[u.ID()],
		}}
		for _, t := range snap.Tickets {
			if !t.IsAssignedTo(u.ID()) {
				continue
			}
			st.row.AssignedTickets++
			st.assignedPoints += t.DifficultyPoints()
			if t.IsCompleted() {
				st.row.CompletedTickets++
				st.completedPoints += t.DifficultyPoints()
			}
		}
		st.row.Score = st.row.CompletedTickets*3 + st.row.CommentsCount + st.row.TestsCount
		totalAssigned += st.assignedPoints
		stats = append(stats, st)
	}

	ranked := make([]userStat, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].row.Score > ranked[j].row.Score })
	mostActive := make([]dto.ActiveUserDTO, 0, constants.MostActiveUsersLimit)
	for _, st := range ranked[:min(len(ranked), constants.MostActiveUsersLimit)] {
		mostActive = append(mostActive, st.row)
	}

	workload := []dto.WorkloadDTO{}
	for _, st := range stats {
		if st.row.AssignedTickets == 0 {
			continue
		}
		workload = append(workload, dto.WorkloadDTO{
			UserID:             st.row.ID,
			UserName:           st.row.Name,
			AssignedPoints:     st.assignedPoints,
			CompletedPoints:    st.completedPoints,
			WorkloadPercentage: sprint.Percent(st.assignedPoints, totalAssigned),
		})
	}
	sort.SliceStable(workload, func(i, j int) bool { return workload[i].AssignedPoints > workload[j].AssignedPoints })

	return dto.TeamStatsDTO{MostActiveUsers: mostActive, WorkloadDistribution: workload}
}

func quality(snap *Snapshot) dto.QualityDTO {
	q := dto.QualityDTO{
		TotalTests:    len(snap.Tests),
		TotalComments: len(snap.Comments),
	}
	withTests := make(map[uint]struct{})
	for _, t := range snap.Tests {
		if t.IsValidated() {
			q.ValidatedTests++
		}
		withTests[t.TicketID()] = struct{}{}
	}
	q.TicketsWithTests = len(withTests)
	q.ValidationRate = sprint.Percent(q.ValidatedTests, q.TotalTests)
	q.TestCoverage = sprint.Percent(q.TicketsWithTests, len(snap.Tickets))
	if len(snap.Tickets) > 0 {
		q.AverageCommentsPerTicket = sprint.RoundTenth(float64(q.TotalComments) / float64(len(snap.Tickets)))
	}
	return q
}

// weeklyTrends buckets ticket creation and completion into the last
// TrendWeeks ISO weeks, the current week last. Completion is dated by the
// ticket's last update.
func weeklyTrends(snap *Snapshot, now time.Time) *dto.TrendsDTO {
	const week = 7 * 24 * time.Hour
	current := biztime.StartOfISOWeekUTC(now)
	first := current.Add(-time.Duration(constants.TrendWeeks-1) * week)

	velocity := make([]dto.WeekVelocityDTO, constants.TrendWeeks)
	creation := make([]dto.WeekCreationDTO, constants.TrendWeeks)
	for i := range constants.TrendWeeks {
		start := first.Add(time.Duration(i) * week)
		year, num := start.In(biztime.Location()).ISOWeek()
		label := fmt.Sprintf("%d-W%02d", year, num)
		velocity[i] = dto.WeekVelocityDTO{Week: label, WeekStart: biztime.FormatDate(start)}
		creation[i] = dto.WeekCreationDTO{Week: label, WeekStart: biztime.FormatDate(start)}
	}

	bucket := func(t time.Time) (int, bool) {
		if t.Before(first) {
			return 0, false
		}
		i := int(t.Sub(first) / week)
		return i, i < constants.TrendWeeks
	}

	for _, t := range snap.Tickets {
		if i, ok := bucket(t.CreatedAt()); ok {
			creation[i].TicketsCreated++
		}
		if !t.IsCompleted() {
			continue
		}
		if i, ok := bucket(t.UpdatedAt()); ok {
			velocity[i].TicketsCompleted++
			velocity[i].PointsCompleted += t.DifficultyPoints()
		}
	}
	return &dto.TrendsDTO{VelocityByWeek: velocity, TicketCreationByWeek: creation}
}
