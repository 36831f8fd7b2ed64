package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/xeonx/timeago"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/dashboard/dto"
	userdto "github.com/XavierPelle/sprintly/internal/application/user/dto"
	"github.com/XavierPelle/sprintly/internal/domain/image"
	"github.com/XavierPelle/sprintly/internal/domain/qa"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/constants"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

const defaultStaleAfterDays = 7

type GetPersonalDashboardQuery struct {
	UserID uint
}

type GetPersonalDashboardUseCase struct {
	loader         *SnapshotLoader
	imageRepo      image.Repository
	clock          biztime.Clock
	staleAfterDays int
	logger         logger.Interface
}

func NewGetPersonalDashboardUseCase(
	loader *SnapshotLoader,
	imageRepo image.Repository,
	clock biztime.Clock,
	staleAfterDays int,
	logger logger.Interface,
) *GetPersonalDashboardUseCase {
	if staleAfterDays <= 0 {
		staleAfterDays = defaultStaleAfterDays
	}
	return &GetPersonalDashboardUseCase{
		loader:         loader,
		imageRepo:      imageRepo,
		clock:          clock,
		staleAfterDays: staleAfterDays,
		logger:         logger,
	}
}

func (uc *GetPersonalDashboardUseCase) Execute(ctx context.Context, q GetPersonalDashboardQuery) (*dto.PersonalDashboardDTO, error) {
	uc.logger.Infow("executing get personal dashboard use case", "user_id", q.UserID)

	snap, err := uc.loader.Load(ctx, false)
	if err != nil {
		uc.logger.Errorw("failed to load dashboard snapshot", "user_id", q.UserID, "error", err)
		return nil, errors.NewInternalError("failed to build dashboard")
	}

	me := snap.User(q.UserID)
	if me == nil {
		return nil, common.UserNotFound(q.UserID)
	}

	now := uc.clock.Now()
	pending := pendingTests(snap)
	imageCounts, err := uc.countImages(ctx, pending)
	if err != nil {
		uc.logger.Errorw("failed to count test images", "error", err)
		return nil, errors.NewInternalError("failed to build dashboard")
	}

	return &dto.PersonalDashboardDTO{
		User:                  userdto.ToUserSummary(me),
		GeneratedAt:           now,
		ProductionDeployments: productionDeployments(snap, now),
		TeamActivity:          teamActivity(snap, q.UserID, now),
		PendingTests:          pendingTestsPanel(snap, pending, imageCounts),
		MyActiveTickets:       myActiveTickets(snap, q.UserID, now),
		MyFailedTests:         myFailedTests(snap, q.UserID),
		MyUrgentTickets:       myUrgentTickets(snap, q.UserID, now),
		TeamAlerts:            teamAlerts(snap, now, uc.staleAfterDays),
		CurrentSprintSummary:  currentSprintSummary(snap, now),
	}, nil
}

func (uc *GetPersonalDashboardUseCase) countImages(ctx context.Context, tests []*qa.Test) (map[uint]int, error) {
	if len(tests) == 0 || uc.imageRepo == nil {
		return map[uint]int{}, nil
	}
	ids := make([]uint, len(tests))
	for i, t := range tests {
		ids[i] = t.ID()
	}
	return uc.imageRepo.CountByTests(ctx, ids)
}

func ago(t, now time.Time) string {
	return timeago.English.FormatReference(t, now)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// productionDeployments lists tickets shipped during the previous business day.
func productionDeployments(snap *Snapshot, now time.Time) dto.ProductionDeploymentsDTO {
	today := biztime.StartOfDayUTC(now)
	yesterday := biztime.StartOfDayUTC(now.In(biztime.Location()).AddDate(0, 0, -1))

	out := []dto.DeploymentDTO{}
	for _, t := range snap.Tickets {
		if t.Status() != vo.StatusProduction {
			continue
		}
		at := t.UpdatedAt()
		if at.Before(yesterday) || !at.Before(today) {
			continue
		}
		out = append(out, dto.DeploymentDTO{
			TicketID:        t.ID(),
			TicketKey:       t.Key(),
			Title:           t.Title(),
			DeployedBy:      snap.Member(t.AssigneeID()),
			DeployedAt:      at,
			DeployedAgo:     ago(at, now),
			Branch:          t.Branch(),
			PullRequestLink: optional(t.PullRequestLink()),
			Priority:        t.Priority().String(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DeployedAt.After(out[j].DeployedAt) })
	return dto.ProductionDeploymentsDTO{Yesterday: out, Count: len(out)}
}

// teamActivity groups the active tickets of every other user.
func teamActivity(snap *Snapshot, me uint, now time.Time) dto.TeamActivityDTO {
	members := []dto.TeamMemberDTO{}
	total := 0
	for _, u := range snap.Users {
		if u.ID() == me {
			continue
		}
		work := []dto.ActiveWorkDTO{}
		for _, t := range snap.Tickets {
			if !t.IsAssignedTo(u.ID()) || !t.Status().IsActive() {
				continue
			}
			work = append(work, dto.ActiveWorkDTO{
				TicketID:            t.ID(),
				TicketKey:           t.Key(),
				Title:               t.Title(),
				Status:              t.Status().String(),
				Priority:            t.Priority().String(),
				DaysSinceLastUpdate: biztime.DaysBetween(t.UpdatedAt(), now),
				UpdatedAgo:          ago(t.UpdatedAt(), now),
			})
		}
		if len(work) == 0 {
			continue
		}
		total += len(work)
		members = append(members, dto.TeamMemberDTO{
			UserID:         u.ID(),
			UserName:       u.FullName(),
			CurrentTickets: work,
			TicketCount:    len(work),
		})
	}
	sort.SliceStable(members, func(i, j int) bool { return members[i].TicketCount > members[j].TicketCount })
	return dto.TeamActivityDTO{Members: members, TotalActiveTickets: total}
}

// pendingTests returns unvalidated tests of existing tickets, highest ticket
// priority first and newest first within a priority.
func pendingTests(snap *Snapshot) []*qa.Test {
	var out []*qa.Test
	for _, t := range snap.Tests {
		if !t.IsValidated() && snap.Ticket(t.TicketID()) != nil {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi := snap.Ticket(out[i].TicketID()).Priority().Rank()
		pj := snap.Ticket(out[j].TicketID()).Priority().Rank()
		if pi != pj {
			return pi > pj
		}
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out
}

func pendingTestsPanel(snap *Snapshot, tests []*qa.Test, imageCounts map[uint]int) dto.PendingTestsDTO {
	out := make([]dto.PendingTestDTO, 0, len(tests))
	for _, t := range tests {
		tk := snap.Ticket(t.TicketID())
		author := dto.MemberDTO{ID: t.UserID()}
		if u := snap.User(t.UserID()); u != nil {
			author.Name = u.FullName()
		}
		out = append(out, dto.PendingTestDTO{
			TestID:      t.ID(),
			TicketID:    tk.ID(),
			TicketKey:   tk.Key(),
			TicketTitle: tk.Title(),
			Description: t.Description(),
			CreatedBy:   author,
			CreatedAt:   t.CreatedAt(),
			Priority:    tk.Priority().String(),
			HasImages:   imageCounts[t.ID()] > 0,
		})
	}
	return dto.PendingTestsDTO{Tests: out, Count: len(out)}
}

// myActiveTickets lists the caller's started, unshipped tickets, blocked
// ones first then by priority.
func myActiveTickets(snap *Snapshot, me uint, now time.Time) dto.MyActiveTicketsDTO {
	var mine []*ticket.Ticket
	for _, t := range snap.Tickets {
		if t.IsAssignedTo(me) && t.Status().IsOpenWork() {
			mine = append(mine, t)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		if mine[i].IsBlocked() != mine[j].IsBlocked() {
			return mine[i].IsBlocked()
		}
		return mine[i].Priority().Rank() > mine[j].Priority().Rank()
	})

	byStatus := make(map[string]int, len(vo.AllStatuses()))
	for _, s := range vo.AllStatuses() {
		byStatus[s.String()] = 0
	}
	out := make([]dto.MyTicketDTO, 0, len(mine))
	total := 0
	for _, t := range mine {
		tests := snap.TestsOf(t.ID())
		byStatus[t.Status().String()]++
		total += t.DifficultyPoints()
		out = append(out, dto.MyTicketDTO{
			TicketID:            t.ID(),
			TicketKey:           t.Key(),
			Title:               t.Title(),
			Status:              t.Status().String(),
			Priority:            t.Priority().String(),
			DifficultyPoints:    t.DifficultyPoints(),
			IsBlocked:           t.IsBlocked(),
			BlockedReason:       optional(t.BlockedReason()),
			DaysSinceLastUpdate: biztime.DaysBetween(t.UpdatedAt(), now),
			UpdatedAgo:          ago(t.UpdatedAt(), now),
			HasTests:            len(tests) > 0,
			TestCount:           len(tests),
			Branch:              optional(t.Branch()),
		})
	}
	return dto.MyActiveTicketsDTO{Tickets: out, ByStatus: byStatus, TotalPoints: total}
}

// myFailedTests lists the caller's tickets in TEST_KO or carrying
// unvalidated tests, most failures first.
func myFailedTests(snap *Snapshot, me uint) dto.MyFailedTestsDTO {
	out := []dto.FailedTicketDTO{}
	total := 0
	for _, t := range snap.Tickets {
		if !t.IsAssignedTo(me) {
			continue
		}
		failed := []dto.FailedTestDTO{}
		for _, test := range snap.TestsOf(t.ID()) {
			if !test.IsValidated() {
				failed = append(failed, dto.FailedTestDTO{
					TestID:      test.ID(),
					Description: test.Description(),
					CreatedAt:   test.CreatedAt(),
				})
			}
		}
		if t.Status() != vo.StatusTestKO && len(failed) == 0 {
			continue
		}
		total += len(failed)
		out = append(out, dto.FailedTicketDTO{
			TicketID:        t.ID(),
			TicketKey:       t.Key(),
			Title:           t.Title(),
			Status:          t.Status().String(),
			FailedTests:     failed,
			FailedTestCount: len(failed),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FailedTestCount > out[j].FailedTestCount })
	return dto.MyFailedTestsDTO{Tickets: out, TotalFailedTests: total}
}

func myUrgentTickets(snap *Snapshot, me uint, now time.Time) dto.MyUrgentTicketsDTO {
	result := dto.MyUrgentTicketsDTO{
		Critical: []dto.UrgentTicketDTO{},
		High:     []dto.UrgentTicketDTO{},
	}
	for _, t := range snap.Tickets {
		if !t.IsAssignedTo(me) || t.Status() == vo.StatusProduction || !t.Priority().IsUrgent() {
			continue
		}
		row := dto.UrgentTicketDTO{
			TicketID:         t.ID(),
			TicketKey:        t.Key(),
			Title:            t.Title(),
			Status:           t.Status().String(),
			DaysSinceCreated: biztime.DaysBetween(t.CreatedAt(), now),
			IsBlocked:        t.IsBlocked(),
		}
		if t.Priority() == vo.PriorityCritical {
			result.Critical = append(result.Critical, row)
		} else {
			result.High = append(result.High, row)
		}
	}
	result.TotalUrgent = len(result.Critical) + len(result.High)
	return result
}

// teamAlerts reports assigned blocked tickets and open work nobody touched
// for staleAfterDays.
func teamAlerts(snap *Snapshot, now time.Time, staleAfterDays int) dto.TeamAlertsDTO {
	blocked := []dto.BlockedTicketDTO{}
	stale := []dto.StaleTicketDTO{}
	for _, t := range snap.Tickets {
		if t.IsBlocked() && t.Status() != vo.StatusProduction {
			if assignee := snap.Member(t.AssigneeID()); assignee != nil {
				since := t.UpdatedAt()
				if t.BlockedAt() != nil {
					since = *t.BlockedAt()
				}
				blocked = append(blocked, dto.BlockedTicketDTO{
					TicketID:         t.ID(),
					TicketKey:        t.Key(),
					Title:            t.Title(),
					Assignee:         *assignee,
					BlockedReason:    t.BlockedReason(),
					Priority:         t.Priority().String(),
					DaysSinceBlocked: biztime.DaysBetween(since, now),
				})
			}
		}

		if !t.Status().IsOpenWork() {
			continue
		}
		idle := biztime.DaysBetween(t.UpdatedAt(), now)
		if idle < staleAfterDays {
			continue
		}
		stale = append(stale, dto.StaleTicketDTO{
			TicketID:            t.ID(),
			TicketKey:           t.Key(),
			Title:               t.Title(),
			Assignee:            snap.Member(t.AssigneeID()),
			Status:              t.Status().String(),
			DaysSinceLastUpdate: idle,
			UpdatedAgo:          ago(t.UpdatedAt(), now),
		})
	}

	sort.SliceStable(blocked, func(i, j int) bool { return blocked[i].DaysSinceBlocked > blocked[j].DaysSinceBlocked })
	sort.SliceStable(stale, func(i, j int) bool { return stale[i].DaysSinceLastUpdate > stale[j].DaysSinceLastUpdate })
	if len(stale) > constants.StaleTicketLimit {
		stale = stale[:constants.StaleTicketLimit]
	}
	return dto.TeamAlertsDTO{BlockedTickets: blocked, StaleTickets: stale}
}

// currentSprint picks the open sprint running at now that ends first.
func currentSprint(snap *Snapshot, now time.Time) *sprint.Sprint {
	var found *sprint.Sprint
	for _, s := range snap.Sprints {
		if s.IsClosed() || !s.IsCurrent(now) {
			continue
		}
		if found == nil || s.EndDate().Before(found.EndDate()) {
			found = s
		}
	}
	return found
}

func currentSprintSummary(snap *Snapshot, now time.Time) dto.CurrentSprintSummaryDTO {
	s := currentSprint(snap, now)
	if s == nil {
		return dto.CurrentSprintSummaryDTO{}
	}
	sum := sprint.Summarize(s, snap.SprintTickets(s.ID()), now)
	id := s.ID()
	name := s.Name()
	trend := string(sum.Trend)
	return dto.CurrentSprintSummaryDTO{
		SprintID:             &id,
		SprintName:           &name,
		DaysRemaining:        &sum.DaysRemaining,
		CompletionPercentage: sum.CompletionPercentage,
		Velocity:             sum.Velocity,
		BurndownTrend:        &trend,
	}
}
