package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/dashboard/dto"
	"github.com/XavierPelle/sprintly/internal/application/testutil"
	"github.com/XavierPelle/sprintly/internal/domain/image"
	"github.com/XavierPelle/sprintly/internal/domain/qa"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
)

func at(m time.Month, d, h int) time.Time {
	return time.Date(2024, m, d, h, 0, 0, 0, time.UTC)
}

var dashboardNow = at(time.March, 20, 10)

type dashboardFixture struct {
	tickets  *testutil.MockTicketRepository
	users    *testutil.MockUserRepository
	tests    *testutil.MockTestRepository
	sprints  *testutil.MockSprintRepository
	comments *testutil.MockCommentRepository
	images   *testutil.MockImageRepository
	clock    biztime.FixedClock
	logger   *testutil.MockLogger
}

func newDashboardFixture() *dashboardFixture {
	return &dashboardFixture{
		tickets:  testutil.NewMockTicketRepository(),
		users:    testutil.NewMockUserRepository(),
		tests:    testutil.NewMockTestRepository(),
		sprints:  testutil.NewMockSprintRepository(),
		comments: testutil.NewMockCommentRepository(),
		images:   testutil.NewMockImageRepository(),
		clock:    biztime.FixedClock{At: dashboardNow},
		logger:   testutil.NewMockLogger(),
	}
}

func (f *dashboardFixture) loader() *SnapshotLoader {
	return NewSnapshotLoader(f.tickets, f.users, f.tests, f.sprints, f.comments)
}

func (f *dashboardFixture) personal() *GetPersonalDashboardUseCase {
	return NewGetPersonalDashboardUseCase(f.loader(), f.images, f.clock, 7, f.logger)
}

func (f *dashboardFixture) project() *GetProjectDashboardUseCase {
	return NewGetProjectDashboardUseCase(f.loader(), f.clock, f.logger)
}

type ticketOpt func(*ticket.State)

func status(s vo.TicketStatus) ticketOpt { return func(st *ticket.State) { st.Status = s } }
func priority(p vo.Priority) ticketOpt   { return func(st *ticket.State) { st.Priority = p } }
func kind(k vo.TicketType) ticketOpt     { return func(st *ticket.State) { st.Type = k } }
func assignee(id uint) ticketOpt         { return func(st *ticket.State) { st.AssigneeID = &id } }
func inSprint(id uint) ticketOpt         { return func(st *ticket.State) { st.SprintID = &id } }
func updated(t time.Time) ticketOpt      { return func(st *ticket.State) { st.UpdatedAt = t } }
func blocked(reason string, since time.Time) ticketOpt {
	return func(st *ticket.State) {
		st.IsBlocked = true
		st.BlockedReason = reason
		st.BlockedAt = &since
	}
}

func (f *dashboardFixture) ticket(t *testing.T, id uint, points int, opts ...ticketOpt) *ticket.Ticket {
	t.Helper()
	st := testutil.TicketState(id, fmt.Sprintf("PROJ-%03d", id), points)
	for _, opt := range opts {
		opt(&st)
	}
	return testutil.SeedTicket(t, f.tickets, st)
}

func (f *dashboardFixture) test(t *testing.T, ticketID, authorID uint, validated bool, created time.Time) *qa.Test {
	t.Helper()
	test := qa.ReconstructTest(0, ticketID, authorID, fmt.Sprintf("check ticket %d", ticketID), validated, nil, created, created)
	require.NoError(t, f.tests.Create(t.Context(), test))
	return test
}

// seedTeam creates alice (1, the caller), bob (2), carol (3) and dave (4).
func (f *dashboardFixture) seedTeam(t *testing.T) {
	t.Helper()
	testutil.SeedUser(t, f.users, "alice@example.com", "Alice", "Martin")
	testutil.SeedUser(t, f.users, "bob@example.com", "Bob", "Durand")
	testutil.SeedUser(t, f.users, "carol@example.com", "Carol", "Petit")
	testutil.SeedUser(t, f.users, "dave@example.com", "Dave", "Roux")
}

func (f *dashboardFixture) seedPersonal(t *testing.T) {
	t.Helper()
	f.seedTeam(t)
	testutil.SeedSprint(t, f.sprints, 1, "Sprint 12", 40, at(time.March, 18, 0), at(time.March, 29, 0))
	testutil.SeedSprint(t, f.sprints, 2, "Sprint 13", 40, at(time.April, 1, 0), at(time.April, 12, 0))

	f.ticket(t, 1, 5, status(vo.StatusProduction), assignee(2), inSprint(1), updated(at(time.March, 19, 15)))
	f.ticket(t, 2, 3, status(vo.StatusProduction), assignee(2), updated(at(time.March, 18, 15)))
	f.ticket(t, 3, 3, status(vo.StatusProduction), updated(at(time.March, 20, 8)))
	f.ticket(t, 4, 3, status(vo.StatusInProgress), assignee(1), priority(vo.PriorityHigh), inSprint(1), updated(at(time.March, 19, 9)))
	f.ticket(t, 5, 2, status(vo.StatusReview), assignee(1), priority(vo.PriorityLow), updated(at(time.March, 19, 9)),
		blocked("waiting for API", at(time.March, 15, 0)))
	f.ticket(t, 6, 5, status(vo.StatusTestKO), assignee(1), priority(vo.PriorityCritical), inSprint(1), updated(at(time.March, 10, 9)))
	f.ticket(t, 7, 8, assignee(1))
	f.ticket(t, 8, 2, status(vo.StatusInProgress), assignee(2), updated(at(time.March, 1, 9)))
	f.ticket(t, 9, 1, status(vo.StatusTest), assignee(3), updated(at(time.March, 18, 9)),
		blocked("env down", at(time.March, 18, 0)))
	f.ticket(t, 10, 1, status(vo.StatusInProgress), assignee(2), updated(at(time.March, 19, 9)))

	f.test(t, 6, 3, false, at(time.March, 12, 9))
	f.test(t, 6, 3, true, at(time.March, 11, 9))
	withImage := f.test(t, 4, 2, false, at(time.March, 18, 9))
	f.test(t, 9, 1, false, at(time.March, 19, 9))

	testID := withImage.ID()
	img, err := image.NewImage(image.TypeTestAttachment,
		image.Metadata{URL: "https://cdn.example.com/a.png", Filename: "a.png", MimeType: "image/png"},
		image.Owner{TestID: &testID})
	require.NoError(t, err)
	require.NoError(t, f.images.Create(t.Context(), img))
}

func ticketKeys[T any](rows []T, key func(T) string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = key(r)
	}
	return out
}

func TestGetPersonalDashboardUseCase(t *testing.T) {
	f := newDashboardFixture()
	f.seedPersonal(t)

	result, err := f.personal().Execute(t.Context(), GetPersonalDashboardQuery{UserID: 1})
	require.NoError(t, err)

	t.Run("user", func(t *testing.T) {
		assert.Equal(t, "Alice Martin", result.User.FullName)
		assert.Equal(t, dashboardNow, result.GeneratedAt)
	})

	t.Run("production deployments are yesterday's only", func(t *testing.T) {
		require.Equal(t, 1, result.ProductionDeployments.Count)
		d := result.ProductionDeployments.Yesterday[0]
		assert.Equal(t, "PROJ-001", d.TicketKey)
		require.NotNil(t, d.DeployedBy)
		assert.Equal(t, "Bob Durand", d.DeployedBy.Name)
		assert.Contains(t, d.DeployedAgo, "ago")
		assert.Nil(t, d.PullRequestLink)
	})

	t.Run("team activity excludes the caller", func(t *testing.T) {
		members := result.TeamActivity.Members
		require.Len(t, members, 2)
		assert.Equal(t, "Bob Durand", members[0].UserName)
		assert.Equal(t, 2, members[0].TicketCount)
		assert.Equal(t, "Carol Petit", members[1].UserName)
		assert.Equal(t, 3, result.TeamActivity.TotalActiveTickets)
		assert.Equal(t, 19, members[0].CurrentTickets[0].DaysSinceLastUpdate)
	})

	t.Run("pending tests by ticket priority", func(t *testing.T) {
		tests := result.PendingTests.Tests
		require.Equal(t, 3, result.PendingTests.Count)
		assert.Equal(t, []string{"PROJ-006", "PROJ-004", "PROJ-009"},
			ticketKeys(tests, func(p dto.PendingTestDTO) string { return p.TicketKey }))
		assert.Equal(t, "Carol Petit", tests[0].CreatedBy.Name)
		assert.False(t, tests[0].HasImages)
		assert.True(t, tests[1].HasImages)
	})

	t.Run("my active tickets blocked first then priority", func(t *testing.T) {
		mine := result.MyActiveTickets
		assert.Equal(t, []string{"PROJ-005", "PROJ-006", "PROJ-004"},
			ticketKeys(mine.Tickets, func(m dto.MyTicketDTO) string { return m.TicketKey }))
		assert.Equal(t, 10, mine.TotalPoints)
		assert.Equal(t, 1, mine.ByStatus["REVIEW"])
		assert.Equal(t, 0, mine.ByStatus["TODO"])
		assert.Len(t, mine.ByStatus, len(vo.AllStatuses()))
		require.NotNil(t, mine.Tickets[0].BlockedReason)
		assert.Equal(t, "waiting for API", *mine.Tickets[0].BlockedReason)
		assert.Equal(t, 2, mine.Tickets[1].TestCount)
		assert.True(t, mine.Tickets[1].HasTests)
		assert.Nil(t, mine.Tickets[1].Branch)
	})

	t.Run("my failed tests", func(t *testing.T) {
		failed := result.MyFailedTests
		assert.Equal(t, 2, failed.TotalFailedTests)
		assert.Equal(t, []string{"PROJ-004", "PROJ-006"},
			ticketKeys(failed.Tickets, func(r dto.FailedTicketDTO) string { return r.TicketKey }))
		assert.Equal(t, 1, failed.Tickets[1].FailedTestCount)
	})

	t.Run("my urgent tickets", func(t *testing.T) {
		urgent := result.MyUrgentTickets
		assert.Equal(t, 2, urgent.TotalUrgent)
		require.Len(t, urgent.Critical, 1)
		assert.Equal(t, "PROJ-006", urgent.Critical[0].TicketKey)
		require.Len(t, urgent.High, 1)
		assert.Equal(t, "PROJ-004", urgent.High[0].TicketKey)
		assert.Equal(t, 19, urgent.High[0].DaysSinceCreated)
	})

	t.Run("team alerts", func(t *testing.T) {
		alerts := result.TeamAlerts
		require.Len(t, alerts.BlockedTickets, 2)
		assert.Equal(t, "PROJ-005", alerts.BlockedTickets[0].TicketKey)
		assert.Equal(t, 5, alerts.BlockedTickets[0].DaysSinceBlocked)
		assert.Equal(t, "Alice Martin", alerts.BlockedTickets[0].Assignee.Name)
		assert.Equal(t, 2, alerts.BlockedTickets[1].DaysSinceBlocked)

		assert.Equal(t, []string{"PROJ-008", "PROJ-006"},
			ticketKeys(alerts.StaleTickets, func(s dto.StaleTicketDTO) string { return s.TicketKey }))
		assert.Equal(t, 19, alerts.StaleTickets[0].DaysSinceLastUpdate)
	})

	t.Run("current sprint summary", func(t *testing.T) {
		sum := result.CurrentSprintSummary
		require.NotNil(t, sum.SprintName)
		assert.Equal(t, "Sprint 12", *sum.SprintName)
		assert.Equal(t, 38, sum.CompletionPercentage)
		assert.InDelta(t, 1.7, sum.Velocity, 0.001)
		require.NotNil(t, sum.DaysRemaining)
		assert.Equal(t, 10, *sum.DaysRemaining)
		require.NotNil(t, sum.BurndownTrend)
		assert.Equal(t, string(sprint.TrendAhead), *sum.BurndownTrend)
	})
}

func TestGetPersonalDashboardUseCase_UserWithoutTickets(t *testing.T) {
	f := newDashboardFixture()
	f.seedPersonal(t)

	result, err := f.personal().Execute(t.Context(), GetPersonalDashboardQuery{UserID: 4})

	require.NoError(t, err)
	assert.NotNil(t, result.MyActiveTickets.Tickets)
	assert.Empty(t, result.MyActiveTickets.Tickets)
	assert.Equal(t, 0, result.MyActiveTickets.TotalPoints)
	assert.Empty(t, result.MyFailedTests.Tickets)
	assert.Equal(t, 0, result.MyUrgentTickets.TotalUrgent)
	assert.Len(t, result.TeamActivity.Members, 3)
}

func TestGetPersonalDashboardUseCase_NoRunningSprint(t *testing.T) {
	f := newDashboardFixture()
	f.seedTeam(t)

	result, err := f.personal().Execute(t.Context(), GetPersonalDashboardQuery{UserID: 1})

	require.NoError(t, err)
	assert.Nil(t, result.CurrentSprintSummary.SprintName)
	assert.Nil(t, result.CurrentSprintSummary.BurndownTrend)
	assert.Equal(t, 0, result.ProductionDeployments.Count)
}

func TestGetPersonalDashboardUseCase_Failures(t *testing.T) {
	t.Run("unknown user", func(t *testing.T) {
		f := newDashboardFixture()
		f.seedTeam(t)

		_, err := f.personal().Execute(t.Context(), GetPersonalDashboardQuery{UserID: 99})

		assert.True(t, errors.HasReason(err, common.ReasonUserNotFound))
	})

	t.Run("snapshot failure", func(t *testing.T) {
		f := newDashboardFixture()
		f.seedTeam(t)
		f.tickets.SetListError(fmt.Errorf("connection reset"))

		_, err := f.personal().Execute(t.Context(), GetPersonalDashboardQuery{UserID: 1})

		_, code := errors.ToItems(err)
		assert.Equal(t, 500, code)
		assert.True(t, f.logger.HasEntry("ERROR", "failed to load dashboard snapshot"))
	})
}

func (f *dashboardFixture) seedProject(t *testing.T) {
	t.Helper()
	testutil.SeedUser(t, f.users, "alice@example.com", "Alice", "Martin")
	testutil.SeedUser(t, f.users, "bob@example.com", "Bob", "Durand")

	testutil.SeedSprint(t, f.sprints, 1, "Current", 40, at(time.March, 18, 0), at(time.March, 29, 0))
	testutil.SeedSprint(t, f.sprints, 2, "Next", 40, at(time.April, 1, 0), at(time.April, 12, 0))
	testutil.SeedSprint(t, f.sprints, 3, "Previous", 40, at(time.March, 4, 0), at(time.March, 15, 0))
	closedAt := at(time.March, 1, 18)
	old, err := sprint.ReconstructSprint(sprint.State{
		ID:        4,
		Name:      "Oldest",
		MaxPoints: 40,
		StartDate: at(time.February, 19, 0),
		EndDate:   at(time.March, 1, 0),
		ClosedAt:  &closedAt,
	})
	require.NoError(t, err)
	f.sprints.AddSprint(old)

	f.ticket(t, 1, 5, status(vo.StatusProduction), assignee(1), priority(vo.PriorityHigh), kind(vo.TypeBug),
		inSprint(1), updated(at(time.March, 19, 9)))
	f.ticket(t, 2, 3, status(vo.StatusInProgress), assignee(2), inSprint(1))
	f.ticket(t, 3, 8, status(vo.StatusTestOK), assignee(1), priority(vo.PriorityLow), kind(vo.TypeFeature),
		inSprint(3), updated(at(time.March, 14, 9)))
	f.ticket(t, 4, 2, blocked("needs design review", at(time.March, 2, 0)))

	for _, c := range []struct{ ticketID, userID uint }{{1, 1}, {1, 1}, {2, 2}} {
		comment, err := ticket.NewComment(c.ticketID, c.userID, "looks good")
		require.NoError(t, err)
		require.NoError(t, f.comments.Create(t.Context(), comment))
	}
	f.test(t, 1, 2, true, at(time.March, 19, 8))
	f.test(t, 2, 1, false, at(time.March, 19, 8))
}

func TestGetProjectDashboardUseCase(t *testing.T) {
	f := newDashboardFixture()
	f.seedProject(t)

	result, err := f.project().Execute(t.Context(), GetProjectDashboardQuery{IncludeTrends: true})
	require.NoError(t, err)

	t.Run("overview", func(t *testing.T) {
		assert.Equal(t, dto.OverviewDTO{
			TotalTickets:     4,
			TotalUsers:       2,
			TotalSprints:     4,
			ActiveSprints:    1,
			CompletedSprints: 2,
		}, result.Overview)
	})

	t.Run("tickets", func(t *testing.T) {
		st := result.Tickets
		assert.Equal(t, 18, st.TotalPoints)
		assert.Equal(t, 13, st.CompletedPoints)
		assert.InDelta(t, 4.5, st.AveragePointsPerTicket, 0.001)
		assert.Equal(t, 1, st.UnassignedCount)
		assert.Equal(t, 1, st.WithoutSprintCount)
		assert.Equal(t, 1, st.BlockedCount)
		assert.Equal(t, 1, st.ByType["BUG"])
		assert.Equal(t, 0, st.ByType["IMPROVEMENT"])
		assert.Equal(t, 1, st.ByPriority["HIGH"])
		assert.Equal(t, 0, st.ByPriority["CRITICAL"])
		assert.Equal(t, 1, st.ByStatus["TEST_OK"])
	})

	t.Run("sprints", func(t *testing.T) {
		sp := result.Sprints
		require.Len(t, sp.Active, 1)
		assert.Equal(t, dto.ActiveSprintDTO{
			ID:                 1,
			Name:               "Current",
			StartDate:          "2024-03-18",
			EndDate:            "2024-03-29",
			TotalPoints:        8,
			CompletedPoints:    5,
			ProgressPercentage: 63,
			TicketsCount:       2,
			DaysRemaining:      10,
		}, sp.Active[0])

		require.Len(t, sp.Upcoming, 1)
		assert.Equal(t, "Next", sp.Upcoming[0].Name)
		assert.Equal(t, 0, sp.Upcoming[0].TicketsCount)

		require.Len(t, sp.RecentlyCompleted, 2)
		assert.Equal(t, "Previous", sp.RecentlyCompleted[0].Name)
		assert.Equal(t, 100, sp.RecentlyCompleted[0].CompletionRate)
		assert.InDelta(t, 0.7, sp.RecentlyCompleted[0].Velocity, 0.001)
		assert.Equal(t, "Oldest", sp.RecentlyCompleted[1].Name)
	})

	t.Run("team", func(t *testing.T) {
		team := result.Team
		require.Len(t, team.MostActiveUsers, 2)
		alice := team.MostActiveUsers[0]
		assert.Equal(t, "Alice Martin", alice.Name)
		assert.Equal(t, 2, alice.CompletedTickets)
		assert.Equal(t, 2, alice.CommentsCount)
		assert.Equal(t, 1, alice.TestsCount)
		assert.Equal(t, 9, alice.Score)
		assert.Equal(t, 2, team.MostActiveUsers[1].Score)

		require.Len(t, team.WorkloadDistribution, 2)
		assert.Equal(t, 13, team.WorkloadDistribution[0].AssignedPoints)
		assert.Equal(t, 81, team.WorkloadDistribution[0].WorkloadPercentage)
		assert.Equal(t, 19, team.WorkloadDistribution[1].WorkloadPercentage)
	})

	t.Run("quality", func(t *testing.T) {
		assert.Equal(t, dto.QualityDTO{
			TotalTests:               2,
			ValidatedTests:           1,
			ValidationRate:           50,
			TotalComments:            3,
			AverageCommentsPerTicket: 0.8,
			TicketsWithTests:         2,
			TestCoverage:             50,
		}, result.Quality)
	})

	t.Run("trends", func(t *testing.T) {
		require.NotNil(t, result.Trends)
		velocity := result.Trends.VelocityByWeek
		require.Len(t, velocity, 12)
		assert.Equal(t, "2024-W01", velocity[0].Week)
		assert.Equal(t, "2024-01-01", velocity[0].WeekStart)
		assert.Equal(t, "2024-W12", velocity[11].Week)
		assert.Equal(t, 5, velocity[11].PointsCompleted)
		assert.Equal(t, 8, velocity[10].PointsCompleted)
		assert.Equal(t, 1, velocity[10].TicketsCompleted)

		creation := result.Trends.TicketCreationByWeek
		require.Len(t, creation, 12)
		assert.Equal(t, 4, creation[8].TicketsCreated)
		assert.Equal(t, "2024-W09", creation[8].Week)
	})
}

func TestGetProjectDashboardUseCase_EmptyProject(t *testing.T) {
	f := newDashboardFixture()

	result, err := f.project().Execute(t.Context(), GetProjectDashboardQuery{})

	require.NoError(t, err)
	assert.Nil(t, result.Trends)
	assert.Equal(t, 0.0, result.Tickets.AveragePointsPerTicket)
	assert.Equal(t, 0, result.Quality.TestCoverage)
	assert.NotNil(t, result.Sprints.Active)
	assert.Empty(t, result.Team.MostActiveUsers)
}

type countingProjectDashboard struct {
	calls int
	err   error
}

func (c *countingProjectDashboard) Execute(ctx context.Context, q GetProjectDashboardQuery) (*dto.ProjectDashboardDTO, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &dto.ProjectDashboardDTO{
		GeneratedAt: dashboardNow,
		Overview:    dto.OverviewDTO{TotalTickets: c.calls},
	}, nil
}

func TestCachedProjectDashboard(t *testing.T) {
	t.Run("second call is served from cache", func(t *testing.T) {
		inner := &countingProjectDashboard{}
		cache := testutil.NewMockDashboardCache()
		recorder := &testutil.MockCacheRecorder{}
		uc := NewCachedProjectDashboard(inner, cache, recorder, testutil.NewMockLogger())

		first, err := uc.Execute(t.Context(), GetProjectDashboardQuery{})
		require.NoError(t, err)
		second, err := uc.Execute(t.Context(), GetProjectDashboardQuery{})
		require.NoError(t, err)

		assert.Equal(t, 1, inner.calls)
		assert.Equal(t, first.Overview, second.Overview)
		assert.Equal(t, 1, recorder.Hits)
		assert.Equal(t, 1, recorder.Misses)
	})

	t.Run("variants are cached separately", func(t *testing.T) {
		inner := &countingProjectDashboard{}
		cache := testutil.NewMockDashboardCache()
		uc := NewCachedProjectDashboard(inner, cache, nil, testutil.NewMockLogger())

		_, err := uc.Execute(t.Context(), GetProjectDashboardQuery{})
		require.NoError(t, err)
		_, err = uc.Execute(t.Context(), GetProjectDashboardQuery{IncludeTrends: true})
		require.NoError(t, err)

		assert.Equal(t, 2, inner.calls)
	})

	t.Run("cache errors fall back to the inner use case", func(t *testing.T) {
		inner := &countingProjectDashboard{}
		cache := testutil.NewMockDashboardCache()
		cache.GetError = fmt.Errorf("redis down")
		cache.SetError = fmt.Errorf("redis down")
		log := testutil.NewMockLogger()
		uc := NewCachedProjectDashboard(inner, cache, nil, log)

		result, err := uc.Execute(t.Context(), GetProjectDashboardQuery{})

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.True(t, log.HasEntry("WARN", "dashboard cache read failed"))
		assert.True(t, log.HasEntry("WARN", "dashboard cache write failed"))
	})

	t.Run("inner errors are not cached", func(t *testing.T) {
		inner := &countingProjectDashboard{err: errors.NewInternalError("failed to build project dashboard")}
		cache := testutil.NewMockDashboardCache()
		uc := NewCachedProjectDashboard(inner, cache, nil, testutil.NewMockLogger())

		_, err := uc.Execute(t.Context(), GetProjectDashboardQuery{})

		require.Error(t, err)
		assert.Equal(t, 0, cache.Sets)
	})
}

func TestDashboardWarmupJob(t *testing.T) {
	t.Run("writes both variants", func(t *testing.T) {
		inner := &countingProjectDashboard{}
		cache := testutil.NewMockDashboardCache()

		n, err := NewDashboardWarmupJob(inner, cache, testutil.NewMockLogger()).Execute(t.Context())

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.True(t, cache.Has("project:trends=false"))
		assert.True(t, cache.Has("project:trends=true"))
	})

	t.Run("stops on build failure", func(t *testing.T) {
		inner := &countingProjectDashboard{err: fmt.Errorf("boom")}

		n, err := NewDashboardWarmupJob(inner, testutil.NewMockDashboardCache(), testutil.NewMockLogger()).Execute(t.Context())

		require.Error(t, err)
		assert.Equal(t, 0, n)
	})
}
