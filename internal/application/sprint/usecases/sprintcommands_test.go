package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/testutil"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type sprintFixture struct {
	sprints *testutil.MockSprintRepository
	tickets *testutil.MockTicketRepository
	users   *testutil.MockUserRepository
	tx      *testutil.MockTxManager
	clock   biztime.FixedClock
	logger  *testutil.MockLogger
}

func newSprintFixture(now time.Time) *sprintFixture {
	return &sprintFixture{
		sprints: testutil.NewMockSprintRepository(),
		tickets: testutil.NewMockTicketRepository(),
		users:   testutil.NewMockUserRepository(),
		tx:      testutil.NewMockTxManager(),
		clock:   biztime.FixedClock{At: now},
		logger:  testutil.NewMockLogger(),
	}
}

func (f *sprintFixture) seedTicket(t *testing.T, id uint, points int, status vo.TicketStatus, sprintID *uint) *ticket.Ticket {
	t.Helper()
	state := testutil.TicketState(id, ticket.FormatKey("PROJ", int(id)), points)
	state.Status = status
	state.SprintID = sprintID
	return testutil.SeedTicket(t, f.tickets, state)
}

func (f *sprintFixture) seedClosedSprint(t *testing.T, id uint, name string) *sprint.Sprint {
	t.Helper()
	closedAt := day(2024, 3, 1)
	s, err := sprint.ReconstructSprint(sprint.State{
		ID:        id,
		Name:      name,
		MaxPoints: 10,
		StartDate: day(2024, 2, 19),
		EndDate:   day(2024, 3, 1),
		ClosedAt:  &closedAt,
	})
	require.NoError(t, err)
	f.sprints.AddSprint(s)
	return s
}

func (f *sprintFixture) sprintOf(t *testing.T, ticketID uint) *uint {
	t.Helper()
	tk, err := f.tickets.GetByID(context.Background(), ticketID)
	require.NoError(t, err)
	require.NotNil(t, tk)
	return tk.SprintID()
}

func TestCreateSprint_Success(t *testing.T) {
	f := newSprintFixture(day(2024, 3, 1))
	uc := NewCreateSprintUseCase(f.sprints, f.logger)

	result, err := uc.Execute(context.Background(), CreateSprintCommand{
		Name:      "  Sprint 12 ",
		MaxPoints: 30,
		StartDate: "2024-03-04",
		EndDate:   "2024-03-15",
	})
	require.NoError(t, err)

	assert.NotZero(t, result.ID)
	assert.Equal(t, "Sprint 12", result.Name)
	assert.Equal(t, 30, result.MaxPoints)
	assert.Equal(t, "2024-03-04", result.StartDate)
	assert.Equal(t, "2024-03-15", result.EndDate)
	assert.False(t, result.IsClosed)
}

func TestCreateSprint_Validation(t *testing.T) {
	tests := []struct {
		name      string
		cmd       CreateSprintCommand
		wantItems int
	}{
		{
			name:      "missing name",
			cmd:       CreateSprintCommand{MaxPoints: 10, StartDate: "2024-03-04", EndDate: "2024-03-15"},
			wantItems: 1,
		},
		{
			name:      "non positive capacity",
			cmd:       CreateSprintCommand{Name: "S", MaxPoints: 0, StartDate: "2024-03-04", EndDate: "2024-03-15"},
			wantItems: 1,
		},
		{
			name:      "end before start",
			cmd:       CreateSprintCommand{Name: "S", MaxPoints: 10, StartDate: "2024-03-15", EndDate: "2024-03-04"},
			wantItems: 1,
		},
		{
			name:      "malformed dates and capacity",
			cmd:       CreateSprintCommand{Name: "S", MaxPoints: -1, StartDate: "04/03/2024", EndDate: "soon"},
			wantItems: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSprintFixture(day(2024, 3, 1))
			uc := NewCreateSprintUseCase(f.sprints, f.logger)

			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)

			items, status := errors.ToItems(err)
			assert.Len(t, items, tt.wantItems)
			assert.Equal(t, 400, status)

			all, _ := f.sprints.ListAll(context.Background())
			assert.Empty(t, all)
		})
	}
}

func TestCreateSprint_SameStartAndEndDay(t *testing.T) {
	f := newSprintFixture(day(2024, 3, 1))
	uc := NewCreateSprintUseCase(f.sprints, f.logger)

	result, err := uc.Execute(context.Background(), CreateSprintCommand{
		Name: "Hotfix day", MaxPoints: 5, StartDate: "2024-03-04", EndDate: "2024-03-04",
	})
	require.NoError(t, err)
	assert.Equal(t, result.StartDate, result.EndDate)
}

func newAddTicketsFixture(t *testing.T) (*sprintFixture, *AddTicketsUseCase) {
	t.Helper()
	f := newSprintFixture(day(2024, 3, 6))
	testutil.SeedSprint(t, f.sprints, 1, "Sprint 1", 10, day(2024, 3, 4), day(2024, 3, 15))
	f.seedTicket(t, 1, 6, vo.StatusInProgress, testutil.UintPtr(1))
	return f, NewAddTicketsUseCase(f.sprints, f.tickets, f.tx, f.clock, f.logger)
}

func TestAddTickets_Success(t *testing.T) {
	f, uc := newAddTicketsFixture(t)
	f.seedTicket(t, 2, 3, vo.StatusTodo, nil)
	f.seedTicket(t, 3, 1, vo.StatusTodo, nil)

	result, err := uc.Execute(context.Background(), AddTicketsCommand{SprintID: 1, TicketIDs: []uint{2, 3, 2}})
	require.NoError(t, err)

	assert.Equal(t, uint(1), result.SprintID)
	assert.Equal(t, []uint{2, 3}, result.AddedTicketIDs)
	assert.Equal(t, "Successfully added 2 ticket(s) to sprint", result.Message)
	assert.Equal(t, []uint{1}, f.sprints.LockedIDs)

	assert.Equal(t, testutil.UintPtr(1), f.sprintOf(t, 2))
	assert.Equal(t, testutil.UintPtr(1), f.sprintOf(t, 3))
}

func TestAddTickets_CapacityExceeded(t *testing.T) {
	f, uc := newAddTicketsFixture(t)
	f.seedTicket(t, 2, 5, vo.StatusTodo, nil)

	_, err := uc.Execute(context.Background(), AddTicketsCommand{SprintID: 1, TicketIDs: []uint{2}})
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, common.ReasonSprintCapacityExceeded, appErr.Reason)
	assert.Equal(t, map[string]any{
		"currentPoints":   6,
		"maxPoints":       10,
		"newPoints":       5,
		"availablePoints": 4,
	}, appErr.Params)
	assert.Equal(t, 1, f.tx.Rollbacks)
	assert.Nil(t, f.sprintOf(t, 2))
}

func TestAddTickets_TicketAlreadyInSprintIsNotCountedTwice(t *testing.T) {
	f, uc := newAddTicketsFixture(t)
	f.seedTicket(t, 2, 4, vo.StatusTodo, nil)

	result, err := uc.Execute(context.Background(), AddTicketsCommand{SprintID: 1, TicketIDs: []uint{1, 2}})
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 2}, result.AddedTicketIDs)
	assert.Equal(t, testutil.UintPtr(1), f.sprintOf(t, 2))
}

func TestAddTickets_MovesTicketFromAnotherSprint(t *testing.T) {
	f, uc := newAddTicketsFixture(t)
	testutil.SeedSprint(t, f.sprints, 2, "Sprint 2", 10, day(2024, 3, 18), day(2024, 3, 29))
	f.seedTicket(t, 2, 2, vo.StatusTodo, testutil.UintPtr(2))

	_, err := uc.Execute(context.Background(), AddTicketsCommand{SprintID: 1, TicketIDs: []uint{2}})
	require.NoError(t, err)
	assert.Equal(t, testutil.UintPtr(1), f.sprintOf(t, 2))
}

func TestAddTickets_Failures(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T, f *sprintFixture)
		cmd        AddTicketsCommand
		wantReason string
		wantParams map[string]any
	}{
		{
			name:       "sprint not found",
			cmd:        AddTicketsCommand{SprintID: 42, TicketIDs: []uint{1}},
			wantReason: common.ReasonSprintNotFound,
			wantParams: map[string]any{"sprintId": uint(42)},
		},
		{
			name: "closed sprint",
			setup: func(t *testing.T, f *sprintFixture) {
				f.seedClosedSprint(t, 5, "Old sprint")
			},
			cmd:        AddTicketsCommand{SprintID: 5, TicketIDs: []uint{1}},
			wantReason: common.ReasonSprintAlreadyClosed,
			wantParams: map[string]any{"sprintId": uint(5)},
		},
		{
			name:       "unknown tickets",
			cmd:        AddTicketsCommand{SprintID: 1, TicketIDs: []uint{1, 99, 98}},
			wantReason: common.ReasonTicketsNotFound,
			wantParams: map[string]any{"missingTicketIds": []uint{99, 98}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, uc := newAddTicketsFixture(t)
			if tt.setup != nil {
				tt.setup(t, f)
			}

			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)

			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantReason, appErr.Reason)
			assert.Equal(t, tt.wantParams, appErr.Params)
		})
	}
}

func TestAddTickets_RequiresTicketIDs(t *testing.T) {
	_, uc := newAddTicketsFixture(t)

	_, err := uc.Execute(context.Background(), AddTicketsCommand{SprintID: 1})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestAddTickets_RepositoryFailureIsInternal(t *testing.T) {
	f, uc := newAddTicketsFixture(t)
	f.seedTicket(t, 2, 1, vo.StatusTodo, nil)
	f.tickets.SetUpdateError(assert.AnError)

	_, err := uc.Execute(context.Background(), AddTicketsCommand{SprintID: 1, TicketIDs: []uint{2}})
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 500, appErr.Code)
	assert.True(t, f.logger.HasEntry("ERROR", "failed to add tickets to sprint"))
}

func TestRemoveTickets(t *testing.T) {
	setup := func(t *testing.T) (*sprintFixture, *RemoveTicketsUseCase) {
		t.Helper()
		f := newSprintFixture(day(2024, 3, 6))
		testutil.SeedSprint(t, f.sprints, 1, "Sprint 1", 20, day(2024, 3, 4), day(2024, 3, 15))
		f.seedTicket(t, 1, 3, vo.StatusTodo, testutil.UintPtr(1))
		f.seedTicket(t, 2, 5, vo.StatusTodo, nil)
		f.seedTicket(t, 3, 2, vo.StatusReview, testutil.UintPtr(1))
		return f, NewRemoveTicketsUseCase(f.sprints, f.tickets, f.tx, f.clock, f.logger)
	}

	t.Run("removes every ticket", func(t *testing.T) {
		f, uc := setup(t)

		result, err := uc.Execute(context.Background(), RemoveTicketsCommand{SprintID: 1, TicketIDs: []uint{1, 3}})
		require.NoError(t, err)

		assert.Equal(t, []uint{1, 3}, result.RemovedTicketIDs)
		assert.Equal(t, "Successfully removed 2 ticket(s) from sprint", result.Message)
		assert.Nil(t, f.sprintOf(t, 1))
		assert.Nil(t, f.sprintOf(t, 3))
	})

	t.Run("ticket outside the sprint aborts the whole removal", func(t *testing.T) {
		f, uc := setup(t)

		_, err := uc.Execute(context.Background(), RemoveTicketsCommand{SprintID: 1, TicketIDs: []uint{1, 2}})
		require.Error(t, err)

		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, common.ReasonTicketsNotInSprint, appErr.Reason)
		assert.Equal(t, []uint{2}, appErr.Params["ticketIds"])
		assert.Equal(t, testutil.UintPtr(1), f.sprintOf(t, 1))
	})

	t.Run("unknown ticket", func(t *testing.T) {
		_, uc := setup(t)

		_, err := uc.Execute(context.Background(), RemoveTicketsCommand{SprintID: 1, TicketIDs: []uint{7}})
		assert.True(t, errors.HasReason(err, common.ReasonTicketsNotFound))
	})

	t.Run("unknown sprint", func(t *testing.T) {
		_, uc := setup(t)

		_, err := uc.Execute(context.Background(), RemoveTicketsCommand{SprintID: 9, TicketIDs: []uint{1}})
		assert.True(t, errors.HasReason(err, common.ReasonSprintNotFound))
	})
}

// newCloseSprintFixture builds sprint 1 (max 20) with one completed and three
// incomplete tickets, and sprint 2 (max 10) already holding 2 points.
func newCloseSprintFixture(t *testing.T) (*sprintFixture, *CloseSprintUseCase) {
	t.Helper()
	f := newSprintFixture(time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC))
	testutil.SeedSprint(t, f.sprints, 1, "Sprint 1", 20, day(2024, 3, 4), day(2024, 3, 15))
	testutil.SeedSprint(t, f.sprints, 2, "Sprint 2", 10, day(2024, 3, 18), day(2024, 3, 29))

	f.seedTicket(t, 1, 5, vo.StatusTestOK, testutil.UintPtr(1))
	f.seedTicket(t, 2, 3, vo.StatusInProgress, testutil.UintPtr(1))
	f.seedTicket(t, 3, 8, vo.StatusReview, testutil.UintPtr(1))
	f.seedTicket(t, 4, 4, vo.StatusTodo, testutil.UintPtr(1))
	f.seedTicket(t, 5, 2, vo.StatusTodo, testutil.UintPtr(2))

	return f, NewCloseSprintUseCase(f.sprints, f.tickets, f.tx, f.clock, f.logger)
}

func TestCloseSprint_MovesWhatFitsIntoTarget(t *testing.T) {
	f, uc := newCloseSprintFixture(t)

	result, err := uc.Execute(context.Background(), CloseSprintCommand{
		SprintID:         1,
		MoveIncompleteTo: testutil.UintPtr(2),
	})
	require.NoError(t, err)

	assert.Equal(t, "Sprint closed successfully. 1/4 tickets completed (25%)", result.Message)
	assert.True(t, result.Sprint.IsClosed)
	assert.Equal(t, 4, result.Statistics.TotalTickets)
	assert.Equal(t, 1, result.Statistics.CompletedTickets)
	assert.Equal(t, 15, result.Statistics.IncompletePoints)
	assert.Equal(t, 0.5, result.Statistics.Velocity)

	require.Len(t, result.IncompleteTickets, 3)
	actions := map[uint]string{}
	for _, it := range result.IncompleteTickets {
		actions[it.TicketID] = it.Action
	}
	assert.Equal(t, map[uint]string{2: "moved", 3: "removed", 4: "moved"}, actions)
	assert.Equal(t, "Sprint 2", result.IncompleteTickets[0].NewSprintName)

	assert.Equal(t, testutil.UintPtr(1), f.sprintOf(t, 1))
	assert.Equal(t, testutil.UintPtr(2), f.sprintOf(t, 2))
	assert.Nil(t, f.sprintOf(t, 3))
	assert.Equal(t, testutil.UintPtr(2), f.sprintOf(t, 4))

	closed, err := f.sprints.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, closed.IsClosed())
	require.NotNil(t, closed.Report())
	assert.Equal(t, []uint{3}, closed.Report().Removed())
	assert.ElementsMatch(t, []uint{1, 2}, f.sprints.LockedIDs)
}

func TestCloseSprint_Policies(t *testing.T) {
	tests := []struct {
		name          string
		cmd           CloseSprintCommand
		wantSprintIDs map[uint]*uint
		wantAction    string
	}{
		{
			name:       "remove incomplete",
			cmd:        CloseSprintCommand{SprintID: 1, RemoveIncomplete: true},
			wantAction: "removed",
			wantSprintIDs: map[uint]*uint{
				1: testutil.UintPtr(1), 2: nil, 3: nil, 4: nil,
			},
		},
		{
			name:       "keep incomplete",
			cmd:        CloseSprintCommand{SprintID: 1},
			wantAction: "kept",
			wantSprintIDs: map[uint]*uint{
				1: testutil.UintPtr(1), 2: testutil.UintPtr(1), 3: testutil.UintPtr(1), 4: testutil.UintPtr(1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, uc := newCloseSprintFixture(t)

			result, err := uc.Execute(context.Background(), tt.cmd)
			require.NoError(t, err)

			for _, it := range result.IncompleteTickets {
				assert.Equal(t, tt.wantAction, it.Action)
				assert.Nil(t, it.NewSprintID)
			}
			for id, want := range tt.wantSprintIDs {
				assert.Equal(t, want, f.sprintOf(t, id), "ticket %d", id)
			}
		})
	}
}

func TestCloseSprint_Failures(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T, f *sprintFixture)
		cmd        CloseSprintCommand
		wantReason string
	}{
		{
			name:       "conflicting options",
			cmd:        CloseSprintCommand{SprintID: 1, MoveIncompleteTo: testutil.UintPtr(2), RemoveIncomplete: true},
			wantReason: common.ReasonConflictingClosure,
		},
		{
			name:       "target is the closed sprint",
			cmd:        CloseSprintCommand{SprintID: 1, MoveIncompleteTo: testutil.UintPtr(1)},
			wantReason: common.ReasonTargetIsSameSprint,
		},
		{
			name:       "sprint not found",
			cmd:        CloseSprintCommand{SprintID: 77},
			wantReason: common.ReasonSprintNotFound,
		},
		{
			name:       "target not found",
			cmd:        CloseSprintCommand{SprintID: 1, MoveIncompleteTo: testutil.UintPtr(77)},
			wantReason: common.ReasonTargetSprintNotFound,
		},
		{
			name: "target already ended",
			setup: func(t *testing.T, f *sprintFixture) {
				testutil.SeedSprint(t, f.sprints, 3, "Sprint 0", 10, day(2024, 2, 19), day(2024, 3, 1))
			},
			cmd:        CloseSprintCommand{SprintID: 1, MoveIncompleteTo: testutil.UintPtr(3)},
			wantReason: common.ReasonTargetSprintEnded,
		},
		{
			name: "target closed",
			setup: func(t *testing.T, f *sprintFixture) {
				f.seedClosedSprint(t, 3, "Sprint 0")
			},
			cmd:        CloseSprintCommand{SprintID: 1, MoveIncompleteTo: testutil.UintPtr(3)},
			wantReason: common.ReasonTargetSprintEnded,
		},
		{
			name: "already closed",
			setup: func(t *testing.T, f *sprintFixture) {
				f.seedClosedSprint(t, 3, "Sprint 0")
			},
			cmd:        CloseSprintCommand{SprintID: 3},
			wantReason: common.ReasonSprintAlreadyClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, uc := newCloseSprintFixture(t)
			if tt.setup != nil {
				tt.setup(t, f)
			}

			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, errors.HasReason(err, tt.wantReason), "got %v", err)

			open, err := f.sprints.GetByID(context.Background(), 1)
			require.NoError(t, err)
			assert.False(t, open.IsClosed())
			assert.Equal(t, testutil.UintPtr(1), f.sprintOf(t, 2))
		})
	}
}

func TestCloseSprint_TargetEndedParams(t *testing.T) {
	f, uc := newCloseSprintFixture(t)
	testutil.SeedSprint(t, f.sprints, 3, "Sprint 0", 10, day(2024, 2, 19), day(2024, 3, 1))

	_, err := uc.Execute(context.Background(), CloseSprintCommand{SprintID: 1, MoveIncompleteTo: testutil.UintPtr(3)})
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, map[string]any{"sprintId": uint(3), "endDate": "2024-03-01"}, appErr.Params)
}
