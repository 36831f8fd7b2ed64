package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/testutil"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
)

type stepClock struct {
	at time.Time
}

func (c *stepClock) Now() time.Time { return c.at }

type changeStatusFixture struct {
	tickets *testutil.MockTicketRepository
	history *testutil.MockHistoryRepository
	tx      *testutil.MockTxManager
	clock   *stepClock
}

func newChangeStatusFixture() *changeStatusFixture {
	return &changeStatusFixture{
		tickets: testutil.NewMockTicketRepository(),
		history: testutil.NewMockHistoryRepository(),
		tx:      testutil.NewMockTxManager(),
		clock:   &stepClock{at: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)},
	}
}

func (f *changeStatusFixture) useCase(workflow WorkflowSettings) *ChangeStatusUseCase {
	return NewChangeStatusUseCase(f.tickets, f.history, f.tx, f.clock, workflow, testutil.NewMockLogger())
}

func TestChangeStatus_AppendsHistoryChain(t *testing.T) {
	f := newChangeStatusFixture()
	state := testutil.TicketState(1, "PROJ-001", 3)
	state.AssigneeID = testutil.UintPtr(9)
	testutil.SeedTicket(t, f.tickets, state)
	uc := f.useCase(WorkflowSettings{EnforceTransitions: true})

	first, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 1, NewStatus: "IN_PROGRESS", ChangedBy: 4})
	require.NoError(t, err)
	assert.Equal(t, "TODO", first.PreviousStatus)
	assert.Equal(t, "IN_PROGRESS", first.NewStatus)
	assert.Equal(t, "PROJ-001", first.TicketKey)
	assert.Nil(t, first.DurationSeconds)
	assert.Equal(t, "Ticket status changed from TODO to IN_PROGRESS", first.Message)

	f.clock.at = f.clock.at.Add(90 * time.Minute)
	second, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 1, NewStatus: "REVIEW", ChangedBy: 4})
	require.NoError(t, err)
	require.NotNil(t, second.DurationSeconds)
	assert.Equal(t, int64(5400), *second.DurationSeconds)
	assert.NotEqual(t, first.HistoryID, second.HistoryID)

	entries, err := f.history.ListByTicket(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NotNil(t, entries[1].StartedAt())
	assert.Equal(t, entries[0].CompletedAt(), *entries[1].StartedAt())
	require.NotNil(t, entries[1].ChangedBy())
	assert.Equal(t, uint(9), *entries[1].ChangedBy())

	stored, _ := f.tickets.GetByID(context.Background(), 1)
	assert.Equal(t, vo.StatusReview, stored.Status())
	assert.Equal(t, []uint{1, 1}, f.tickets.LockedIDs)
}

func TestChangeStatus_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		status     vo.TicketStatus
		newStatus  string
		enforce    bool
		wantReason string
		wantParams map[string]any
	}{
		{
			name:       "already in status",
			status:     vo.StatusReview,
			newStatus:  "REVIEW",
			enforce:    false,
			wantReason: common.ReasonTicketAlreadyInStatus,
			wantParams: map[string]any{"currentStatus": "REVIEW"},
		},
		{
			name:       "transition outside workflow",
			status:     vo.StatusTodo,
			newStatus:  "TEST",
			enforce:    true,
			wantReason: common.ReasonInvalidTransition,
			wantParams: map[string]any{
				"currentStatus":      "TODO",
				"requestedStatus":    "TEST",
				"allowedTransitions": []string{"IN_PROGRESS"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChangeStatusFixture()
			state := testutil.TicketState(1, "PROJ-001", 3)
			state.Status = tt.status
			testutil.SeedTicket(t, f.tickets, state)

			_, err := f.useCase(WorkflowSettings{EnforceTransitions: tt.enforce}).
				Execute(context.Background(), ChangeStatusCommand{TicketID: 1, NewStatus: tt.newStatus})
			require.Error(t, err)

			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantReason, appErr.Reason)
			assert.Equal(t, tt.wantParams, appErr.Params)
			assert.Equal(t, 1, f.tx.Rollbacks)

			entries, _ := f.history.ListByTicket(context.Background(), 1)
			assert.Empty(t, entries)
		})
	}
}

func TestChangeStatus_EnforcementDisabledAllowsJumps(t *testing.T) {
	f := newChangeStatusFixture()
	testutil.SeedTicket(t, f.tickets, testutil.TicketState(1, "PROJ-001", 3))

	result, err := f.useCase(WorkflowSettings{EnforceTransitions: false}).
		Execute(context.Background(), ChangeStatusCommand{TicketID: 1, NewStatus: "PRODUCTION"})
	require.NoError(t, err)
	assert.Equal(t, "PRODUCTION", result.NewStatus)
}

func TestChangeStatus_GeneratesTestLink(t *testing.T) {
	f := newChangeStatusFixture()
	state := testutil.TicketState(1, "PROJ-001", 3)
	state.Status = vo.StatusReview
	state.Branch = "proj-001-fix-login"
	testutil.SeedTicket(t, f.tickets, state)

	result, err := f.useCase(WorkflowSettings{EnforceTransitions: true, TestLinkDomain: "review.example.com"}).
		Execute(context.Background(), ChangeStatusCommand{TicketID: 1, NewStatus: "TEST"})
	require.NoError(t, err)

	assert.Regexp(t, `^https://r[0-9a-f]{30}\.review\.example\.com/$`, result.TestLink)
}

func TestChangeStatus_InputErrors(t *testing.T) {
	f := newChangeStatusFixture()
	uc := f.useCase(WorkflowSettings{EnforceTransitions: true})

	_, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 1, NewStatus: "DONE"})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 404, NewStatus: "IN_PROGRESS"})
	assert.True(t, errors.HasReason(err, common.ReasonTicketNotFound))
}

func TestChangeStatus_HistoryFailureRollsBack(t *testing.T) {
	f := newChangeStatusFixture()
	testutil.SeedTicket(t, f.tickets, testutil.TicketState(1, "PROJ-001", 3))
	f.history.SetCreateError(assert.AnError)
	uc := f.useCase(WorkflowSettings{EnforceTransitions: true})

	result, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 1, NewStatus: "IN_PROGRESS", ChangedBy: 4})

	require.Error(t, err)
	assert.Nil(t, result)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.True(t, appErr.IsCritical())
	assert.Equal(t, 1, f.tx.Rollbacks)

	entries, err := f.history.ListByTicket(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
