package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/testutil"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
)

type createTicketFixture struct {
	tickets  *testutil.MockTicketRepository
	users    *testutil.MockUserRepository
	sprints  *testutil.MockSprintRepository
	keys     *testutil.MockKeyGenerator
	tx       *testutil.MockTxManager
	notifier *testutil.MockNotifier
	uc       *CreateTicketUseCase
}

func newCreateTicketFixture(t *testing.T) *createTicketFixture {
	t.Helper()
	f := &createTicketFixture{
		tickets:  testutil.NewMockTicketRepository(),
		users:    testutil.NewMockUserRepository(),
		sprints:  testutil.NewMockSprintRepository(),
		keys:     testutil.NewMockKeyGenerator(),
		tx:       testutil.NewMockTxManager(),
		notifier: testutil.NewMockNotifier(),
	}
	f.uc = NewCreateTicketUseCase(f.tickets, f.users, f.sprints, f.keys, f.tx, f.notifier, "PROJ", testutil.NewMockLogger())
	f.uc.newBackOff = func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 4)
	}
	return f
}

func validCreateCommand(creatorID uint) CreateTicketCommand {
	return CreateTicketCommand{
		Title:            "Fix login page",
		Description:      "The login button does nothing",
		Type:             "BUG",
		Priority:         "HIGH",
		DifficultyPoints: 3,
		CreatorID:        creatorID,
	}
}

func TestCreateTicket_Success(t *testing.T) {
	f := newCreateTicketFixture(t)
	creator := testutil.SeedUser(t, f.users, "creator@example.com", "Ada", "Lovelace")
	assignee := testutil.SeedUser(t, f.users, "dev@example.com", "Alan", "Turing")

	cmd := validCreateCommand(creator.ID())
	cmd.AssigneeID = testutil.UintPtr(assignee.ID())

	result, err := f.uc.Execute(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, "PROJ-001", result.Ticket.Key)
	assert.Equal(t, "TODO", result.Ticket.Status)
	assert.Equal(t, "BUG", result.Ticket.Type)
	assert.Equal(t, "proj-001-fix-login-page", result.SuggestedBranch)
	require.NotNil(t, result.Ticket.AssigneeID)
	assert.Equal(t, assignee.ID(), *result.Ticket.AssigneeID)

	require.Len(t, f.notifier.Assigned, 1)
	assert.Equal(t, "dev@example.com", f.notifier.Assigned[0].RecipientEmail)
	assert.Equal(t, "PROJ-001", f.notifier.Assigned[0].TicketKey)
}

func TestCreateTicket_UsesCommandPrefix(t *testing.T) {
	f := newCreateTicketFixture(t)
	creator := testutil.SeedUser(t, f.users, "creator@example.com", "Ada", "Lovelace")

	cmd := validCreateCommand(creator.ID())
	cmd.ProjectPrefix = "OPS"

	result, err := f.uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "OPS-001", result.Ticket.Key)
}

func TestCreateTicket_NotifierFailureIsIgnored(t *testing.T) {
	f := newCreateTicketFixture(t)
	creator := testutil.SeedUser(t, f.users, "creator@example.com", "Ada", "Lovelace")
	f.notifier.SendError = fmt.Errorf("smtp down")

	cmd := validCreateCommand(creator.ID())
	cmd.AssigneeID = testutil.UintPtr(creator.ID())

	_, err := f.uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
}

func TestCreateTicket_RetriesOnDuplicateKey(t *testing.T) {
	f := newCreateTicketFixture(t)
	creator := testutil.SeedUser(t, f.users, "creator@example.com", "Ada", "Lovelace")
	testutil.SeedTicket(t, f.tickets, testutil.TicketState(1, "PROJ-001", 1))

	proposals := []string{"PROJ-001", "PROJ-001", "PROJ-002"}
	f.keys.GenerateFunc = func(ctx context.Context, prefix string) (string, error) {
		key := proposals[0]
		proposals = proposals[1:]
		return key, nil
	}

	result, err := f.uc.Execute(context.Background(), validCreateCommand(creator.ID()))
	require.NoError(t, err)

	assert.Equal(t, "PROJ-002", result.Ticket.Key)
	assert.Equal(t, 3, f.keys.Calls)
	assert.Equal(t, 3, f.tx.Calls)
	assert.Equal(t, 2, f.tx.Rollbacks)
}

func TestCreateTicket_KeyRetriesExhausted(t *testing.T) {
	f := newCreateTicketFixture(t)
	creator := testutil.SeedUser(t, f.users, "creator@example.com", "Ada", "Lovelace")
	testutil.SeedTicket(t, f.tickets, testutil.TicketState(1, "PROJ-001", 1))
	f.keys.GenerateFunc = func(ctx context.Context, prefix string) (string, error) {
		return "PROJ-001", nil
	}

	_, err := f.uc.Execute(context.Background(), validCreateCommand(creator.ID()))
	require.Error(t, err)

	assert.True(t, errors.IsConflictError(err))
	assert.True(t, errors.HasReason(err, common.ReasonKeyGenerationFailed))
	assert.Equal(t, 5, f.keys.Calls)
}

func TestCreateTicket_NonDuplicateErrorIsNotRetried(t *testing.T) {
	f := newCreateTicketFixture(t)
	creator := testutil.SeedUser(t, f.users, "creator@example.com", "Ada", "Lovelace")
	f.tickets.SetCreateErrors(fmt.Errorf("connection reset"))

	_, err := f.uc.Execute(context.Background(), validCreateCommand(creator.ID()))
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeInternal, appErr.Type)
	assert.Equal(t, 1, f.tickets.CreateCalls)
}

func TestCreateTicket_SprintCapacity(t *testing.T) {
	start := time.Now().UTC().AddDate(0, 0, -1)
	end := start.AddDate(0, 0, 14)

	tests := []struct {
		name       string
		points     int
		wantReason string
	}{
		{name: "fits", points: 2},
		{name: "exceeds", points: 5, wantReason: common.ReasonSprintCapacityExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCreateTicketFixture(t)
			creator := testutil.SeedUser(t, f.users, "creator@example.com", "Ada", "Lovelace")
			testutil.SeedSprint(t, f.sprints, 7, "Sprint 7", 10, start, end)

			existing := testutil.TicketState(1, "PROJ-100", 8)
			existing.SprintID = testutil.UintPtr(7)
			testutil.SeedTicket(t, f.tickets, existing)

			cmd := validCreateCommand(creator.ID())
			cmd.DifficultyPoints = tt.points
			cmd.SprintID = testutil.UintPtr(7)

			result, err := f.uc.Execute(context.Background(), cmd)
			assert.Equal(t, []uint{7}, f.sprints.LockedIDs)

			if tt.wantReason == "" {
				require.NoError(t, err)
				require.NotNil(t, result.Ticket.SprintID)
				assert.Equal(t, uint(7), *result.Ticket.SprintID)
				return
			}

			require.Error(t, err)
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantReason, appErr.Reason)
			assert.Equal(t, map[string]any{
				"currentPoints":   8,
				"maxPoints":       10,
				"newPoints":       5,
				"availablePoints": 2,
			}, appErr.Params)
			assert.Zero(t, f.keys.Calls)
		})
	}
}

func TestCreateTicket_ClosedSprint(t *testing.T) {
	f := newCreateTicketFixture(t)
	creator := testutil.SeedUser(t, f.users, "creator@example.com", "Ada", "Lovelace")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sp := testutil.SeedSprint(t, f.sprints, 3, "Old", 10, start, start.AddDate(0, 0, 13))
	require.NoError(t, sp.Close(sprint.ClosureReport{}, start.AddDate(0, 0, 14)))

	cmd := validCreateCommand(creator.ID())
	cmd.SprintID = testutil.UintPtr(3)

	_, err := f.uc.Execute(context.Background(), cmd)
	assert.True(t, errors.HasReason(err, common.ReasonSprintAlreadyClosed))
}

func TestCreateTicket_Failures(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(cmd *CreateTicketCommand)
		wantReason string
		wantType   errors.ErrorType
	}{
		{
			name:       "unknown creator",
			mutate:     func(cmd *CreateTicketCommand) { cmd.CreatorID = 99 },
			wantReason: common.ReasonUserNotFound,
		},
		{
			name:       "unknown assignee",
			mutate:     func(cmd *CreateTicketCommand) { cmd.AssigneeID = testutil.UintPtr(42) },
			wantReason: common.ReasonAssigneeNotFound,
		},
		{
			name:       "unknown sprint",
			mutate:     func(cmd *CreateTicketCommand) { cmd.SprintID = testutil.UintPtr(5) },
			wantReason: common.ReasonSprintNotFound,
		},
		{
			name:     "invalid type",
			mutate:   func(cmd *CreateTicketCommand) { cmd.Type = "EPIC" },
			wantType: errors.ErrorTypeValidation,
		},
		{
			name:     "invalid prefix",
			mutate:   func(cmd *CreateTicketCommand) { cmd.ProjectPrefix = "proj" },
			wantType: errors.ErrorTypeValidation,
		},
		{
			name:     "points out of range",
			mutate:   func(cmd *CreateTicketCommand) { cmd.DifficultyPoints = -1 },
			wantType: errors.ErrorTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCreateTicketFixture(t)
			creator := testutil.SeedUser(t, f.users, "creator@example.com", "Ada", "Lovelace")
			cmd := validCreateCommand(creator.ID())
			tt.mutate(&cmd)

			_, err := f.uc.Execute(context.Background(), cmd)
			require.Error(t, err)

			if tt.wantReason != "" {
				assert.True(t, errors.HasReason(err, tt.wantReason), "got %v", err)
			}
			if tt.wantType != "" {
				appErr := errors.GetAppError(err)
				require.NotNil(t, appErr)
				assert.Equal(t, tt.wantType, appErr.Type)
			}
			assert.Zero(t, f.tickets.CreateCalls)
		})
	}
}
