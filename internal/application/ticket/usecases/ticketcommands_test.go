package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/testutil"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
)

func TestAssignTicket(t *testing.T) {
	ctx := context.Background()
	tickets := testutil.NewMockTicketRepository()
	users := testutil.NewMockUserRepository()
	notifier := testutil.NewMockNotifier()
	dev := testutil.SeedUser(t, users, "dev@example.com", "Grace", "Hopper")
	testutil.SeedTicket(t, tickets, testutil.TicketState(1, "PROJ-001", 2))

	tx := testutil.NewMockTxManager()
	uc := NewAssignTicketUseCase(tickets, users, tx, notifier, testutil.NewMockLogger())

	result, err := uc.Execute(ctx, AssignTicketCommand{TicketID: 1, AssigneeID: testutil.UintPtr(dev.ID())})
	require.NoError(t, err)
	require.NotNil(t, result.AssigneeID)
	assert.Equal(t, dev.ID(), *result.AssigneeID)
	require.Len(t, notifier.Assigned, 1)
	assert.Equal(t, "Grace Hopper", notifier.Assigned[0].RecipientName)

	_, err = uc.Execute(ctx, AssignTicketCommand{TicketID: 1, AssigneeID: testutil.UintPtr(dev.ID())})
	require.NoError(t, err)
	assert.Len(t, notifier.Assigned, 1, "reassigning the same user does not notify again")

	result, err = uc.Execute(ctx, AssignTicketCommand{TicketID: 1})
	require.NoError(t, err)
	assert.Nil(t, result.AssigneeID)

	_, err = uc.Execute(ctx, AssignTicketCommand{TicketID: 1, AssigneeID: testutil.UintPtr(77)})
	assert.True(t, errors.HasReason(err, common.ReasonUserNotFound))

	_, err = uc.Execute(ctx, AssignTicketCommand{TicketID: 2})
	assert.True(t, errors.HasReason(err, common.ReasonTicketNotFound))

	assert.Equal(t, []uint{1, 1, 1, 1, 2}, tickets.LockedIDs)
	assert.Equal(t, 5, tx.Calls)
	assert.Equal(t, 2, tx.Rollbacks)
}

func TestAssignTicket_UpdateFailureSkipsNotification(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	users := testutil.NewMockUserRepository()
	notifier := testutil.NewMockNotifier()
	tx := testutil.NewMockTxManager()
	dev := testutil.SeedUser(t, users, "dev@example.com", "Grace", "Hopper")
	testutil.SeedTicket(t, tickets, testutil.TicketState(1, "PROJ-001", 2))
	tickets.SetUpdateError(assert.AnError)

	uc := NewAssignTicketUseCase(tickets, users, tx, notifier, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), AssignTicketCommand{TicketID: 1, AssigneeID: testutil.UintPtr(dev.ID())})
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.True(t, appErr.IsCritical())
	assert.Equal(t, 1, tx.Rollbacks)
	assert.Empty(t, notifier.Assigned)
}

func TestUpdateTicket(t *testing.T) {
	tests := []struct {
		name    string
		cmd     UpdateTicketCommand
		wantErr bool
		check   func(t *testing.T, cmd UpdateTicketCommand, tickets *testutil.MockTicketRepository)
	}{
		{
			name: "partial update keeps other fields",
			cmd: UpdateTicketCommand{
				TicketID: 1,
				Priority: testutil.StringPtr("CRITICAL"),
				Branch:   testutil.StringPtr("proj-001-hotfix"),
			},
			check: func(t *testing.T, _ UpdateTicketCommand, tickets *testutil.MockTicketRepository) {
				tk, _ := tickets.GetByID(context.Background(), 1)
				assert.Equal(t, vo.PriorityCritical, tk.Priority())
				assert.Equal(t, "Ticket PROJ-001", tk.Title())
				assert.Equal(t, "proj-001-hotfix", tk.Branch())
			},
		},
		{
			name: "block and unblock",
			cmd: UpdateTicketCommand{
				TicketID:      1,
				IsBlocked:     testutil.BoolPtr(true),
				BlockedReason: testutil.StringPtr("waiting for API keys"),
			},
			check: func(t *testing.T, _ UpdateTicketCommand, tickets *testutil.MockTicketRepository) {
				tk, _ := tickets.GetByID(context.Background(), 1)
				assert.True(t, tk.IsBlocked())
				assert.Equal(t, "waiting for API keys", tk.BlockedReason())
				assert.NotNil(t, tk.BlockedAt())
			},
		},
		{
			name:    "block without reason",
			cmd:     UpdateTicketCommand{TicketID: 1, IsBlocked: testutil.BoolPtr(true)},
			wantErr: true,
		},
		{
			name: "invalid enums are reported together",
			cmd: UpdateTicketCommand{
				TicketID: 1,
				Type:     testutil.StringPtr("EPIC"),
				Priority: testutil.StringPtr("URGENT"),
			},
			wantErr: true,
		},
		{
			name:    "invalid branch",
			cmd:     UpdateTicketCommand{TicketID: 1, Branch: testutil.StringPtr("feature..x")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tickets := testutil.NewMockTicketRepository()
			testutil.SeedTicket(t, tickets, testutil.TicketState(1, "PROJ-001", 2))
			uc := NewUpdateTicketUseCase(tickets, testutil.NewMockLogger())

			_, err := uc.Execute(context.Background(), tt.cmd)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			tt.check(t, tt.cmd, tickets)
		})
	}
}

func TestUpdateTicket_ReportsAllEnumErrors(t *testing.T) {
	tickets := testutil.NewMockTicketRepository()
	testutil.SeedTicket(t, tickets, testutil.TicketState(1, "PROJ-001", 2))
	uc := NewUpdateTicketUseCase(tickets, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID: 1,
		Type:     testutil.StringPtr("EPIC"),
		Priority: testutil.StringPtr("URGENT"),
	})

	items, status := errors.ToItems(err)
	assert.Equal(t, 400, status)
	assert.Len(t, items, 2)
}

func TestTags(t *testing.T) {
	ctx := context.Background()
	tickets := testutil.NewMockTicketRepository()
	tags := testutil.NewMockTagRepository()
	testutil.SeedTicket(t, tickets, testutil.TicketState(1, "PROJ-001", 2))
	testutil.SeedTicket(t, tickets, testutil.TicketState(2, "PROJ-002", 2))

	add := NewAddTagUseCase(tickets, tags, testutil.NewMockTxManager(), testutil.NewMockLogger())
	remove := NewRemoveTagUseCase(tickets, tags, testutil.NewMockLogger())

	tag, err := add.Execute(ctx, AddTagCommand{TicketID: 1, Content: "backend", Color: "#1A2B3C"})
	require.NoError(t, err)
	assert.Equal(t, "backend", tag.Content)

	_, err = add.Execute(ctx, AddTagCommand{TicketID: 1, Content: "BACKEND", Color: "#000000"})
	assert.True(t, errors.HasReason(err, common.ReasonTagAlreadyExists))

	_, err = add.Execute(ctx, AddTagCommand{TicketID: 1, Content: "x", Color: "blue"})
	assert.True(t, errors.IsValidationError(err))

	_, err = add.Execute(ctx, AddTagCommand{TicketID: 9, Content: "x", Color: "#000000"})
	assert.True(t, errors.HasReason(err, common.ReasonTicketNotFound))
	assert.Equal(t, []uint{1, 1, 9}, tickets.LockedIDs, "invalid colors are rejected before the ticket is locked")

	_, err = remove.Execute(ctx, RemoveTagCommand{TicketID: 2, TagID: tag.ID})
	assert.True(t, errors.HasReason(err, common.ReasonTagNotOnTicket))

	_, err = remove.Execute(ctx, RemoveTagCommand{TicketID: 1, TagID: 99})
	assert.True(t, errors.HasReason(err, common.ReasonTagNotFound))

	removed, err := remove.Execute(ctx, RemoveTagCommand{TicketID: 1, TagID: tag.ID})
	require.NoError(t, err)
	assert.Equal(t, tag.ID, removed.TagID)

	remaining, _ := tags.ListByTicket(ctx, 1)
	assert.Empty(t, remaining)
}

func TestAddTag_MaxTagsReached(t *testing.T) {
	ctx := context.Background()
	tickets := testutil.NewMockTicketRepository()
	tags := testutil.NewMockTagRepository()
	testutil.SeedTicket(t, tickets, testutil.TicketState(1, "PROJ-001", 2))
	add := NewAddTagUseCase(tickets, tags, testutil.NewMockTxManager(), testutil.NewMockLogger())

	for i := 0; i < 10; i++ {
		_, err := add.Execute(ctx, AddTagCommand{TicketID: 1, Content: "tag-" + string(rune('a'+i)), Color: "#FFFFFF"})
		require.NoError(t, err)
	}

	_, err := add.Execute(ctx, AddTagCommand{TicketID: 1, Content: "one-more", Color: "#FFFFFF"})
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, common.ReasonMaxTagsReached, appErr.Reason)
	assert.Equal(t, 10, appErr.Params["maxTags"])
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	tickets := testutil.NewMockTicketRepository()
	comments := testutil.NewMockCommentRepository()
	users := testutil.NewMockUserRepository()
	author := testutil.SeedUser(t, users, "qa@example.com", "Margaret", "Hamilton")
	testutil.SeedTicket(t, tickets, testutil.TicketState(1, "PROJ-001", 2))

	uc := NewAddCommentUseCase(tickets, comments, users, testutil.NewMockLogger())

	result, err := uc.Execute(ctx, AddCommentCommand{TicketID: 1, UserID: author.ID(), Description: "Reproduced on staging"})
	require.NoError(t, err)
	require.NotNil(t, result.Author)
	assert.Equal(t, "Margaret Hamilton", result.Author.FullName)

	tests := []struct {
		name       string
		cmd        AddCommentCommand
		wantReason string
	}{
		{"unknown ticket", AddCommentCommand{TicketID: 5, UserID: author.ID(), Description: "hi"}, common.ReasonTicketNotFound},
		{"unknown user", AddCommentCommand{TicketID: 1, UserID: 50, Description: "hi"}, common.ReasonUserNotFound},
		{"too long", AddCommentCommand{TicketID: 1, UserID: author.ID(), Description: strings.Repeat("a", 5001)}, ""},
		{"empty", AddCommentCommand{TicketID: 1, UserID: author.ID(), Description: "   "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.cmd)
			require.Error(t, err)
			if tt.wantReason == "" {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			assert.True(t, errors.HasReason(err, tt.wantReason))
		})
	}
}
