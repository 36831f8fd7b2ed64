package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/testutil"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
)

type imageFixture struct {
	images  *testutil.MockImageRepository
	users   *testutil.MockUserRepository
	tickets *testutil.MockTicketRepository
	tests   *testutil.MockTestRepository
}

func newImageFixture(t *testing.T) *imageFixture {
	t.Helper()
	f := &imageFixture{
		images:  testutil.NewMockImageRepository(),
		users:   testutil.NewMockUserRepository(),
		tickets: testutil.NewMockTicketRepository(),
		tests:   testutil.NewMockTestRepository(),
	}
	testutil.SeedUser(t, f.users, "dev@example.com", "Ada", "Lovelace")
	testutil.SeedTicket(t, f.tickets, testutil.TicketState(1, "PROJ-001", 2))
	return f
}

func attachCommand(imageType string) AttachImageCommand {
	return AttachImageCommand{
		Type:     imageType,
		URL:      "https://cdn.example.com/a.png",
		Filename: "a.png",
		MimeType: "image/png",
		Size:     2048,
	}
}

func TestAttachImage(t *testing.T) {
	withTicket := func(c AttachImageCommand) AttachImageCommand {
		c.TicketID = testutil.UintPtr(1)
		return c
	}

	tests := []struct {
		name       string
		cmd        AttachImageCommand
		wantReason string
		wantValid  bool
	}{
		{
			name: "ticket attachment",
			cmd:  withTicket(attachCommand("TICKET_ATTACHMENT")),
		},
		{
			name: "avatar",
			cmd: func() AttachImageCommand {
				c := attachCommand("AVATAR")
				c.UserID = testutil.UintPtr(1)
				return c
			}(),
		},
		{
			name:       "owner does not match type",
			cmd:        withTicket(attachCommand("AVATAR")),
			wantReason: common.ReasonImageOwnerInvalid,
		},
		{
			name: "two owners",
			cmd: func() AttachImageCommand {
				c := withTicket(attachCommand("TICKET_ATTACHMENT"))
				c.UserID = testutil.UintPtr(1)
				return c
			}(),
			wantReason: common.ReasonImageOwnerInvalid,
		},
		{
			name: "missing ticket",
			cmd: func() AttachImageCommand {
				c := attachCommand("TICKET_ATTACHMENT")
				c.TicketID = testutil.UintPtr(8)
				return c
			}(),
			wantReason: common.ReasonTicketNotFound,
		},
		{
			name: "missing test",
			cmd: func() AttachImageCommand {
				c := attachCommand("TEST_ATTACHMENT")
				c.TestID = testutil.UintPtr(8)
				return c
			}(),
			wantReason: common.ReasonTestNotFound,
		},
		{
			name: "not an image",
			cmd: func() AttachImageCommand {
				c := withTicket(attachCommand("TICKET_ATTACHMENT"))
				c.MimeType = "application/pdf"
				return c
			}(),
			wantValid: true,
		},
		{
			name:      "unknown type",
			cmd:       withTicket(attachCommand("BANNER")),
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newImageFixture(t)
			uc := NewAttachImageUseCase(f.images, f.users, f.tickets, f.tests, testutil.NewMockLogger())

			result, err := uc.Execute(context.Background(), tt.cmd)
			switch {
			case tt.wantReason != "":
				assert.True(t, errors.HasReason(err, tt.wantReason), "got %v", err)
			case tt.wantValid:
				assert.True(t, errors.IsValidationError(err), "got %v", err)
			default:
				require.NoError(t, err)
				assert.NotZero(t, result.ID)
				assert.Equal(t, tt.cmd.Type, result.Type)
				assert.Equal(t, int64(2048), result.Size)
			}
		})
	}
}

func TestDeleteImage(t *testing.T) {
	f := newImageFixture(t)
	attach := NewAttachImageUseCase(f.images, f.users, f.tickets, f.tests, testutil.NewMockLogger())
	created, err := attach.Execute(context.Background(), func() AttachImageCommand {
		c := attachCommand("TICKET_ATTACHMENT")
		c.TicketID = testutil.UintPtr(1)
		return c
	}())
	require.NoError(t, err)

	uc := NewDeleteImageUseCase(f.images, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), DeleteImageCommand{ImageID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "a.png", result.Filename)
	assert.Equal(t, "Image deleted successfully", result.Message)

	_, err = uc.Execute(context.Background(), DeleteImageCommand{ImageID: created.ID})
	assert.True(t, errors.HasReason(err, common.ReasonImageNotFound))
}
