package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	uservo "github.com/XavierPelle/sprintly/internal/domain/user/valueobjects"
)

// NewUser builds an unsaved user with a valid email and name.
func NewUser(t *testing.T, email, first, last string) *user.User {
	t.Helper()
	e, err := uservo.NewEmail(email)
	require.NoError(t, err)
	n, err := uservo.NewName(first, last)
	require.NoError(t, err)
	u, err := user.NewUser(e, n)
	require.NoError(t, err)
	return u
}

// SeedUser creates a user in repo and returns it with its ID set.
func SeedUser(t *testing.T, repo *MockUserRepository, email, first, last string) *user.User {
	t.Helper()
	u := NewUser(t, email, first, last)
	require.NoError(t, repo.Create(t.Context(), u))
	return u
}

// TicketState returns a valid persisted ticket state that tests can tweak.
func TicketState(id uint, key string, points int) ticket.State {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return ticket.State{
		ID:               id,
		Key:              key,
		Title:            "Ticket " + key,
		Description:      "Description of " + key,
		Status:           vo.StatusTodo,
		Priority:         vo.PriorityMedium,
		Type:             vo.TypeTask,
		DifficultyPoints: points,
		CreatorID:        1,
		CreatedAt:        created,
		UpdatedAt:        created,
	}
}

// SeedTicket reconstructs state and stores it in repo.
func SeedTicket(t *testing.T, repo *MockTicketRepository, state ticket.State) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.ReconstructTicket(state)
	require.NoError(t, err)
	repo.AddTicket(tk)
	return tk
}

// SeedSprint stores an open sprint spanning start..end (calendar days, UTC).
func SeedSprint(t *testing.T, repo *MockSprintRepository, id uint, name string, maxPoints int, start, end time.Time) *sprint.Sprint {
	t.Helper()
	s, err := sprint.ReconstructSprint(sprint.State{
		ID:        id,
		Name:      name,
		MaxPoints: maxPoints,
		StartDate: start,
		EndDate:   end,
		CreatedAt: start,
		UpdatedAt: start,
	})
	require.NoError(t, err)
	repo.AddSprint(s)
	return s
}

// UintPtr returns a pointer to v.
func UintPtr(v uint) *uint { return &v }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool { return &v }
