package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

func TestTicketHistoryRepository_Chain(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketHistoryRepository(db, logger.NewNop())
	ctx := context.Background()

	latest, err := repo.GetLatestByTicket(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, latest)

	start := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	steps := []struct {
		from vo.TicketStatus
		to   vo.TicketStatus
		at   time.Time
	}{
		{vo.StatusTodo, vo.StatusInProgress, start},
		{vo.StatusInProgress, vo.StatusReview, start.Add(3 * time.Hour)},
		{vo.StatusReview, vo.StatusTest, start.Add(5 * time.Hour)},
	}

	for _, step := range steps {
		previous, err := repo.GetLatestByTicket(ctx, 1)
		require.NoError(t, err)

		h, err := ticket.NewHistory(1, step.from, step.to, uintPtr(4), previous, step.at)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, h))
		assert.NotZero(t, h.ID())
	}

	entries, err := repo.ListByTicket(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Nil(t, entries[0].StartedAt())
	assert.Nil(t, entries[0].DurationSeconds())
	for i := 1; i < len(entries); i++ {
		require.NotNil(t, entries[i].StartedAt())
		assert.True(t, entries[i].StartedAt().Equal(entries[i-1].CompletedAt()))
	}
	require.NotNil(t, entries[1].DurationSeconds())
	assert.Equal(t, int64(3*3600), *entries[1].DurationSeconds())
	assert.Equal(t, int64(2*3600), *entries[2].DurationSeconds())

	latest, err = repo.GetLatestByTicket(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusTest, latest.ToStatus())
	require.NotNil(t, latest.FromStatus())
	assert.Equal(t, vo.StatusReview, *latest.FromStatus())
}
