package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketStatus_CanTransitionTo(t *testing.T) {
	allowed := map[TicketStatus][]TicketStatus{
		StatusTodo:          {StatusInProgress},
		StatusInProgress:    {StatusTodo, StatusReview},
		StatusReview:        {StatusInProgress, StatusChangeRequest, StatusTest},
		StatusChangeRequest: {StatusInProgress},
		StatusTest:          {StatusTestOK, StatusTestKO},
		StatusTestKO:        {StatusInProgress},
		StatusTestOK:        {StatusProduction},
		StatusProduction:    {},
	}

	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTicketStatus_AllowedTransitionsIsCopy(t *testing.T) {
	got := StatusReview.AllowedTransitions()
	require.Len(t, got, 3)
	got[0] = StatusProduction

	assert.Equal(t, StatusInProgress, StatusReview.AllowedTransitions()[0])
	assert.Empty(t, StatusProduction.AllowedTransitions())
}

func TestTicketStatus_Classification(t *testing.T) {
	tests := []struct {
		status    TicketStatus
		completed bool
		active    bool
		openWork  bool
	}{
		{StatusTodo, false, false, false},
		{StatusInProgress, false, true, true},
		{StatusReview, false, true, true},
		{StatusChangeRequest, false, true, true},
		{StatusTest, false, true, true},
		{StatusTestKO, false, true, true},
		{StatusTestOK, true, true, true},
		{StatusProduction, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.completed, tt.status.IsCompleted())
			assert.Equal(t, tt.active, tt.status.IsActive())
			assert.Equal(t, tt.openWork, tt.status.IsOpenWork())
		})
	}
}

func TestNewTicketStatus(t *testing.T) {
	s, err := NewTicketStatus("TEST_KO")
	require.NoError(t, err)
	assert.Equal(t, StatusTestKO, s)

	_, err = NewTicketStatus("DONE")
	assert.Error(t, err)
}
