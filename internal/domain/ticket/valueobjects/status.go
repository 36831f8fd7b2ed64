package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusTodo          TicketStatus = "TODO"
	StatusInProgress    TicketStatus = "IN_PROGRESS"
	StatusReview        TicketStatus = "REVIEW"
	StatusChangeRequest TicketStatus = "CHANGE_REQUEST"
	StatusTest          TicketStatus = "TEST"
	StatusTestOK        TicketStatus = "TEST_OK"
	StatusTestKO        TicketStatus = "TEST_KO"
	StatusProduction    TicketStatus = "PRODUCTION"
)

// allStatuses lists statuses in workflow order.
var allStatuses = []TicketStatus{
	StatusTodo,
	StatusInProgress,
	StatusReview,
	StatusChangeRequest,
	StatusTest,
	StatusTestOK,
	StatusTestKO,
	StatusProduction,
}

// ticketStatusTransitions is the adjacency table of legal status changes.
var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusTodo:          {StatusInProgress},
	StatusInProgress:    {StatusTodo, StatusReview},
	StatusReview:        {StatusInProgress, StatusChangeRequest, StatusTest},
	StatusChangeRequest: {StatusInProgress},
	StatusTest:          {StatusTestOK, StatusTestKO},
	StatusTestKO:        {StatusInProgress},
	StatusTestOK:        {StatusProduction},
	StatusProduction:    {},
}

// AllStatuses returns every status in workflow order.
func AllStatuses() []TicketStatus {
	out := make([]TicketStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	_, ok := ticketStatusTransitions[ts]
	return ok
}

// AllowedTransitions returns the statuses reachable from ts in one step.
func (ts TicketStatus) AllowedTransitions() []TicketStatus {
	allowed := ticketStatusTransitions[ts]
	out := make([]TicketStatus, len(allowed))
	copy(out, allowed)
	return out
}

func (ts TicketStatus) CanTransitionTo(newStatus TicketStatus) bool {
	for _, allowed := range ticketStatusTransitions[ts] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

// IsCompleted reports whether work on the ticket counts as done for
// velocity and capacity statistics.
func (ts TicketStatus) IsCompleted() bool {
	return ts == StatusTestOK || ts == StatusProduction
}

// IsActive reports whether someone is actively working the ticket.
func (ts TicketStatus) IsActive() bool {
	switch ts {
	case StatusInProgress, StatusReview, StatusChangeRequest, StatusTest, StatusTestKO, StatusTestOK:
		return true
	}
	return false
}

// IsOpenWork reports whether the ticket is started but not shipped.
func (ts TicketStatus) IsOpenWork() bool {
	return ts != StatusTodo && ts != StatusProduction
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
