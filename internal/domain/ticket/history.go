package ticket

import (
	"fmt"
	"time"

	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
)

// History is one row of the append-only status audit trail. Rows of a
// ticket form a chain: each startedAt equals the previous row's completedAt.
type History struct {
	id              uint
	ticketID        uint
	fromStatus      *vo.TicketStatus
	toStatus        vo.TicketStatus
	changedBy       *uint
	startedAt       *time.Time
	completedAt     time.Time
	durationSeconds *int64
}

// NewHistory records a transition completed at now. previous is the latest
// existing row of the ticket, or nil for its first transition.
func NewHistory(
	ticketID uint,
	from vo.TicketStatus,
	to vo.TicketStatus,
	changedBy *uint,
	previous *History,
	now time.Time,
) (*History, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !to.IsValid() {
		return nil, fmt.Errorf("invalid target status: %s", to)
	}

	h := &History{
		ticketID:    ticketID,
		toStatus:    to,
		changedBy:   changedBy,
		completedAt: now,
	}
	if from != "" {
		fromStatus := from
		h.fromStatus = &fromStatus
	}
	if previous != nil {
		startedAt := previous.completedAt
		duration := int64(now.Sub(startedAt) / time.Second)
		h.startedAt = &startedAt
		h.durationSeconds = &duration
	}
	return h, nil
}

func ReconstructHistory(
	id uint,
	ticketID uint,
	fromStatus *vo.TicketStatus,
	toStatus vo.TicketStatus,
	changedBy *uint,
	startedAt *time.Time,
	completedAt time.Time,
	durationSeconds *int64,
) *History {
	return &History{
		id:              id,
		ticketID:        ticketID,
		fromStatus:      fromStatus,
		toStatus:        toStatus,
		changedBy:       changedBy,
		startedAt:       startedAt,
		completedAt:     completedAt,
		durationSeconds: durationSeconds,
	}
}

func (h *History) ID() uint                     { return h.id }
func (h *History) TicketID() uint               { return h.ticketID }
func (h *History) FromStatus() *vo.TicketStatus { return h.fromStatus }
func (h *History) ToStatus() vo.TicketStatus    { return h.toStatus }
func (h *History) ChangedBy() *uint             { return h.changedBy }
func (h *History) StartedAt() *time.Time        { return h.startedAt }
func (h *History) CompletedAt() time.Time       { return h.completedAt }
func (h *History) DurationSeconds() *int64      { return h.durationSeconds }

func (h *History) SetID(id uint) {
	h.id = id
}
