package ticket

import (
	"errors"
	"fmt"

	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
)

var (
	ErrAlreadyInStatus  = errors.New("ticket is already in the requested status")
	ErrTagAlreadyExists = errors.New("tag already exists on ticket")
	ErrMaxTagsReached   = errors.New("maximum number of tags reached")
	ErrTagNotOnTicket   = errors.New("tag is not associated with ticket")
)

// TransitionError reports a status change outside the workflow table.
type TransitionError struct {
	From    vo.TicketStatus
	To      vo.TicketStatus
	Allowed []vo.TicketStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}
