package common

import (
	stderrors "errors"
	"fmt"

	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/utils/setutil"
)

// Reason codes carried by AppError.Reason. Clients branch on these, so they
// never change once published.
const (
	ReasonTicketNotFound         = "TICKET_NOT_FOUND"
	ReasonTicketsNotFound        = "TICKETS_NOT_FOUND"
	ReasonTicketsNotInSprint     = "TICKETS_NOT_IN_SPRINT"
	ReasonTicketAlreadyInStatus  = "TICKET_ALREADY_IN_STATUS"
	ReasonInvalidTransition      = "INVALID_STATUS_TRANSITION"
	ReasonKeyGenerationFailed    = "TICKET_KEY_GENERATION_FAILED"
	ReasonSprintNotFound         = "SPRINT_NOT_FOUND"
	ReasonSprintAlreadyClosed    = "SPRINT_ALREADY_CLOSED"
	ReasonSprintCapacityExceeded = "SPRINT_CAPACITY_EXCEEDED"
	ReasonTargetSprintNotFound   = "TARGET_SPRINT_NOT_FOUND"
	ReasonTargetSprintEnded      = "TARGET_SPRINT_ALREADY_ENDED"
	ReasonTargetIsSameSprint     = "TARGET_IS_SAME_SPRINT"
	ReasonConflictingClosure     = "CONFLICTING_CLOSURE_OPTIONS"
	ReasonUserNotFound           = "USER_NOT_FOUND"
	ReasonAssigneeNotFound       = "ASSIGNEE_NOT_FOUND"
	ReasonEmailAlreadyExists     = "EMAIL_ALREADY_EXISTS"
	ReasonInvalidCredentials     = "INVALID_CREDENTIALS"
	ReasonAccountLocked          = "ACCOUNT_LOCKED"
	ReasonInvalidRefreshToken    = "INVALID_REFRESH_TOKEN"
	ReasonInvalidCurrentPassword = "INVALID_CURRENT_PASSWORD"
	ReasonPasswordUnchanged      = "PASSWORD_UNCHANGED"
	ReasonPasswordMismatch       = "PASSWORD_CONFIRMATION_MISMATCH"
	ReasonTagAlreadyExists       = "TAG_ALREADY_EXISTS"
	ReasonMaxTagsReached         = "MAX_TAGS_REACHED"
	ReasonTagNotFound            = "TAG_NOT_FOUND"
	ReasonTagNotOnTicket         = "TAG_NOT_ASSOCIATED_WITH_TICKET"
	ReasonTestNotFound           = "TEST_NOT_FOUND"
	ReasonImageNotFound          = "IMAGE_NOT_FOUND"
	ReasonImageOwnerInvalid      = "INVALID_IMAGE_OWNER"
)

func TicketNotFound(id uint) *errors.AppError {
	return errors.NewEntityNotFoundError(ReasonTicketNotFound,
		fmt.Sprintf("Ticket with ID %d not found", id),
		map[string]any{"ticketId": id})
}

func SprintNotFound(id uint) *errors.AppError {
	return errors.NewEntityNotFoundError(ReasonSprintNotFound,
		fmt.Sprintf("Sprint with ID %d not found", id),
		map[string]any{"sprintId": id})
}

func UserNotFound(id uint) *errors.AppError {
	return errors.NewEntityNotFoundError(ReasonUserNotFound,
		fmt.Sprintf("User with ID %d not found", id),
		map[string]any{"userId": id})
}

func TestNotFound(id uint) *errors.AppError {
	return errors.NewEntityNotFoundError(ReasonTestNotFound,
		fmt.Sprintf("Test with ID %d not found", id),
		map[string]any{"testId": id})
}

// CapacityError converts a domain capacity failure into SPRINT_CAPACITY_EXCEEDED.
// Other errors are returned unchanged.
func CapacityError(err error) error {
	var capErr *sprint.CapacityExceededError
	if !stderrors.As(err, &capErr) {
		return err
	}
	return errors.NewBusinessRuleError(ReasonSprintCapacityExceeded,
		fmt.Sprintf("Sprint capacity exceeded: %d available, %d requested", capErr.Available, capErr.New),
		map[string]any{
			"currentPoints":   capErr.Current,
			"maxPoints":       capErr.Max,
			"newPoints":       capErr.New,
			"availablePoints": capErr.Available,
		})
}

// SprintClosed reports an operation on a sprint that has been closed.
func SprintClosed(s *sprint.Sprint) *errors.AppError {
	return errors.NewBusinessRuleError(ReasonSprintAlreadyClosed,
		fmt.Sprintf("Sprint %s is already closed", s.Name()),
		map[string]any{"sprintId": s.ID()})
}

// MissingIDs returns the requested ids absent from found, preserving request order.
func MissingIDs(requested, found []uint) []uint {
	missing := setutil.New(requested...).Missing(setutil.New(found...))
	if missing == nil {
		return []uint{}
	}
	return missing
}

// UniqueIDs drops duplicates while keeping the first occurrence order.
func UniqueIDs(ids []uint) []uint {
	return setutil.New(ids...).ToSlice()
}
