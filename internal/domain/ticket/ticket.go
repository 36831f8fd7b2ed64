package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
)

const (
	TitleMinLength       = 3
	TitleMaxLength       = 200
	DescriptionMinLength = 10
	DescriptionMaxLength = 10000
	MaxDifficultyPoints  = 100
	BlockedReasonMaxLen  = 500
)

type Ticket struct {
	id               uint
	key              string
	title            string
	description      string
	status           vo.TicketStatus
	priority         vo.Priority
	ticketType       vo.TicketType
	difficultyPoints int
	isBlocked        bool
	blockedReason    string
	blockedAt        *time.Time
	branch           string
	pullRequestLink  string
	testLink         string
	creatorID        uint
	assigneeID       *uint
	sprintID         *uint
	createdAt        time.Time
	updatedAt        time.Time
}

// State is the persisted form of a ticket used to rebuild the aggregate.
type State struct {
	ID               uint
	Key              string
	Title            string
	Description      string
	Status           vo.TicketStatus
	Priority         vo.Priority
	Type             vo.TicketType
	DifficultyPoints int
	IsBlocked        bool
	BlockedReason    string
	BlockedAt        *time.Time
	Branch           string
	PullRequestLink  string
	TestLink         string
	CreatorID        uint
	AssigneeID       *uint
	SprintID         *uint
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewTicket creates a ticket in TODO status with no history.
func NewTicket(
	key string,
	title string,
	description string,
	ticketType vo.TicketType,
	priority vo.Priority,
	difficultyPoints int,
	creatorID uint,
) (*Ticket, error) {
	if key == "" {
		return nil, fmt.Errorf("ticket key is required")
	}
	if err := validateContent(title, description); err != nil {
		return nil, err
	}
	if !ticketType.IsValid() {
		return nil, fmt.Errorf("invalid ticket type: %s", ticketType)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if err := validatePoints(difficultyPoints); err != nil {
		return nil, err
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := biztime.NowUTC()
	return &Ticket{
		key:              key,
		title:            strings.TrimSpace(title),
		description:      description,
		status:           vo.StatusTodo,
		priority:         priority,
		ticketType:       ticketType,
		difficultyPoints: difficultyPoints,
		creatorID:        creatorID,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructTicket(s State) (*Ticket, error) {
	if s.ID == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if s.Key == "" {
		return nil, fmt.Errorf("ticket key is required")
	}
	if !s.Status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", s.Status)
	}
	if !s.Priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", s.Priority)
	}
	if !s.Type.IsValid() {
		return nil, fmt.Errorf("invalid ticket type: %s", s.Type)
	}

	return &Ticket{
		id:               s.ID,
		key:              s.Key,
		title:            s.Title,
		description:      s.Description,
		status:           s.Status,
		priority:         s.Priority,
		ticketType:       s.Type,
		difficultyPoints: s.DifficultyPoints,
		isBlocked:        s.IsBlocked,
		blockedReason:    s.BlockedReason,
		blockedAt:        s.BlockedAt,
		branch:           s.Branch,
		pullRequestLink:  s.PullRequestLink,
		testLink:         s.TestLink,
		creatorID:        s.CreatorID,
		assigneeID:       s.AssigneeID,
		sprintID:         s.SprintID,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
	}, nil
}

func validateContent(title, description string) error {
	titleLen := utf8.RuneCountInString(strings.TrimSpace(title))
	if titleLen < TitleMinLength || titleLen > TitleMaxLength {
		return fmt.Errorf("title must be between %d and %d characters", TitleMinLength, TitleMaxLength)
	}
	descLen := utf8.RuneCountInString(description)
	if descLen < DescriptionMinLength || descLen > DescriptionMaxLength {
		return fmt.Errorf("description must be between %d and %d characters", DescriptionMinLength, DescriptionMaxLength)
	}
	return nil
}

func validatePoints(points int) error {
	if points < 0 || points > MaxDifficultyPoints {
		return fmt.Errorf("difficulty points must be between 0 and %d", MaxDifficultyPoints)
	}
	return nil
}

func (t *Ticket) ID() uint                { return t.id }
func (t *Ticket) Key() string             { return t.key }
func (t *Ticket) Title() string           { return t.title }
func (t *Ticket) Description() string     { return t.description }
func (t *Ticket) Status() vo.TicketStatus { return t.status }
func (t *Ticket) Priority() vo.Priority   { return t.priority }
func (t *Ticket) Type() vo.TicketType     { return t.ticketType }
func (t *Ticket) DifficultyPoints() int   { return t.difficultyPoints }
func (t *Ticket) IsBlocked() bool         { return t.isBlocked }
func (t *Ticket) BlockedReason() string   { return t.blockedReason }
func (t *Ticket) BlockedAt() *time.Time   { return t.blockedAt }
func (t *Ticket) Branch() string          { return t.branch }
func (t *Ticket) PullRequestLink() string { return t.pullRequestLink }
func (t *Ticket) TestLink() string        { return t.testLink }
func (t *Ticket) CreatorID() uint         { return t.creatorID }
func (t *Ticket) AssigneeID() *uint       { return t.assigneeID }
func (t *Ticket) SprintID() *uint         { return t.sprintID }
func (t *Ticket) CreatedAt() time.Time    { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time    { return t.updatedAt }
func (t *Ticket) IsCompleted() bool       { return t.status.IsCompleted() }

func (t *Ticket) IsAssignedTo(userID uint) bool {
	return t.assigneeID != nil && *t.assigneeID == userID
}

// InSprint reports whether the ticket is attached to sprintID.
func (t *Ticket) InSprint(sprintID uint) bool {
	return t.sprintID != nil && *t.sprintID == sprintID
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// ReplaceKey swaps the key of a ticket that has not been persisted yet,
// used when the proposed key collided on insert.
func (t *Ticket) ReplaceKey(key string) error {
	if t.id != 0 {
		return fmt.Errorf("cannot change the key of a persisted ticket")
	}
	if key == "" {
		return fmt.Errorf("ticket key is required")
	}
	t.key = key
	return nil
}

// ChangeStatus moves the ticket to newStatus. When enforce is set, the move
// must follow the workflow adjacency table.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus, enforce bool, now time.Time) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	if t.status == newStatus {
		return ErrAlreadyInStatus
	}
	if enforce && !t.status.CanTransitionTo(newStatus) {
		return &TransitionError{
			From:    t.status,
			To:      newStatus,
			Allowed: t.status.AllowedTransitions(),
		}
	}

	t.status = newStatus
	t.updatedAt = now
	return nil
}

// AssignTo sets the assignee. A nil userID unassigns the ticket.
func (t *Ticket) AssignTo(userID *uint) {
	t.assigneeID = userID
	t.updatedAt = biztime.NowUTC()
}

// MoveToSprint attaches the ticket to sprintID, or detaches it when nil.
func (t *Ticket) MoveToSprint(sprintID *uint) {
	t.sprintID = sprintID
	t.updatedAt = biztime.NowUTC()
}

func (t *Ticket) Block(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("blocked reason is required")
	}
	if utf8.RuneCountInString(reason) > BlockedReasonMaxLen {
		return fmt.Errorf("blocked reason exceeds maximum length of %d characters", BlockedReasonMaxLen)
	}
	now := biztime.NowUTC()
	if !t.isBlocked {
		t.blockedAt = &now
	}
	t.isBlocked = true
	t.blockedReason = reason
	t.updatedAt = now
	return nil
}

func (t *Ticket) Unblock() {
	if !t.isBlocked {
		return
	}
	t.isBlocked = false
	t.blockedReason = ""
	t.blockedAt = nil
	t.updatedAt = biztime.NowUTC()
}

// UpdateDetails replaces the editable fields of the ticket.
func (t *Ticket) UpdateDetails(title, description string, ticketType vo.TicketType, priority vo.Priority, points int) error {
	if err := validateContent(title, description); err != nil {
		return err
	}
	if !ticketType.IsValid() {
		return fmt.Errorf("invalid ticket type: %s", ticketType)
	}
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", priority)
	}
	if err := validatePoints(points); err != nil {
		return err
	}
	t.title = strings.TrimSpace(title)
	t.description = description
	t.ticketType = ticketType
	t.priority = priority
	t.difficultyPoints = points
	t.updatedAt = biztime.NowUTC()
	return nil
}

func (t *Ticket) SetBranch(branch string) error {
	if branch != "" && !IsValidBranchName(branch) {
		return fmt.Errorf("invalid branch name: %s", branch)
	}
	t.branch = branch
	t.updatedAt = biztime.NowUTC()
	return nil
}

func (t *Ticket) SetPullRequestLink(link string) {
	t.pullRequestLink = strings.TrimSpace(link)
	t.updatedAt = biztime.NowUTC()
}

func (t *Ticket) SetTestLink(link string) {
	t.testLink = strings.TrimSpace(link)
	t.updatedAt = biztime.NowUTC()
}
