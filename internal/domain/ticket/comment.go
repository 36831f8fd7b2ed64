package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/XavierPelle/sprintly/internal/shared/biztime"
)

const CommentMaxLength = 5000

type Comment struct {
	id          uint
	ticketID    uint
	userID      uint
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewComment(ticketID, userID uint, description string) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("comment cannot be empty")
	}
	if utf8.RuneCountInString(description) > CommentMaxLength {
		return nil, fmt.Errorf("comment exceeds maximum length of %d characters", CommentMaxLength)
	}

	now := biztime.NowUTC()
	return &Comment{
		ticketID:    ticketID,
		userID:      userID,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructComment(id, ticketID, userID uint, description string, createdAt, updatedAt time.Time) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	return &Comment{
		id:          id,
		ticketID:    ticketID,
		userID:      userID,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) TicketID() uint       { return c.ticketID }
func (c *Comment) UserID() uint         { return c.userID }
func (c *Comment) Description() string  { return c.description }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
func (c *Comment) UpdatedAt() time.Time { return c.updatedAt }

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	c.id = id
	return nil
}
