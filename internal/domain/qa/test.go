package qa

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/XavierPelle/sprintly/internal/shared/biztime"
)

const DescriptionMaxLength = 5000

// Test is a manual QA check recorded against a ticket. It starts pending and
// is later validated or rejected by a reviewer.
type Test struct {
	id          uint
	ticketID    uint
	userID      uint
	description string
	isValidated bool
	validatedBy *uint
	createdAt   time.Time
	updatedAt   time.Time
}

func NewTest(ticketID, userID uint, description string) (*Test, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("test description is required")
	}
	if utf8.RuneCountInString(description) > DescriptionMaxLength {
		return nil, fmt.Errorf("test description exceeds maximum length of %d characters", DescriptionMaxLength)
	}

	now := biztime.NowUTC()
	return &Test{
		ticketID:    ticketID,
		userID:      userID,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTest(id, ticketID, userID uint, description string, isValidated bool, validatedBy *uint, createdAt, updatedAt time.Time) *Test {
	return &Test{
		id:          id,
		ticketID:    ticketID,
		userID:      userID,
		description: description,
		isValidated: isValidated,
		validatedBy: validatedBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (t *Test) ID() uint             { return t.id }
func (t *Test) TicketID() uint       { return t.ticketID }
func (t *Test) UserID() uint         { return t.userID }
func (t *Test) Description() string  { return t.description }
func (t *Test) IsValidated() bool    { return t.isValidated }
func (t *Test) ValidatedBy() *uint   { return t.validatedBy }
func (t *Test) CreatedAt() time.Time { return t.createdAt }
func (t *Test) UpdatedAt() time.Time { return t.updatedAt }

func (t *Test) SetID(id uint) {
	t.id = id
}

// Review records the reviewer's verdict. A rejected test counts as failing.
func (t *Test) Review(validated bool, reviewerID uint, now time.Time) {
	t.isValidated = validated
	t.validatedBy = &reviewerID
	t.updatedAt = now
}
