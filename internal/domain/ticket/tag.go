package ticket

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/constants"
)

var tagColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Tag struct {
	id        uint
	ticketID  uint
	content   string
	color     string
	createdAt time.Time
}

func NewTag(ticketID uint, content, color string) (*Tag, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("tag content cannot be empty")
	}
	if utf8.RuneCountInString(content) > constants.MaxTagLength {
		return nil, fmt.Errorf("tag content exceeds maximum length of %d characters", constants.MaxTagLength)
	}
	if !tagColorPattern.MatchString(color) {
		return nil, fmt.Errorf("tag color must be a hex color like #1A2B3C")
	}
	return &Tag{
		ticketID:  ticketID,
		content:   content,
		color:     strings.ToUpper(color),
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructTag(id, ticketID uint, content, color string, createdAt time.Time) *Tag {
	return &Tag{id: id, ticketID: ticketID, content: content, color: color, createdAt: createdAt}
}

func (t *Tag) ID() uint             { return t.id }
func (t *Tag) TicketID() uint       { return t.ticketID }
func (t *Tag) Content() string      { return t.content }
func (t *Tag) Color() string        { return t.color }
func (t *Tag) CreatedAt() time.Time { return t.createdAt }

func (t *Tag) SetID(id uint) {
	t.id = id
}

// CheckCanAddTag enforces per-ticket tag rules: content is unique ignoring
// case, and a ticket carries at most MaxTagsPerTicket tags.
func CheckCanAddTag(existing []*Tag, content string) error {
	content = strings.TrimSpace(content)
	for _, tag := range existing {
		if strings.EqualFold(tag.content, content) {
			return ErrTagAlreadyExists
		}
	}
	if len(existing) >= constants.MaxTagsPerTicket {
		return ErrMaxTagsReached
	}
	return nil
}
