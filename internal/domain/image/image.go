package image

import (
	"fmt"
	"strings"
	"time"

	"github.com/XavierPelle/sprintly/internal/shared/biztime"
)

type Type string

const (
	TypeAvatar           Type = "AVATAR"
	TypeTicketAttachment Type = "TICKET_ATTACHMENT"
	TypeTestAttachment   Type = "TEST_ATTACHMENT"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeAvatar, TypeTicketAttachment, TypeTestAttachment:
		return true
	}
	return false
}

// Owner points an image at exactly one of a user, ticket or test.
type Owner struct {
	UserID   *uint
	TicketID *uint
	TestID   *uint
}

func (o Owner) count() int {
	n := 0
	for _, id := range []*uint{o.UserID, o.TicketID, o.TestID} {
		if id != nil {
			n++
		}
	}
	return n
}

// Validate checks that exactly one owner is set and that it matches t.
func (o Owner) Validate(t Type) error {
	if o.count() != 1 {
		return ErrOwnerCount
	}
	var ok bool
	switch t {
	case TypeAvatar:
		ok = o.UserID != nil
	case TypeTicketAttachment:
		ok = o.TicketID != nil
	case TypeTestAttachment:
		ok = o.TestID != nil
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrOwnerTypeMismatch, t)
	}
	return nil
}

// Metadata describes a stored file. Binary content lives elsewhere.
type Metadata struct {
	URL          string
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	DisplayOrder int
}

type Image struct {
	id        uint
	imageType Type
	meta      Metadata
	owner     Owner
	createdAt time.Time
}

func NewImage(t Type, meta Metadata, owner Owner) (*Image, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid image type: %s", t)
	}
	meta.URL = strings.TrimSpace(meta.URL)
	if meta.URL == "" {
		return nil, fmt.Errorf("image url is required")
	}
	if strings.TrimSpace(meta.Filename) == "" {
		return nil, fmt.Errorf("image filename is required")
	}
	if meta.MimeType != "" && !strings.HasPrefix(meta.MimeType, "image/") {
		return nil, fmt.Errorf("unsupported mime type: %s", meta.MimeType)
	}
	if meta.Size < 0 {
		return nil, fmt.Errorf("image size cannot be negative")
	}
	if err := owner.Validate(t); err != nil {
		return nil, err
	}
	return &Image{
		imageType: t,
		meta:      meta,
		owner:     owner,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructImage(id uint, t Type, meta Metadata, owner Owner, createdAt time.Time) *Image {
	return &Image{id: id, imageType: t, meta: meta, owner: owner, createdAt: createdAt}
}

func (i *Image) ID() uint             { return i.id }
func (i *Image) Type() Type           { return i.imageType }
func (i *Image) Metadata() Metadata   { return i.meta }
func (i *Image) Owner() Owner         { return i.owner }
func (i *Image) CreatedAt() time.Time { return i.createdAt }

func (i *Image) SetID(id uint) {
	i.id = id
}
