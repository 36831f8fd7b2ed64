package dto

import (
	"time"

	"github.com/XavierPelle/sprintly/internal/domain/image"
)

type ImageDTO struct {
	ID           uint      `json:"id"`
	Type         string    `json:"type"`
	URL          string    `json:"url"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName,omitempty"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	DisplayOrder int       `json:"displayOrder"`
	UserID       *uint     `json:"userId,omitempty"`
	TicketID     *uint     `json:"ticketId,omitempty"`
	TestID       *uint     `json:"testId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func ToImageDTO(img *image.Image) *ImageDTO {
	if img == nil {
		return nil
	}
	meta := img.Metadata()
	owner := img.Owner()
	return &ImageDTO{
		ID:           img.ID(),
		Type:         string(img.Type()),
		URL:          meta.URL,
		Filename:     meta.Filename,
		OriginalName: meta.OriginalName,
		MimeType:     meta.MimeType,
		Size:         meta.Size,
		DisplayOrder: meta.DisplayOrder,
		UserID:       owner.UserID,
		TicketID:     owner.TicketID,
		TestID:       owner.TestID,
		CreatedAt:    img.CreatedAt(),
	}
}
