package mappers

import (
	"github.com/XavierPelle/sprintly/internal/domain/image"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/models"
)

func ImageToModel(img *image.Image) *models.ImageModel {
	meta := img.Metadata()
	owner := img.Owner()
	return &models.ImageModel{
		ID:           img.ID(),
		URL:          meta.URL,
		Filename:     meta.Filename,
		OriginalName: meta.OriginalName,
		MimeType:     meta.MimeType,
		Size:         meta.Size,
		DisplayOrder: meta.DisplayOrder,
		Type:         string(img.Type()),
		UserID:       owner.UserID,
		TicketID:     owner.TicketID,
		TestID:       owner.TestID,
		CreatedAt:    toMillis(img.CreatedAt()),
	}
}

func ImageToDomain(model *models.ImageModel) *image.Image {
	return image.ReconstructImage(
		model.ID,
		image.Type(model.Type),
		image.Metadata{
			URL:          model.URL,
			Filename:     model.Filename,
			OriginalName: model.OriginalName,
			MimeType:     model.MimeType,
			Size:         model.Size,
			DisplayOrder: model.DisplayOrder,
		},
		image.Owner{UserID: model.UserID, TicketID: model.TicketID, TestID: model.TestID},
		fromMillis(model.CreatedAt),
	)
}
