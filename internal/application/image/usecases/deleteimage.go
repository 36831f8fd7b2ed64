package usecases

import (
	"context"
	"fmt"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/domain/image"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type DeleteImageCommand struct {
	ImageID uint
}

type DeleteImageResult struct {
	ImageID  uint   `json:"imageId"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

type DeleteImageUseCase struct {
	imageRepo image.Repository
	logger    logger.Interface
}

func NewDeleteImageUseCase(imageRepo image.Repository, logger logger.Interface) *DeleteImageUseCase {
	return &DeleteImageUseCase{
		imageRepo: imageRepo,
		logger:    logger,
	}
}

// Execute removes the image metadata. The stored file is not touched.
func (uc *DeleteImageUseCase) Execute(ctx context.Context, cmd DeleteImageCommand) (*DeleteImageResult, error) {
	uc.logger.Infow("executing delete image use case", "image_id", cmd.ImageID)

	img, err := uc.imageRepo.GetByID(ctx, cmd.ImageID)
	if err != nil {
		uc.logger.Errorw("failed to load image", "image_id", cmd.ImageID, "error", err)
		return nil, errors.NewInternalError("failed to delete image")
	}
	if img == nil {
		return nil, errors.NewEntityNotFoundError(common.ReasonImageNotFound,
			fmt.Sprintf("Image with ID %d not found", cmd.ImageID),
			map[string]any{"imageId": cmd.ImageID})
	}

	if err := uc.imageRepo.Delete(ctx, img.ID()); err != nil {
		uc.logger.Errorw("failed to delete image", "image_id", img.ID(), "error", err)
		return nil, errors.NewInternalError("failed to delete image")
	}

	uc.logger.Infow("image deleted successfully", "image_id", img.ID())
	return &DeleteImageResult{
		ImageID:  img.ID(),
		Filename: img.Metadata().Filename,
		Message:  "Image deleted successfully",
	}, nil
}
