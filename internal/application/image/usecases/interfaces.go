package usecases

import (
	"context"

	"github.com/XavierPelle/sprintly/internal/application/image/dto"
)

type AttachImageExecutor interface {
	Execute(ctx context.Context, cmd AttachImageCommand) (*dto.ImageDTO, error)
}

type DeleteImageExecutor interface {
	Execute(ctx context.Context, cmd DeleteImageCommand) (*DeleteImageResult, error)
}
