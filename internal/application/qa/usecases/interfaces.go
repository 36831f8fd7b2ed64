package usecases

import (
	"context"

	"github.com/XavierPelle/sprintly/internal/application/qa/dto"
)

type CreateTestExecutor interface {
	Execute(ctx context.Context, cmd CreateTestCommand) (*dto.TestDTO, error)
}

type ValidateTestExecutor interface {
	Execute(ctx context.Context, cmd ValidateTestCommand) (*dto.ValidateTestDTO, error)
}
