package usecases

import (
	"context"

	"github.com/XavierPelle/sprintly/internal/application/sprint/dto"
)

type CreateSprintExecutor interface {
	Execute(ctx context.Context, cmd CreateSprintCommand) (*dto.SprintDTO, error)
}

type ListSprintsExecutor interface {
	Execute(ctx context.Context, q ListSprintsQuery) (*dto.SprintListDTO, error)
}

type GetSprintDetailsExecutor interface {
	Execute(ctx context.Context, q GetSprintDetailsQuery) (*dto.SprintDetailsDTO, error)
}

type AddTicketsExecutor interface {
	Execute(ctx context.Context, cmd AddTicketsCommand) (*dto.AddTicketsDTO, error)
}

type RemoveTicketsExecutor interface {
	Execute(ctx context.Context, cmd RemoveTicketsCommand) (*dto.RemoveTicketsDTO, error)
}

type CloseSprintExecutor interface {
	Execute(ctx context.Context, cmd CloseSprintCommand) (*dto.CloseSprintDTO, error)
}

type GetBurndownExecutor interface {
	Execute(ctx context.Context, q GetBurndownQuery) (*dto.BurndownDTO, error)
}

type ExportReportExecutor interface {
	Execute(ctx context.Context, q ExportReportQuery) (*ReportFile, error)
}
