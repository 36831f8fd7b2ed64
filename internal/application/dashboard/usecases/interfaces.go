package usecases

import (
	"context"

	"github.com/XavierPelle/sprintly/internal/application/dashboard/dto"
)

type PersonalDashboardExecutor interface {
	Execute(ctx context.Context, q GetPersonalDashboardQuery) (*dto.PersonalDashboardDTO, error)
}

type ProjectDashboardExecutor interface {
	Execute(ctx context.Context, q GetProjectDashboardQuery) (*dto.ProjectDashboardDTO, error)
}

// DashboardCache stores rendered dashboards. A miss is (false, nil).
type DashboardCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// CacheRecorder counts cache hits and misses.
type CacheRecorder interface {
	ObserveCacheLookup(hit bool)
}
