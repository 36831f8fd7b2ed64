package usecases

import (
	"context"

	"github.com/XavierPelle/sprintly/internal/application/sprint/dto"
	ticketdto "github.com/XavierPelle/sprintly/internal/application/ticket/dto"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/shared/constants"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
	"github.com/XavierPelle/sprintly/internal/shared/mapper"
	"github.com/XavierPelle/sprintly/internal/shared/query"
)

type ListSprintsQuery struct {
	IncludeClosed bool
	Page          int
	Limit         int
}

type ListSprintsUseCase struct {
	sprintRepo sprint.Repository
	logger     logger.Interface
}

func NewListSprintsUseCase(sprintRepo sprint.Repository, logger logger.Interface) *ListSprintsUseCase {
	return &ListSprintsUseCase{
		sprintRepo: sprintRepo,
		logger:     logger,
	}
}

// Execute lists sprints newest start date first.
func (uc *ListSprintsUseCase) Execute(ctx context.Context, q ListSprintsQuery) (*dto.SprintListDTO, error) {
	uc.logger.Infow("executing list sprints use case", "include_closed", q.IncludeClosed, "page", q.Page)

	page, limit := q.Page, q.Limit
	if page == 0 {
		page = constants.DefaultPage
	}
	if limit == 0 {
		limit = constants.DefaultPageSize
	}

	var list errors.ErrorList
	if page < 1 {
		list.Add(errors.NewFieldValidationError("page", "page must be at least 1"))
	}
	if limit < 1 || limit > constants.MaxPageSize {
		list.Add(errors.NewFieldValidationError("limit", "limit must be between 1 and 1000"))
	}
	if err := list.OrNil(); err != nil {
		return nil, err
	}

	filter := sprint.ListFilter{
		BaseFilter:    query.NewBaseFilter(query.WithPage(page, limit), query.WithSort("startDate", "DESC")),
		IncludeClosed: q.IncludeClosed,
	}

	sprints, total, err := uc.sprintRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list sprints", "error", err)
		return nil, errors.NewInternalError("failed to list sprints")
	}

	items := mapper.MapSlice(sprints, dto.ToSprintDTO)
	if items == nil {
		items = []*dto.SprintDTO{}
	}
	return &dto.SprintListDTO{
		Sprints:    items,
		Pagination: ticketdto.NewPagination(page, limit, total),
	}, nil
}
