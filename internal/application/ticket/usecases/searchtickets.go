package usecases

import (
	"context"
	"strings"

	"github.com/XavierPelle/sprintly/internal/application/ticket/dto"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/constants"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
	"github.com/XavierPelle/sprintly/internal/shared/query"
)

type SearchTicketsQuery struct {
	Query      string
	Status     string
	Type       string
	Priority   string
	AssigneeID *uint
	CreatorID  *uint
	SprintID   *uint
	MinPoints  *int
	MaxPoints  *int
	IsBlocked  *bool
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

var searchSortFields = map[string]bool{
	"createdAt":        true,
	"updatedAt":        true,
	"difficultyPoints": true,
	"key":              true,
}

type SearchTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewSearchTicketsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *SearchTicketsUseCase {
	return &SearchTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *SearchTicketsUseCase) Execute(ctx context.Context, q SearchTicketsQuery) (*dto.SearchResultDTO, error) {
	uc.logger.Infow("executing search tickets use case",
		"query", q.Query,
		"page", q.Page,
		"limit", q.Limit,
	)

	filter, err := uc.buildFilter(q)
	if err != nil {
		uc.logger.Warnw("invalid search query", "error", err)
		return nil, err
	}

	tickets, total, err := uc.ticketRepo.Search(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to search tickets", "error", err)
		return nil, errors.NewInternalError("failed to search tickets")
	}

	uc.logger.Infow("tickets searched successfully", "count", len(tickets), "total", total)

	return &dto.SearchResultDTO{
		Tickets:    dto.ToTicketDTOs(tickets),
		Pagination: dto.NewPagination(filter.Page, filter.PageSize, total),
	}, nil
}

func (uc *SearchTicketsUseCase) buildFilter(q SearchTicketsQuery) (ticket.SearchFilter, error) {
	var list errors.ErrorList

	page := q.Page
	if page == 0 {
		page = constants.DefaultPage
	}
	if page < 1 {
		list.Add(errors.NewFieldValidationError("page", "page must be at least 1"))
	}
	limit := q.Limit
	if limit == 0 {
		limit = constants.DefaultPageSize
	}
	if limit < 1 || limit > constants.MaxPageSize {
		list.Add(errors.NewFieldValidationError("limit", "limit must be between 1 and 1000"))
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	if !searchSortFields[sortBy] {
		list.Add(errors.NewFieldValidationError("sortBy", "sortBy must be one of createdAt, updatedAt, difficultyPoints, key"))
	}
	sortOrder := strings.ToUpper(q.SortOrder)
	if sortOrder == "" {
		sortOrder = "DESC"
	}
	if sortOrder != "ASC" && sortOrder != "DESC" {
		list.Add(errors.NewFieldValidationError("sortOrder", "sortOrder must be ASC or DESC"))
	}

	filter := ticket.SearchFilter{
		BaseFilter: query.NewBaseFilter(query.WithPage(page, limit), query.WithSort(sortBy, sortOrder)),
		Query:      strings.TrimSpace(q.Query),
		AssigneeID: q.AssigneeID,
		CreatorID:  q.CreatorID,
		SprintID:   q.SprintID,
		MinPoints:  q.MinPoints,
		MaxPoints:  q.MaxPoints,
		IsBlocked:  q.IsBlocked,
	}

	if q.Status != "" {
		status, err := vo.NewTicketStatus(q.Status)
		if err != nil {
			list.Add(errors.NewFieldValidationError("status", err.Error()))
		} else {
			filter.Status = &status
		}
	}
	if q.Type != "" {
		ticketType, err := vo.NewTicketType(q.Type)
		if err != nil {
			list.Add(errors.NewFieldValidationError("type", err.Error()))
		} else {
			filter.Type = &ticketType
		}
	}
	if q.Priority != "" {
		priority, err := vo.NewPriority(q.Priority)
		if err != nil {
			list.Add(errors.NewFieldValidationError("priority", err.Error()))
		} else {
			filter.Priority = &priority
		}
	}
	if q.MinPoints != nil && q.MaxPoints != nil && *q.MinPoints > *q.MaxPoints {
		list.Add(errors.NewFieldValidationError("minPoints", "minPoints cannot exceed maxPoints"))
	}

	return filter, list.OrNil()
}
