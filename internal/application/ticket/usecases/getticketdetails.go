package usecases

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/XavierPelle/sprintly/internal/application/common"
	imagedto "github.com/XavierPelle/sprintly/internal/application/image/dto"
	qadto "github.com/XavierPelle/sprintly/internal/application/qa/dto"
	"github.com/XavierPelle/sprintly/internal/application/ticket/dto"
	userdto "github.com/XavierPelle/sprintly/internal/application/user/dto"
	"github.com/XavierPelle/sprintly/internal/domain/image"
	"github.com/XavierPelle/sprintly/internal/domain/qa"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
	"github.com/XavierPelle/sprintly/internal/shared/mapper"
	"github.com/XavierPelle/sprintly/internal/shared/services/markdown"
)

type GetTicketDetailsQuery struct {
	TicketID uint
}

// TicketDetailsRepositories groups the stores read by the ticket details view.
type TicketDetailsRepositories struct {
	Tickets  ticket.TicketRepository
	Tags     ticket.TagRepository
	Comments ticket.CommentRepository
	Users    user.Repository
	Sprints  sprint.Repository
	Tests    qa.Repository
	Images   image.Repository
}

type GetTicketDetailsUseCase struct {
	repos    TicketDetailsRepositories
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewGetTicketDetailsUseCase(repos TicketDetailsRepositories, renderer markdown.Renderer, logger logger.Interface) *GetTicketDetailsUseCase {
	return &GetTicketDetailsUseCase{
		repos:    repos,
		renderer: renderer,
		logger:   logger,
	}
}

type ticketRelations struct {
	sprint     *sprint.Sprint
	tags       []*ticket.Tag
	comments   []*ticket.Comment
	tests      []*qa.Test
	images     []*image.Image
	testImages map[uint]int
}

func (uc *GetTicketDetailsUseCase) Execute(ctx context.Context, q GetTicketDetailsQuery) (*dto.TicketDetailsDTO, error) {
	uc.logger.Infow("executing get ticket details use case", "ticket_id", q.TicketID)

	t, err := uc.repos.Tickets.GetByID(ctx, q.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", q.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to get ticket details")
	}
	if t == nil {
		return nil, common.TicketNotFound(q.TicketID)
	}

	rel, err := uc.loadRelations(ctx, t)
	if err != nil {
		uc.logger.Errorw("failed to load ticket relations", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get ticket details")
	}

	users, err := uc.loadUsers(ctx, t, rel)
	if err != nil {
		uc.logger.Errorw("failed to load ticket users", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get ticket details")
	}

	descriptionHTML, err := uc.renderer.Render(t.Description())
	if err != nil {
		uc.logger.Warnw("failed to render ticket description", "ticket_id", t.ID(), "error", err)
		descriptionHTML = ""
	}

	result := &dto.TicketDetailsDTO{
		Ticket:          dto.ToTicketDTO(t),
		DescriptionHTML: descriptionHTML,
		Creator:         userdto.ToUserSummary(users[t.CreatorID()]),
		Images:          orEmpty(mapper.MapSlice(rel.images, imagedto.ToImageDTO)),
		Tags:            orEmpty(mapper.MapSlice(rel.tags, dto.ToTagDTO)),
		Comments: orEmpty(mapper.MapSlice(rel.comments, func(c *ticket.Comment) *dto.CommentDTO {
			out := dto.ToCommentDTO(c)
			out.Author = userdto.ToUserSummary(users[c.UserID()])
			return out
		})),
		Tests: orEmpty(mapper.MapSlice(rel.tests, func(test *qa.Test) *qadto.TestDTO {
			out := qadto.ToTestDTO(test)
			out.Author = userdto.ToUserSummary(users[test.UserID()])
			out.ImageCount = rel.testImages[test.ID()]
			return out
		})),
		Stats: dto.TicketStatsDTO{
			TotalComments:  len(rel.comments),
			TotalTests:     len(rel.tests),
			ValidatedTests: len(mapper.Filter(rel.tests, (*qa.Test).IsValidated)),
			TotalImages:    len(rel.images),
		},
	}
	if id := t.AssigneeID(); id != nil {
		result.Assignee = userdto.ToUserSummary(users[*id])
	}
	if rel.sprint != nil {
		result.Sprint = &dto.SprintRefDTO{ID: rel.sprint.ID(), Name: rel.sprint.Name()}
	}

	uc.logger.Infow("ticket details loaded", "ticket_id", t.ID(), "comments", len(rel.comments), "tests", len(rel.tests))
	return result, nil
}

func (uc *GetTicketDetailsUseCase) loadRelations(ctx context.Context, t *ticket.Ticket) (*ticketRelations, error) {
	rel := &ticketRelations{}
	g, gctx := errgroup.WithContext(ctx)

	if id := t.SprintID(); id != nil {
		g.Go(func() error {
			s, err := uc.repos.Sprints.GetByID(gctx, *id)
			if err != nil {
				return fmt.Errorf("failed to load sprint: %w", err)
			}
			rel.sprint = s
			return nil
		})
	}
	g.Go(func() error {
		tags, err := uc.repos.Tags.ListByTicket(gctx, t.ID())
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		rel.tags = tags
		return nil
	})
	g.Go(func() error {
		comments, err := uc.repos.Comments.ListByTicket(gctx, t.ID())
		if err != nil {
			return fmt.Errorf("failed to list comments: %w", err)
		}
		rel.comments = comments
		return nil
	})
	g.Go(func() error {
		images, err := uc.repos.Images.ListByTicket(gctx, t.ID())
		if err != nil {
			return fmt.Errorf("failed to list images: %w", err)
		}
		rel.images = images
		return nil
	})
	g.Go(func() error {
		tests, err := uc.repos.Tests.ListByTicket(gctx, t.ID())
		if err != nil {
			return fmt.Errorf("failed to list tests: %w", err)
		}
		ids := make([]uint, 0, len(tests))
		for _, test := range tests {
			ids = append(ids, test.ID())
		}
		counts, err := uc.repos.Images.CountByTests(gctx, ids)
		if err != nil {
			return fmt.Errorf("failed to count test images: %w", err)
		}
		rel.tests = tests
		rel.testImages = counts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rel, nil
}

// loadUsers fetches every user referenced by the ticket and its relations in one query.
func (uc *GetTicketDetailsUseCase) loadUsers(ctx context.Context, t *ticket.Ticket, rel *ticketRelations) (map[uint]*user.User, error) {
	ids := []uint{t.CreatorID()}
	if id := t.AssigneeID(); id != nil {
		ids = append(ids, *id)
	}
	for _, c := range rel.comments {
		ids = append(ids, c.UserID())
	}
	for _, test := range rel.tests {
		ids = append(ids, test.UserID())
	}

	users, err := uc.repos.Users.GetByIDs(ctx, common.UniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*user.User, len(users))
	for _, u := range users {
		byID[u.ID()] = u
	}
	return byID, nil
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
