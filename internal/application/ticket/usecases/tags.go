package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/ticket/dto"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/shared/constants"
	"github.com/XavierPelle/sprintly/internal/shared/db"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type AddTagCommand struct {
	TicketID uint
	Content  string
	Color    string
}

type AddTagUseCase struct {
	ticketRepo ticket.TicketRepository
	tagRepo    ticket.TagRepository
	txManager  db.TxManager
	logger     logger.Interface
}

func NewAddTagUseCase(
	ticketRepo ticket.TicketRepository,
	tagRepo ticket.TagRepository,
	txManager db.TxManager,
	logger logger.Interface,
) *AddTagUseCase {
	return &AddTagUseCase{
		ticketRepo: ticketRepo,
		tagRepo:    tagRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *AddTagUseCase) Execute(ctx context.Context, cmd AddTagCommand) (*dto.TagDTO, error) {
	uc.logger.Infow("executing add tag use case", "ticket_id", cmd.TicketID, "content", cmd.Content)

	tag, err := ticket.NewTag(cmd.TicketID, cmd.Content, cmd.Color)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := uc.ticketRepo.GetByIDForUpdate(ctx, cmd.TicketID)
		if err != nil {
			return fmt.Errorf("failed to load ticket: %w", err)
		}
		if t == nil {
			return common.TicketNotFound(cmd.TicketID)
		}

		existing, err := uc.tagRepo.ListByTicket(ctx, t.ID())
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		if err := ticket.CheckCanAddTag(existing, tag.Content()); err != nil {
			return mapTagError(err, t.ID(), tag.Content())
		}
		return uc.tagRepo.Create(ctx, tag)
	})
	if err != nil {
		if errors.IsAppError(err) {
			uc.logger.Warnw("tag rejected", "ticket_id", cmd.TicketID, "error", err)
			return nil, err
		}
		uc.logger.Errorw("failed to add tag", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to add tag")
	}

	uc.logger.Infow("tag added successfully", "ticket_id", cmd.TicketID, "tag_id", tag.ID())
	return dto.ToTagDTO(tag), nil
}

func mapTagError(err error, ticketID uint, content string) error {
	switch {
	case stderrors.Is(err, ticket.ErrTagAlreadyExists):
		return errors.NewBusinessRuleError(common.ReasonTagAlreadyExists,
			fmt.Sprintf("Tag %q already exists on this ticket", content),
			map[string]any{"ticketId": ticketID, "content": content})
	case stderrors.Is(err, ticket.ErrMaxTagsReached):
		return errors.NewBusinessRuleError(common.ReasonMaxTagsReached,
			fmt.Sprintf("A ticket cannot have more than %d tags", constants.MaxTagsPerTicket),
			map[string]any{"ticketId": ticketID, "maxTags": constants.MaxTagsPerTicket})
	default:
		return errors.NewValidationError(err.Error())
	}
}

type RemoveTagCommand struct {
	TicketID uint
	TagID    uint
}

type RemoveTagResult struct {
	TicketID uint   `json:"ticketId"`
	TagID    uint   `json:"tagId"`
	Message  string `json:"message"`
}

type RemoveTagUseCase struct {
	ticketRepo ticket.TicketRepository
	tagRepo    ticket.TagRepository
	logger     logger.Interface
}

func NewRemoveTagUseCase(ticketRepo ticket.TicketRepository, tagRepo ticket.TagRepository, logger logger.Interface) *RemoveTagUseCase {
	return &RemoveTagUseCase{
		ticketRepo: ticketRepo,
		tagRepo:    tagRepo,
		logger:     logger,
	}
}

func (uc *RemoveTagUseCase) Execute(ctx context.Context, cmd RemoveTagCommand) (*RemoveTagResult, error) {
	uc.logger.Infow("executing remove tag use case", "ticket_id", cmd.TicketID, "tag_id", cmd.TagID)

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to remove tag")
	}
	if t == nil {
		return nil, common.TicketNotFound(cmd.TicketID)
	}

	tag, err := uc.tagRepo.GetByID(ctx, cmd.TagID)
	if err != nil {
		uc.logger.Errorw("failed to load tag", "tag_id", cmd.TagID, "error", err)
		return nil, errors.NewInternalError("failed to remove tag")
	}
	if tag == nil {
		return nil, errors.NewEntityNotFoundError(common.ReasonTagNotFound,
			fmt.Sprintf("Tag with ID %d not found", cmd.TagID),
			map[string]any{"tagId": cmd.TagID})
	}
	if tag.TicketID() != t.ID() {
		return nil, errors.NewBusinessRuleError(common.ReasonTagNotOnTicket,
			fmt.Sprintf("Tag %d is not associated with ticket %d", cmd.TagID, cmd.TicketID),
			map[string]any{"tagId": cmd.TagID, "ticketId": cmd.TicketID})
	}

	if err := uc.tagRepo.Delete(ctx, tag.ID()); err != nil {
		uc.logger.Errorw("failed to delete tag", "tag_id", tag.ID(), "error", err)
		return nil, errors.NewInternalError("failed to remove tag")
	}

	uc.logger.Infow("tag removed successfully", "ticket_id", t.ID(), "tag_id", tag.ID())
	return &RemoveTagResult{
		TicketID: t.ID(),
		TagID:    tag.ID(),
		Message:  "Tag removed successfully",
	}, nil
}
