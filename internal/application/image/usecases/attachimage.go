package usecases

import (
	"context"
	stderrors "errors"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/image/dto"
	"github.com/XavierPelle/sprintly/internal/domain/image"
	"github.com/XavierPelle/sprintly/internal/domain/qa"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

// AttachImageCommand records metadata of an already stored file. Exactly one
// of UserID, TicketID and TestID is set, matching Type.
type AttachImageCommand struct {
	Type         string
	URL          string
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	DisplayOrder int
	UserID       *uint
	TicketID     *uint
	TestID       *uint
}

type AttachImageUseCase struct {
	imageRepo  image.Repository
	userRepo   user.Repository
	ticketRepo ticket.TicketRepository
	testRepo   qa.Repository
	logger     logger.Interface
}

func NewAttachImageUseCase(
	imageRepo image.Repository,
	userRepo user.Repository,
	ticketRepo ticket.TicketRepository,
	testRepo qa.Repository,
	logger logger.Interface,
) *AttachImageUseCase {
	return &AttachImageUseCase{
		imageRepo:  imageRepo,
		userRepo:   userRepo,
		ticketRepo: ticketRepo,
		testRepo:   testRepo,
		logger:     logger,
	}
}

func (uc *AttachImageUseCase) Execute(ctx context.Context, cmd AttachImageCommand) (*dto.ImageDTO, error) {
	uc.logger.Infow("executing attach image use case", "type", cmd.Type, "filename", cmd.Filename)

	owner := image.Owner{UserID: cmd.UserID, TicketID: cmd.TicketID, TestID: cmd.TestID}
	img, err := image.NewImage(image.Type(cmd.Type), image.Metadata{
		URL:          cmd.URL,
		Filename:     cmd.Filename,
		OriginalName: cmd.OriginalName,
		MimeType:     cmd.MimeType,
		Size:         cmd.Size,
		DisplayOrder: cmd.DisplayOrder,
	}, owner)
	if err != nil {
		if stderrors.Is(err, image.ErrOwnerCount) || stderrors.Is(err, image.ErrOwnerTypeMismatch) {
			return nil, errors.NewBusinessRuleError(common.ReasonImageOwnerInvalid, err.Error(),
				map[string]any{"type": cmd.Type})
		}
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ensureOwnerExists(ctx, owner); err != nil {
		return nil, err
	}

	if err := uc.imageRepo.Create(ctx, img); err != nil {
		uc.logger.Errorw("failed to create image", "filename", cmd.Filename, "error", err)
		return nil, errors.NewInternalError("failed to attach image")
	}

	uc.logger.Infow("image attached successfully", "image_id", img.ID(), "type", img.Type())
	return dto.ToImageDTO(img), nil
}

func (uc *AttachImageUseCase) ensureOwnerExists(ctx context.Context, owner image.Owner) error {
	switch {
	case owner.UserID != nil:
		u, err := uc.userRepo.GetByID(ctx, *owner.UserID)
		if err != nil {
			return uc.ownerLoadError(err)
		}
		if u == nil {
			return common.UserNotFound(*owner.UserID)
		}
	case owner.TicketID != nil:
		t, err := uc.ticketRepo.GetByID(ctx, *owner.TicketID)
		if err != nil {
			return uc.ownerLoadError(err)
		}
		if t == nil {
			return common.TicketNotFound(*owner.TicketID)
		}
	case owner.TestID != nil:
		t, err := uc.testRepo.GetByID(ctx, *owner.TestID)
		if err != nil {
			return uc.ownerLoadError(err)
		}
		if t == nil {
			return common.TestNotFound(*owner.TestID)
		}
	}
	return nil
}

func (uc *AttachImageUseCase) ownerLoadError(err error) error {
	uc.logger.Errorw("failed to load image owner", "error", err)
	return errors.NewInternalError("failed to attach image")
}
