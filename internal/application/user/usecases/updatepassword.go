package usecases

import (
	"context"
	stderrors "errors"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	vo "github.com/XavierPelle/sprintly/internal/domain/user/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type UpdatePasswordCommand struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

type UpdatePasswordUseCase struct {
	userRepo       user.Repository
	hasher         user.PasswordHasher
	passwordPolicy *vo.PasswordPolicy
	logger         logger.Interface
}

func NewUpdatePasswordUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	passwordPolicy *vo.PasswordPolicy,
	logger logger.Interface,
) *UpdatePasswordUseCase {
	return &UpdatePasswordUseCase{
		userRepo:       userRepo,
		hasher:         hasher,
		passwordPolicy: passwordPolicy,
		logger:         logger,
	}
}

func (uc *UpdatePasswordUseCase) Execute(ctx context.Context, cmd UpdatePasswordCommand) error {
	uc.logger.Infow("executing update password use case", "user_id", cmd.UserID)

	var errs errors.ErrorList
	if cmd.CurrentPassword == "" {
		errs.Add(errors.NewFieldValidationError("currentPassword", "current password is required"))
	}
	next, err := vo.NewPassword(cmd.NewPassword, uc.passwordPolicy)
	if err != nil {
		errs.Add(errors.NewFieldValidationError("newPassword", err.Error()))
	}
	if err := errs.OrNil(); err != nil {
		return err
	}
	if cmd.NewPassword != cmd.ConfirmPassword {
		return errors.NewValidationError("New password and confirmation do not match").
			WithReason(common.ReasonPasswordMismatch)
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load user", "user_id", cmd.UserID, "error", err)
		return errors.NewInternalError("failed to update password")
	}
	if u == nil {
		return common.UserNotFound(cmd.UserID)
	}

	if err := u.ChangePassword(cmd.CurrentPassword, next, uc.hasher); err != nil {
		switch {
		case stderrors.Is(err, user.ErrInvalidCurrentPassword):
			return errors.NewUnauthorizedError("Current password is incorrect").
				WithReason(common.ReasonInvalidCurrentPassword)
		case stderrors.Is(err, user.ErrPasswordUnchanged):
			return errors.NewBusinessRuleError(common.ReasonPasswordUnchanged,
				"New password must differ from the current password", nil)
		default:
			uc.logger.Errorw("failed to change password", "user_id", cmd.UserID, "error", err)
			return errors.NewInternalError("failed to update password")
		}
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to save password", "user_id", cmd.UserID, "error", err)
		return errors.NewInternalError("failed to update password")
	}

	uc.logger.Infow("password updated successfully", "user_id", cmd.UserID)
	return nil
}
