package usecases

import (
	"context"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/user/dto"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	vo "github.com/XavierPelle/sprintly/internal/domain/user/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type RegisterUserCommand struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

type RegisterUserUseCase struct {
	userRepo       user.Repository
	hasher         user.PasswordHasher
	passwordPolicy *vo.PasswordPolicy
	logger         logger.Interface
}

func NewRegisterUserUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	passwordPolicy *vo.PasswordPolicy,
	logger logger.Interface,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:       userRepo,
		hasher:         hasher,
		passwordPolicy: passwordPolicy,
		logger:         logger,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing register user use case", "email", cmd.Email)

	var errs errors.ErrorList
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		errs.Add(errors.NewFieldValidationError("email", err.Error()))
	}
	name, err := vo.NewName(cmd.FirstName, cmd.LastName)
	if err != nil {
		errs.Add(errors.NewFieldValidationError("name", err.Error()))
	}
	password, err := vo.NewPassword(cmd.Password, uc.passwordPolicy)
	if err != nil {
		errs.Add(errors.NewFieldValidationError("password", err.Error()))
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check email uniqueness", "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}
	if exists {
		return nil, emailTaken(email.String())
	}

	u, err := user.NewUser(email, name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := u.SetPassword(password, uc.hasher); err != nil {
		uc.logger.Errorw("failed to set password", "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, emailTaken(email.String())
		}
		uc.logger.Errorw("failed to create user", "email", email.String(), "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}

	uc.logger.Infow("user registered successfully", "user_id", u.ID())
	return dto.ToUserDTO(u), nil
}

func emailTaken(email string) error {
	return errors.NewConflictError("Email already registered").
		WithReason(common.ReasonEmailAlreadyExists).
		WithParam("email", email)
}
