package usecases

import (
	"context"
	stderrors "errors"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/user/dto"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	vo "github.com/XavierPelle/sprintly/internal/domain/user/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type LoginUserCommand struct {
	Email    string
	Password string
}

type LoginUserUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	tokens   TokenService
	policy   *user.SecurityPolicy
	logger   logger.Interface
}

func NewLoginUserUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	tokens TokenService,
	policy *user.SecurityPolicy,
	logger logger.Interface,
) *LoginUserUseCase {
	if policy == nil {
		policy = user.DefaultSecurityPolicy()
	}
	return &LoginUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		policy:   policy,
		logger:   logger,
	}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, cmd LoginUserCommand) (*dto.LoginDTO, error) {
	uc.logger.Infow("executing login use case", "email", cmd.Email)

	email, err := vo.NewEmail(cmd.Email)
	if err != nil || cmd.Password == "" {
		return nil, invalidCredentials()
	}

	u, err := uc.userRepo.GetByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to load user", "error", err)
		return nil, errors.NewInternalError("failed to login")
	}
	if u == nil {
		return nil, invalidCredentials()
	}

	verifyErr := u.VerifyPassword(cmd.Password, uc.hasher, uc.policy)
	// The attempt counter changes on both outcomes.
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to record login attempt", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to login")
	}
	if verifyErr != nil {
		switch {
		case stderrors.Is(verifyErr, user.ErrAccountLocked):
			uc.logger.Warnw("login rejected, account locked", "user_id", u.ID())
			return nil, errors.NewForbiddenError("Account is temporarily locked").
				WithReason(common.ReasonAccountLocked)
		case stderrors.Is(verifyErr, user.ErrInvalidCredentials):
			uc.logger.Warnw("invalid password", "user_id", u.ID(), "failed_attempts", u.FailedLoginAttempts())
			return nil, invalidCredentials()
		default:
			uc.logger.Errorw("failed to verify password", "user_id", u.ID(), "error", verifyErr)
			return nil, errors.NewInternalError("failed to login")
		}
	}

	pair, err := uc.tokens.Generate(u.ID(), u.Email().String())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to login")
	}

	uc.logger.Infow("user logged in successfully", "user_id", u.ID())
	return &dto.LoginDTO{
		User:   dto.ToUserDTO(u),
		Tokens: toTokenDTO(pair),
	}, nil
}

func invalidCredentials() error {
	return errors.NewUnauthorizedError("Invalid email or password").
		WithReason(common.ReasonInvalidCredentials)
}
