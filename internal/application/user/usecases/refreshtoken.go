package usecases

import (
	"context"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/user/dto"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenUseCase struct {
	userRepo user.Repository
	tokens   TokenService
	logger   logger.Interface
}

func NewRefreshTokenUseCase(userRepo user.Repository, tokens TokenService, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*dto.TokenDTO, error) {
	uc.logger.Infow("executing refresh token use case")

	if cmd.RefreshToken == "" {
		return nil, invalidRefreshToken()
	}

	userID, err := uc.tokens.VerifyRefresh(cmd.RefreshToken)
	if err != nil {
		uc.logger.Warnw("refresh token rejected", "error", err)
		return nil, invalidRefreshToken()
	}

	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to load user", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to refresh token")
	}
	if u == nil {
		uc.logger.Warnw("refresh token for unknown user", "user_id", userID)
		return nil, invalidRefreshToken()
	}

	pair, err := uc.tokens.Generate(u.ID(), u.Email().String())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to refresh token")
	}

	result := toTokenDTO(pair)
	return &result, nil
}

func invalidRefreshToken() error {
	return errors.NewUnauthorizedError("Invalid or expired refresh token").
		WithReason(common.ReasonInvalidRefreshToken)
}
