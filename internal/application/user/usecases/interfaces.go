package usecases

import (
	"context"

	"github.com/XavierPelle/sprintly/internal/application/user/dto"
)

// TokenPair is the access/refresh pair issued to a signed-in user.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenService issues and checks JWT pairs.
type TokenService interface {
	Generate(userID uint, email string) (*TokenPair, error)
	// VerifyRefresh returns the user ID carried by a valid refresh token.
	VerifyRefresh(refreshToken string) (uint, error)
}

type RegisterUserExecutor interface {
	Execute(ctx context.Context, cmd RegisterUserCommand) (*dto.UserDTO, error)
}

type LoginUserExecutor interface {
	Execute(ctx context.Context, cmd LoginUserCommand) (*dto.LoginDTO, error)
}

type RefreshTokenExecutor interface {
	Execute(ctx context.Context, cmd RefreshTokenCommand) (*dto.TokenDTO, error)
}

type UpdatePasswordExecutor interface {
	Execute(ctx context.Context, cmd UpdatePasswordCommand) error
}

type GetUserExecutor interface {
	Execute(ctx context.Context, q GetUserQuery) (*dto.UserDTO, error)
}

type ListUsersExecutor interface {
	Execute(ctx context.Context) ([]*dto.UserDTO, error)
}

func toTokenDTO(p *TokenPair) dto.TokenDTO {
	return dto.TokenDTO{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    p.ExpiresIn,
	}
}
