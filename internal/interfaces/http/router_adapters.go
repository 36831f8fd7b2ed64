package http

import (
	"github.com/XavierPelle/sprintly/internal/application/user/usecases"
	"github.com/XavierPelle/sprintly/internal/infrastructure/auth"
)

// jwtServiceAdapter adapts auth.JWTService to usecases.TokenService interface
type jwtServiceAdapter struct {
	*auth.JWTService
}

func (a *jwtServiceAdapter) Generate(userID uint, email string) (*usecases.TokenPair, error) {
	pair, err := a.JWTService.Generate(userID, email)
	if err != nil {
		return nil, err
	}
	return &usecases.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

func (a *jwtServiceAdapter) VerifyRefresh(token string) (uint, error) {
	claims, err := a.JWTService.VerifyRefresh(token)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
