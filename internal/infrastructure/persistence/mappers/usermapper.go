package mappers

import (
	"fmt"

	"github.com/XavierPelle/sprintly/internal/domain/user"
	vo "github.com/XavierPelle/sprintly/internal/domain/user/valueobjects"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/models"
)

// UserMapper handles conversion between the user aggregate and its persistence model.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToEntity(model *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	auth := u.AuthData()
	return &models.UserModel{
		ID:                   u.ID(),
		Email:                u.Email().String(),
		FirstName:            u.Name().First(),
		LastName:             u.Name().Last(),
		PasswordHash:         auth.PasswordHash,
		LastPasswordChangeAt: toMillisPtr(auth.LastPasswordChangeAt),
		FailedLoginAttempts:  auth.FailedLoginAttempts,
		LockedUntil:          toMillisPtr(auth.LockedUntil),
		CreatedAt:            toMillis(u.CreatedAt()),
		UpdatedAt:            toMillis(u.UpdatedAt()),
	}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid email in database: %w", err)
	}
	name, err := vo.NewName(model.FirstName, model.LastName)
	if err != nil {
		return nil, fmt.Errorf("invalid name in database: %w", err)
	}

	return user.ReconstructUser(
		model.ID,
		email,
		name,
		user.AuthData{
			PasswordHash:         model.PasswordHash,
			LastPasswordChangeAt: fromMillisPtr(model.LastPasswordChangeAt),
			FailedLoginAttempts:  model.FailedLoginAttempts,
			LockedUntil:          fromMillisPtr(model.LockedUntil),
		},
		fromMillis(model.CreatedAt),
		fromMillis(model.UpdatedAt),
	)
}
