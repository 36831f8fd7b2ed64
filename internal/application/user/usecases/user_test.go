package usecases

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/application/testutil"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	vo "github.com/XavierPelle/sprintly/internal/domain/user/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
)

const goodPassword = "Secret#123"

type mockTokenService struct {
	issued      []uint
	refreshUser map[string]uint
	generateErr error
}

func newMockTokenService() *mockTokenService {
	return &mockTokenService{refreshUser: make(map[string]uint)}
}

func (m *mockTokenService) Generate(userID uint, email string) (*TokenPair, error) {
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	m.issued = append(m.issued, userID)
	refresh := fmt.Sprintf("refresh-%d-%d", userID, len(m.issued))
	m.refreshUser[refresh] = userID
	return &TokenPair{
		AccessToken:  fmt.Sprintf("access-%d-%d", userID, len(m.issued)),
		RefreshToken: refresh,
		ExpiresIn:    900,
	}, nil
}

func (m *mockTokenService) VerifyRefresh(token string) (uint, error) {
	id, ok := m.refreshUser[token]
	if !ok {
		return 0, fmt.Errorf("unknown token")
	}
	return id, nil
}

func seedWithPassword(t *testing.T, repo *testutil.MockUserRepository, email string) *user.User {
	t.Helper()
	u := testutil.SeedUser(t, repo, email, "Alice", "Martin")
	p, err := vo.NewPassword(goodPassword, nil)
	require.NoError(t, err)
	require.NoError(t, u.SetPassword(p, testutil.NewMockPasswordHasher()))
	require.NoError(t, repo.Update(t.Context(), u))
	return u
}

func TestRegisterUserUseCase(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := testutil.NewMockUserRepository()
		uc := NewRegisterUserUseCase(repo, testutil.NewMockPasswordHasher(), nil, testutil.NewMockLogger())

		result, err := uc.Execute(t.Context(), RegisterUserCommand{
			Email:     "Alice@Example.com",
			FirstName: "Alice",
			LastName:  "Martin",
			Password:  goodPassword,
		})

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", result.Email)
		assert.Equal(t, "Alice Martin", result.FullName)

		saved, err := repo.GetByID(t.Context(), result.ID)
		require.NoError(t, err)
		assert.True(t, saved.HasPassword())
		assert.Equal(t, "hashed:"+goodPassword, saved.AuthData().PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := testutil.NewMockUserRepository()
		testutil.SeedUser(t, repo, "alice@example.com", "Alice", "Martin")
		uc := NewRegisterUserUseCase(repo, testutil.NewMockPasswordHasher(), nil, testutil.NewMockLogger())

		_, err := uc.Execute(t.Context(), RegisterUserCommand{
			Email:     "ALICE@example.com",
			FirstName: "Alice",
			LastName:  "Martin",
			Password:  goodPassword,
		})

		assert.True(t, errors.HasReason(err, common.ReasonEmailAlreadyExists))
		assert.True(t, errors.IsConflictError(err))
	})

	tests := []struct {
		name  string
		cmd   RegisterUserCommand
		field string
	}{
		{"bad email", RegisterUserCommand{Email: "nope", FirstName: "Alice", LastName: "Martin", Password: goodPassword}, "email"},
		{"short first name", RegisterUserCommand{Email: "a@b.io", FirstName: "A", LastName: "Martin", Password: goodPassword}, "name"},
		{"weak password", RegisterUserCommand{Email: "a@b.io", FirstName: "Alice", LastName: "Martin", Password: "password"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockUserRepository()
			uc := NewRegisterUserUseCase(repo, testutil.NewMockPasswordHasher(), nil, testutil.NewMockLogger())

			_, err := uc.Execute(t.Context(), tt.cmd)

			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			items, status := errors.ToItems(err)
			assert.Equal(t, 400, status)
			require.NotEmpty(t, items)
			assert.Equal(t, tt.field, items[0].Params["field"])
		})
	}
}

func TestLoginUserUseCase(t *testing.T) {
	t.Run("success resets failed attempts", func(t *testing.T) {
		repo := testutil.NewMockUserRepository()
		u := seedWithPassword(t, repo, "alice@example.com")
		tokens := newMockTokenService()
		uc := NewLoginUserUseCase(repo, testutil.NewMockPasswordHasher(), tokens, nil, testutil.NewMockLogger())

		_, err := uc.Execute(t.Context(), LoginUserCommand{Email: "alice@example.com", Password: "Wrong#1234"})
		require.Error(t, err)
		assert.Equal(t, 1, u.FailedLoginAttempts())

		result, err := uc.Execute(t.Context(), LoginUserCommand{Email: " Alice@example.com", Password: goodPassword})

		require.NoError(t, err)
		assert.Equal(t, u.ID(), result.User.ID)
		assert.Equal(t, "Bearer", result.Tokens.TokenType)
		assert.Equal(t, int64(900), result.Tokens.ExpiresIn)
		assert.NotEmpty(t, result.Tokens.RefreshToken)
		assert.Equal(t, 0, u.FailedLoginAttempts())
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := testutil.NewMockUserRepository()
		uc := NewLoginUserUseCase(repo, testutil.NewMockPasswordHasher(), newMockTokenService(), nil, testutil.NewMockLogger())

		_, err := uc.Execute(t.Context(), LoginUserCommand{Email: "ghost@example.com", Password: goodPassword})

		assert.True(t, errors.HasReason(err, common.ReasonInvalidCredentials))
		_, status := errors.ToItems(err)
		assert.Equal(t, 401, status)
	})

	t.Run("locks after repeated failures", func(t *testing.T) {
		repo := testutil.NewMockUserRepository()
		u := seedWithPassword(t, repo, "alice@example.com")
		policy := &user.SecurityPolicy{MaxLoginAttempts: 2, LockoutDurationMinutes: 15}
		uc := NewLoginUserUseCase(repo, testutil.NewMockPasswordHasher(), newMockTokenService(), policy, testutil.NewMockLogger())

		for range 2 {
			_, err := uc.Execute(t.Context(), LoginUserCommand{Email: "alice@example.com", Password: "Wrong#1234"})
			assert.True(t, errors.HasReason(err, common.ReasonInvalidCredentials))
		}

		_, err := uc.Execute(t.Context(), LoginUserCommand{Email: "alice@example.com", Password: goodPassword})

		assert.True(t, errors.HasReason(err, common.ReasonAccountLocked))
		assert.True(t, u.IsLocked(u.UpdatedAt()))
	})

	t.Run("token failure is internal", func(t *testing.T) {
		repo := testutil.NewMockUserRepository()
		seedWithPassword(t, repo, "alice@example.com")
		tokens := newMockTokenService()
		tokens.generateErr = fmt.Errorf("signing failed")
		uc := NewLoginUserUseCase(repo, testutil.NewMockPasswordHasher(), tokens, nil, testutil.NewMockLogger())

		_, err := uc.Execute(t.Context(), LoginUserCommand{Email: "alice@example.com", Password: goodPassword})

		_, status := errors.ToItems(err)
		assert.Equal(t, 500, status)
	})
}

func TestRefreshTokenUseCase(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	u := seedWithPassword(t, repo, "alice@example.com")
	tokens := newMockTokenService()
	pair, err := tokens.Generate(u.ID(), "alice@example.com")
	require.NoError(t, err)
	uc := NewRefreshTokenUseCase(repo, tokens, testutil.NewMockLogger())

	t.Run("rotates both tokens", func(t *testing.T) {
		result, err := uc.Execute(t.Context(), RefreshTokenCommand{RefreshToken: pair.RefreshToken})

		require.NoError(t, err)
		assert.NotEqual(t, pair.RefreshToken, result.RefreshToken)
		assert.NotEqual(t, pair.AccessToken, result.AccessToken)
		assert.Equal(t, "Bearer", result.TokenType)
	})

	t.Run("invalid token", func(t *testing.T) {
		for _, token := range []string{"", "garbage"} {
			_, err := uc.Execute(t.Context(), RefreshTokenCommand{RefreshToken: token})
			assert.True(t, errors.HasReason(err, common.ReasonInvalidRefreshToken), token)
		}
	})

	t.Run("user no longer exists", func(t *testing.T) {
		tokens.refreshUser["orphan"] = 999

		_, err := uc.Execute(t.Context(), RefreshTokenCommand{RefreshToken: "orphan"})

		assert.True(t, errors.HasReason(err, common.ReasonInvalidRefreshToken))
	})
}

func TestUpdatePasswordUseCase(t *testing.T) {
	const next = "Another#456"

	t.Run("success", func(t *testing.T) {
		repo := testutil.NewMockUserRepository()
		u := seedWithPassword(t, repo, "alice@example.com")
		uc := NewUpdatePasswordUseCase(repo, testutil.NewMockPasswordHasher(), nil, testutil.NewMockLogger())

		err := uc.Execute(t.Context(), UpdatePasswordCommand{
			UserID:          u.ID(),
			CurrentPassword: goodPassword,
			NewPassword:     next,
			ConfirmPassword: next,
		})

		require.NoError(t, err)
		assert.Equal(t, "hashed:"+next, u.AuthData().PasswordHash)
	})

	tests := []struct {
		name   string
		cmd    func(id uint) UpdatePasswordCommand
		reason string
		status int
	}{
		{
			name: "confirmation mismatch",
			cmd: func(id uint) UpdatePasswordCommand {
				return UpdatePasswordCommand{UserID: id, CurrentPassword: goodPassword, NewPassword: next, ConfirmPassword: "Another#457"}
			},
			reason: common.ReasonPasswordMismatch,
			status: 400,
		},
		{
			name: "wrong current password",
			cmd: func(id uint) UpdatePasswordCommand {
				return UpdatePasswordCommand{UserID: id, CurrentPassword: "Wrong#1234", NewPassword: next, ConfirmPassword: next}
			},
			reason: common.ReasonInvalidCurrentPassword,
			status: 401,
		},
		{
			name: "unchanged",
			cmd: func(id uint) UpdatePasswordCommand {
				return UpdatePasswordCommand{UserID: id, CurrentPassword: goodPassword, NewPassword: goodPassword, ConfirmPassword: goodPassword}
			},
			reason: common.ReasonPasswordUnchanged,
			status: 400,
		},
		{
			name: "unknown user",
			cmd: func(uint) UpdatePasswordCommand {
				return UpdatePasswordCommand{UserID: 404, CurrentPassword: goodPassword, NewPassword: next, ConfirmPassword: next}
			},
			reason: common.ReasonUserNotFound,
			status: 400,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockUserRepository()
			u := seedWithPassword(t, repo, "alice@example.com")
			uc := NewUpdatePasswordUseCase(repo, testutil.NewMockPasswordHasher(), nil, testutil.NewMockLogger())

			err := uc.Execute(t.Context(), tt.cmd(u.ID()))

			assert.True(t, errors.HasReason(err, tt.reason), "got %v", err)
			_, status := errors.ToItems(err)
			assert.Equal(t, tt.status, status)
		})
	}

	t.Run("weak new password", func(t *testing.T) {
		repo := testutil.NewMockUserRepository()
		u := seedWithPassword(t, repo, "alice@example.com")
		uc := NewUpdatePasswordUseCase(repo, testutil.NewMockPasswordHasher(), nil, testutil.NewMockLogger())

		err := uc.Execute(t.Context(), UpdatePasswordCommand{UserID: u.ID(), CurrentPassword: goodPassword, NewPassword: "short", ConfirmPassword: "short"})

		assert.True(t, errors.IsValidationError(err))
	})
}

func TestGetUserUseCase(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	u := testutil.SeedUser(t, repo, "bob@example.com", "Bob", "Durand")
	uc := NewGetUserUseCase(repo, testutil.NewMockLogger())

	result, err := uc.Execute(t.Context(), GetUserQuery{UserID: u.ID()})
	require.NoError(t, err)
	assert.Equal(t, "Bob Durand", result.FullName)

	_, err = uc.Execute(t.Context(), GetUserQuery{UserID: 77})
	assert.True(t, errors.HasReason(err, common.ReasonUserNotFound))

	repo.SetGetError(fmt.Errorf("db down"))
	_, err = uc.Execute(t.Context(), GetUserQuery{UserID: u.ID()})
	_, status := errors.ToItems(err)
	assert.Equal(t, 500, status)
}

func TestListUsersUseCase(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	testutil.SeedUser(t, repo, "bob@example.com", "Bob", "Durand")
	testutil.SeedUser(t, repo, "eve@example.com", "Eve", "Moreau")

	result, err := NewListUsersUseCase(repo, testutil.NewMockLogger()).Execute(t.Context())

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "bob@example.com", result[0].Email)
}
