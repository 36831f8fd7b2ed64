package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboarddto "github.com/XavierPelle/sprintly/internal/application/dashboard/dto"
	dashboarduc "github.com/XavierPelle/sprintly/internal/application/dashboard/usecases"
	imageuc "github.com/XavierPelle/sprintly/internal/application/image/usecases"
	qadto "github.com/XavierPelle/sprintly/internal/application/qa/dto"
	qauc "github.com/XavierPelle/sprintly/internal/application/qa/usecases"
	userdto "github.com/XavierPelle/sprintly/internal/application/user/dto"
	useruc "github.com/XavierPelle/sprintly/internal/application/user/usecases"
	"github.com/XavierPelle/sprintly/internal/interfaces/http/handlers/testutil"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
)

// =====================================================================
// Mocks
// =====================================================================

type mockLoginUC struct {
	got useruc.LoginUserCommand
	err error
}

func (m *mockLoginUC) Execute(_ context.Context, cmd useruc.LoginUserCommand) (*userdto.LoginDTO, error) {
	m.got = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &userdto.LoginDTO{
		User:   &userdto.UserDTO{ID: 1, Email: cmd.Email},
		Tokens: userdto.TokenDTO{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900},
	}, nil
}

type mockRegisterUC struct {
	called bool
}

func (m *mockRegisterUC) Execute(_ context.Context, cmd useruc.RegisterUserCommand) (*userdto.UserDTO, error) {
	m.called = true
	return &userdto.UserDTO{ID: 7, Email: cmd.Email}, nil
}

type mockUpdatePasswordUC struct {
	got useruc.UpdatePasswordCommand
	err error
}

func (m *mockUpdatePasswordUC) Execute(_ context.Context, cmd useruc.UpdatePasswordCommand) error {
	m.got = cmd
	return m.err
}

type mockProjectDashboardUC struct {
	got dashboarduc.GetProjectDashboardQuery
}

func (m *mockProjectDashboardUC) Execute(_ context.Context, q dashboarduc.GetProjectDashboardQuery) (*dashboarddto.ProjectDashboardDTO, error) {
	m.got = q
	return &dashboarddto.ProjectDashboardDTO{}, nil
}

type mockValidateTestUC struct {
	got qauc.ValidateTestCommand
}

func (m *mockValidateTestUC) Execute(_ context.Context, cmd qauc.ValidateTestCommand) (*qadto.ValidateTestDTO, error) {
	m.got = cmd
	return &qadto.ValidateTestDTO{
		Test:    &qadto.TestDTO{ID: cmd.TestID, IsValidated: cmd.IsValidated},
		Message: "Test validated successfully",
	}, nil
}

type mockDeleteImageUC struct {
	err error
}

func (m *mockDeleteImageUC) Execute(_ context.Context, cmd imageuc.DeleteImageCommand) (*imageuc.DeleteImageResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &imageuc.DeleteImageResult{ImageID: cmd.ImageID, Filename: "shot.png", Message: "Image deleted successfully"}, nil
}

// =====================================================================
// Auth
// =====================================================================

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		ucErr      error
		wantStatus int
		wantMsg    string
	}{
		{"success", nil, http.StatusOK, "Login successful"},
		{"invalid credentials", errors.NewUnauthorizedError("Invalid email or password"), http.StatusUnauthorized, "Invalid email or password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockLoginUC{err: tt.ucErr}
			handler := NewAuthHandler(nil, mockUC, nil, testutil.NewMockLogger())

			c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", LoginRequest{Email: "ada@example.com", Password: "s3cret!pass"})

			handler.Login(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "ada@example.com", mockUC.got.Email)

			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			if tt.ucErr == nil {
				assert.Equal(t, tt.wantMsg, resp.Message)
				assert.True(t, resp.Success)
				return
			}
			require.NotEmpty(t, resp.Errors)
			assert.Equal(t, tt.wantMsg, resp.Errors[0].Message)
		})
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	mockUC := &mockRegisterUC{}
	handler := NewAuthHandler(mockUC, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/register", RegisterRequest{
		Email:     "not-an-email",
		FirstName: "A",
		LastName:  "Lovelace",
		Password:  "short",
	})

	handler.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockUC.called)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	fields := make([]any, 0, len(resp.Errors))
	for _, item := range resp.Errors {
		fields = append(fields, item.Params["field"])
	}
	assert.ElementsMatch(t, []any{"email", "firstName", "password"}, fields)
}

// =====================================================================
// Users
// =====================================================================

func TestUserHandler_UpdatePassword(t *testing.T) {
	mockUC := &mockUpdatePasswordUC{}
	handler := NewUserHandler(nil, nil, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/users/me/password", UpdatePasswordRequest{
		CurrentPassword: "Old-passw0rd",
		NewPassword:     "New-passw0rd!",
		ConfirmPassword: "New-passw0rd!",
	})
	testutil.SetAuthContext(c, 5)

	handler.UpdatePassword(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), mockUC.got.UserID)
	assert.Equal(t, "New-passw0rd!", mockUC.got.NewPassword)
}

func TestUserHandler_UpdatePassword_Unauthenticated(t *testing.T) {
	mockUC := &mockUpdatePasswordUC{}
	handler := NewUserHandler(nil, nil, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/users/me/password", UpdatePasswordRequest{
		CurrentPassword: "Old-passw0rd",
		NewPassword:     "New-passw0rd!",
		ConfirmPassword: "New-passw0rd!",
	})

	handler.UpdatePassword(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, mockUC.got.UserID)
}

// =====================================================================
// Dashboard
// =====================================================================

func TestDashboardHandler_GetProjectDashboard(t *testing.T) {
	tests := []struct {
		name       string
		query      map[string]string
		wantStatus int
		wantTrends bool
	}{
		{"defaults to no trends", nil, http.StatusOK, false},
		{"trends requested", map[string]string{"includeTrends": "true"}, http.StatusOK, true},
		{"malformed flag", map[string]string{"includeTrends": "sometimes"}, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockProjectDashboardUC{}
			handler := NewDashboardHandler(nil, mockUC, testutil.NewMockLogger())

			c, w := testutil.NewTestContext(http.MethodGet, "/dashboard/project", nil)
			if tt.query != nil {
				testutil.SetQueryParams(c, tt.query)
			}

			handler.GetProjectDashboard(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantTrends, mockUC.got.IncludeTrends)
		})
	}
}

// =====================================================================
// QA
// =====================================================================

func TestQAHandler_ValidateTest(t *testing.T) {
	mockUC := &mockValidateTestUC{}
	handler := NewQAHandler(nil, mockUC, testutil.NewMockLogger())

	validated := true
	c, w := testutil.NewTestContext(http.MethodPatch, "/tests/3/validate", ValidateTestRequest{IsValidated: &validated})
	testutil.SetURLParam(c, "id", "3")
	testutil.SetAuthContext(c, 9)

	handler.ValidateTest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, qauc.ValidateTestCommand{TestID: 3, IsValidated: true, ReviewerID: 9}, mockUC.got)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "Test validated successfully", resp.Message)
}

func TestQAHandler_ValidateTest_MissingFlag(t *testing.T) {
	mockUC := &mockValidateTestUC{}
	handler := NewQAHandler(nil, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPatch, "/tests/3/validate", map[string]any{})
	testutil.SetURLParam(c, "id", "3")
	testutil.SetAuthContext(c, 9)

	handler.ValidateTest(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, mockUC.got.TestID)
}

// =====================================================================
// Images
// =====================================================================

func TestImageHandler_DeleteImage(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		ucErr      error
		wantStatus int
	}{
		{"success", "4", nil, http.StatusOK},
		{"not found", "4", errors.NewNotFoundError("image", "4"), http.StatusNotFound},
		{"invalid id", "abc", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewImageHandler(nil, &mockDeleteImageUC{err: tt.ucErr}, testutil.NewMockLogger())

			c, w := testutil.NewTestContext(http.MethodDelete, "/images/"+tt.id, nil)
			testutil.SetURLParam(c, "id", tt.id)

			handler.DeleteImage(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// =====================================================================
// Health
// =====================================================================

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler_HealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		pinger     Pinger
		wantStatus int
	}{
		{"no database configured", nil, http.StatusOK},
		{"database reachable", stubPinger{}, http.StatusOK},
		{"database down", stubPinger{err: context.DeadlineExceeded}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.pinger, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)

			handler.HealthCheck(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
