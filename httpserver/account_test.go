// nolint: funlen
package httpserver_test

import (
	"context"
	"net/http"
	"testing"

	"moviecatalog/auth"
	"moviecatalog/httpserver"
	"moviecatalog/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterUser(ctx context.Context, email, password string) (user.Account, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(user.Account), args.Error(1)
}

func (m *MockUserService) RegisterAdmin(ctx context.Context, email, password string) (user.Account, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(user.Account), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (auth.TokenPair, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) AdminLogin(ctx context.Context, email, password string) (auth.TokenPair, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func newAccountServer(t *testing.T) (*httpserver.Server, *MockUserService, *MockAuthService) {
	t.Helper()
	users := new(MockUserService)
	authSvc := new(MockAuthService)
	server := httpserver.Default(testConfig())
	server.UserService = users
	server.AuthService = authSvc
	return server, users, authSvc
}

func TestAccountRoutes_RegisterUser(t *testing.T) {
	server, users, _ := newAccountServer(t)

	users.On("RegisterUser", mock.Anything, "john@mail.com", "secret123").
		Return(user.Account{ID: 1, Email: "john@mail.com"}, nil).Once()

	rec := doJSON(server, http.MethodPost, "/api/users/register", "",
		map[string]string{"email": "john@mail.com", "password": "secret123"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "User created successfully.")
	users.AssertExpectations(t)
}

func TestAccountRoutes_RegisterDuplicateIs409(t *testing.T) {
	server, users, _ := newAccountServer(t)

	users.On("RegisterUser", mock.Anything, "john@mail.com", "secret123").
		Return(user.Account{}, user.ErrEmailTaken).Once()

	rec := doJSON(server, http.MethodPost, "/api/users/register", "",
		map[string]string{"email": "john@mail.com", "password": "secret123"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"100409"`)
	users.AssertExpectations(t)
}

func TestAccountRoutes_RegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"missing email", map[string]string{"password": "secret123"}},
		{"malformed email", map[string]string{"email": "not-an-email", "password": "secret123"}},
		{"short password", map[string]string{"email": "john@mail.com", "password": "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, users, _ := newAccountServer(t)

			rec := doJSON(server, http.MethodPost, "/api/users/register", "", tt.payload)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			users.AssertNotCalled(t, "RegisterUser", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAccountRoutes_RegisterAdmin(t *testing.T) {
	server, users, _ := newAccountServer(t)

	users.On("RegisterAdmin", mock.Anything, "boss@mail.com", "secret123").
		Return(user.Account{ID: 1, Email: "boss@mail.com", IsAdmin: true}, nil).Once()

	rec := doJSON(server, http.MethodPost, "/api/admin/register", "",
		map[string]string{"email": "boss@mail.com", "password": "secret123"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin created successfully.")
	users.AssertExpectations(t)
}

func TestAccountRoutes_Login(t *testing.T) {
	server, _, authSvc := newAccountServer(t)

	pair := auth.TokenPair{AccessToken: "access", RefreshToken: "refresh"}
	authSvc.On("Login", mock.Anything, "john@mail.com", "secret123").Return(pair, nil).Once()

	rec := doJSON(server, http.MethodPost, "/api/users/login", "",
		map[string]string{"email": "john@mail.com", "password": "secret123"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"access"`)
	assert.Contains(t, rec.Body.String(), `"refresh_token":"refresh"`)
	authSvc.AssertExpectations(t)
}

func TestAccountRoutes_LoginBadCredentialsIs401(t *testing.T) {
	server, _, authSvc := newAccountServer(t)

	authSvc.On("Login", mock.Anything, "john@mail.com", "wrong").
		Return(auth.TokenPair{}, auth.ErrInvalidCredentials).Once()

	rec := doJSON(server, http.MethodPost, "/api/users/login", "",
		map[string]string{"email": "john@mail.com", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"100401"`)
	authSvc.AssertExpectations(t)
}

func TestAccountRoutes_LoginLockedIs401(t *testing.T) {
	server, _, authSvc := newAccountServer(t)

	authSvc.On("Login", mock.Anything, "john@mail.com", "secret123").
		Return(auth.TokenPair{}, auth.ErrAccountLocked).Once()

	rec := doJSON(server, http.MethodPost, "/api/users/login", "",
		map[string]string{"email": "john@mail.com", "password": "secret123"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "locked")
	authSvc.AssertExpectations(t)
}

func TestAccountRoutes_AdminLogin(t *testing.T) {
	server, _, authSvc := newAccountServer(t)

	pair := auth.TokenPair{AccessToken: "admin-access", RefreshToken: "admin-refresh"}
	authSvc.On("AdminLogin", mock.Anything, "boss@mail.com", "secret123").Return(pair, nil).Once()

	rec := doJSON(server, http.MethodPost, "/api/admin/login", "",
		map[string]string{"email": "boss@mail.com", "password": "secret123"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"admin-access"`)
	authSvc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	authSvc.AssertExpectations(t)
}

func TestAccountRoutes_Refresh(t *testing.T) {
	server, _, authSvc := newAccountServer(t)

	pair := auth.TokenPair{AccessToken: "access2", RefreshToken: "refresh2"}
	authSvc.On("Refresh", mock.Anything, "old-refresh").Return(pair, nil).Once()

	rec := doJSON(server, http.MethodPost, "/api/auth/refresh", "",
		map[string]string{"refresh_token": "old-refresh"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"access2"`)
	authSvc.AssertExpectations(t)
}

func TestAccountRoutes_RefreshInvalidIs401(t *testing.T) {
	server, _, authSvc := newAccountServer(t)

	authSvc.On("Refresh", mock.Anything, "garbage").
		Return(auth.TokenPair{}, auth.ErrInvalidRefreshToken).Once()

	rec := doJSON(server, http.MethodPost, "/api/auth/refresh", "",
		map[string]string{"refresh_token": "garbage"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	authSvc.AssertExpectations(t)
}
