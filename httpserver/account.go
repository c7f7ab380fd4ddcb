package httpserver

import (
	"net/http"

	"moviecatalog/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterAccountRoutes(g *echo.Group) {
	g.POST("/users/register", s.handleUserRegister)
	g.POST("/users/login", s.handleUserLogin)
	g.POST("/admin/register", s.handleAdminRegister)
	g.POST("/admin/login", s.handleAdminLogin)
	g.POST("/auth/refresh", s.handleRefresh)
}

// handleUserRegister godoc
// @Summary User Register
// @Description Register a new user account
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body RegisterRequest true "Email and password"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/users/register [post]
func (s *Server) handleUserRegister(c echo.Context) error {
	if s.UserService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "user service not configured")
	}

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := s.UserService.RegisterUser(c.Request().Context(), req.Email, req.Password); err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, map[string]string{
		"message": "User created successfully.",
	})
}

// handleUserLogin godoc
// @Summary User Login
// @Description Authenticate a user and return access + refresh tokens
// @Tags accounts
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/users/login [post]
func (s *Server) handleUserLogin(c echo.Context) error {
	if s.AuthService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "auth service not configured")
	}

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := s.AuthService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"message":       "Login successful.",
	})
}

// handleAdminRegister godoc
// @Summary Admin Register
// @Description Register a new admin account
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body RegisterRequest true "Email and password"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/admin/register [post]
func (s *Server) handleAdminRegister(c echo.Context) error {
	if s.UserService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "user service not configured")
	}

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := s.UserService.RegisterAdmin(c.Request().Context(), req.Email, req.Password); err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, map[string]string{
		"message": "Admin created successfully.",
	})
}

// handleAdminLogin godoc
// @Summary Admin Login
// @Description Authenticate an admin and return tokens carrying the admin claim
// @Tags accounts
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/admin/login [post]
func (s *Server) handleAdminLogin(c echo.Context) error {
	if s.AuthService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "auth service not configured")
	}

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := s.AuthService.AdminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"message":       "Login successful.",
	})
}

// handleRefresh godoc
// @Summary Refresh Access Token
// @Description Exchange a refresh token for a new token pair
// @Tags accounts
// @Accept json
// @Produce json
// @Param refresh body RefreshRequest true "Refresh token"
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/auth/refresh [post]
func (s *Server) handleRefresh(c echo.Context) error {
	if s.AuthService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "auth service not configured")
	}

	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := s.AuthService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}
