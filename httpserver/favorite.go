package httpserver

import (
	"net/http"

	"moviecatalog/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterFavoriteRoutes(g *echo.Group) {
	g.POST("/favorites", s.handleAddFavorite)
	g.DELETE("/favorites/:name", s.handleRemoveFavorite)
}

// handleAddFavorite godoc
// @Summary Add Favorite
// @Description Add a movie to the authenticated user's favorites
// @Tags favorites
// @Accept json
// @Produce json
// @Param favorite body AddFavoriteRequest true "Movie to favorite"
// @Success 201 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/favorites [post]
func (s *Server) handleAddFavorite(c echo.Context) error {
	if s.FavoriteService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "favorite service not configured")
	}

	ident, err := currentUser(c)
	if err != nil {
		return err
	}

	var req AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := s.FavoriteService.AddFavorite(c.Request().Context(), ident.UserID, req.MovieID)
	if err != nil {
		return err
	}
	s.invalidateCache(c)

	return writeSuccess(c, http.StatusCreated, m)
}

// handleRemoveFavorite godoc
// @Summary Remove Favorite
// @Description Remove every favorite of the user whose movie name matches
// @Tags favorites
// @Produce json
// @Param name path string true "Movie name"
// @Success 200 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/favorites/{name} [delete]
func (s *Server) handleRemoveFavorite(c echo.Context) error {
	if s.FavoriteService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "favorite service not configured")
	}

	ident, err := currentUser(c)
	if err != nil {
		return err
	}

	err = s.FavoriteService.RemoveFavorite(c.Request().Context(), ident.UserID, c.Param("name"))
	if err != nil {
		return err
	}
	s.invalidateCache(c)

	return writeSuccess(c, http.StatusOK, map[string]string{"message": "Favorite removed."})
}
