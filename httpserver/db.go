package httpserver

import (
	"net/http"

	"moviecatalog/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterDatabaseRoutes(g *echo.Group) {
	g.POST("/db/load", s.loadDataset)
	g.POST("/db/clear", s.clearData)
}

// loadDataset godoc
// @Summary Load Dataset
// @Description Bulk-load the bundled movie dataset into the catalog
// @Tags database
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Router /api/db/load [post]
func (s *Server) loadDataset(c echo.Context) error {
	if s.Loader == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "dataset loader not configured")
	}

	loaded, err := s.Loader.LoadFile(c.Request().Context(), s.DatasetPath)
	if err != nil {
		return err
	}

	s.invalidateCache(c)

	return writeSuccess(c, http.StatusOK, map[string]any{
		"message": "Dataset loaded.",
		"loaded":  loaded,
	})
}

// clearData godoc
// @Summary Clear Data
// @Description Remove all catalog and account data
// @Tags database
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Router /api/db/clear [post]
func (s *Server) clearData(c echo.Context) error {
	if s.Truncater == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "truncater not configured")
	}

	if err := s.Truncater.TruncateAll(c.Request().Context()); err != nil {
		return err
	}

	s.invalidateCache(c)

	return writeSuccess(c, http.StatusOK, map[string]string{
		"message": "All data cleared.",
	})
}
