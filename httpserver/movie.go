package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"moviecatalog/errs"
	"moviecatalog/movie"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieReadRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies, s.cacheMiddleware)
	g.GET("/movies/search", s.handleSearchMovies, s.cacheMiddleware)
	g.GET("/movies/:id", s.handleGetMovieByID, s.cacheMiddleware)
	g.GET("/movies/name/:name", s.handleGetMovieByName, s.cacheMiddleware)
}

func (s *Server) RegisterMovieAdminRoutes(g *echo.Group) {
	g.POST("/movies", s.handleCreateMovie)
	g.PATCH("/movies/:id", s.handleUpdateMovieByID)
	g.PATCH("/movies/name/:name", s.handleUpdateMovieByName)
	g.DELETE("/movies/:id", s.handleDeleteMovieByID)
	g.DELETE("/movies/name/:name", s.handleDeleteMovieByName)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Paginated list of all movies with their genres
// @Tags movies
// @Produce json
// @Param page query int false "Page number, default 1"
// @Param per_page query int false "Page size, default 25"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	page, err := parseIntParam(c, "page", movie.DefaultPage)
	if err != nil {
		return err
	}
	perPage, err := parseIntParam(c, "per_page", movie.DefaultPerPage)
	if err != nil {
		return err
	}

	result, err := s.MovieService.ListMovies(c.Request().Context(), page, perPage)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description Filter movies by name, director, score range, popularity and genres
// @Tags movies
// @Produce json
// @Param name query string false "Substring match on name, case-insensitive"
// @Param director query string false "Substring match on director, case-insensitive"
// @Param min_rating query number false "Inclusive lower bound on imdb score"
// @Param max_rating query number false "Inclusive upper bound on imdb score"
// @Param popularity query number false "Exact popularity score"
// @Param genres query string false "Comma-separated genre names, any-of"
// @Param page query int false "Page number, default 1"
// @Param per_page query int false "Page size, default 25"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/search [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	filter, err := parseSearchFilter(c)
	if err != nil {
		return err
	}

	result, err := s.MovieService.SearchMovies(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}

// handleGetMovieByID godoc
// @Summary Get Movie
// @Description Fetch one movie by id
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleGetMovieByID(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	m, err := s.MovieService.GetMovieByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, m)
}

// handleGetMovieByName godoc
// @Summary Get Movie By Name
// @Description Fetch one movie by name
// @Tags movies
// @Produce json
// @Param name path string true "Movie name"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/name/{name} [get]
func (s *Server) handleGetMovieByName(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	m, err := s.MovieService.GetMovieByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, m)
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Description Create a movie with its genre list (admin only)
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body CreateMovieRequest true "Movie data"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Router /api/movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req CreateMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := s.MovieService.CreateMovie(c.Request().Context(), req.ToMovie(), req.Genres)
	if err != nil {
		return err
	}
	s.invalidateCache(c)

	return writeSuccess(c, http.StatusCreated, m)
}

// handleUpdateMovieByID godoc
// @Summary Update Movie
// @Description Partially update a movie; a genres key replaces the genre set (admin only)
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie id"
// @Param movie body UpdateMovieRequest true "Fields to update"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [patch]
func (s *Server) handleUpdateMovieByID(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := s.MovieService.UpdateMovieByID(c.Request().Context(), id, req.ToPatch())
	if err != nil {
		return err
	}
	s.invalidateCache(c)

	return writeSuccess(c, http.StatusOK, m)
}

// handleUpdateMovieByName godoc
// @Summary Update Movie By Name
// @Description Partially update the first movie with the given name (admin only)
// @Tags movies
// @Accept json
// @Produce json
// @Param name path string true "Movie name"
// @Param movie body UpdateMovieRequest true "Fields to update"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/name/{name} [patch]
func (s *Server) handleUpdateMovieByName(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req UpdateMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := s.MovieService.UpdateMovieByName(c.Request().Context(), c.Param("name"), req.ToPatch())
	if err != nil {
		return err
	}
	s.invalidateCache(c)

	return writeSuccess(c, http.StatusOK, m)
}

// handleDeleteMovieByID godoc
// @Summary Delete Movie
// @Description Delete a movie and its associations (admin only)
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [delete]
func (s *Server) handleDeleteMovieByID(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := s.MovieService.DeleteMovieByID(c.Request().Context(), id); err != nil {
		return err
	}
	s.invalidateCache(c)

	return writeSuccess(c, http.StatusOK, map[string]string{"message": "Item deleted."})
}

// handleDeleteMovieByName godoc
// @Summary Delete Movie By Name
// @Description Delete the first movie with the given name (admin only)
// @Tags movies
// @Produce json
// @Param name path string true "Movie name"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/name/{name} [delete]
func (s *Server) handleDeleteMovieByName(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	if err := s.MovieService.DeleteMovieByName(c.Request().Context(), c.Param("name")); err != nil {
		return err
	}
	s.invalidateCache(c)

	return writeSuccess(c, http.StatusOK, map[string]string{"message": "Item deleted."})
}

// parseSearchFilter reads the optional search parameters. Numeric parse
// failures surface as EINVALID from this boundary, never from the core.
func parseSearchFilter(c echo.Context) (movie.SearchFilter, error) {
	filter := movie.SearchFilter{
		Name:     strings.TrimSpace(c.QueryParam("name")),
		Director: strings.TrimSpace(c.QueryParam("director")),
	}

	var err error
	if filter.MinRating, err = parseFloatParam(c, "min_rating"); err != nil {
		return movie.SearchFilter{}, err
	}
	if filter.MaxRating, err = parseFloatParam(c, "max_rating"); err != nil {
		return movie.SearchFilter{}, err
	}
	if filter.Popularity, err = parseFloatParam(c, "popularity"); err != nil {
		return movie.SearchFilter{}, err
	}

	if raw := strings.TrimSpace(c.QueryParam("genres")); raw != "" {
		filter.Genres = strings.Split(raw, ",")
	}

	if filter.Page, err = parseIntParam(c, "page", movie.DefaultPage); err != nil {
		return movie.SearchFilter{}, err
	}
	if filter.PerPage, err = parseIntParam(c, "per_page", movie.DefaultPerPage); err != nil {
		return movie.SearchFilter{}, err
	}

	return filter, nil
}

func parseIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Errorf(errs.EINVALID, "invalid movie id %q", c.Param("id"))
	}
	return id, nil
}

func parseIntParam(c echo.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Errorf(errs.EINVALID, "invalid value %q for %s", raw, name)
	}
	return value, nil
}

func parseFloatParam(c echo.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errs.Errorf(errs.EINVALID, "invalid value %q for %s", raw, name)
	}
	return &value, nil
}
