package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"moviecatalog/auth"
	"moviecatalog/cache"
	"moviecatalog/errs"
	"moviecatalog/favorite"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/sentry"
	"moviecatalog/seed"
	"moviecatalog/user"

	sentryecho "github.com/getsentry/sentry-go/echo"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	MovieService movie.Service

	FavoriteService favorite.Service

	UserService user.Service

	AuthService auth.Service

	// Loader seeds the catalog from the bundled dataset; Truncater clears
	// all data rows. Both sit behind admin-only endpoints.
	Loader    *seed.Loader
	Truncater seed.Truncater

	// DatasetPath is where the bulk-load endpoint reads its JSON from.
	DatasetPath string

	// Cache is the optional response cache; nil disables caching.
	Cache    cache.Store
	CacheTTL time.Duration
}

func Default(cfg *config.Config) *Server {
	allowOrigins := []string{"*"}
	if cfg.AllowOrigins != "" {
		allowOrigins = strings.Split(cfg.AllowOrigins, ",")
	}

	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: allowOrigins,
		DatasetPath:  cfg.DatasetPath,
		CacheTTL:     time.Duration(cfg.Cache.TTLSeconds) * time.Second,
	}

	s.Router.HTTPErrorHandler = customHTTPErrorHandler
	s.Router.Validator = NewValidator()
	s.RegisterGlobalMiddlewares()
	s.RegisterHealthRoutes()
	s.RegisterSwaggerRoutes()

	api := s.Router.Group("/api")

	// PUBLIC
	s.RegisterAccountRoutes(api)

	// PRIVATE: any verified access token
	private := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(cfg.Auth.JWTSecret),
		SigningMethod: "HS256",
	}), requireAccess)
	s.RegisterMovieReadRoutes(private)
	s.RegisterFavoriteRoutes(private)

	// ADMIN: access token with the admin claim
	admin := private.Group("", requireAdmin)
	s.RegisterMovieAdminRoutes(admin)
	s.RegisterDatabaseRoutes(admin)

	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// customHTTPErrorHandler maps application errors to HTTP status codes and
// the APIResponse envelope. Internal errors keep their detail out of the
// response and go to Sentry instead.
func customHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		writeHTTPError(c, he.Code, fmt.Sprintf("%v", he.Message), err)
		return
	}

	status := statusFromErrorCode(errs.ErrorCode(err))
	message := errs.ErrorMessage(err)
	if status == http.StatusInternalServerError {
		message = "Internal server error"
		new(sentry.Sentry).WithContext(c).WithError(err).Capture()
	}
	writeHTTPError(c, status, message, err)
}

func writeHTTPError(c echo.Context, status int, message string, err error) {
	if werr := writeError(c, status, message, "", err); werr != nil {
		c.Logger().Error(werr)
	}
}

func statusFromErrorCode(code string) int {
	switch code {
	case errs.EINVALID:
		return http.StatusBadRequest
	case errs.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case errs.EFORBIDDEN:
		return http.StatusForbidden
	case errs.ENOTFOUND:
		return http.StatusNotFound
	case errs.ECONFLICT:
		return http.StatusConflict
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
