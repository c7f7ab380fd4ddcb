package httpserver

import (
	"bytes"
	"log/slog"
	"net/http"

	"moviecatalog/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// identity is the verified claim set of the request's bearer token.
type identity struct {
	UserID  int64
	Email   string
	IsAdmin bool
}

func currentIdentity(c echo.Context) (identity, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return identity{}, errs.Errorf(errs.EUNAUTHORIZED, "missing or invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return identity{}, errs.Errorf(errs.EUNAUTHORIZED, "missing or invalid token")
	}

	// refresh tokens only pass the refresh endpoint
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return identity{}, errs.Errorf(errs.EUNAUTHORIZED, "not an access token")
	}

	userID, _ := claims["user_id"].(float64)
	if userID <= 0 {
		return identity{}, errs.Errorf(errs.EUNAUTHORIZED, "missing or invalid token")
	}

	email, _ := claims["email"].(string)
	isAdmin, _ := claims["is_admin"].(bool)

	return identity{
		UserID:  int64(userID),
		Email:   email,
		IsAdmin: isAdmin,
	}, nil
}

// currentUser resolves the caller as a users-table principal. Admin tokens
// carry admins-table ids from an independent sequence, so letting one through
// would act on whichever unrelated user shares the numeric id.
func currentUser(c echo.Context) (identity, error) {
	ident, err := currentIdentity(c)
	if err != nil {
		return identity{}, err
	}
	if ident.IsAdmin {
		return identity{}, errs.Errorf(errs.EFORBIDDEN, "favorites belong to user accounts")
	}
	return ident, nil
}

// requireAccess rejects requests whose verified token is not a usable
// access token (wrong type, missing identity claim).
func requireAccess(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := currentIdentity(c); err != nil {
			return err
		}
		return next(c)
	}
}

// requireAdmin guards mutating catalog routes behind the admin claim.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, err := currentIdentity(c)
		if err != nil {
			return err
		}
		if !ident.IsAdmin {
			return errs.Errorf(errs.EFORBIDDEN, "admin privileges required")
		}
		return next(c)
	}
}

// cacheMiddleware serves successful GET responses from the response cache,
// keyed by request URI. Cache failures fall through to the handler.
func (s *Server) cacheMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.Cache == nil || c.Request().Method != http.MethodGet {
			return next(c)
		}

		ctx := c.Request().Context()
		key := c.Request().URL.RequestURI()

		if blob, err := s.Cache.Get(ctx, key); err == nil {
			c.Response().Header().Set("X-Cache", "HIT")
			return c.JSONBlob(http.StatusOK, blob)
		}
		c.Response().Header().Set("X-Cache", "MISS")

		rec := &responseRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
		c.Response().Writer = rec

		if err := next(c); err != nil {
			return err
		}

		if rec.status == http.StatusOK {
			if err := s.Cache.Set(ctx, key, rec.body.Bytes(), s.CacheTTL); err != nil {
				slog.Warn("response cache set failed", "key", key, "error", err)
			}
		}
		return nil
	}
}

// invalidateCache drops the whole response cache. Every mutating movie or
// favorite operation pays this cost instead of tracking keys per entity.
func (s *Server) invalidateCache(c echo.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Clear(c.Request().Context()); err != nil {
		slog.Warn("response cache clear failed", "error", err)
	}
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
