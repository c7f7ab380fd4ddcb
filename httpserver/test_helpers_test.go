//nolint:unused
package httpserver_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"moviecatalog/httpserver"
	"moviecatalog/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testJWTSecret
	cfg.Cache.TTLSeconds = 300
	return cfg
}

func signTestToken(t testing.TB, isAdmin bool) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  1,
		"email":    "john@mail.com",
		"is_admin": isAdmin,
		"type":     "access",
		"exp":      time.Now().Add(1 * time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func signTestRefreshToken(t testing.TB) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  1,
		"email":    "john@mail.com",
		"is_admin": false,
		"type":     "refresh",
		"exp":      time.Now().Add(1 * time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func decodeAPIResponse(t testing.TB, rec *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()
	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
