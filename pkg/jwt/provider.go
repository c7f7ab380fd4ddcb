package jwt

import (
	"errors"
	"time"

	"moviecatalog/user"

	"github.com/golang-jwt/jwt/v5"
)

// JWTProvider issues and verifies HS256 access/refresh token pairs. Claims
// carry the verified identity (user_id, email) and the admin flag; callers
// trust them without re-checking credentials.
type JWTProvider struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewJWTProvider(secret string, accessTTL, refreshTTL time.Duration) *JWTProvider {
	return &JWTProvider{
		Secret:     secret,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

func (p *JWTProvider) GenerateAccessToken(a user.Account) (string, error) {
	return p.generate(a, "access", p.AccessTTL)
}

func (p *JWTProvider) GenerateRefreshToken(a user.Account) (string, error) {
	return p.generate(a, "refresh", p.RefreshTTL)
}

func (p *JWTProvider) generate(a user.Account, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  a.ID,
		"email":    a.Email,
		"is_admin": a.IsAdmin,
		"type":     tokenType,
		"exp":      jwt.NewNumericDate(time.Now().Add(ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.Secret))
}

func (p *JWTProvider) ParseRefreshToken(refreshToken string) (user.Account, error) {
	token, err := jwt.Parse(refreshToken,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(p.Secret), nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return user.Account{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return user.Account{}, errors.New("invalid token claims")
	}

	if claimType, ok := claims["type"].(string); !ok || claimType != "refresh" {
		return user.Account{}, errors.New("invalid token type")
	}

	// JSON numbers decode as float64
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return user.Account{}, errors.New("invalid user id")
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return user.Account{}, errors.New("invalid email")
	}

	isAdmin, _ := claims["is_admin"].(bool)

	return user.Account{
		ID:      int64(userID),
		Email:   email,
		IsAdmin: isAdmin,
	}, nil
}
