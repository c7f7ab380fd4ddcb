package auth

import (
	"context"
	"time"

	"moviecatalog/errs"
	"moviecatalog/user"
)

var (
	ErrInvalidCredentials  = errs.Errorf(errs.EUNAUTHORIZED, "invalid credentials")
	ErrAccountLocked       = errs.Errorf(errs.EUNAUTHORIZED, "account temporarily locked")
	ErrInvalidRefreshToken = errs.Errorf(errs.EUNAUTHORIZED, "invalid refresh token")
)

type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, error)
	AdminLogin(ctx context.Context, email, password string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

type AccountRepository interface {
	GetUserByEmail(ctx context.Context, email string) (user.Account, error)
	GetAdminByEmail(ctx context.Context, email string) (user.Account, error)
}

type LoginAttempt struct {
	FailedCount int
	JailedUntil time.Time
}

type LoginAttemptRepository interface {
	Get(ctx context.Context, email string) (LoginAttempt, error)
	Save(ctx context.Context, email string, attempt LoginAttempt) error
	Reset(ctx context.Context, email string) error
}

type PasswordHasher interface {
	Compare(hashed, plain string) error
}

type TokenProvider interface {
	GenerateAccessToken(a user.Account) (string, error)
	GenerateRefreshToken(a user.Account) (string, error)
	ParseRefreshToken(refreshToken string) (user.Account, error)
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type Usecase struct {
	accounts       AccountRepository
	attempts       LoginAttemptRepository
	passwordHasher PasswordHasher
	tokenProvider  TokenProvider
	maxRetries     int
	jailDuration   time.Duration
	now            func() time.Time
}

func NewUsecase(
	accounts AccountRepository,
	attempts LoginAttemptRepository,
	passwordHasher PasswordHasher,
	tokenProvider TokenProvider,
) *Usecase {
	return &Usecase{
		accounts:       accounts,
		attempts:       attempts,
		passwordHasher: passwordHasher,
		tokenProvider:  tokenProvider,
		maxRetries:     5,
		jailDuration:   15 * time.Minute,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (uc *Usecase) Login(ctx context.Context, email, password string) (TokenPair, error) {
	return uc.login(ctx, email, password, uc.accounts.GetUserByEmail)
}

func (uc *Usecase) AdminLogin(ctx context.Context, email, password string) (TokenPair, error) {
	return uc.login(ctx, email, password, uc.accounts.GetAdminByEmail)
}

func (uc *Usecase) login(
	ctx context.Context,
	email, password string,
	lookup func(context.Context, string) (user.Account, error),
) (TokenPair, error) {
	attempt, err := uc.attempts.Get(ctx, email)
	if err != nil {
		return TokenPair{}, err
	}

	if !attempt.JailedUntil.IsZero() {
		if attempt.JailedUntil.After(uc.now()) {
			return TokenPair{}, ErrAccountLocked
		}
		attempt.JailedUntil = time.Time{}
		attempt.FailedCount = 0
		if err := uc.attempts.Save(ctx, email, attempt); err != nil {
			return TokenPair{}, err
		}
	}

	a, err := lookup(ctx, email)
	if err != nil {
		if err := uc.recordFailure(ctx, email, attempt); err != nil {
			return TokenPair{}, err
		}
		return TokenPair{}, ErrInvalidCredentials
	}

	if err := uc.passwordHasher.Compare(a.PasswordHash, password); err != nil {
		if err := uc.recordFailure(ctx, email, attempt); err != nil {
			return TokenPair{}, err
		}
		return TokenPair{}, ErrInvalidCredentials
	}

	if err := uc.attempts.Reset(ctx, email); err != nil {
		return TokenPair{}, err
	}

	return uc.issueTokens(a)
}

func (uc *Usecase) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	a, err := uc.tokenProvider.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidRefreshToken
	}
	return uc.issueTokens(a)
}

func (uc *Usecase) issueTokens(a user.Account) (TokenPair, error) {
	accessToken, err := uc.tokenProvider.GenerateAccessToken(a)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := uc.tokenProvider.GenerateRefreshToken(a)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (uc *Usecase) recordFailure(ctx context.Context, email string, attempt LoginAttempt) error {
	attempt.FailedCount++
	if attempt.FailedCount >= uc.maxRetries {
		attempt.FailedCount = 0
		attempt.JailedUntil = uc.now().Add(uc.jailDuration)
	}
	return uc.attempts.Save(ctx, email, attempt)
}
