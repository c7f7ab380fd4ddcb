package user

import (
	"context"
	"strings"
)

type Service interface {
	RegisterUser(ctx context.Context, email, password string) (Account, error)
	RegisterAdmin(ctx context.Context, email, password string) (Account, error)
}

type Repository interface {
	CreateUser(ctx context.Context, a Account) (Account, error)
	GetUserByID(ctx context.Context, id int64) (Account, error)
	GetUserByEmail(ctx context.Context, email string) (Account, error)
	CreateAdmin(ctx context.Context, a Account) (Account, error)
	GetAdminByEmail(ctx context.Context, email string) (Account, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, plain string) error
}

type Usecase struct {
	r      Repository
	hasher PasswordHasher
}

func NewUsecase(r Repository, h PasswordHasher) *Usecase {
	return &Usecase{
		r:      r,
		hasher: h,
	}
}

func (uc *Usecase) RegisterUser(ctx context.Context, email, password string) (Account, error) {
	a, err := uc.prepare(email, password, false)
	if err != nil {
		return Account{}, err
	}
	return uc.r.CreateUser(ctx, a)
}

func (uc *Usecase) RegisterAdmin(ctx context.Context, email, password string) (Account, error) {
	a, err := uc.prepare(email, password, true)
	if err != nil {
		return Account{}, err
	}
	return uc.r.CreateAdmin(ctx, a)
}

func (uc *Usecase) prepare(email, password string, admin bool) (Account, error) {
	a := Account{
		Email:    strings.TrimSpace(email),
		Password: password,
		IsAdmin:  admin,
	}
	if err := a.Validate(); err != nil {
		return Account{}, err
	}

	hashed, err := uc.hasher.Hash(a.Password)
	if err != nil {
		return Account{}, err
	}
	a.Password = ""
	a.PasswordHash = hashed
	return a, nil
}
