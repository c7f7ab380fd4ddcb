package user

import (
	"net/mail"
	"strings"
	"time"

	"moviecatalog/errs"
)

var (
	ErrInvalidEmail    = errs.Errorf(errs.EINVALID, "account: invalid email")
	ErrInvalidPassword = errs.Errorf(errs.EINVALID, "account: invalid password")
	ErrEmailTaken      = errs.Errorf(errs.ECONFLICT, "an account with that email already exists")
	ErrNotFound        = errs.Errorf(errs.ENOTFOUND, "account not found")
)

// Account is a registered identity, either a regular user or an admin.
// Users and admins live in separate tables; IsAdmin tells them apart.
type Account struct {
	ID           int64
	Email        string
	Password     string `json:"-"` // plain text, input only
	PasswordHash string `json:"-"`
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a Account) Validate() error {
	email := strings.TrimSpace(a.Email)
	if email == "" {
		return ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(a.Password) == "" {
		return ErrInvalidPassword
	}
	return nil
}
