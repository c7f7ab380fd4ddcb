package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"moviecatalog/user"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// UserModel represents the database model for regular accounts
type UserModel struct {
	ID           int64  `gorm:"primaryKey"`
	Email        string `gorm:"not null;unique"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// AdminModel represents the database model for admin accounts. Admins live
// in their own table; is_admin is always true for rows of this kind.
type AdminModel struct {
	ID           int64  `gorm:"primaryKey"`
	Email        string `gorm:"not null;unique"`
	PasswordHash string `gorm:"not null"`
	IsAdmin      bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (AdminModel) TableName() string {
	return "admins"
}

// AccountRepository implements user.Repository and auth.AccountRepository.
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateUser creates a new user account in the database
func (r *AccountRepository) CreateUser(ctx context.Context, a user.Account) (user.Account, error) {
	model := UserModel{
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicateEmailError(err) {
			return user.Account{}, user.ErrEmailTaken
		}
		return user.Account{}, err
	}
	return toDomainUser(model), nil
}

// GetUserByID fetches a user account by id.
func (r *AccountRepository) GetUserByID(ctx context.Context, id int64) (user.Account, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.Account{}, user.ErrNotFound
		}
		return user.Account{}, err
	}
	return toDomainUser(model), nil
}

// GetUserByEmail fetches a user account by email.
func (r *AccountRepository) GetUserByEmail(ctx context.Context, email string) (user.Account, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.Account{}, user.ErrNotFound
		}
		return user.Account{}, err
	}
	return toDomainUser(model), nil
}

// CreateAdmin creates a new admin account in the database
func (r *AccountRepository) CreateAdmin(ctx context.Context, a user.Account) (user.Account, error) {
	model := AdminModel{
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		IsAdmin:      true,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicateEmailError(err) {
			return user.Account{}, user.ErrEmailTaken
		}
		return user.Account{}, err
	}
	return toDomainAdmin(model), nil
}

// GetAdminByEmail fetches an admin account by email.
func (r *AccountRepository) GetAdminByEmail(ctx context.Context, email string) (user.Account, error) {
	var model AdminModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.Account{}, user.ErrNotFound
		}
		return user.Account{}, err
	}
	return toDomainAdmin(model), nil
}

func toDomainUser(model UserModel) user.Account {
	return user.Account{
		ID:           model.ID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func toDomainAdmin(model AdminModel) user.Account {
	return user.Account{
		ID:           model.ID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		IsAdmin:      true,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func isDuplicateEmailError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && strings.Contains(strings.ToLower(pqErr.Constraint), "email")
	}
	return false
}
