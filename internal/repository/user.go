// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"gigmarket/internal/models"

	"gorm.io/gorm"
)

// isUniqueViolation recognizes unique-index violations across the postgres
// and sqlite drivers without depending on driver error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate key")
}

// IsUniqueViolation reports whether err is a store-level uniqueness failure.
// Exposed so services can map races past an application check to Conflict.
func IsUniqueViolation(err error) bool {
	return isUniqueViolation(err)
}

// UserRepository defines the interface for user and profile data operations
type UserRepository interface {
	CreateWithProfile(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetBusinessProfile(ctx context.Context, userID uint) (*models.BusinessProfile, error)
	GetCustomerProfile(ctx context.Context, userID uint) (*models.CustomerProfile, error)
	ListBusinessProfiles(ctx context.Context) ([]*models.BusinessProfile, error)
	ListCustomerProfiles(ctx context.Context) ([]*models.CustomerProfile, error)
	SaveUser(ctx context.Context, user *models.User) error
	SaveBusinessProfile(ctx context.Context, profile *models.BusinessProfile) error
	SaveCustomerProfile(ctx context.Context, profile *models.CustomerProfile) error
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithProfile inserts the user and the empty profile matching its type
// in a single transaction. Profile creation is an explicit step of the
// registration workflow, not a trigger; either both rows commit or neither.
func (r *userRepository) CreateWithProfile(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		switch user.UserType {
		case models.UserTypeBusiness:
			return tx.Create(&models.BusinessProfile{UserID: user.ID, Email: user.Email}).Error
		case models.UserTypeCustomer:
			return tx.Create(&models.CustomerProfile{UserID: user.ID, Email: user.Email}).Error
		default:
			return gorm.ErrInvalidData
		}
	})
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetBusinessProfile(ctx context.Context, userID uint) (*models.BusinessProfile, error) {
	var profile models.BusinessProfile
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) GetCustomerProfile(ctx context.Context, userID uint) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) ListBusinessProfiles(ctx context.Context) ([]*models.BusinessProfile, error) {
	var profiles []*models.BusinessProfile
	err := r.db.WithContext(ctx).Preload("User").Order("created_at DESC").Find(&profiles).Error
	return profiles, err
}

func (r *userRepository) ListCustomerProfiles(ctx context.Context) ([]*models.CustomerProfile, error) {
	var profiles []*models.CustomerProfile
	err := r.db.WithContext(ctx).Preload("User").Order("created_at DESC").Find(&profiles).Error
	return profiles, err
}

func (r *userRepository) SaveUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) SaveBusinessProfile(ctx context.Context, profile *models.BusinessProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *userRepository) SaveCustomerProfile(ctx context.Context, profile *models.CustomerProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
