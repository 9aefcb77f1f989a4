package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/repository"
	apperrors "github.com/naitfess/prak-tpm-projek-akhir/pkg/errors"
	"github.com/naitfess/prak-tpm-projek-akhir/pkg/logger"
)

// bcryptCost matches the hashing cost used by the legacy accounts.
const bcryptCost = 12

// AuthService handles authentication business logic
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new AuthService
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register creates a new user account with the default user role.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	var existing models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, apperrors.Conflict("username already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to check username", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := models.User{
		Username: username,
		Password: string(hash),
		Role:     models.RoleUser,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// The unique index is the authority under concurrent registration.
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("username already exists")
		}
		return nil, apperrors.Internal("failed to create user", err)
	}

	logger.Infof("New user registered: %s (ID: %d)", user.Username, user.ID)
	return &user, nil
}

// Login verifies credentials and returns the user on success.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.InvalidInput("invalid credentials")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.InvalidInput("invalid credentials")
	}

	logger.Infof("User logged in: %s (ID: %d)", user.Username, user.ID)
	return &user, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("failed to load user", err)
	}
	return &user, nil
}

// EnsureAdmin creates the admin account on first boot if it does not exist.
// A blank password disables seeding.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if password == "" {
		return nil
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username: username,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}

	logger.Infof("Admin account seeded: %s", username)
	return nil
}
