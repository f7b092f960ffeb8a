package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/devboard/devboard/internal/constants"
	"github.com/devboard/devboard/internal/models"
	"github.com/devboard/devboard/internal/repository"
	"github.com/devboard/devboard/internal/utils"
)

var ErrDeveloperNotFound = errors.New("developer not found")

// UserService handles roster and developer provisioning logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsers returns all users.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListDevelopers returns the developer roster with task and completion counts.
func (s *UserService) ListDevelopers() ([]repository.DeveloperStats, error) {
	stats, err := s.userRepo.ListDeveloperStats()
	if err != nil {
		return nil, fmt.Errorf("failed to list developers: %w", err)
	}
	return stats, nil
}

// ProvisionDeveloperInput holds the fields for a manager-created account.
type ProvisionDeveloperInput struct {
	Username string
	Email    string
	Password string
}

// ProvisionedDeveloper is the result of provisioning: the account plus its
// one-time access credentials.
type ProvisionedDeveloper struct {
	User          *models.User
	CustomLink    string
	DeveloperCode string
}

// ProvisionDeveloper creates a developer account with a temp password, a
// custom access link, and a developer code.
func (s *UserService) ProvisionDeveloper(input ProvisionDeveloperInput) (*ProvisionedDeveloper, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	customLink, err := utils.GenerateCustomLink()
	if err != nil {
		return nil, fmt.Errorf("failed to generate custom link: %w", err)
	}
	developerCode, err := utils.GenerateDeveloperCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate developer code: %w", err)
	}

	user := &models.User{
		Username:      username,
		Email:         email,
		PasswordHash:  string(hashedPassword),
		Role:          models.RoleDeveloper,
		TempPassword:  true,
		CustomLink:    &customLink,
		DeveloperCode: developerCode,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, ErrUsernameTaken
	}

	return &ProvisionedDeveloper{
		User:          user,
		CustomLink:    customLink,
		DeveloperCode: developerCode,
	}, nil
}

// RegenerateCustomLink issues a fresh custom link for a developer.
func (s *UserService) RegenerateCustomLink(developerID uint64) (string, error) {
	customLink, err := utils.GenerateCustomLink()
	if err != nil {
		return "", fmt.Errorf("failed to generate custom link: %w", err)
	}

	rows, err := s.userRepo.UpdateCustomLink(developerID, customLink)
	if err != nil {
		return "", fmt.Errorf("failed to update custom link: %w", err)
	}
	if rows == 0 {
		return "", ErrDeveloperNotFound
	}

	return customLink, nil
}
