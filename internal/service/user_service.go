package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"buddy/internal/credentials"
	"buddy/internal/models"
	"buddy/internal/repository"
	"buddy/internal/security"
	"buddy/internal/validation"
)

var (
	ErrParentNotFound = errors.New("parent not found")
	ErrChildNotFound  = errors.New("child not found")
	ErrNotYourChild   = errors.New("child does not belong to this parent")
)

// UserService handles parent and child account management
type UserService struct {
	userRepo *repository.UserRepository
	email    *EmailService
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository, email *EmailService) *UserService {
	return &UserService{userRepo: userRepo, email: email}
}

// ChildCredentials is the one-time view of a new child's login details
type ChildCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateChild creates a child under the parent with generated
// credentials. The username is derived from the child's and parent's
// names; the password is random and returned exactly once. The
// credentials email is best effort.
func (s *UserService) CreateChild(ctx context.Context, parentID, firstName, lastName, nickname string, birthDate *time.Time) (*models.Child, *ChildCredentials, error) {
	if err := validation.ValidateName("first_name", firstName); err != nil {
		return nil, nil, err
	}
	if err := validation.ValidateName("last_name", lastName); err != nil {
		return nil, nil, err
	}

	parent, err := s.userRepo.GetParentByID(parentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get parent: %w", err)
	}
	if parent == nil {
		return nil, nil, ErrParentNotFound
	}

	username := credentials.ChildUsername(firstName, lastName, parent.Username)
	if existing, err := s.userRepo.GetChildByUsername(username); err != nil {
		return nil, nil, fmt.Errorf("failed to check username: %w", err)
	} else if existing != nil {
		return nil, nil, ErrUsernameTaken
	}

	password, err := credentials.GenerateChildPassword()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate password: %w", err)
	}
	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	child, err := s.userRepo.CreateChild(&models.Child{
		ParentID:     parentID,
		FirstName:    firstName,
		LastName:     lastName,
		BirthDate:    birthDate,
		Nickname:     nickname,
		Username:     username,
		PasswordHash: passwordHash,
		Status:       models.ChildActive,
	})
	if err != nil {
		return nil, nil, err
	}

	// Email failure must not lose the child account; the credentials
	// are still in the response.
	if err := s.email.SendChildCredentialsEmail(ctx, parent.Email, parent.FirstName, firstName, username, password); err != nil {
		log.Printf("Warning: failed to send child credentials to %s: %v", parent.Email, err)
	}

	return child, &ChildCredentials{Username: username, Password: password}, nil
}

// GetChildren lists the parent's children
func (s *UserService) GetChildren(parentID string) ([]models.Child, error) {
	return s.userRepo.GetParentChildren(parentID)
}

// GetChild returns the child after checking it belongs to the parent
func (s *UserService) GetChild(parentID, childID string) (*models.Child, error) {
	child, err := s.userRepo.GetChildByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	if child.ParentID != parentID {
		return nil, ErrNotYourChild
	}
	return child, nil
}

// RequireChild verifies the child exists, for child-token requests
func (s *UserService) RequireChild(childID string) (*models.Child, error) {
	child, err := s.userRepo.GetChildByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	return child, nil
}

// SetChildStatus activates or deactivates a parent's child
func (s *UserService) SetChildStatus(parentID, childID string, status models.ChildStatus) error {
	if _, err := s.GetChild(parentID, childID); err != nil {
		return err
	}
	return s.userRepo.UpdateChildStatus(childID, status)
}

// GetProfile returns the role-shaped profile for a token's subject
func (s *UserService) GetProfile(userID string, role models.UserRole) (*models.Profile, error) {
	switch role {
	case models.RoleParent:
		parent, err := s.userRepo.GetParentByID(userID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrParentNotFound
		}
		return parentProfile(parent), nil
	case models.RoleChild:
		child, err := s.userRepo.GetChildByID(userID)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, ErrChildNotFound
		}
		return childProfile(child), nil
	default:
		return nil, fmt.Errorf("unsupported role: %s", role)
	}
}
