package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"buddy/internal/credentials"
	"buddy/internal/models"
	"buddy/internal/repository"
	"buddy/internal/security"
	"buddy/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrOTPInvalid         = errors.New("invalid verification code")
	ErrOTPExpired         = errors.New("verification code expired")
	ErrChildInactive      = errors.New("child account is inactive")
)

// RegistrationRequest is a parent signup parked until OTP verification.
// The password is hashed before the payload is stored.
type RegistrationRequest struct {
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
}

// AuthService handles registration, verification and login
type AuthService struct {
	userRepo  *repository.UserRepository
	otpRepo   *repository.OTPRepository
	email     *EmailService
	tokens    *security.TokenIssuer
	otpExpiry time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, otpRepo *repository.OTPRepository, email *EmailService, tokens *security.TokenIssuer, otpExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		otpRepo:   otpRepo,
		email:     email,
		tokens:    tokens,
		otpExpiry: otpExpiry,
	}
}

// Register validates a parent signup, parks it, and emails the OTP.
// The account is not created until VerifyOTP consumes the code.
func (s *AuthService) Register(ctx context.Context, email, username, password, firstName, lastName string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.ToLower(strings.TrimSpace(username))

	if err := validation.ValidateEmail(email); err != nil {
		return err
	}
	if err := validation.ValidateUsername(username); err != nil {
		return err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}
	if err := validation.ValidateName("first_name", firstName); err != nil {
		return err
	}
	if err := validation.ValidateName("last_name", lastName); err != nil {
		return err
	}

	existing, err := s.userRepo.GetParentByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return ErrEmailTaken
	}
	existing, err = s.userRepo.GetParentByUsername(username)
	if err != nil {
		return fmt.Errorf("failed to check existing username: %w", err)
	}
	if existing != nil {
		return ErrUsernameTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	payload, err := json.Marshal(RegistrationRequest{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
	})
	if err != nil {
		return fmt.Errorf("failed to encode registration: %w", err)
	}

	otpCode, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.otpExpiry)
	if err := s.otpRepo.SavePending(email, string(payload), otpCode, expiresAt); err != nil {
		return err
	}

	if err := s.email.SendOTPEmail(ctx, email, firstName, otpCode); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}

// VerifyOTP consumes the code and creates the parent account.
// Returns the new parent and a signed token.
func (s *AuthService) VerifyOTP(email, otpCode string) (*models.Parent, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validation.ValidateOTP(otpCode); err != nil {
		return nil, "", ErrOTPInvalid
	}

	pending, err := s.otpRepo.GetPending(email)
	if err != nil {
		return nil, "", err
	}
	if pending == nil {
		return nil, "", ErrOTPInvalid
	}
	if time.Now().UTC().After(pending.ExpiresAt) {
		// Expired codes are cleaned up eagerly so retries start fresh.
		if err := s.otpRepo.DeletePending(email); err != nil {
			log.Printf("Warning: failed to delete expired registration for %s: %v", email, err)
		}
		return nil, "", ErrOTPExpired
	}
	if pending.OTPCode != otpCode {
		return nil, "", ErrOTPInvalid
	}

	var req RegistrationRequest
	if err := json.Unmarshal([]byte(pending.Payload), &req); err != nil {
		return nil, "", fmt.Errorf("failed to decode registration: %w", err)
	}

	parent, err := s.userRepo.CreateParent(req.Email, req.Username, req.PasswordHash, req.FirstName, req.LastName)
	if err != nil {
		return nil, "", err
	}

	if err := s.otpRepo.DeletePending(email); err != nil {
		log.Printf("Warning: failed to delete consumed registration for %s: %v", email, err)
	}

	token, err := s.tokens.Issue(parent.ParentID, models.RoleParent)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return parent, token, nil
}

// LoginResult is a successful login: the role-shaped profile plus token
type LoginResult struct {
	Profile *models.Profile `json:"profile"`
	Token   string          `json:"token"`
}

// Login authenticates a parent or child by username. Parents may also
// sign in with their email address.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	parent, err := s.userRepo.GetParentByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}
	if parent == nil && strings.Contains(username, "@") {
		parent, err = s.userRepo.GetParentByEmail(username)
		if err != nil {
			return nil, fmt.Errorf("failed to get parent: %w", err)
		}
	}
	if parent != nil {
		if !security.CheckPassword(password, parent.PasswordHash) {
			return nil, ErrInvalidCredentials
		}
		token, err := s.tokens.Issue(parent.ParentID, models.RoleParent)
		if err != nil {
			return nil, fmt.Errorf("failed to issue token: %w", err)
		}
		return &LoginResult{Profile: parentProfile(parent), Token: token}, nil
	}

	child, err := s.userRepo.GetChildByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrInvalidCredentials
	}
	if !security.CheckPassword(password, child.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if child.Status != models.ChildActive {
		return nil, ErrChildInactive
	}

	token, err := s.tokens.Issue(child.ChildID, models.RoleChild)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &LoginResult{Profile: childProfile(child), Token: token}, nil
}

// OAuthLogin signs in a parent verified by an external identity
// provider, creating the account on first sight. OAuth accounts get a
// random local password; they sign in through the provider.
func (s *AuthService) OAuthLogin(email, firstName, lastName string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	parent, err := s.userRepo.GetParentByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}
	if parent == nil {
		username, err := s.availableUsername(email)
		if err != nil {
			return nil, err
		}
		randomPassword, err := credentials.GenerateChildPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to generate password: %w", err)
		}
		passwordHash, err := security.HashPassword(randomPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		parent, err = s.userRepo.CreateParent(email, username, passwordHash, firstName, lastName)
		if err != nil {
			return nil, err
		}
		log.Printf("Created parent account via OAuth: %s", email)
	}

	token, err := s.tokens.Issue(parent.ParentID, models.RoleParent)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &LoginResult{Profile: parentProfile(parent), Token: token}, nil
}

// availableUsername derives a free username from the email local part
func (s *AuthService) availableUsername(email string) (string, error) {
	base := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, base)
	if len(base) < 3 {
		base = base + "_user"
	}

	candidate := base
	for i := 0; i < 20; i++ {
		existing, err := s.userRepo.GetParentByUsername(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check username: %w", err)
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i+2)
	}
	return "", fmt.Errorf("failed to find available username for %s", email)
}

func parentProfile(p *models.Parent) *models.Profile {
	return &models.Profile{
		UserID:    p.ParentID,
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Role:      models.RoleParent,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	}
}

func childProfile(c *models.Child) *models.Profile {
	return &models.Profile{
		UserID:    c.ChildID,
		Username:  c.Username,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Role:      models.RoleChild,
		BirthDate: c.BirthDate,
		Nickname:  c.Nickname,
		CreatedAt: c.CreatedAt,
	}
}

// generateOTP returns a 6-digit numeric code
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
