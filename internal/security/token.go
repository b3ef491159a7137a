package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"buddy/internal/models"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the JWT payload issued for parents and children
type Claims struct {
	Role models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer creates and verifies the service's access tokens
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

// NewTokenIssuer creates a token issuer. The secret must be non-empty.
func NewTokenIssuer(secret string, expiry time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is required")
	}
	return &TokenIssuer{secret: []byte(secret), expiry: expiry}, nil
}

// Issue signs a token for the given user id and role
func (t *TokenIssuer) Issue(userID string, role models.UserRole) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the user id and role it carries
func (t *TokenIssuer) Verify(tokenString string) (string, models.UserRole, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrTokenExpired
		}
		return "", "", ErrTokenInvalid
	}

	if !parsed.Valid || claims.Subject == "" {
		return "", "", ErrTokenInvalid
	}

	switch claims.Role {
	case models.RoleAdmin, models.RoleParent, models.RoleChild:
	default:
		return "", "", ErrTokenInvalid
	}

	return claims.Subject, claims.Role, nil
}
