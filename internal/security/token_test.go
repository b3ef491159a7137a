package security

import (
	"testing"
	"time"

	"buddy/internal/models"
)

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	if _, err := NewTokenIssuer("", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	token, err := issuer.Issue("child-123", models.RoleChild)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	userID, role, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != "child-123" {
		t.Errorf("userID = %q, want %q", userID, "child-123")
	}
	if role != models.RoleChild {
		t.Errorf("role = %q, want %q", role, models.RoleChild)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	token, err := issuer.Issue("parent-1", models.RoleParent)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, _, err := issuer.Verify(token); err != ErrTokenExpired {
		t.Errorf("Verify() error = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewTokenIssuer("secret-a", time.Hour)
	other, _ := NewTokenIssuer("secret-b", time.Hour)

	token, err := issuer.Issue("parent-1", models.RoleParent)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, _, err := other.Verify(token); err != ErrTokenInvalid {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer, _ := NewTokenIssuer("test-secret", time.Hour)
	if _, _, err := issuer.Verify("not-a-token"); err != ErrTokenInvalid {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}
