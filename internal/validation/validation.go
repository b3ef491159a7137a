package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var usernameRegex = regexp.MustCompile(`^[a-z0-9_\-]{3,64}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(field, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: field, Message: field + " must be at least 2 characters"}
	}
	return nil
}

// ValidateUsername checks if a username is valid: lowercase letters,
// digits, underscore and hyphen, 3-64 characters
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ValidationError{Field: "username", Message: "username is required"}
	}
	if !usernameRegex.MatchString(username) {
		return ValidationError{Field: "username", Message: "username must be 3-64 lowercase letters, digits, - or _"}
	}
	return nil
}

// ValidateOTP checks that an OTP is exactly six digits
func ValidateOTP(otp string) error {
	if len(otp) != 6 {
		return ValidationError{Field: "otp", Message: "otp must be 6 digits"}
	}
	for _, c := range otp {
		if c < '0' || c > '9' {
			return ValidationError{Field: "otp", Message: "otp must be 6 digits"}
		}
	}
	return nil
}
