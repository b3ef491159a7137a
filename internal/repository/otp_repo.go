package repository

import (
	"database/sql"
	"fmt"
	"time"

	"buddy/internal/database"
)

// PendingRegistration is a parked signup awaiting OTP verification.
// Payload carries the JSON-encoded registration request.
type PendingRegistration struct {
	Email     string
	Payload   string
	OTPCode   string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// OTPRepository handles database operations for pending registrations
type OTPRepository struct {
	db *database.DB
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db *database.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

// SavePending parks a registration under its email, replacing any
// earlier attempt for the same address
func (r *OTPRepository) SavePending(email, payload, otpCode string, expiresAt time.Time) error {
	// Delete-then-insert keeps the replace portable across drivers.
	if _, err := r.db.Exec("DELETE FROM pending_registrations WHERE email = ?", email); err != nil {
		return fmt.Errorf("failed to clear pending registration: %w", err)
	}

	query := `
		INSERT INTO pending_registrations (email, payload, otp_code, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, email, payload, otpCode, expiresAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save pending registration: %w", err)
	}
	return nil
}

// GetPending retrieves the parked registration for an email, nil when absent
func (r *OTPRepository) GetPending(email string) (*PendingRegistration, error) {
	query := `
		SELECT email, payload, otp_code, expires_at, created_at
		FROM pending_registrations WHERE email = ?
	`
	p := &PendingRegistration{}
	err := r.db.QueryRow(query, email).Scan(
		&p.Email, &p.Payload, &p.OTPCode, &p.ExpiresAt, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending registration: %w", err)
	}
	return p, nil
}

// DeletePending removes the parked registration once consumed
func (r *OTPRepository) DeletePending(email string) error {
	if _, err := r.db.Exec("DELETE FROM pending_registrations WHERE email = ?", email); err != nil {
		return fmt.Errorf("failed to delete pending registration: %w", err)
	}
	return nil
}
