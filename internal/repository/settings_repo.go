package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"buddy/internal/database"
	"buddy/internal/models"
)

// SettingsRepository handles database operations for child settings
type SettingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSettings retrieves a child's settings, nil when none exist yet
func (r *SettingsRepository) GetSettings(childID string) (*models.Settings, error) {
	query := `
		SELECT settings_id, child_id, preferences, themes, moral_values, favorite_animal, favorite_character, screen_time_minutes, created_at, updated_at
		FROM settings WHERE child_id = ?
	`
	s := &models.Settings{}
	var preferences, themes, moralValues string
	err := r.db.QueryRow(query, childID).Scan(
		&s.SettingsID, &s.ChildID, &preferences, &themes, &moralValues,
		&s.FavoriteAnimal, &s.FavoriteCharacter, &s.ScreenTimeMinutes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if s.Preferences, err = unmarshalStrings(preferences); err != nil {
		return nil, err
	}
	if s.Themes, err = unmarshalStrings(themes); err != nil {
		return nil, err
	}
	if s.MoralValues, err = unmarshalStrings(moralValues); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveSettings inserts or replaces a child's settings record
func (r *SettingsRepository) SaveSettings(s *models.Settings) (*models.Settings, error) {
	preferences, err := marshalStrings(s.Preferences)
	if err != nil {
		return nil, err
	}
	themes, err := marshalStrings(s.Themes)
	if err != nil {
		return nil, err
	}
	moralValues, err := marshalStrings(s.MoralValues)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	s.UpdatedAt = now

	if s.SettingsID == "" {
		s.SettingsID = uuid.NewString()
		s.CreatedAt = now
		query := `
			INSERT INTO settings (settings_id, child_id, preferences, themes, moral_values, favorite_animal, favorite_character, screen_time_minutes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err = r.db.Exec(query,
			s.SettingsID, s.ChildID, preferences, themes, moralValues,
			s.FavoriteAnimal, s.FavoriteCharacter, s.ScreenTimeMinutes,
			s.CreatedAt, s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to create settings: %w", err)
		}
		return s, nil
	}

	query := `
		UPDATE settings
		SET preferences = ?, themes = ?, moral_values = ?, favorite_animal = ?, favorite_character = ?, screen_time_minutes = ?, updated_at = ?
		WHERE child_id = ?
	`
	_, err = r.db.Exec(query,
		preferences, themes, moralValues,
		s.FavoriteAnimal, s.FavoriteCharacter, s.ScreenTimeMinutes,
		s.UpdatedAt, s.ChildID)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return s, nil
}
