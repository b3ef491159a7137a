package service

import (
	"buddy/internal/models"
	"buddy/internal/repository"
)

// SettingsService manages per-child story personalization
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the child's settings, defaulting empty fields
// when none have been saved yet
func (s *SettingsService) GetSettings(childID string) (*models.Settings, error) {
	settings, err := s.settingsRepo.GetSettings(childID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &models.Settings{
			ChildID:     childID,
			Preferences: []string{},
			Themes:      []string{},
			MoralValues: []string{},
		}, nil
	}
	return settings, nil
}

// UpdateSettings applies a partial update; nil fields keep their value
func (s *SettingsService) UpdateSettings(childID string, update *models.SettingsUpdate) (*models.Settings, error) {
	settings, err := s.GetSettings(childID)
	if err != nil {
		return nil, err
	}

	if update.Preferences != nil {
		settings.Preferences = *update.Preferences
	}
	if update.Themes != nil {
		settings.Themes = *update.Themes
	}
	if update.MoralValues != nil {
		settings.MoralValues = *update.MoralValues
	}
	if update.FavoriteAnimal != nil {
		settings.FavoriteAnimal = *update.FavoriteAnimal
	}
	if update.FavoriteCharacter != nil {
		settings.FavoriteCharacter = *update.FavoriteCharacter
	}
	if update.ScreenTimeMinutes != nil {
		settings.ScreenTimeMinutes = *update.ScreenTimeMinutes
	}

	return s.settingsRepo.SaveSettings(settings)
}
