package models

import "time"

// Settings holds per-child personalization used for story generation
type Settings struct {
	SettingsID        string    `json:"settings_id"`
	ChildID           string    `json:"child_id"`
	Preferences       []string  `json:"preferences"`
	Themes            []string  `json:"themes"`
	MoralValues       []string  `json:"moral_values"`
	FavoriteAnimal    string    `json:"favorite_animal,omitempty"`
	FavoriteCharacter string    `json:"favorite_character,omitempty"`
	ScreenTimeMinutes int       `json:"screen_time"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// SettingsUpdate carries the mutable settings fields; nil means unchanged
type SettingsUpdate struct {
	Preferences       *[]string `json:"preferences,omitempty"`
	Themes            *[]string `json:"themes,omitempty"`
	MoralValues       *[]string `json:"moral_values,omitempty"`
	FavoriteAnimal    *string   `json:"favorite_animal,omitempty"`
	FavoriteCharacter *string   `json:"favorite_character,omitempty"`
	ScreenTimeMinutes *int      `json:"screen_time,omitempty"`
}
