package handlers

import (
	"net/http"

	"buddy/internal/models"
	"buddy/internal/service"
)

// SettingsHandler serves parent-managed child settings
type SettingsHandler struct {
	settingsService *service.SettingsService
	userService     *service.UserService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService, userService *service.UserService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, userService: userService}
}

// GetSettings returns the child's settings for the parent
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	child, err := h.userService.GetChild(UserIDFromContext(r), r.PathValue("childID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	settings, err := h.settingsService.GetSettings(child.ChildID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// UpdateSettings partially updates the child's settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var update models.SettingsUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	child, err := h.userService.GetChild(UserIDFromContext(r), r.PathValue("childID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	settings, err := h.settingsService.UpdateSettings(child.ChildID, &update)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
