package handlers

import (
	"net/http"

	"buddy/internal/models"
	"buddy/internal/service"
)

// StoryHandler serves the child-facing story endpoints
type StoryHandler struct {
	storyService *service.StoryService
	userService  *service.UserService
}

// NewStoryHandler creates a new story handler
func NewStoryHandler(storyService *service.StoryService, userService *service.UserService) *StoryHandler {
	return &StoryHandler{storyService: storyService, userService: userService}
}

type generateStoryRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateStory creates a personalized story for the authenticated child
func (h *StoryHandler) GenerateStory(w http.ResponseWriter, r *http.Request) {
	var req generateStoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	child, err := h.userService.RequireChild(UserIDFromContext(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	story, words, err := h.storyService.GenerateStory(r.Context(), child, req.Prompt)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if words == nil {
		words = []models.VocabularyWord{}
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"story":            story,
		"vocabulary_words": words,
	})
}

// ListStories lists the child's stories
func (h *StoryHandler) ListStories(w http.ResponseWriter, r *http.Request) {
	stories, err := h.storyService.GetStories(UserIDFromContext(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if stories == nil {
		stories = []models.Story{}
	}
	respondJSON(w, http.StatusOK, stories)
}

// GetStory returns one of the child's stories
func (h *StoryHandler) GetStory(w http.ResponseWriter, r *http.Request) {
	story, err := h.storyService.GetStory(UserIDFromContext(r), r.PathValue("storyID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, story)
}
