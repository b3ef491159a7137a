package handlers

import (
	"net/http"
	"strconv"

	"buddy/internal/service"
)

// VocabularyHandler serves the child's collected vocabulary
type VocabularyHandler struct {
	vocabularyService *service.VocabularyService
}

// NewVocabularyHandler creates a new vocabulary handler
func NewVocabularyHandler(vocabularyService *service.VocabularyService) *VocabularyHandler {
	return &VocabularyHandler{vocabularyService: vocabularyService}
}

// ListVocabulary returns the child's words with their story titles
func (h *VocabularyHandler) ListVocabulary(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.vocabularyService.GetVocabulary(UserIDFromContext(r), limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
