package service

import (
	"buddy/internal/models"
	"buddy/internal/repository"
)

// VocabularyService exposes the words a child has collected from stories
type VocabularyService struct {
	vocabularyRepo *repository.VocabularyRepository
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(vocabularyRepo *repository.VocabularyRepository) *VocabularyService {
	return &VocabularyService{vocabularyRepo: vocabularyRepo}
}

// GetVocabulary lists the child's words with their story titles,
// newest first. A positive limit restricts the result to the most
// recent words; zero or negative returns everything.
func (s *VocabularyService) GetVocabulary(childID string, limit int) ([]models.VocabularyEntry, error) {
	if limit < 0 || limit > 100 {
		limit = 0
	}
	entries, err := s.vocabularyRepo.GetChildVocabulary(childID, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.VocabularyEntry{}
	}
	return entries, nil
}
