package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"buddy/internal/llm"
	"buddy/internal/models"
	"buddy/internal/repository"
)

var ErrStoryNotFound = errors.New("story not found")

// storySchema is the structured output contract for story generation
var storySchema = &llm.Schema{
	Name:        "personalized-story",
	Description: "A personalized bedtime story with vocabulary words",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"title", "content", "vocabulary_words"},
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "The story title",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "The full story text, several paragraphs",
			},
			"vocabulary_words": map[string]any{
				"type":        "array",
				"description": "3 to 5 words from the story worth learning",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"word", "meaning"},
					"properties": map[string]any{
						"word":    map[string]any{"type": "string"},
						"synonym": map[string]any{"type": "string"},
						"meaning": map[string]any{"type": "string"},
						"related_words": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
					"additionalProperties": false,
				},
			},
		},
		"additionalProperties": false,
	},
}

type generatedStory struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	VocabularyWords []struct {
		Word         string   `json:"word"`
		Synonym      string   `json:"synonym"`
		Meaning      string   `json:"meaning"`
		RelatedWords []string `json:"related_words"`
	} `json:"vocabulary_words"`
}

// StoryService generates and stores personalized stories
type StoryService struct {
	storyRepo      *repository.StoryRepository
	vocabularyRepo *repository.VocabularyRepository
	settingsRepo   *repository.SettingsRepository
	provider       llm.Provider
	illustrator    llm.Illustrator
}

// NewStoryService creates a new story service. A nil illustrator
// disables cover images.
func NewStoryService(
	storyRepo *repository.StoryRepository,
	vocabularyRepo *repository.VocabularyRepository,
	settingsRepo *repository.SettingsRepository,
	provider llm.Provider,
	illustrator llm.Illustrator,
) *StoryService {
	return &StoryService{
		storyRepo:      storyRepo,
		vocabularyRepo: vocabularyRepo,
		settingsRepo:   settingsRepo,
		provider:       provider,
		illustrator:    illustrator,
	}
}

// GenerateStory writes a story shaped by the child's settings and an
// optional free-text prompt, extracts its vocabulary words, and
// optionally adds a cover image
func (s *StoryService) GenerateStory(ctx context.Context, child *models.Child, prompt string) (*models.Story, []models.VocabularyWord, error) {
	settings, err := s.settingsRepo.GetSettings(child.ChildID)
	if err != nil {
		return nil, nil, err
	}

	childName := child.Nickname
	if childName == "" {
		childName = child.FirstName
	}

	system := "You write warm, age-appropriate stories for children. " +
		"The story stars the child as the hero. " +
		"Never include scary, violent, or sad endings. " +
		"Weave in a handful of slightly advanced words a child can learn."

	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a story for %s, aged %s.\n", childName, AgeRange(child.BirthDate))
	if settings != nil {
		if len(settings.Preferences) > 0 {
			fmt.Fprintf(&sb, "They love: %s.\n", strings.Join(settings.Preferences, ", "))
		}
		if len(settings.Themes) > 0 {
			fmt.Fprintf(&sb, "Theme ideas: %s.\n", strings.Join(settings.Themes, ", "))
		}
		if len(settings.MoralValues) > 0 {
			fmt.Fprintf(&sb, "Gently teach: %s.\n", strings.Join(settings.MoralValues, ", "))
		}
		if settings.FavoriteAnimal != "" {
			fmt.Fprintf(&sb, "Include their favorite animal, a %s.\n", settings.FavoriteAnimal)
		}
		if settings.FavoriteCharacter != "" {
			fmt.Fprintf(&sb, "Their favorite character is %s.\n", settings.FavoriteCharacter)
		}
	}
	if prompt != "" {
		fmt.Fprintf(&sb, "Tonight's request: %s\n", prompt)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: sb.String()}},
		Schema:      storySchema,
		MaxTokens:   4096,
		Temperature: 0.9,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate story: %w", err)
	}

	var gen generatedStory
	if err := json.Unmarshal(resp.Content, &gen); err != nil {
		return nil, nil, fmt.Errorf("failed to decode story: %w", err)
	}

	story := &models.Story{
		ChildID: child.ChildID,
		Title:   gen.Title,
		Content: gen.Content,
	}

	// Cover image failure loses only the image, never the story.
	if s.illustrator != nil {
		imagePrompt := fmt.Sprintf("A gentle children's book cover illustration for a story called %q. Soft colors, no text.", gen.Title)
		url, err := s.illustrator.Illustrate(ctx, imagePrompt)
		if err != nil {
			log.Printf("Warning: failed to illustrate story %q: %v", gen.Title, err)
		} else {
			story.CoverImageURL = url
		}
	}

	story, err = s.storyRepo.CreateStory(story)
	if err != nil {
		return nil, nil, err
	}

	words := make([]models.VocabularyWord, 0, len(gen.VocabularyWords))
	for _, w := range gen.VocabularyWords {
		words = append(words, models.VocabularyWord{
			StoryID:      story.StoryID,
			ChildID:      child.ChildID,
			Word:         w.Word,
			Synonym:      w.Synonym,
			Meaning:      w.Meaning,
			RelatedWords: w.RelatedWords,
		})
	}
	if err := s.vocabularyRepo.CreateWords(words); err != nil {
		// The story exists; vocabulary is supplementary.
		log.Printf("Warning: failed to save vocabulary for story %s: %v", story.StoryID, err)
		words = nil
	}

	return story, words, nil
}

// GetStory returns one of the child's stories
func (s *StoryService) GetStory(childID, storyID string) (*models.Story, error) {
	story, err := s.storyRepo.GetStoryByID(storyID)
	if err != nil {
		return nil, err
	}
	if story == nil || story.ChildID != childID {
		return nil, ErrStoryNotFound
	}
	return story, nil
}

// GetStories lists the child's stories, newest first
func (s *StoryService) GetStories(childID string) ([]models.Story, error) {
	return s.storyRepo.GetChildStories(childID)
}
