package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"buddy/internal/database"
	"buddy/internal/models"
)

// StoryRepository handles database operations for stories
type StoryRepository struct {
	db *database.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *database.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

// CreateStory stores a generated story
func (r *StoryRepository) CreateStory(story *models.Story) (*models.Story, error) {
	story.StoryID = uuid.NewString()
	story.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO stories (story_id, child_id, title, content, cover_image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		story.StoryID, story.ChildID, story.Title, story.Content,
		story.CoverImageURL, story.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	return story, nil
}

// GetStoryByID retrieves a story by ID
func (r *StoryRepository) GetStoryByID(storyID string) (*models.Story, error) {
	query := `
		SELECT story_id, child_id, title, content, cover_image_url, created_at
		FROM stories WHERE story_id = ?
	`
	story := &models.Story{}
	err := r.db.QueryRow(query, storyID).Scan(
		&story.StoryID,
		&story.ChildID,
		&story.Title,
		&story.Content,
		&story.CoverImageURL,
		&story.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return story, nil
}

// GetChildStories retrieves a child's stories, newest first
func (r *StoryRepository) GetChildStories(childID string) ([]models.Story, error) {
	query := `
		SELECT story_id, child_id, title, content, cover_image_url, created_at
		FROM stories
		WHERE child_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stories: %w", err)
	}
	defer rows.Close()

	var stories []models.Story
	for rows.Next() {
		var story models.Story
		if err := rows.Scan(
			&story.StoryID,
			&story.ChildID,
			&story.Title,
			&story.Content,
			&story.CoverImageURL,
			&story.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, story)
	}

	return stories, rows.Err()
}
