package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"buddy/internal/database"
	"buddy/internal/models"
)

// VocabularyRepository handles database operations for vocabulary words
type VocabularyRepository struct {
	db *database.DB
}

// NewVocabularyRepository creates a new vocabulary repository
func NewVocabularyRepository(db *database.DB) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

// CreateWords stores the vocabulary words extracted from a story
func (r *VocabularyRepository) CreateWords(words []models.VocabularyWord) error {
	if len(words) == 0 {
		return nil
	}

	query := `
		INSERT INTO vocabulary_words (word_id, story_id, child_id, word, synonym, meaning, related_words, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now().UTC()
	for i := range words {
		words[i].WordID = uuid.NewString()
		words[i].CreatedAt = now

		related, err := marshalStrings(words[i].RelatedWords)
		if err != nil {
			return err
		}
		_, err = r.db.Exec(query,
			words[i].WordID, words[i].StoryID, words[i].ChildID,
			words[i].Word, words[i].Synonym, words[i].Meaning, related,
			words[i].CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create vocabulary word: %w", err)
		}
	}

	return nil
}

// GetChildVocabulary retrieves a child's vocabulary words joined with
// their story titles, newest first. A limit of zero returns all words.
func (r *VocabularyRepository) GetChildVocabulary(childID string, limit int) ([]models.VocabularyEntry, error) {
	query := `
		SELECT w.word_id, w.story_id, w.child_id, w.word, w.synonym, w.meaning, w.related_words, w.created_at, s.title
		FROM vocabulary_words w
		JOIN stories s ON s.story_id = w.story_id
		WHERE w.child_id = ?
		ORDER BY w.created_at DESC
	`
	args := []interface{}{childID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vocabulary: %w", err)
	}
	defer rows.Close()

	var entries []models.VocabularyEntry
	for rows.Next() {
		var entry models.VocabularyEntry
		var related string
		if err := rows.Scan(
			&entry.WordID, &entry.StoryID, &entry.ChildID,
			&entry.Word, &entry.Synonym, &entry.Meaning, &related,
			&entry.CreatedAt, &entry.StoryTitle,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vocabulary word: %w", err)
		}
		if entry.RelatedWords, err = unmarshalStrings(related); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
