package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"buddy/internal/database"
	"buddy/internal/models"
)

// ChunkRepository handles database operations for embedded book chunks
type ChunkRepository struct {
	db *database.DB
}

// NewChunkRepository creates a new chunk repository
func NewChunkRepository(db *database.DB) *ChunkRepository {
	return &ChunkRepository{db: db}
}

// CreateChunk stores a chunk with its embedding vector
func (r *ChunkRepository) CreateChunk(chunk *models.TextChunk) (*models.TextChunk, error) {
	chunk.ChunkID = uuid.NewString()
	chunk.CreatedAt = time.Now().UTC()

	embedding, err := json.Marshal(chunk.Embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to encode embedding: %w", err)
	}

	query := `
		INSERT INTO book_chunks (chunk_id, book_title, topic, content, chunk_index, embedding, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query,
		chunk.ChunkID, chunk.BookTitle, chunk.Topic, chunk.Content,
		chunk.ChunkIndex, string(embedding), chunk.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create chunk: %w", err)
	}

	return chunk, nil
}

// GetAllChunks retrieves every chunk with its embedding
func (r *ChunkRepository) GetAllChunks() ([]models.TextChunk, error) {
	query := `
		SELECT chunk_id, book_title, topic, content, chunk_index, embedding, created_at
		FROM book_chunks
		ORDER BY book_title ASC, chunk_index ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var chunks []models.TextChunk
	for rows.Next() {
		chunk, err := r.scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}

	return chunks, rows.Err()
}

// GetRandomChunk picks one chunk uniformly, optionally filtered by topic.
// COUNT plus OFFSET keeps the pick portable across drivers.
func (r *ChunkRepository) GetRandomChunk(topic string, offsetFor func(count int) int) (*models.TextChunk, error) {
	countQuery := "SELECT COUNT(*) FROM book_chunks"
	selectQuery := `
		SELECT chunk_id, book_title, topic, content, chunk_index, embedding, created_at
		FROM book_chunks
	`
	var args []interface{}
	if topic != "" {
		countQuery += " WHERE topic = ?"
		selectQuery += " WHERE topic = ?"
		args = append(args, topic)
	}

	var count int
	if err := r.db.QueryRow(countQuery, args...).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count chunks: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	selectQuery += " ORDER BY chunk_id LIMIT 1 OFFSET ?"
	args = append(args, offsetFor(count))

	rows, err := r.db.Query(selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return r.scanChunk(rows)
}

// ListTopics returns the distinct topics with at least one chunk
func (r *ChunkRepository) ListTopics() ([]string, error) {
	query := "SELECT DISTINCT topic FROM book_chunks WHERE topic <> '' ORDER BY topic ASC"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, topic)
	}

	return topics, rows.Err()
}

func (r *ChunkRepository) scanChunk(rows *sql.Rows) (*models.TextChunk, error) {
	chunk := &models.TextChunk{}
	var embedding string
	err := rows.Scan(
		&chunk.ChunkID, &chunk.BookTitle, &chunk.Topic, &chunk.Content,
		&chunk.ChunkIndex, &embedding, &chunk.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan chunk: %w", err)
	}
	if embedding != "" {
		if err := json.Unmarshal([]byte(embedding), &chunk.Embedding); err != nil {
			return nil, fmt.Errorf("failed to decode embedding: %w", err)
		}
	}
	return chunk, nil
}
