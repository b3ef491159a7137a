package models

import "time"

// TextChunk is an embedded slice of a book used to ground question
// generation and chat answers
type TextChunk struct {
	ChunkID    string    `json:"chunk_id"`
	BookTitle  string    `json:"book_title"`
	Topic      string    `json:"topic"`
	Content    string    `json:"content"`
	ChunkIndex int       `json:"chunk_index"`
	Embedding  []float32 `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
