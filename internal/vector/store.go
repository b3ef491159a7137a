package vector

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"buddy/internal/models"
)

// ChunkSource is the persistence the store searches over
type ChunkSource interface {
	GetAllChunks() ([]models.TextChunk, error)
	GetRandomChunk(topic string, offsetFor func(count int) int) (*models.TextChunk, error)
	CreateChunk(chunk *models.TextChunk) (*models.TextChunk, error)
	ListTopics() ([]string, error)
}

// Store retrieves book chunks by semantic similarity. Vectors live in
// the database; similarity is scored in process, which is fine at the
// corpus sizes a single deployment ingests.
type Store struct {
	chunks   ChunkSource
	embedder Embedder
}

// NewStore creates a vector store over the given chunk source
func NewStore(chunks ChunkSource, embedder Embedder) *Store {
	return &Store{chunks: chunks, embedder: embedder}
}

// ScoredChunk is a chunk with its similarity to the query
type ScoredChunk struct {
	models.TextChunk
	Score float64
}

// SearchSimilar embeds the query and returns the topK most similar
// chunks by cosine similarity, best first
func (s *Store) SearchSimilar(ctx context.Context, query string, topK int) ([]ScoredChunk, error) {
	if topK <= 0 {
		topK = 3
	}

	queryVec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	chunks, err := s.chunks.GetAllChunks()
	if err != nil {
		return nil, fmt.Errorf("failed to load chunks: %w", err)
	}

	scored := make([]ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		score := cosineSimilarity(queryVec, chunk.Embedding)
		scored = append(scored, ScoredChunk{TextChunk: chunk, Score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

// RandomChunk picks a uniformly random chunk, optionally within a topic.
// Returns nil when the corpus has no matching chunks.
func (s *Store) RandomChunk(topic string) (*models.TextChunk, error) {
	return s.chunks.GetRandomChunk(topic, rand.Intn)
}

// Ingest chunks the text, embeds every chunk in one batch, and persists
// the results. Returns the stored chunks.
func (s *Store) Ingest(ctx context.Context, bookTitle, topic, text string) ([]models.TextChunk, error) {
	pieces := ChunkText(text, DefaultChunkWords, DefaultOverlapWords)
	if len(pieces) == 0 {
		return nil, fmt.Errorf("no text to ingest")
	}

	vectors, err := s.embedder.EmbedTexts(ctx, pieces)
	if err != nil {
		return nil, fmt.Errorf("failed to embed chunks: %w", err)
	}

	stored := make([]models.TextChunk, 0, len(pieces))
	for i, piece := range pieces {
		chunk := &models.TextChunk{
			BookTitle:  bookTitle,
			Topic:      topic,
			Content:    piece,
			ChunkIndex: i,
			Embedding:  vectors[i],
		}
		created, err := s.chunks.CreateChunk(chunk)
		if err != nil {
			return nil, fmt.Errorf("failed to store chunk %d: %w", i, err)
		}
		stored = append(stored, *created)
	}

	return stored, nil
}

// Topics lists the distinct topics available in the corpus
func (s *Store) Topics() ([]string, error) {
	return s.chunks.ListTopics()
}

// cosineSimilarity scores two vectors; zero for mismatched or empty
// vectors
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
