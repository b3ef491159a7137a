package vector

import (
	"context"
	"math"
	"strings"
	"testing"

	"buddy/internal/models"
)

func TestChunkText(t *testing.T) {
	words := make([]string, 500)
	for i := range words {
		words[i] = "w"
	}
	text := strings.Join(words, " ")

	chunks := ChunkText(text, 300, 50)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if n := len(strings.Fields(chunks[0])); n != 300 {
		t.Errorf("first chunk words = %d, want 300", n)
	}
	// Second window starts at word 250 and runs to the end.
	if n := len(strings.Fields(chunks[1])); n != 250 {
		t.Errorf("second chunk words = %d, want 250", n)
	}
}

func TestChunkTextShortInput(t *testing.T) {
	chunks := ChunkText("just a few words", 300, 50)
	if len(chunks) != 1 || chunks[0] != "just a few words" {
		t.Errorf("chunks = %v, want single untouched chunk", chunks)
	}
}

func TestChunkTextBlank(t *testing.T) {
	if chunks := ChunkText("   \n\t  ", 300, 50); chunks != nil {
		t.Errorf("blank input should produce no chunks, got %v", chunks)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"length mismatch", []float32{1, 2}, []float32{1}, 0},
		{"empty", nil, nil, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

// fakeChunkSource serves chunks from memory
type fakeChunkSource struct {
	chunks []models.TextChunk
}

func (f *fakeChunkSource) GetAllChunks() ([]models.TextChunk, error) {
	return f.chunks, nil
}

func (f *fakeChunkSource) GetRandomChunk(topic string, offsetFor func(int) int) (*models.TextChunk, error) {
	var matching []models.TextChunk
	for _, c := range f.chunks {
		if topic == "" || c.Topic == topic {
			matching = append(matching, c)
		}
	}
	if len(matching) == 0 {
		return nil, nil
	}
	return &matching[offsetFor(len(matching))], nil
}

func (f *fakeChunkSource) CreateChunk(chunk *models.TextChunk) (*models.TextChunk, error) {
	f.chunks = append(f.chunks, *chunk)
	return chunk, nil
}

func (f *fakeChunkSource) ListTopics() ([]string, error) {
	seen := map[string]bool{}
	var topics []string
	for _, c := range f.chunks {
		if c.Topic != "" && !seen[c.Topic] {
			seen[c.Topic] = true
			topics = append(topics, c.Topic)
		}
	}
	return topics, nil
}

// fakeEmbedder maps known strings to fixed vectors
type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, _ := f.EmbedText(ctx, t)
		out[i] = v
	}
	return out, nil
}

func TestSearchSimilar(t *testing.T) {
	source := &fakeChunkSource{chunks: []models.TextChunk{
		{ChunkID: "c1", Content: "volcanoes", Embedding: []float32{1, 0, 0}},
		{ChunkID: "c2", Content: "planets", Embedding: []float32{0, 1, 0}},
		{ChunkID: "c3", Content: "magma", Embedding: []float32{0.9, 0.1, 0}},
	}}
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"how do volcanoes work": {1, 0, 0},
	}}
	store := NewStore(source, embedder)

	results, err := store.SearchSimilar(context.Background(), "how do volcanoes work", 2)
	if err != nil {
		t.Fatalf("SearchSimilar: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].ChunkID != "c1" || results[1].ChunkID != "c3" {
		t.Errorf("order = %s, %s, want c1, c3", results[0].ChunkID, results[1].ChunkID)
	}
	if results[0].Score < results[1].Score {
		t.Error("results should be sorted best first")
	}
}

func TestIngest(t *testing.T) {
	source := &fakeChunkSource{}
	store := NewStore(source, &fakeEmbedder{})

	stored, err := store.Ingest(context.Background(), "Space Atlas", "space", "the solar system has eight planets")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored = %d, want 1", len(stored))
	}
	if stored[0].BookTitle != "Space Atlas" || stored[0].Topic != "space" {
		t.Errorf("chunk metadata = %+v", stored[0])
	}
	if len(stored[0].Embedding) == 0 {
		t.Error("chunk should carry its embedding")
	}
}

func TestIngestBlankText(t *testing.T) {
	store := NewStore(&fakeChunkSource{}, &fakeEmbedder{})
	if _, err := store.Ingest(context.Background(), "Empty", "", "   "); err == nil {
		t.Error("blank text should fail ingestion")
	}
}
