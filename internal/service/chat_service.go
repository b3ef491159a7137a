package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"buddy/internal/llm"
	"buddy/internal/models"
	"buddy/internal/vector"
)

// ChatMessage is one turn of a child's conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatReply is the assistant's answer plus the chunks that grounded it
type ChatReply struct {
	Answer  string             `json:"answer"`
	Sources []models.TextChunk `json:"sources,omitempty"`
}

// ChatService answers children's science questions grounded in the
// ingested book corpus
type ChatService struct {
	store    *vector.Store
	provider llm.Provider
	topK     int
}

// NewChatService creates a new chat service
func NewChatService(store *vector.Store, provider llm.Provider) *ChatService {
	return &ChatService{store: store, provider: provider, topK: 3}
}

// Ask answers the latest user message in the history, using the most
// similar book chunks as context
func (s *ChatService) Ask(ctx context.Context, child *models.Child, history []ChatMessage) (*ChatReply, error) {
	question := latestUserMessage(history)
	if question == "" {
		return nil, fmt.Errorf("no user message in history")
	}

	matches, err := s.store.SearchSimilar(ctx, question, s.topK)
	if err != nil {
		return nil, err
	}

	var excerpts strings.Builder
	sources := make([]models.TextChunk, 0, len(matches))
	for _, m := range matches {
		fmt.Fprintf(&excerpts, "From %q:\n%s\n\n", m.BookTitle, m.Content)
		chunk := m.TextChunk
		chunk.Embedding = nil
		sources = append(sources, chunk)
	}

	system := fmt.Sprintf(
		"You are a friendly science buddy for a child aged %s. "+
			"Answer using the book excerpts below when they help; say so when you are unsure. "+
			"Keep answers short, cheerful, and free of scary content.\n\n%s",
		AgeRange(child.BirthDate), excerpts.String())

	messages := make([]llm.Message, 0, len(history))
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == "assistant" {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    messages,
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	return &ChatReply{Answer: decodeAnswer(resp.Content), Sources: sources}, nil
}

func latestUserMessage(history []ChatMessage) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != "assistant" && history[i].Content != "" {
			return history[i].Content
		}
	}
	return ""
}

// decodeAnswer unwraps a JSON string response, falling back to the raw
// text for plain responses
func decodeAnswer(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return string(raw)
}
