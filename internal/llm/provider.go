package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured content from a prompt
type Provider interface {
	// Generate sends the request and returns the model's output. When
	// the request carries a Schema, Content is JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier
	ModelID() string
}

// Request describes a single generation call
type Request struct {
	// System sets the model's role and constraints
	System string

	// Messages is the conversation so far; story and quiz generation
	// send a single user message, chat sends the running history
	Messages []Message

	// Schema, when set, forces structured JSON output conforming to it
	Schema *Schema

	// MaxTokens caps the response length
	MaxTokens int

	// Temperature controls randomness, 0.0 to 1.0
	Temperature float64
}

// Message is one turn of a conversation
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema the response must conform to
type Schema struct {
	// Name identifies the schema, kebab-case ("science-question")
	Name string

	// Description guides the model toward the intended shape
	Description string

	// Definition is the JSON Schema as a map
	Definition map[string]any
}

// Response is the model's output
type Response struct {
	// Content is validated JSON when the request had a Schema, raw text
	// otherwise
	Content json.RawMessage

	// Usage reports token consumption
	Usage Usage

	// Model is the model that actually served the request
	Model string

	// StopReason is normalized to "end" or "max_tokens"
	StopReason string
}

// Usage tracks token consumption for one request
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
