package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Illustrator generates cover images for stories
type Illustrator interface {
	// Illustrate renders the prompt and returns a URL to the image
	Illustrate(ctx context.Context, prompt string) (string, error)
}

// DallEIllustrator implements Illustrator with the OpenAI image API
type DallEIllustrator struct {
	client *openai.Client
	model  string
}

// NewDallEIllustrator creates an illustrator for the given key and model
func NewDallEIllustrator(apiKey, baseURL, model string) (*DallEIllustrator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if model == "" {
		model = openai.CreateImageModelDallE3
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &DallEIllustrator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (d *DallEIllustrator) Illustrate(ctx context.Context, prompt string) (string, error) {
	resp, err := d.client.CreateImage(ctx, openai.ImageRequest{
		Model:          d.model,
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", mapAPIError(err)
	}
	if len(resp.Data) == 0 {
		return "", &ErrInvalidResponse{Err: fmt.Errorf("no image in response")}
	}
	return resp.Data[0].URL, nil
}
