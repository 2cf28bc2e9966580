package openai

import (
	"context"
	"errors"
)

// IOpenAI defines the interface for the OpenAI chat completions client.
// Implementations are safe for concurrent use.
type IOpenAI interface {
	// ChatCompletion sends a chat completion request.
	ChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Model returns the model being used.
	Model() string
}

// Config holds client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Validate checks the required fields.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("openai: api key is required")
	}
	return nil
}

// New creates a new OpenAI client with the given configuration.
func New(cfg Config) (IOpenAI, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newClient(cfg), nil
}
