package llm

import (
	"context"
	"time"
)

// Client defines the interface for inference providers.
type Client interface {
	// Generate sends prompt and returns the model's complete text reply.
	Generate(ctx context.Context, prompt string) (string, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f ClientFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Config holds configuration for the delegated classifier.
type Config struct {
	Provider      string
	Endpoint      string
	Model         string
	APIKey        string
	DefaultFolder string
	Categories    []string
	Timeout       time.Duration
	CacheTTL      time.Duration
	RateLimit     int
}
