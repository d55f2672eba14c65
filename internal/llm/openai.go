package llm

import (
	"context"
	"fmt"

	"github.com/Veraticus/the-notes-must-flow/internal/common"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You file study notes into folders. Reply with a single folder name and nothing else."

// openAIClient talks to an OpenAI-compatible chat completions endpoint, such
// as the /v1 API exposed by local inference servers.
type openAIClient struct {
	api   *openai.Client
	model string
}

func newOpenAIClient(cfg Config) (Client, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("inference model is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientCfg.BaseURL = cfg.Endpoint
	}
	clientCfg.HTTPClient = newHTTPClient(cfg.Timeout)

	return &openAIClient{
		api:   openai.NewClientWithConfig(clientCfg),
		model: cfg.Model,
	}, nil
}

// Generate sends a single non-streaming chat completion.
func (c *openAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 32,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInferenceUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no completion choices returned", common.ErrInferenceUnavailable)
	}

	return resp.Choices[0].Message.Content, nil
}
