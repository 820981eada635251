package llm

import (
	"context"
	"github.com/cropsage/cropsage/internal/errors"
	"github.com/sashabaranov/go-openai"
)

// Default base URLs for the OpenAI-compatible chat completion endpoints.
const (
	GroqBaseURL   = "https://api.groq.com/openai/v1"
	GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
)

const (
	GroqVisionModel      = "meta-llama/llama-4-maverick-17b-128e-instruct"
	GeminiModel          = "gemini-2.5-flash"
	GeminiEmbeddingModel = "text-embedding-004"
)

const MaxTokens = 1024

// Client wraps an OpenAI-compatible chat completion endpoint with a fixed model.
//
// Groq and Gemini both expose the OpenAI wire format, so the same client serves
// either vendor depending on baseURL.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a client for the given endpoint and model. An empty baseURL
// means the OpenAI default.
func NewClient(apiKey, baseURL, model string) Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Complete sends the messages as a single chat completion request and returns the
// assistant's reply.
func (c Client) Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     c.model,
			MaxTokens: MaxTokens,
			Messages:  messages,
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty completion choices")
	}
	return completion.Choices[0].Message.Content, nil
}

// CompleteText is a convenience wrapper for one-shot prompts without history.
func (c Client) CompleteText(ctx context.Context, prompt string) (string, error) {
	return c.Complete(ctx, []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		},
	})
}
