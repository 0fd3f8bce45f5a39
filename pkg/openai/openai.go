package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Config struct {
	APIKey             string        `split_words:"true"`
	BaseURL            string        `split_words:"true"`
	Model              string        `split_words:"true" default:"gpt-4o"`
	MaxCompletionToken int           `split_words:"true" default:"2000"`
	Temperature        float64       `split_words:"true" default:"0.4"`
	Timeout            time.Duration `split_words:"true" default:"30s"`
}

// Client wraps the OpenAI SDK for chat-style completions.
type Client struct {
	sdk       *openaisdk.Client
	model     string
	maxTokens int
	temp      float64
}

// NewClient returns a configured client, or nil when no API key is set.
// A nil client means the provider is unconfigured, not an error.
func NewClient(cfg Config) *Client {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}

	sdk := openaisdk.NewClient(opts...)

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-4o"
	}

	return &Client{
		sdk:       &sdk,
		model:     model,
		maxTokens: cfg.MaxCompletionToken,
		temp:      cfg.Temperature,
	}
}

func (c *Client) Model() string {
	return c.model
}

// Complete runs one chat completion with a system instruction and a user
// message, returning the assistant text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	params := openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(c.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(system),
			openaisdk.UserMessage(user),
		},
		Temperature: openaisdk.Float(c.temp),
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openaisdk.Int(int64(c.maxTokens))
	}

	resp, err := c.sdk.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response for model %s", c.model)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("openai: blank completion for model %s", c.model)
	}
	return text, nil
}
