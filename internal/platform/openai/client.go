package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

const DefaultModel = "gpt-4o-mini"

// ErrNoCredentials is returned by NewClient when no API key is configured.
var ErrNoCredentials = errors.New("missing OPENAI_API_KEY")

// ErrEmptyCompletion is returned when the model answers with no usable text.
var ErrEmptyCompletion = errors.New("openai returned no content")

type Message struct {
	Role    string
	Content string
}

// Request is one chat completion. System, when set, is sent first.
type Request struct {
	System      string
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// Client is the slice of the OpenAI API the rest of the backend uses.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Model() string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type client struct {
	log   *logger.Logger
	api   *goopenai.Client
	model string
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrNoCredentials
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	conf := goopenai.DefaultConfig(apiKey)
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		conf.BaseURL = base
	}
	conf.HTTPClient = &http.Client{Timeout: timeout}

	return &client{
		log:   log.With("service", "OpenAIClient"),
		api:   goopenai.NewClientWithConfig(conf),
		model: model,
	}, nil
}

func (c *client) Model() string { return c.model }

func (c *client) Complete(ctx context.Context, req Request) (string, error) {
	msgs := make([]goopenai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, goopenai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			c.log.Debug("openai api error", "status", apiErr.HTTPStatusCode, "type", apiErr.Type)
		}
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	c.log.Debug("openai completion",
		"model", c.model,
		"finish_reason", resp.Choices[0].FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}
