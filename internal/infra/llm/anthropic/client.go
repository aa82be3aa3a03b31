package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/yanqian/tw-weather-advisor/internal/domain/advisor"
	"github.com/yanqian/tw-weather-advisor/pkg/metrics"
)

const (
	defaultModel     = "claude-3-5-haiku-latest"
	defaultMaxTokens = 2000

	stopReasonRefusal = "refusal"
)

// Config controls the Messages API request.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int64
}

type messageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Client generates advisories with the Anthropic Messages API.
type Client struct {
	cfg      Config
	messages messageCreator
}

// NewClient builds an Anthropic backed generator.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("anthropic api key cannot be empty")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	client := anthropic.NewClient(opts...)
	return newClient(cfg, &client.Messages), nil
}

func newClient(cfg Config, messages messageCreator) *Client {
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &Client{cfg: cfg, messages: messages}
}

// Generate implements advisor.Generator.
func (c *Client) Generate(ctx context.Context, prompt advisor.Prompt) (advisor.Generation, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.Model),
		MaxTokens: c.cfg.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User)),
		},
	}
	if c.cfg.Temperature > 0 {
		params.Temperature = anthropic.Float(c.cfg.Temperature)
	}
	if strings.TrimSpace(prompt.System) != "" {
		params.System = []anthropic.TextBlockParam{{Text: prompt.System}}
	}

	resp, err := c.messages.New(ctx, params)
	if err != nil {
		return advisor.Generation{}, fmt.Errorf("anthropic create message: %w", err)
	}
	if string(resp.StopReason) == stopReasonRefusal {
		return advisor.Generation{}, fmt.Errorf("anthropic refused the request: %w", advisor.ErrUnavailable)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return advisor.Generation{}, fmt.Errorf("anthropic returned no text: %w", advisor.ErrUnavailable)
	}

	model := string(resp.Model)
	if model == "" {
		model = c.cfg.Model
	}
	return advisor.Generation{
		Text:  text,
		Model: model,
		Usage: metrics.TokenUsage{
			PromptTokens:     int(resp.Usage.InputTokens),
			CompletionTokens: int(resp.Usage.OutputTokens),
		}.Normalized(),
	}, nil
}
