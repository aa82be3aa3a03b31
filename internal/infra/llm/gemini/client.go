package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/yanqian/tw-weather-advisor/internal/domain/advisor"
	"github.com/yanqian/tw-weather-advisor/pkg/metrics"
)

const (
	defaultModel           = "gemini-2.5-flash"
	defaultMaxOutputTokens = 2000
)

// Config controls the Gemini generation request.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client generates advisories with the Gemini API.
type Client struct {
	cfg    Config
	models contentGenerator
}

// NewClient builds a Gemini backed generator.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newClient(cfg, client.Models), nil
}

func newClient(cfg Config, models contentGenerator) *Client {
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = defaultMaxOutputTokens
	}
	return &Client{cfg: cfg, models: models}
}

// Generate implements advisor.Generator.
func (c *Client) Generate(ctx context.Context, prompt advisor.Prompt) (advisor.Generation, error) {
	genCfg := &genai.GenerateContentConfig{
		MaxOutputTokens: c.cfg.MaxOutputTokens,
	}
	if c.cfg.Temperature > 0 {
		genCfg.Temperature = genai.Ptr(c.cfg.Temperature)
	}
	if c.cfg.TopP > 0 {
		genCfg.TopP = genai.Ptr(c.cfg.TopP)
	}
	if c.cfg.TopK > 0 {
		genCfg.TopK = genai.Ptr(c.cfg.TopK)
	}
	if strings.TrimSpace(prompt.System) != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}

	resp, err := c.models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt.User), genCfg)
	if err != nil {
		return advisor.Generation{}, fmt.Errorf("gemini generate content: %w", err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return advisor.Generation{}, fmt.Errorf("gemini prompt blocked (%s): %w", resp.PromptFeedback.BlockReason, advisor.ErrUnavailable)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return advisor.Generation{}, fmt.Errorf("gemini returned no candidates: %w", advisor.ErrUnavailable)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return advisor.Generation{}, fmt.Errorf("gemini response blocked by safety filter: %w", advisor.ErrUnavailable)
	}

	text := strings.TrimSpace(candidateText(candidate))
	if text == "" {
		return advisor.Generation{}, fmt.Errorf("gemini returned empty text: %w", advisor.ErrUnavailable)
	}

	gen := advisor.Generation{Text: text, Model: c.cfg.Model}
	if resp.ModelVersion != "" {
		gen.Model = resp.ModelVersion
	}
	if usage := resp.UsageMetadata; usage != nil {
		gen.Usage = metrics.TokenUsage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}
	return gen, nil
}

func candidateText(candidate *genai.Candidate) string {
	if candidate.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
