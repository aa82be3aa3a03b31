package advisor

import (
	"context"
	"errors"

	"github.com/yanqian/tw-weather-advisor/pkg/metrics"
)

// Source tags which path produced an advisory.
type Source string

const (
	SourceAI        Source = "ai_generated"
	SourceRuleBased Source = "rule_based"
)

// ErrUnavailable is wrapped by generators when the model answered without
// usable text: blocked by safety filters, no candidates, or empty output.
var ErrUnavailable = errors.New("advisory generator unavailable")

// Advice is the advisory handed to callers.
type Advice struct {
	Text   string              `json:"text"`
	Source Source              `json:"source"`
	Model  string              `json:"model,omitempty"`
	Usage  *metrics.TokenUsage `json:"usage,omitempty"`
}

// Prompt is the provider neutral request sent to a Generator.
type Prompt struct {
	System string
	User   string
}

// Generation is a successful generator answer.
type Generation struct {
	Text  string
	Model string
	Usage metrics.TokenUsage
}

// Generator produces advisory text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (Generation, error)
}

// Config wires runtime knobs for the advisor domain.
type Config struct {
	Prompt          string
	MaxPromptTokens int
	MaxPeriods      int
}
