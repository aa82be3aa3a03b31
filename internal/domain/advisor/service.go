package advisor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yanqian/tw-weather-advisor/internal/domain/forecast"
	"github.com/yanqian/tw-weather-advisor/internal/domain/location"
	"github.com/yanqian/tw-weather-advisor/pkg/metrics"
)

// defaultMaxPeriods is also the upper bound on periods sent to a generator.
const defaultMaxPeriods = 2

// Service produces an advisory for a set of forecast periods.
type Service interface {
	// Advise never fails; generator failures fall back to Suggest.
	Advise(ctx context.Context, loc location.Location, periods []forecast.Period) Advice
}

type service struct {
	cfg       Config
	generator Generator
	counter   metrics.TokenCounter
	logger    *slog.Logger
}

// NewService wires up the advisor domain. A nil generator disables AI advice.
func NewService(cfg Config, generator Generator, counter metrics.TokenCounter, logger *slog.Logger) Service {
	if cfg.MaxPeriods <= 0 || cfg.MaxPeriods > defaultMaxPeriods {
		cfg.MaxPeriods = defaultMaxPeriods
	}
	return &service{
		cfg:       cfg,
		generator: generator,
		counter:   counter,
		logger:    logger.With("component", "advisor.service"),
	}
}

func (s *service) Advise(ctx context.Context, loc location.Location, periods []forecast.Period) Advice {
	if len(periods) > s.cfg.MaxPeriods {
		periods = periods[:s.cfg.MaxPeriods]
	}
	if len(periods) == 0 {
		return s.ruleBased(loc, periods, "no periods")
	}
	if s.generator == nil {
		return s.ruleBased(loc, periods, "generator disabled")
	}

	prompt := s.buildPrompt(loc, periods)
	promptTokens := s.countTokens(prompt.System + "\n" + prompt.User)
	if s.cfg.MaxPromptTokens > 0 && promptTokens > s.cfg.MaxPromptTokens {
		s.logger.Warn("advisor prompt over budget", "location", loc.Key, "tokens", promptTokens, "limit", s.cfg.MaxPromptTokens)
		return s.ruleBased(loc, periods, "prompt over budget")
	}

	gen, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("advisor generator failed", "location", loc.Key, "error", err)
		return s.ruleBased(loc, periods, "generator failed")
	}
	text := strings.TrimSpace(gen.Text)
	if text == "" {
		s.logger.Warn("advisor generator returned empty text", "location", loc.Key)
		return s.ruleBased(loc, periods, "generator empty")
	}

	usage := gen.Usage
	if usage.PromptTokens == 0 {
		usage.PromptTokens = promptTokens
	}
	usage = usage.Normalized()
	s.logger.Info("advisor generated advice", "location", loc.Key, "model", gen.Model, "prompt_tokens", usage.PromptTokens, "total_tokens", usage.TotalTokens)

	return Advice{
		Text:   text,
		Source: SourceAI,
		Model:  gen.Model,
		Usage:  &usage,
	}
}

func (s *service) ruleBased(loc location.Location, periods []forecast.Period, reason string) Advice {
	s.logger.Info("advisor using rule based suggestions", "location", loc.Key, "reason", reason, "periods", len(periods))
	return Advice{
		Text:   Suggest(periods),
		Source: SourceRuleBased,
	}
}

func (s *service) countTokens(text string) int {
	if s.counter == nil {
		return metrics.EstimateTokens(text)
	}
	return s.counter.Count(text)
}
