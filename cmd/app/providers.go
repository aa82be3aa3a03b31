package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yanqian/tw-weather-advisor/internal/domain/advisor"
	"github.com/yanqian/tw-weather-advisor/internal/domain/weather"
	"github.com/yanqian/tw-weather-advisor/internal/infra/config"
	"github.com/yanqian/tw-weather-advisor/internal/infra/cwa"
	"github.com/yanqian/tw-weather-advisor/internal/infra/llm/anthropic"
	"github.com/yanqian/tw-weather-advisor/internal/infra/llm/chatgpt"
	"github.com/yanqian/tw-weather-advisor/internal/infra/llm/gemini"
	"github.com/yanqian/tw-weather-advisor/pkg/metrics"
)

func provideAdvisorConfig(cfg *config.Config) advisor.Config {
	return advisor.Config{
		Prompt:          cfg.Advisor.Prompt,
		MaxPromptTokens: cfg.Advisor.MaxPromptTokens,
		MaxPeriods:      cfg.Advisor.MaxPeriods,
	}
}

func provideWeatherConfig() weather.Config {
	return weather.Config{}
}

func provideCWAClient(cfg *config.Config, logger *slog.Logger) *cwa.Client {
	return cwa.NewClient(cwa.Config{
		APIKey:  cfg.CWA.APIKey,
		BaseURL: cfg.CWA.BaseURL,
		Timeout: cfg.CWA.Timeout,
	}, logger)
}

const tokenEncodingLoadTimeout = 5 * time.Second

// provideTokenCounter fetches the BPE tables at startup; until they arrive the
// counter estimates instead of blocking requests.
func provideTokenCounter(cfg *config.Config, logger *slog.Logger) metrics.TokenCounter {
	counter := metrics.NewTiktokenCounter(cfg.Advisor.TokenEncoding)
	ctx, cancel := context.WithTimeout(context.Background(), tokenEncodingLoadTimeout)
	defer cancel()
	if err := counter.Load(ctx); err != nil {
		logger.Warn("token encoding unavailable, estimating prompt size", "error", err)
	}
	return counter
}

// provideGenerator returns a nil Generator when no provider is usable so the
// advisor answers with rule based suggestions only.
func provideGenerator(cfg *config.Config, logger *slog.Logger) (advisor.Generator, error) {
	llm := cfg.LLM
	if !llm.GeneratorEnabled() {
		logger.Warn("llm api key not set, advisor will use rule based suggestions", "provider", llm.Provider)
		return nil, nil
	}

	switch llm.Provider {
	case config.ProviderGemini:
		ctx, cancel := context.WithTimeout(context.Background(), llm.Timeout)
		defer cancel()
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:          llm.APIKey,
			BaseURL:         llm.BaseURL,
			Model:           llm.Model,
			Temperature:     llm.Temperature,
			TopP:            llm.TopP,
			TopK:            llm.TopK,
			MaxOutputTokens: int32(llm.MaxOutputTokens),
		})
		if err != nil {
			return nil, err
		}
		return timeoutGenerator{next: client, timeout: llm.Timeout}, nil
	case config.ProviderOpenAI:
		client, err := chatgpt.NewClient(chatgpt.Config{
			APIKey:      llm.APIKey,
			BaseURL:     llm.BaseURL,
			Model:       llm.Model,
			Temperature: llm.Temperature,
			TopP:        llm.TopP,
			MaxTokens:   llm.MaxOutputTokens,
			Timeout:     llm.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderAnthropic:
		client, err := anthropic.NewClient(anthropic.Config{
			APIKey:      llm.APIKey,
			BaseURL:     llm.BaseURL,
			Model:       llm.Model,
			Temperature: float64(llm.Temperature),
			MaxTokens:   int64(llm.MaxOutputTokens),
		})
		if err != nil {
			return nil, err
		}
		return timeoutGenerator{next: client, timeout: llm.Timeout}, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", llm.Provider)
	}
}

// timeoutGenerator bounds SDK backed generators that carry no client timeout.
type timeoutGenerator struct {
	next    advisor.Generator
	timeout time.Duration
}

func (g timeoutGenerator) Generate(ctx context.Context, prompt advisor.Prompt) (advisor.Generation, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	return g.next.Generate(ctx, prompt)
}
