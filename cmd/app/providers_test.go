package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/tw-weather-advisor/internal/domain/advisor"
	"github.com/yanqian/tw-weather-advisor/internal/infra/config"
	"github.com/yanqian/tw-weather-advisor/internal/infra/llm/chatgpt"
)

func TestProvideGeneratorDisabledWithoutKey(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: config.ProviderGemini}}
	gen, err := provideGenerator(cfg, newTestLogger())
	require.NoError(t, err)
	require.Nil(t, gen)
}

func TestProvideGeneratorSelectsProvider(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: config.ProviderOpenAI, APIKey: "sk", Timeout: time.Second}}
	gen, err := provideGenerator(cfg, newTestLogger())
	require.NoError(t, err)
	require.IsType(t, &chatgpt.Client{}, gen)

	cfg.LLM.Provider = config.ProviderAnthropic
	gen, err = provideGenerator(cfg, newTestLogger())
	require.NoError(t, err)
	require.IsType(t, timeoutGenerator{}, gen)
}

func TestProvideGeneratorRejectsUnknownProvider(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: "bard", APIKey: "k"}}
	_, err := provideGenerator(cfg, newTestLogger())
	require.Error(t, err)
}

func TestTimeoutGeneratorBoundsContext(t *testing.T) {
	var deadline time.Time
	gen := timeoutGenerator{
		next: generatorFunc(func(ctx context.Context, prompt advisor.Prompt) (advisor.Generation, error) {
			deadline, _ = ctx.Deadline()
			return advisor.Generation{Text: "ok"}, nil
		}),
		timeout: time.Minute,
	}
	_, err := gen.Generate(context.Background(), advisor.Prompt{})
	require.NoError(t, err)
	require.False(t, deadline.IsZero())
}

type generatorFunc func(ctx context.Context, prompt advisor.Prompt) (advisor.Generation, error)

func (f generatorFunc) Generate(ctx context.Context, prompt advisor.Prompt) (advisor.Generation, error) {
	return f(ctx, prompt)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
