package advisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/tw-weather-advisor/internal/domain/forecast"
	"github.com/yanqian/tw-weather-advisor/internal/domain/location"
	"github.com/yanqian/tw-weather-advisor/pkg/metrics"
)

var taipei = location.Location{Key: "臺北市", Name: "台北市", EnglishName: "Taipei City"}

func TestAdviseUsesGenerator(t *testing.T) {
	gen := &stubGenerator{result: Generation{
		Text:  "  今天很熱，多喝水。 ",
		Model: "gemini-test",
		Usage: metrics.TokenUsage{PromptTokens: 120, CompletionTokens: 40},
	}}
	svc := newServiceUnderTest(Config{Prompt: "system prompt"}, gen)

	advice := svc.Advise(context.Background(), taipei, samplePeriods())
	require.Equal(t, SourceAI, advice.Source)
	require.Equal(t, "今天很熱，多喝水。", advice.Text)
	require.Equal(t, "gemini-test", advice.Model)
	require.NotNil(t, advice.Usage)
	require.Equal(t, 160, advice.Usage.TotalTokens)

	require.Equal(t, 1, gen.calls)
	require.Equal(t, "system prompt", gen.last.System)
	require.Contains(t, gen.last.User, "台北市 (Taipei City)")
	require.Contains(t, gen.last.User, "【今天白天】")
	require.Contains(t, gen.last.User, "【今晚】")
	require.NotContains(t, gen.last.User, "【明天白天】")
	require.Contains(t, gen.last.User, "降雨機率: 80%")
}

func TestAdviseFallsBackOnGeneratorError(t *testing.T) {
	for _, err := range []error{
		errors.New("connection reset"),
		fmt.Errorf("blocked by safety filters: %w", ErrUnavailable),
		context.DeadlineExceeded,
	} {
		gen := &stubGenerator{err: err}
		svc := newServiceUnderTest(Config{}, gen)

		advice := svc.Advise(context.Background(), taipei, samplePeriods())
		require.Equal(t, SourceRuleBased, advice.Source)
		require.Equal(t, Suggest(samplePeriods()[:2]), advice.Text)
		require.Nil(t, advice.Usage)
	}
}

func TestAdviseCapsPeriodsSentToGenerator(t *testing.T) {
	gen := &stubGenerator{result: Generation{Text: "ok"}}
	svc := newServiceUnderTest(Config{MaxPeriods: 3}, gen)

	advice := svc.Advise(context.Background(), taipei, samplePeriods())
	require.Equal(t, SourceAI, advice.Source)
	require.NotContains(t, gen.last.User, "【明天白天】")
}

func TestAdviseFallsBackOnBlankText(t *testing.T) {
	svc := newServiceUnderTest(Config{}, &stubGenerator{result: Generation{Text: " \n "}})

	advice := svc.Advise(context.Background(), taipei, samplePeriods())
	require.Equal(t, SourceRuleBased, advice.Source)
	require.NotEmpty(t, advice.Text)
}

func TestAdviseWithoutGenerator(t *testing.T) {
	svc := newServiceUnderTest(Config{}, nil)

	advice := svc.Advise(context.Background(), taipei, samplePeriods())
	require.Equal(t, SourceRuleBased, advice.Source)
	require.Equal(t, Suggest(samplePeriods()[:2]), advice.Text)
}

func TestAdviseSkipsGeneratorOverBudget(t *testing.T) {
	gen := &stubGenerator{result: Generation{Text: "ok"}}
	svc := newServiceUnderTest(Config{MaxPromptTokens: 10}, gen)

	advice := svc.Advise(context.Background(), taipei, samplePeriods())
	require.Equal(t, SourceRuleBased, advice.Source)
	require.Zero(t, gen.calls)
}

func TestAdviseSinglePeriod(t *testing.T) {
	gen := &stubGenerator{err: errors.New("down")}
	svc := newServiceUnderTest(Config{}, gen)

	advice := svc.Advise(context.Background(), taipei, samplePeriods()[:1])
	require.Equal(t, SourceRuleBased, advice.Source)
	require.Equal(t, Suggest(samplePeriods()[:1]), advice.Text)
}

func TestAdviseNoPeriods(t *testing.T) {
	gen := &stubGenerator{result: Generation{Text: "unused"}}
	svc := newServiceUnderTest(Config{}, gen)

	advice := svc.Advise(context.Background(), taipei, nil)
	require.Equal(t, SourceRuleBased, advice.Source)
	require.Equal(t, noAdviceText, advice.Text)
	require.Zero(t, gen.calls)
}

func TestBuildPromptFillsMissingValues(t *testing.T) {
	svc := newServiceUnderTest(Config{}, nil).(*service)
	prompt := svc.buildPrompt(taipei, []forecast.Period{{Weather: "晴"}})

	require.Equal(t, defaultSystemPrompt, prompt.System)
	require.Contains(t, prompt.User, "【時段 1】")
	require.Contains(t, prompt.User, "溫度: N/A°C ~ N/A°C")
	require.True(t, strings.HasPrefix(prompt.User, "地點: 台北市 (Taipei City)"))
}

func newServiceUnderTest(cfg Config, gen Generator) Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(cfg, gen, countFunc(metrics.EstimateTokens), logger)
}

func samplePeriods() []forecast.Period {
	return []forecast.Period{
		{HighTemp: "33", LowTemp: "27", PoP: "20", Weather: "晴時多雲", Comfort: "悶熱", Label: forecast.LabelTodayDaytime, LabelName: "今天白天", Description: "07/01 06:00 - 07/01 18:00"},
		{HighTemp: "29", LowTemp: "26", PoP: "80", Weather: "短暫陣雨", Comfort: "舒適", Label: forecast.LabelTonight, LabelName: "今晚", Description: "07/01 18:00 - 07/02 06:00"},
		{HighTemp: "34", LowTemp: "27", PoP: "10", Weather: "晴", Comfort: "悶熱", Label: forecast.LabelTomorrowDaytime, LabelName: "明天白天", Description: "07/02 06:00 - 07/02 18:00"},
	}
}

type countFunc func(string) int

func (f countFunc) Count(text string) int { return f(text) }

type stubGenerator struct {
	result Generation
	err    error
	calls  int
	last   Prompt
}

func (s *stubGenerator) Generate(ctx context.Context, prompt Prompt) (Generation, error) {
	s.calls++
	s.last = prompt
	if s.err != nil {
		return Generation{}, s.err
	}
	return s.result, nil
}
