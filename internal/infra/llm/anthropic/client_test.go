package anthropic

import (
	"context"
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/tw-weather-advisor/internal/domain/advisor"
)

type stubMessages struct {
	resp *anthropic.Message
	err  error
	last anthropic.MessageNewParams
}

func (s *stubMessages) New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error) {
	s.last = body
	return s.resp, s.err
}

func TestGenerate(t *testing.T) {
	messages := &stubMessages{resp: &anthropic.Message{
		Model:      anthropic.Model("claude-test"),
		StopReason: anthropic.StopReason("end_turn"),
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: "🌧️ 今晚有雨，"},
			{Type: "text", Text: "記得帶傘"},
		},
		Usage: anthropic.Usage{InputTokens: 90, OutputTokens: 20},
	}}
	client := newClient(Config{Temperature: 0.7}, messages)

	gen, err := client.Generate(context.Background(), advisor.Prompt{System: "sys", User: "高雄市"})
	require.NoError(t, err)
	require.Equal(t, "🌧️ 今晚有雨，記得帶傘", gen.Text)
	require.Equal(t, "claude-test", gen.Model)
	require.Equal(t, 110, gen.Usage.TotalTokens)

	require.Equal(t, anthropic.Model(defaultModel), messages.last.Model)
	require.Equal(t, int64(defaultMaxTokens), messages.last.MaxTokens)
	require.Len(t, messages.last.System, 1)
	require.Equal(t, "sys", messages.last.System[0].Text)
	require.Len(t, messages.last.Messages, 1)
}

func TestGenerateUnavailable(t *testing.T) {
	cases := map[string]*anthropic.Message{
		"refusal": {StopReason: anthropic.StopReason("refusal"), Content: []anthropic.ContentBlockUnion{{Type: "text", Text: "no"}}},
		"empty":   {StopReason: anthropic.StopReason("end_turn")},
	}
	for name, resp := range cases {
		t.Run(name, func(t *testing.T) {
			client := newClient(Config{}, &stubMessages{resp: resp})
			_, err := client.Generate(context.Background(), advisor.Prompt{User: "hi"})
			require.ErrorIs(t, err, advisor.ErrUnavailable)
		})
	}
}

func TestGeneratePropagatesError(t *testing.T) {
	client := newClient(Config{}, &stubMessages{err: errors.New("overloaded")})
	_, err := client.Generate(context.Background(), advisor.Prompt{User: "hi"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "overloaded")
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}
