package chatgpt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/tw-weather-advisor/internal/domain/advisor"
)

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}

func TestGenerate(t *testing.T) {
	var got ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{
			"model": "gpt-4o-mini-2024",
			"choices": [{"message": {"role": "assistant", "content": " 出門記得帶傘 "}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 30, "total_tokens": 150}
		}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL, Temperature: 0.7, MaxTokens: 500})
	require.NoError(t, err)

	gen, err := client.Generate(context.Background(), advisor.Prompt{System: "你是氣象助理", User: "臺北市天氣"})
	require.NoError(t, err)
	require.Equal(t, "出門記得帶傘", gen.Text)
	require.Equal(t, "gpt-4o-mini-2024", gen.Model)
	require.Equal(t, 150, gen.Usage.TotalTokens)

	require.Equal(t, defaultModel, got.Model)
	require.Len(t, got.Messages, 2)
	require.Equal(t, "system", got.Messages[0].Role)
	require.Equal(t, "臺北市天氣", got.Messages[1].Content)
	require.Equal(t, 500, got.MaxTokens)
}

func TestGenerateUnavailable(t *testing.T) {
	cases := map[string]string{
		"filtered":   `{"choices":[{"message":{"content":"x"},"finish_reason":"content_filter"}]}`,
		"no choices": `{"choices":[]}`,
		"blank":      `{"choices":[{"message":{"content":"  "},"finish_reason":"stop"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			client, err := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL})
			require.NoError(t, err)
			_, err = client.Generate(context.Background(), advisor.Prompt{User: "hi"})
			require.ErrorIs(t, err, advisor.ErrUnavailable)
		})
	}
}

func TestGenerateHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL})
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), advisor.Prompt{User: "hi"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
}
