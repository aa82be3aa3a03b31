package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/stretchr/testify/require"
)

func TestEstimateTokens(t *testing.T) {
	require.Equal(t, 0, EstimateTokens(""))
	require.Equal(t, 1, EstimateTokens("abcd"))
	require.Equal(t, 2, EstimateTokens("abcde"))
	require.Equal(t, 3, EstimateTokens("臺北市"))
	require.Equal(t, 4, EstimateTokens("臺北市 ok"))
}

func TestTokenUsageNormalized(t *testing.T) {
	usage := TokenUsage{PromptTokens: 12, CompletionTokens: 30}.Normalized()
	require.Equal(t, 42, usage.TotalTokens)
	require.False(t, usage.IsZero())
	require.True(t, TokenUsage{}.IsZero())

	reported := TokenUsage{PromptTokens: 1, CompletionTokens: 1, TotalTokens: 5}.Normalized()
	require.Equal(t, 5, reported.TotalTokens)
}

func TestTiktokenCounterFallsBackWhenLoaderFails(t *testing.T) {
	counter := NewTiktokenCounter("")
	counter.loader = func(string) (*tiktoken.Tiktoken, error) {
		return nil, errors.New("blob host unreachable")
	}

	err := counter.Load(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "cl100k_base")
	require.Equal(t, EstimateTokens("臺北市 ok"), counter.Count("臺北市 ok"))
}

func TestTiktokenCounterLoadIsBoundedByContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	counter := NewTiktokenCounter("cl100k_base")
	counter.loader = func(string) (*tiktoken.Tiktoken, error) {
		<-release
		return nil, errors.New("cancelled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := counter.Load(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), time.Second)

	require.Equal(t, EstimateTokens("abcde"), counter.Count("abcde"))
}

func TestTiktokenCounterCountBeforeLoad(t *testing.T) {
	counter := NewTiktokenCounter("cl100k_base")
	counter.loader = func(string) (*tiktoken.Tiktoken, error) {
		t.Fatal("Count must not load the encoding")
		return nil, nil
	}
	require.Equal(t, 3, counter.Count("臺北市"))
}
