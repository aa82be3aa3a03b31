package metrics

import (
	"context"
	"fmt"
	"sync/atomic"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "cl100k_base"

// TokenCounter estimates how many model tokens a prompt consumes.
type TokenCounter interface {
	Count(text string) int
}

// TiktokenCounter counts with a BPE encoding once Load has fetched it and
// uses EstimateTokens until then. Count never performs I/O.
type TiktokenCounter struct {
	encoding string
	loader   func(encoding string) (*tiktoken.Tiktoken, error)
	enc      atomic.Pointer[tiktoken.Tiktoken]
}

// NewTiktokenCounter builds a counter for encoding. Call Load to fetch the
// BPE tables.
func NewTiktokenCounter(encoding string) *TiktokenCounter {
	if encoding == "" {
		encoding = defaultEncoding
	}
	return &TiktokenCounter{encoding: encoding, loader: tiktoken.GetEncoding}
}

// Load fetches the encoding, waiting at most until ctx is done. A load that
// outlives ctx keeps running and is picked up by Count when it finishes.
func (c *TiktokenCounter) Load(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		enc, err := c.loader(c.encoding)
		if err == nil && enc != nil {
			c.enc.Store(enc)
		}
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("load %s encoding: %w", c.encoding, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("load %s encoding: %w", c.encoding, ctx.Err())
	}
}

// Count implements TokenCounter.
func (c *TiktokenCounter) Count(text string) int {
	enc := c.enc.Load()
	if enc == nil {
		return EstimateTokens(text)
	}
	return len(enc.Encode(text, nil, nil))
}

// EstimateTokens approximates BPE token counts: CJK runes cost roughly one
// token each, other text roughly one token per four bytes.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	var wide, narrow int
	for _, r := range text {
		if utf8.RuneLen(r) >= 3 {
			wide++
			continue
		}
		narrow++
	}
	return wide + (narrow+3)/4
}
