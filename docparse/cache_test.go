package docparse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prism/apierr"
)

type countingExtractor struct {
	calls int
	err   error
}

func (c *countingExtractor) Extract(_ context.Context, fileName string, data []byte) (*Result, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &Result{Text: string(data), FileName: fileName, Source: SourceText}, nil
}

func TestCacheHit(t *testing.T) {
	inner := &countingExtractor{}
	c := NewCache(inner, time.Hour)

	first, err := c.Extract(context.Background(), "a.pdf", []byte("same"))
	require.NoError(t, err)
	second, err := c.Extract(context.Background(), "a.pdf", []byte("same"))
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.Len())

	second.Text = "mutated"
	third, _ := c.Extract(context.Background(), "a.pdf", []byte("same"))
	assert.Equal(t, "same", third.Text, "callers must not be able to change cached entries")
}

func TestCacheKeyIncludesNameAndContent(t *testing.T) {
	inner := &countingExtractor{}
	c := NewCache(inner, time.Hour)

	c.Extract(context.Background(), "a.pdf", []byte("one"))
	c.Extract(context.Background(), "b.pdf", []byte("one"))
	c.Extract(context.Background(), "a.pdf", []byte("two"))

	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, 3, c.Len())
}

func TestCacheSkipsErrors(t *testing.T) {
	inner := &countingExtractor{err: apierr.New(apierr.KindTimeout, nil)}
	c := NewCache(inner, time.Hour)

	_, err := c.Extract(context.Background(), "a.pdf", []byte("x"))
	assert.Equal(t, apierr.KindTimeout, apierr.KindOf(err))
	_, _ = c.Extract(context.Background(), "a.pdf", []byte("x"))

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, c.Len())
}

func TestCacheExpiry(t *testing.T) {
	inner := &countingExtractor{}
	c := NewCache(inner, 20*time.Millisecond)

	c.Extract(context.Background(), "a.pdf", []byte("x"))
	time.Sleep(40 * time.Millisecond)
	c.Extract(context.Background(), "a.pdf", []byte("x"))

	assert.Equal(t, 2, inner.calls)
}
