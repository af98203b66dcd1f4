package docparse

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache remembers extraction results so uploading the same document twice
// only calls the API once. Failed extractions are not cached.
type Cache struct {
	next  Extractor
	store *cache.Cache
}

// NewCache wraps next with an in-memory cache whose entries expire after ttl
func NewCache(next Extractor, ttl time.Duration) *Cache {
	return &Cache{
		next:  next,
		store: cache.New(ttl, 2*ttl),
	}
}

// Extract returns a cached result for identical bytes and file name, or
// delegates to the wrapped Extractor
func (c *Cache) Extract(ctx context.Context, fileName string, data []byte) (*Result, error) {
	key := cacheKey(fileName, data)
	if v, ok := c.store.Get(key); ok {
		r := *v.(*Result)
		return &r, nil
	}

	result, err := c.next.Extract(ctx, fileName, data)
	if err != nil {
		return nil, err
	}

	stored := *result
	c.store.SetDefault(key, &stored)
	return result, nil
}

// Len returns the number of cached documents
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

func cacheKey(fileName string, data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]) + ":" + fileName
}
