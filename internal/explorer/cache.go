package explorer

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of responses kept before the least recently used is evicted
const DefaultCacheSize = 128

// ResponseCache holds raw explorer response bodies keyed by request URL.
// It is safe for concurrent use.
type ResponseCache struct {
	entries *lru.Cache[string, []byte]
}

// NewResponseCache creates a cache bounded to size entries
func NewResponseCache(size int) (*ResponseCache, error) {
	entries, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("creating response cache: %w", err)
	}
	return &ResponseCache{entries: entries}, nil
}

// Get returns the cached body for url and marks it recently used
func (c *ResponseCache) Get(url string) ([]byte, bool) {
	return c.entries.Get(url)
}

// Add stores body under url, evicting the least recently used entry when full
func (c *ResponseCache) Add(url string, body []byte) {
	c.entries.Add(url, body)
}

// Len returns the number of cached responses
func (c *ResponseCache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached response
func (c *ResponseCache) Purge() {
	c.entries.Purge()
}
