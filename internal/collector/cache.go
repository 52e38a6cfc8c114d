package collector

import (
	"sync"
	"time"

	"github.com/netxspider/stock-news-ai-summarizer/pkg/news"
)

// CacheTTL is how long a collected article set stays valid. Within the
// TTL repeated collections for a ticker return the cached set without
// touching the network.
const CacheTTL = 5 * time.Minute

type cacheEntry struct {
	articles   []news.Article
	capturedAt time.Time
}

// Cache holds one article set per ticker, replaced wholesale on every
// refresh.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Get returns the cached articles for a ticker if the entry is still
// fresh.
func (c *Cache) Get(ticker string) ([]news.Article, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[ticker]
	if !ok || time.Since(entry.capturedAt) >= c.ttl {
		return nil, false
	}
	return entry.articles, true
}

// Set overwrites the entry for a ticker with a fresh capture.
func (c *Cache) Set(ticker string, articles []news.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[ticker] = cacheEntry{
		articles:   articles,
		capturedAt: time.Now(),
	}
}
