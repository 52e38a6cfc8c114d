package collector

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/netxspider/stock-news-ai-summarizer/pkg/news"
)

// Collector fans out to every source adapter concurrently, merges
// whatever came back, filters, dedups and caches the result per ticker.
type Collector struct {
	adapters []news.Adapter
	cache    *Cache
}

func New(adapters []news.Adapter) *Collector {
	return &Collector{
		adapters: adapters,
		cache:    NewCache(CacheTTL),
	}
}

// CollectNews gathers articles about a ticker. It never returns an
// error: a failing or empty source contributes nothing and the rest
// proceed. A fresh cache entry short-circuits all network calls.
func (c *Collector) CollectNews(ctx context.Context, ticker string) []news.Article {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	if cached, ok := c.cache.Get(ticker); ok {
		slog.Debug("serving cached articles", "ticker", ticker, "count", len(cached))
		return cached
	}

	var (
		mu     sync.Mutex
		merged []news.Article
		wg     sync.WaitGroup
	)

	for _, adapter := range c.adapters {
		wg.Add(1)
		go func(a news.Adapter) {
			defer wg.Done()

			articles, err := a.Fetch(ctx, ticker)
			if err != nil {
				slog.Warn("source unavailable", "source", a.Name(), "ticker", ticker, "error", err)
				return
			}
			if len(articles) == 0 {
				slog.Info("source returned no articles", "source", a.Name(), "ticker", ticker)
				return
			}

			mu.Lock()
			merged = append(merged, articles...)
			mu.Unlock()
		}(adapter)
	}
	wg.Wait()

	result := Deduplicate(FilterRelevant(merged, ticker))
	c.cache.Set(ticker, result)

	slog.Info("collected news", "ticker", ticker, "sources", len(c.adapters), "merged", len(merged), "kept", len(result))
	return result
}
