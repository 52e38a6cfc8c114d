package news

import (
	"context"
	"time"
)

// Source identifiers reported by the adapters.
const (
	SourceYahoo   = "YahooFinance"
	SourceFinviz  = "Finviz"
	SourceMassive = "Massive"
	SourceFinnhub = "FinnHub"
)

// Article is the common shape every adapter produces. Immutable once
// returned; Content falls back to Title when a source exposes no body
// text, and TimeAgo keeps the original relative expression when the
// source published one.
type Article struct {
	Title       string
	URL         string
	Source      string
	Provider    string
	PublishedAt time.Time
	Content     string
	TimeAgo     string
}

// Adapter fetches candidate articles about a ticker from one external
// source. Implementations return errors for logging only; the caller
// treats a failed adapter as an empty result.
type Adapter interface {
	Fetch(ctx context.Context, ticker string) ([]Article, error)
	Name() string
}

// CredibilityRank orders sources for fallback selection. Lower ranks
// first: API providers, then the curated Finviz feed, then Yahoo.
func CredibilityRank(source string) int {
	switch source {
	case SourceMassive, SourceFinnhub:
		return 0
	case SourceFinviz:
		return 1
	case SourceYahoo:
		return 2
	default:
		return 3
	}
}

const (
	requestTimeout = 12 * time.Second
	browserUA      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)
