package llm

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strconv"

	"github.com/netxspider/stock-news-ai-summarizer/pkg/news"
)

const (
	maxSelectorResults    = 7
	fallbackSelectionSize = 6
)

// Selector asks the generative service to pick the most relevant subset
// of a larger article set. Small sets pass through untouched to save
// budget.
type Selector struct {
	completer Completer
	limiter   *RateLimiter
}

func NewSelector(completer Completer, limiter *RateLimiter) *Selector {
	return &Selector{completer: completer, limiter: limiter}
}

// Select returns at most seven articles. Inputs of seven or fewer come
// back unchanged without any generative call; any failure downstream
// falls back to a deterministic credibility ordering.
func (s *Selector) Select(ctx context.Context, ticker string, articles []news.Article) []news.Article {
	if len(articles) <= maxSelectorResults {
		return articles
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		slog.Warn("selection rate-limit wait interrupted", "ticker", ticker, "error", err)
		return fallbackSelection(articles)
	}

	raw, err := s.completer.Complete(ctx, buildSelectionPrompt(ticker, articles), CompleteOptions{
		Temperature:     0.2,
		MaxOutputTokens: 256,
	})
	if err != nil {
		slog.Warn("selection call failed, using credibility fallback", "ticker", ticker, "error", err)
		return fallbackSelection(articles)
	}

	indices := parseIndices(raw, len(articles))
	if len(indices) == 0 {
		slog.Warn("no usable indices in selection response", "ticker", ticker, "response", truncate(raw, 120))
		return fallbackSelection(articles)
	}

	out := make([]news.Article, 0, len(indices))
	for _, idx := range indices {
		out = append(out, articles[idx])
	}
	return out
}

var (
	bracketPattern = regexp.MustCompile(`\[[^\]]*\]`)
	integerPattern = regexp.MustCompile(`\d+`)
)

// parseIndices leniently pulls 1-based item numbers out of raw model
// output: a bracketed array if one exists, otherwise any integers
// anywhere in the text. Out-of-range and duplicate values are dropped
// and the result is capped at seven 0-based indices.
func parseIndices(raw string, n int) []int {
	candidate := raw
	if m := bracketPattern.FindString(raw); m != "" {
		candidate = m
	}

	var out []int
	seen := make(map[int]bool)
	for _, match := range integerPattern.FindAllString(candidate, -1) {
		v, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		idx := v - 1
		if idx < 0 || idx >= n || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
		if len(out) == maxSelectorResults {
			break
		}
	}
	return out
}

// fallbackSelection sorts by source credibility tier and keeps six.
func fallbackSelection(articles []news.Article) []news.Article {
	sorted := make([]news.Article, len(articles))
	copy(sorted, articles)

	sort.SliceStable(sorted, func(i, j int) bool {
		return news.CredibilityRank(sorted[i].Source) < news.CredibilityRank(sorted[j].Source)
	})

	if len(sorted) > fallbackSelectionSize {
		sorted = sorted[:fallbackSelectionSize]
	}
	return sorted
}
