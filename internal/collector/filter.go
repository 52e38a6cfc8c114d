package collector

import (
	"sort"
	"strings"

	"github.com/netxspider/stock-news-ai-summarizer/pkg/news"
)

const fingerprintLen = 50

// FilterRelevant is the second relevance pass over the merged set,
// behind the adapters' own more lenient checks.
func FilterRelevant(articles []news.Article, ticker string) []news.Article {
	out := make([]news.Article, 0, len(articles))
	for _, a := range articles {
		if news.IsRelevant(ticker, a.Title, a.Content) {
			out = append(out, a)
		}
	}
	return out
}

// Fingerprint normalizes a title for dedup: lowercased, every
// non-alphanumeric character stripped, capped at 50 characters.
func Fingerprint(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	fp := b.String()
	if len(fp) > fingerprintLen {
		fp = fp[:fingerprintLen]
	}
	return fp
}

// Deduplicate keeps the first occurrence of each fingerprint and sorts
// the survivors newest first.
func Deduplicate(articles []news.Article) []news.Article {
	seen := make(map[string]bool, len(articles))
	out := make([]news.Article, 0, len(articles))
	for _, a := range articles {
		fp := Fingerprint(a.Title)
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}
