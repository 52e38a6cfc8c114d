package news

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// extractStrategy is one heuristic for pulling headlines out of a
// fetched document. Strategies run in order; the first one yielding a
// relevant article wins. Target markup is not contractually stable, so
// a strategy that stops matching silently hands over to the next one.
type extractStrategy struct {
	name    string
	extract func(doc *goquery.Document, ticker string, now time.Time) []Article
}

func runStrategies(source string, strategies []extractStrategy, doc *goquery.Document, ticker string, now time.Time) []Article {
	for _, s := range strategies {
		articles := s.extract(doc, ticker, now)
		if len(articles) > 0 {
			slog.Debug("extraction strategy matched", "source", source, "strategy", s.name, "count", len(articles))
			return articles
		}
	}
	return nil
}

const (
	minHeadlineLen  = 20
	maxHeadlineLen  = 200
	maxScanResults  = 20
	maxTableResults = 30
)

// boilerplateTerms mark navigation and chrome text that the generic
// scan must not mistake for headlines.
var boilerplateTerms = []string{
	"sign in",
	"sign up",
	"log in",
	"subscribe",
	"newsletter",
	"privacy",
	"cookie",
	"terms of service",
	"advertis",
	"contact us",
	"about us",
	"watchlist",
	"portfolio",
	"premium",
	"download the app",
}

func isBoilerplate(lowered string) bool {
	for _, term := range boilerplateTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// scanHeadlines is the last-resort strategy: walk every anchor in the
// document and keep headline-shaped text (length bounds, finance or
// ticker signal, no boilerplate terms).
func scanHeadlines(doc *goquery.Document, ticker, source, provider, baseURL string, now time.Time) []Article {
	var out []Article
	seen := make(map[string]bool)

	doc.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		text := strings.TrimSpace(link.Text())
		if len(text) < minHeadlineLen || len(text) > maxHeadlineLen {
			return true
		}

		lowered := strings.ToLower(text)
		if isBoilerplate(lowered) {
			return true
		}
		if !IsRelevant(ticker, text, "") {
			return true
		}

		href, ok := link.Attr("href")
		if !ok || href == "" {
			return true
		}
		articleURL := resolveURL(baseURL, href)
		if articleURL == "" || seen[articleURL] {
			return true
		}
		seen[articleURL] = true

		out = append(out, Article{
			Title:       text,
			URL:         articleURL,
			Source:      source,
			Provider:    provider,
			PublishedAt: now,
			Content:     text,
		})
		return len(out) < maxScanResults
	})

	return out
}

// resolveURL joins a possibly relative href against the page it was
// scraped from.
func resolveURL(base, href string) string {
	h, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if h.IsAbs() {
		return h.String()
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return b.ResolveReference(h).String()
}
