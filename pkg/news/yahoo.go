package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// YahooClient scrapes the Yahoo Finance quote news page. The markup
// changes without notice; extraction degrades through the strategy
// cascade and ends at the generic headline scan.
type YahooClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewYahooClient() *YahooClient {
	return &YahooClient{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    "https://finance.yahoo.com",
	}
}

func (c *YahooClient) Name() string {
	return SourceYahoo
}

func (c *YahooClient) Fetch(ctx context.Context, ticker string) ([]Article, error) {
	pageURL := fmt.Sprintf("%s/quote/%s/news", c.baseURL, url.PathEscape(strings.ToUpper(ticker)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("yahoo request: %w", err)
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("yahoo fetch: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo parse HTML: %w", err)
	}

	strategies := []extractStrategy{
		{name: "stream-items", extract: c.extractStreamItems},
		{name: "news-links", extract: c.extractNewsLinks},
		{name: "generic-scan", extract: func(doc *goquery.Document, ticker string, now time.Time) []Article {
			return scanHeadlines(doc, ticker, SourceYahoo, "Yahoo Finance", c.baseURL, now)
		}},
	}

	return runStrategies(SourceYahoo, strategies, doc, strings.ToUpper(ticker), time.Now()), nil
}

// extractStreamItems reads the news stream list items: headline anchor
// inside an h3 plus a publishing line like "Reuters • 2 hours ago".
func (c *YahooClient) extractStreamItems(doc *goquery.Document, ticker string, now time.Time) []Article {
	var out []Article
	seen := make(map[string]bool)

	doc.Find("li.stream-item, li.js-stream-content").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("h3 a").First()
		title := strings.TrimSpace(link.Text())
		href, ok := link.Attr("href")
		if title == "" || !ok {
			return
		}

		articleURL := resolveURL(c.baseURL, href)
		if articleURL == "" || seen[articleURL] {
			return
		}

		excerpt := strings.TrimSpace(item.Find("p").First().Text())
		if !IsRelevant(ticker, title, excerpt) {
			return
		}
		seen[articleURL] = true

		provider, timeAgo := splitPublishing(item.Find("div.publishing").First().Text())
		if provider == "" {
			provider = "Yahoo Finance"
		}

		content := excerpt
		if content == "" {
			content = title
		}

		out = append(out, Article{
			Title:       title,
			URL:         articleURL,
			Source:      SourceYahoo,
			Provider:    provider,
			PublishedAt: ParseTimestamp(timeAgo, now),
			Content:     content,
			TimeAgo:     timeAgo,
		})
	})

	return out
}

// extractNewsLinks falls back to any h3-wrapped anchor pointing at a
// /news/ path anywhere in the document.
func (c *YahooClient) extractNewsLinks(doc *goquery.Document, ticker string, now time.Time) []Article {
	var out []Article
	seen := make(map[string]bool)

	doc.Find(`a[href*="/news/"]`).Each(func(_ int, link *goquery.Selection) {
		title := strings.TrimSpace(link.Find("h3").Text())
		if title == "" {
			title = strings.TrimSpace(link.Text())
		}
		if len(title) < minHeadlineLen || len(title) > maxHeadlineLen {
			return
		}
		if !IsRelevant(ticker, title, "") {
			return
		}

		href, _ := link.Attr("href")
		articleURL := resolveURL(c.baseURL, href)
		if articleURL == "" || seen[articleURL] {
			return
		}
		seen[articleURL] = true

		out = append(out, Article{
			Title:       title,
			URL:         articleURL,
			Source:      SourceYahoo,
			Provider:    "Yahoo Finance",
			PublishedAt: now,
			Content:     title,
		})
	})

	return out
}

// splitPublishing breaks "Reuters • 2 hours ago" into its provider and
// relative-time halves.
func splitPublishing(raw string) (provider, timeAgo string) {
	parts := strings.Split(raw, "•")
	if len(parts) >= 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}

	trimmed := strings.TrimSpace(raw)
	if IsRelative(trimmed) {
		return "", trimmed
	}
	return trimmed, ""
}
