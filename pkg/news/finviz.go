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

// FinvizClient scrapes the Finviz quote page news table. Rows carry a
// timestamp in the first cell; rows after the first of a day show the
// time only, so the date carries down row to row.
type FinvizClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewFinvizClient() *FinvizClient {
	return &FinvizClient{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    "https://finviz.com",
	}
}

func (c *FinvizClient) Name() string {
	return SourceFinviz
}

func (c *FinvizClient) Fetch(ctx context.Context, ticker string) ([]Article, error) {
	pageURL := fmt.Sprintf("%s/quote.ashx?t=%s", c.baseURL, url.QueryEscape(strings.ToUpper(ticker)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("finviz request: %w", err)
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("finviz fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("finviz fetch: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("finviz parse HTML: %w", err)
	}

	strategies := []extractStrategy{
		{name: "news-table", extract: func(doc *goquery.Document, ticker string, now time.Time) []Article {
			return c.extractNewsRows(doc.Find("#news-table tr"), ticker, now)
		}},
		{name: "fullview-table", extract: func(doc *goquery.Document, ticker string, now time.Time) []Article {
			return c.extractNewsRows(doc.Find("table.fullview-news-outer tr"), ticker, now)
		}},
		{name: "generic-scan", extract: func(doc *goquery.Document, ticker string, now time.Time) []Article {
			return scanHeadlines(doc, ticker, SourceFinviz, "Finviz", c.baseURL, now)
		}},
	}

	return runStrategies(SourceFinviz, strategies, doc, strings.ToUpper(ticker), time.Now()), nil
}

// extractNewsRows parses two-cell rows: a timestamp cell followed by a
// headline anchor with the publisher in a trailing span, e.g.
// "Jan-12-26 08:45AM | Apple beats estimates (Reuters)".
func (c *FinvizClient) extractNewsRows(rows *goquery.Selection, ticker string, now time.Time) []Article {
	var out []Article
	seen := make(map[string]bool)
	var lastDate string

	rows.Each(func(_ int, row *goquery.Selection) {
		if len(out) >= maxTableResults {
			return
		}

		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		stamp := strings.TrimSpace(cells.Eq(0).Text())
		if !looksLikeTimestamp(stamp) {
			return
		}

		link := cells.Eq(1).Find("a").First()
		title := strings.TrimSpace(link.Text())
		href, ok := link.Attr("href")
		if title == "" || !ok {
			return
		}

		articleURL := resolveURL(c.baseURL, href)
		if articleURL == "" || seen[articleURL] {
			return
		}

		if !IsRelevant(ticker, title, "") {
			return
		}
		seen[articleURL] = true

		provider := strings.Trim(strings.TrimSpace(cells.Eq(1).Find("span").Last().Text()), "()")
		if provider == "" {
			provider = "Finviz"
		}

		// Date-only prefix carries down to time-only rows below it.
		if strings.Contains(stamp, "-") {
			if fields := strings.Fields(stamp); len(fields) == 2 {
				lastDate = fields[0]
			}
		} else if lastDate != "" {
			stamp = lastDate + " " + stamp
		}

		out = append(out, Article{
			Title:       title,
			URL:         articleURL,
			Source:      SourceFinviz,
			Provider:    provider,
			PublishedAt: ParseTimestamp(stamp, now),
			Content:     title,
		})
	})

	return out
}

// looksLikeTimestamp is the timestamp marker check for table rows:
// either the Finviz "Jan-12-26 08:45AM" form or a bare "08:45AM".
func looksLikeTimestamp(s string) bool {
	upper := strings.ToUpper(s)
	return strings.HasSuffix(upper, "AM") || strings.HasSuffix(upper, "PM")
}
