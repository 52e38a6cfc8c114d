package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const massiveResultLimit = 25

// MassiveClient queries the Massive reference-news JSON API. Filtering
// happens server side: ticker, result limit, sort field and order are
// all request parameters.
type MassiveClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

func NewMassiveClient(apiKey string) *MassiveClient {
	return &MassiveClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    "https://api.massive.com",
	}
}

func (c *MassiveClient) Name() string {
	return SourceMassive
}

func (c *MassiveClient) Fetch(ctx context.Context, ticker string) ([]Article, error) {
	reqURL := fmt.Sprintf(
		"%s/v2/reference/news?ticker=%s&limit=%d&order=desc&sort=published_utc&published_utc.gte=%s&apiKey=%s",
		c.baseURL,
		url.QueryEscape(strings.ToUpper(ticker)),
		massiveResultLimit,
		time.Now().AddDate(0, 0, -2).Format("2006-01-02"),
		c.apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("massive request: %w", err)
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("massive fetch: %w", err)
	}
	defer resp.Body.Close()

	// An auth rejection means the source is unavailable, not a crash.
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("massive fetch: source unavailable (status %d)", resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("massive fetch: status %d", resp.StatusCode)
	}

	var raw massiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("massive decode: %w", err)
	}

	now := time.Now()
	articles := make([]Article, 0, len(raw.Results))
	for _, item := range raw.Results {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedUTC)
		if err != nil {
			publishedAt = now
		}

		content := item.Description
		if content == "" {
			content = item.Title
		}

		articles = append(articles, Article{
			Title:       item.Title,
			URL:         item.ArticleURL,
			Source:      SourceMassive,
			Provider:    item.Publisher.Name,
			PublishedAt: publishedAt,
			Content:     content,
		})
	}

	return articles, nil
}

type massiveResponse struct {
	Results []massiveResult `json:"results"`
}

type massiveResult struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	ArticleURL   string           `json:"article_url"`
	PublishedUTC string           `json:"published_utc"`
	Tickers      []string         `json:"tickers"`
	Publisher    massivePublisher `json:"publisher"`
}

type massivePublisher struct {
	Name string `json:"name"`
}
