package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

const finnhubResultLimit = 20

// FinnHubClient reads company news through the provider SDK, filtered
// server side by symbol and date range.
type FinnHubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client}
}

func (c *FinnHubClient) Name() string {
	return SourceFinnhub
}

func (c *FinnHubClient) Fetch(ctx context.Context, ticker string) ([]Article, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -2)

	res, _, err := c.client.CompanyNews(ctx).
		Symbol(strings.ToUpper(ticker)).
		From(from.Format("2006-01-02")).
		To(to.Format("2006-01-02")).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub fetch: %w", err)
	}

	var articles []Article
	for _, item := range res {
		if len(articles) >= finnhubResultLimit {
			break
		}

		a := Article{
			Source:      SourceFinnhub,
			Provider:    "FinnHub",
			PublishedAt: to,
		}

		if item.Headline != nil {
			a.Title = *item.Headline
		}
		if a.Title == "" {
			continue
		}
		if item.Url != nil {
			a.URL = *item.Url
		}
		if item.Summary != nil && *item.Summary != "" {
			a.Content = *item.Summary
		} else {
			a.Content = a.Title
		}
		if item.Datetime != nil {
			a.PublishedAt = time.Unix(*item.Datetime, 0)
		}
		if item.Source != nil && *item.Source != "" {
			a.Provider = *item.Source
		}

		articles = append(articles, a)
	}

	return articles, nil
}
