package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

const yahooStreamPage = `<html><body>
<ul>
<li class="stream-item">
  <h3><a href="/news/apple-q2-earnings.html">Apple tops Q2 earnings expectations</a></h3>
  <div class="publishing">Reuters &#8226; 2 hours ago</div>
  <p>Apple reported quarterly revenue ahead of analyst estimates.</p>
</li>
<li class="stream-item">
  <h3><a href="/news/apple-supply-chain.html">Apple supply chain update points to strong demand</a></h3>
  <div class="publishing">Bloomberg &#8226; 5 hours ago</div>
</li>
</ul>
</body></html>`

const yahooFallbackPage = `<html><body>
<nav><a href="/subscribe">Subscribe to our premium newsletter today</a></nav>
<div>
  <a href="/news/apple-dividend.html">Apple raises dividend after record quarterly results</a>
  <a href="/about">About us and contact information page</a>
</div>
</body></html>`

func newYahooTestClient(srv *httptest.Server) *YahooClient {
	return &YahooClient{
		httpClient: srv.Client(),
		baseURL:    srv.URL,
	}
}

func TestYahooFetchStreamItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(yahooStreamPage))
	}))
	defer srv.Close()

	client := newYahooTestClient(srv)
	before := time.Now()
	articles, err := client.Fetch(context.Background(), "AAPL")

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))

	first := articles[0]
	assert.Equal(t, "Apple tops Q2 earnings expectations", first.Title)
	assert.Equal(t, SourceYahoo, first.Source)
	assert.Equal(t, "Reuters", first.Provider)
	assert.Equal(t, "2 hours ago", first.TimeAgo)
	assert.Equal(t, "Apple reported quarterly revenue ahead of analyst estimates.", first.Content)

	// "2 hours ago" resolved against now.
	if first.PublishedAt.After(before.Add(-time.Hour)) || first.PublishedAt.Before(before.Add(-3*time.Hour)) {
		t.Errorf("expected publishedAt roughly two hours back, got %v", first.PublishedAt)
	}

	// Content falls back to the title when the item has no excerpt.
	assert.Equal(t, articles[1].Content, articles[1].Title)
	assert.Equal(t, "Bloomberg", articles[1].Provider)
}

func TestYahooFetchFallbackStrategies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(yahooFallbackPage))
	}))
	defer srv.Close()

	client := newYahooTestClient(srv)
	articles, err := client.Fetch(context.Background(), "AAPL")

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "Apple raises dividend after record quarterly results", articles[0].Title)
}

func TestYahooFetchGarbledMarkup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<<<<not html at all`))
	}))
	defer srv.Close()

	client := newYahooTestClient(srv)
	articles, err := client.Fetch(context.Background(), "AAPL")

	// Garbled markup yields zero results, not a failure.
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(articles))
}

func TestSplitPublishing(t *testing.T) {
	provider, timeAgo := splitPublishing("Reuters • 3 hours ago")
	assert.Equal(t, "Reuters", provider)
	assert.Equal(t, "3 hours ago", timeAgo)

	provider, timeAgo = splitPublishing("10 minutes ago")
	assert.Equal(t, "", provider)
	assert.Equal(t, "10 minutes ago", timeAgo)

	provider, timeAgo = splitPublishing("")
	assert.Equal(t, "", provider)
	assert.Equal(t, "", timeAgo)
}
