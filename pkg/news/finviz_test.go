package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

const finvizNewsPage = `<html><body>
<table id="news-table">
<tr><td>Mar-05-26 09:30AM</td><td><a class="tab-link-news" href="https://example.com/apple-earnings">Apple beats earnings estimates for the quarter</a> <span>(Reuters)</span></td></tr>
<tr><td>08:15AM</td><td><a class="tab-link-news" href="https://example.com/apple-analyst">Analyst raises Apple price target to $300</a> <span>(Barrons)</span></td></tr>
<tr><td>Mar-04-26 04:10PM</td><td><a class="tab-link-news" href="https://example.com/celebrity">Celebrity spotted at local bakery opening downtown</a> <span>(Gossip Daily)</span></td></tr>
</table>
</body></html>`

func newFinvizTestClient(srv *httptest.Server) *FinvizClient {
	return &FinvizClient{
		httpClient: srv.Client(),
		baseURL:    srv.URL,
	}
}

func TestFinvizFetchNewsTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(finvizNewsPage))
	}))
	defer srv.Close()

	client := newFinvizTestClient(srv)
	articles, err := client.Fetch(context.Background(), "AAPL")

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))

	first := articles[0]
	assert.Equal(t, "Apple beats earnings estimates for the quarter", first.Title)
	assert.Equal(t, SourceFinviz, first.Source)
	assert.Equal(t, "Reuters", first.Provider)
	assert.Equal(t, "https://example.com/apple-earnings", first.URL)
	assert.Equal(t, 2026, first.PublishedAt.Year())
	assert.Equal(t, time.March, first.PublishedAt.Month())
	assert.Equal(t, 5, first.PublishedAt.Day())
	assert.Equal(t, 9, first.PublishedAt.Hour())
}

func TestFinvizTimeOnlyRowInheritsDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(finvizNewsPage))
	}))
	defer srv.Close()

	client := newFinvizTestClient(srv)
	articles, err := client.Fetch(context.Background(), "AAPL")

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))

	// The 08:15AM row has no date cell of its own; it takes the date of
	// the row above it.
	second := articles[1]
	assert.Equal(t, "Analyst raises Apple price target to $300", second.Title)
	assert.Equal(t, 5, second.PublishedAt.Day())
	assert.Equal(t, 8, second.PublishedAt.Hour())
	assert.Equal(t, 15, second.PublishedAt.Minute())
}

func TestFinvizFetchEmptyMarkup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>nothing here</p></body></html>`))
	}))
	defer srv.Close()

	client := newFinvizTestClient(srv)
	articles, err := client.Fetch(context.Background(), "AAPL")

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(articles))
}

func TestFinvizFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newFinvizTestClient(srv)
	_, err := client.Fetch(context.Background(), "AAPL")
	assert.NotEqual(t, nil, err)
}
