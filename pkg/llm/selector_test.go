package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/netxspider/stock-news-ai-summarizer/pkg/news"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error) {
	f.calls++
	return f.response, f.err
}

func testArticles(n int, source string) []news.Article {
	out := make([]news.Article, n)
	for i := range out {
		out[i] = news.Article{
			Title:       fmt.Sprintf("Article %d about AAPL earnings", i+1),
			URL:         fmt.Sprintf("https://example.com/%d", i+1),
			Source:      source,
			PublishedAt: time.Now().Add(-time.Duration(i) * time.Hour),
		}
	}
	return out
}

func newTestSelector(c Completer) *Selector {
	return NewSelector(c, NewRateLimiter())
}

func TestSelectSmallInputPassesThrough(t *testing.T) {
	c := &fakeCompleter{response: "[1, 2]"}
	s := newTestSelector(c)

	in := testArticles(7, news.SourceYahoo)
	got := s.Select(context.Background(), "AAPL", in)

	assert.Equal(t, 7, len(got))
	assert.Equal(t, 0, c.calls)
}

func TestSelectParsesBracketedArray(t *testing.T) {
	c := &fakeCompleter{response: "The most relevant items are [2, 5, 9]."}
	s := newTestSelector(c)

	in := testArticles(10, news.SourceYahoo)
	got := s.Select(context.Background(), "AAPL", in)

	assert.Equal(t, 1, c.calls)
	assert.Equal(t, 3, len(got))
	assert.Equal(t, in[1].Title, got[0].Title)
	assert.Equal(t, in[4].Title, got[1].Title)
	assert.Equal(t, in[8].Title, got[2].Title)
}

func TestSelectFallsBackToLooseIntegers(t *testing.T) {
	c := &fakeCompleter{response: "I would pick items 1, 3 and 8 for coverage."}
	s := newTestSelector(c)

	in := testArticles(10, news.SourceYahoo)
	got := s.Select(context.Background(), "AAPL", in)

	assert.Equal(t, 3, len(got))
	assert.Equal(t, in[0].Title, got[0].Title)
	assert.Equal(t, in[2].Title, got[1].Title)
	assert.Equal(t, in[7].Title, got[2].Title)
}

func TestSelectDiscardsOutOfRangeAndCapsAtSeven(t *testing.T) {
	c := &fakeCompleter{response: "[0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 99]"}
	s := newTestSelector(c)

	in := testArticles(10, news.SourceYahoo)
	got := s.Select(context.Background(), "AAPL", in)

	assert.Equal(t, 7, len(got))
	// "0" is below the 1-based range and must be dropped.
	assert.Equal(t, in[0].Title, got[0].Title)
}

func TestSelectFailureFallsBackByCredibility(t *testing.T) {
	c := &fakeCompleter{err: errors.New("service down")}
	s := newTestSelector(c)

	// 12 candidates: 3 from the API provider buried among 9 scraped.
	in := append(testArticles(9, news.SourceYahoo), testArticles(3, news.SourceMassive)...)
	got := s.Select(context.Background(), "AAPL", in)

	assert.Equal(t, 6, len(got))
	for i := 0; i < 3; i++ {
		assert.Equal(t, news.SourceMassive, got[i].Source)
	}
	for i := 3; i < 6; i++ {
		assert.Equal(t, news.SourceYahoo, got[i].Source)
	}
}

func TestSelectEmptyResponseFallsBack(t *testing.T) {
	c := &fakeCompleter{response: "I cannot help with that."}
	s := newTestSelector(c)

	in := testArticles(10, news.SourceFinviz)
	got := s.Select(context.Background(), "AAPL", in)

	assert.Equal(t, 6, len(got))
}
