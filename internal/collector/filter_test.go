package collector

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/netxspider/stock-news-ai-summarizer/pkg/news"
)

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "lowercases and strips punctuation",
			title: "Apple Beats Earnings!",
			want:  "applebeatsearnings",
		},
		{
			name:  "identical after normalization",
			title: "apple beats earnings",
			want:  "applebeatsearnings",
		},
		{
			name:  "keeps digits",
			title: "Q3 2026: Apple up 12%",
			want:  "q32026appleup12",
		},
		{
			name:  "caps at fifty characters",
			title: strings.Repeat("abcde", 20),
			want:  strings.Repeat("abcde", 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fingerprint(tt.title)
			if got != tt.want {
				t.Errorf("Fingerprint(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestDeduplicateKeepsFirstOccurrence(t *testing.T) {
	first := news.Article{Title: "Apple Beats Earnings!", Source: news.SourceYahoo, PublishedAt: time.Now()}
	second := news.Article{Title: "apple beats earnings", Source: news.SourceFinviz, PublishedAt: time.Now().Add(-time.Hour)}

	got := Deduplicate([]news.Article{first, second})

	assert.Equal(t, 1, len(got))
	assert.Equal(t, news.SourceYahoo, got[0].Source)
}

func TestDeduplicateSortsNewestFirst(t *testing.T) {
	now := time.Now()
	got := Deduplicate([]news.Article{
		{Title: "oldest story about earnings", PublishedAt: now.Add(-3 * time.Hour)},
		{Title: "newest story about revenue", PublishedAt: now},
		{Title: "middle story about analysts", PublishedAt: now.Add(-time.Hour)},
	})

	assert.Equal(t, 3, len(got))
	assert.Equal(t, "newest story about revenue", got[0].Title)
	assert.Equal(t, "oldest story about earnings", got[2].Title)
}

func TestFilterRelevantDropsUnrelated(t *testing.T) {
	articles := []news.Article{
		{Title: "TSLA deliveries beat estimates", Content: "TSLA deliveries beat estimates"},
		{Title: "Recipe of the week: banana bread", Content: "Recipe of the week: banana bread"},
	}

	got := FilterRelevant(articles, "TSLA")
	assert.Equal(t, 1, len(got))
	assert.Equal(t, "TSLA deliveries beat estimates", got[0].Title)
}
