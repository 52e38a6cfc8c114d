package repository

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/netxspider/stock-news-ai-summarizer/pkg/llm"
)

const (
	summaryKeyPrefix = "stocknews:summaries:"

	// MaxStoredSummaries is the per-ticker ring size: storing an eighth
	// summary drops the oldest.
	MaxStoredSummaries = 7
)

// SummaryRepository keeps the most recent summaries per ticker in a
// redis list, newest first.
type SummaryRepository struct {
	rdb *redis.Client
}

func NewSummaryRepository(rdb *redis.Client) *SummaryRepository {
	return &SummaryRepository{rdb: rdb}
}

func summaryKey(ticker string) string {
	return summaryKeyPrefix + strings.ToUpper(ticker)
}

// Store prepends the summary and trims the list to the seven most
// recent.
func (r *SummaryRepository) Store(ctx context.Context, ticker string, s llm.Summary) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}

	pipe := r.rdb.TxPipeline()
	pipe.LPush(ctx, summaryKey(ticker), payload)
	pipe.LTrim(ctx, summaryKey(ticker), 0, MaxStoredSummaries-1)
	_, err = pipe.Exec(ctx)
	return err
}

// GetLatest returns up to n summaries for the ticker, newest first.
func (r *SummaryRepository) GetLatest(ctx context.Context, ticker string, n int) ([]llm.Summary, error) {
	if n <= 0 || n > MaxStoredSummaries {
		n = MaxStoredSummaries
	}

	vals, err := r.rdb.LRange(ctx, summaryKey(ticker), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	summaries := make([]llm.Summary, 0, len(vals))
	for _, v := range vals {
		var s llm.Summary
		if err := json.Unmarshal([]byte(v), &s); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}

// Ping reports store reachability for health checks.
func (r *SummaryRepository) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
