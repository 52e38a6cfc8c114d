package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/netxspider/stock-news-ai-summarizer/pkg/news"
)

// HistoryWindowDays is the rolling window of prior coverage kept per
// ticker for day-over-day change analysis.
const HistoryWindowDays = 7

// HistoryRepository persists per-ticker article history in postgres.
type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// AppendHistory stores today's articles for the ticker and prunes
// everything that fell out of the rolling window. Duplicate URLs for a
// ticker are skipped silently.
func (r *HistoryRepository) AppendHistory(ctx context.Context, ticker string, articles []news.Article) error {
	ticker = strings.ToUpper(ticker)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, a := range articles {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO ticker_history(ticker, title, url, source, provider, published_at, content)
			VALUES($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (ticker, url) DO NOTHING
		`, ticker, a.Title, a.URL, a.Source, a.Provider, a.PublishedAt, a.Content)
		if err != nil {
			return err
		}
	}

	cutoff := time.Now().AddDate(0, 0, -HistoryWindowDays)
	_, err = tx.ExecContext(ctx, `
		DELETE FROM ticker_history WHERE ticker = $1 AND published_at < $2
	`, ticker, cutoff)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetHistory returns the ticker's stored articles from the last N days,
// newest first. Days beyond the rolling window clamp to the window.
func (r *HistoryRepository) GetHistory(ctx context.Context, ticker string, days int) ([]news.Article, error) {
	if days <= 0 || days > HistoryWindowDays {
		days = HistoryWindowDays
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	rows, err := r.db.QueryContext(ctx, `
		SELECT title, url, source, provider, published_at, content
		FROM ticker_history
		WHERE ticker = $1 AND published_at >= $2
		ORDER BY published_at DESC
	`, strings.ToUpper(ticker), cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []news.Article
	for rows.Next() {
		var a news.Article
		err := rows.Scan(&a.Title, &a.URL, &a.Source, &a.Provider, &a.PublishedAt, &a.Content)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}
