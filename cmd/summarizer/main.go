package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/netxspider/stock-news-ai-summarizer/db"
	"github.com/netxspider/stock-news-ai-summarizer/internal/collector"
	"github.com/netxspider/stock-news-ai-summarizer/internal/repository"
	"github.com/netxspider/stock-news-ai-summarizer/pkg/llm"
	"github.com/netxspider/stock-news-ai-summarizer/pkg/news"
)

var defaultTickers = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "TSLA", "META"}

const tickerDelay = 2 * time.Second

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to redis: %v", err)
	}
	defer db.CloseRedis()

	completer, err := llm.NewCompleterFromEnv()
	if err != nil {
		log.Fatalf("error creating LLM client: %v", err)
	}

	limiter := llm.NewRateLimiter()
	selector := llm.NewSelector(completer, limiter)
	generator := llm.NewGenerator(completer, limiter)

	newsCollector := collector.New(buildAdapters())
	historyRepo := repository.NewHistoryRepository(db.DB)
	summaryRepo := repository.NewSummaryRepository(db.Redis)

	ctx := context.Background()
	tickers := tickerList()

	slog.Info("starting summarization run", "tickers", len(tickers))

	for i, ticker := range tickers {
		if i > 0 {
			time.Sleep(tickerDelay)
		}

		articles := newsCollector.CollectNews(ctx, ticker)
		selected := selector.Select(ctx, ticker, articles)

		history, err := historyRepo.GetHistory(ctx, ticker, repository.HistoryWindowDays)
		if err != nil {
			slog.Error("error loading history", "ticker", ticker, "error", err)
			history = nil
		}

		summary := generator.Generate(ctx, ticker, selected, history)

		err = summaryRepo.Store(ctx, ticker, summary)
		if err != nil {
			slog.Error("error storing summary", "ticker", ticker, "error", err)
			continue
		}

		if len(articles) > 0 {
			err = historyRepo.AppendHistory(ctx, ticker, articles)
			if err != nil {
				slog.Error("error saving history", "ticker", ticker, "error", err)
			}
		}

		slog.Info("summary stored",
			"ticker", ticker,
			"status", summary.Status,
			"articles_analyzed", summary.ArticlesAnalyzed,
			"sentiment", summary.Sentiment,
		)
	}

	slog.Info("summarization run finished", "tickers", len(tickers))
}

func tickerList() []string {
	raw := os.Getenv("TICKERS")
	if raw == "" {
		return defaultTickers
	}

	var tickers []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			tickers = append(tickers, t)
		}
	}

	if len(tickers) == 0 {
		return defaultTickers
	}
	return tickers
}

func buildAdapters() []news.Adapter {
	adapters := []news.Adapter{
		news.NewYahooClient(),
		news.NewFinvizClient(),
	}

	if key := os.Getenv("MASSIVE_API_KEY"); key != "" {
		adapters = append(adapters, news.NewMassiveClient(key))
	}
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		adapters = append(adapters, news.NewFinnHubClient(key))
	}

	return adapters
}
