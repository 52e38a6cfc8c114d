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

	newsCollector := collector.New(buildAdapters())
	historyRepo := repository.NewHistoryRepository(db.DB)

	ctx := context.Background()
	tickers := tickerList()

	slog.Info("starting collection run", "tickers", len(tickers))

	collected := 0
	for i, ticker := range tickers {
		if i > 0 {
			time.Sleep(tickerDelay)
		}

		articles := newsCollector.CollectNews(ctx, ticker)
		if len(articles) == 0 {
			slog.Info("no articles collected", "ticker", ticker)
			continue
		}

		err := historyRepo.AppendHistory(ctx, ticker, articles)
		if err != nil {
			slog.Error("error saving history", "ticker", ticker, "error", err)
			continue
		}

		collected += len(articles)
		slog.Info("collected articles", "ticker", ticker, "count", len(articles))
	}

	slog.Info("collection run finished", "tickers", len(tickers), "articles", collected)
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
