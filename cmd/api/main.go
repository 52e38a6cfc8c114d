package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/netxspider/stock-news-ai-summarizer/db"
	"github.com/netxspider/stock-news-ai-summarizer/internal/collector"
	"github.com/netxspider/stock-news-ai-summarizer/internal/handler"
	"github.com/netxspider/stock-news-ai-summarizer/internal/repository"
	"github.com/netxspider/stock-news-ai-summarizer/pkg/news"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to redis: %v", err)
	}
	defer db.CloseRedis()

	newsCollector := collector.New(buildAdapters())
	newsHandler := handler.NewNewsHandler(newsCollector)

	summaryRepo := repository.NewSummaryRepository(db.Redis)
	summaryHandler := handler.NewSummaryHandler(summaryRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/news/:ticker", newsHandler.GetNews)
	r.GET("/summaries/:ticker", summaryHandler.GetSummaries)
	r.GET("/summaries/:ticker/latest", summaryHandler.GetLatestSummary)
	r.GET("/health", summaryHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
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
