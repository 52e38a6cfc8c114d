package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/netxspider/stock-news-ai-summarizer/pkg/llm"
)

type SummaryStore interface {
	GetLatest(ctx context.Context, ticker string, n int) ([]llm.Summary, error)
	Ping(ctx context.Context) error
}

type SummaryHandler struct {
	store SummaryStore
}

func NewSummaryHandler(store SummaryStore) *SummaryHandler {
	return &SummaryHandler{store: store}
}

func (h *SummaryHandler) GetSummaries(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	limit := getQueryInt("limit", 7, c)

	summaries, err := h.store.GetLatest(c.Request.Context(), ticker, limit)
	if err != nil {
		slog.Error("error fetching summaries", "ticker", ticker, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Store error"})
		return
	}

	res := SummariesResponse{
		Ticker:  ticker,
		History: []SummaryResponse{},
	}

	if len(summaries) > 0 {
		latest := toSummaryResponse(summaries[0])
		res.Latest = &latest
		for _, s := range summaries[1:] {
			res.History = append(res.History, toSummaryResponse(s))
		}
	}

	c.JSON(http.StatusOK, res)
}

func (h *SummaryHandler) GetLatestSummary(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))

	summaries, err := h.store.GetLatest(c.Request.Context(), ticker, 1)
	if err != nil {
		slog.Error("error fetching latest summary", "ticker", ticker, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Store error"})
		return
	}

	if len(summaries) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No summary available"})
		return
	}

	c.JSON(http.StatusOK, toSummaryResponse(summaries[0]))
}

func (h *SummaryHandler) GetHealth(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"store":  "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"store":  "connected",
	})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw)
		return defaultValue
	}
	return parsed
}
