package handler

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/netxspider/stock-news-ai-summarizer/pkg/news"
)

// NewsCollector is the collection pipeline boundary the handler sees.
type NewsCollector interface {
	CollectNews(ctx context.Context, ticker string) []news.Article
}

type NewsHandler struct {
	collector NewsCollector
}

func NewNewsHandler(collector NewsCollector) *NewsHandler {
	return &NewsHandler{collector: collector}
}

var tickerPattern = regexp.MustCompile(`^[A-Za-z0-9.\-]{1,10}$`)

// GetNews returns the current (possibly cached) article set for a
// ticker. Collection never fails; an empty list is a valid answer.
func (h *NewsHandler) GetNews(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	if !tickerPattern.MatchString(ticker) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticker"})
		return
	}

	articles := h.collector.CollectNews(c.Request.Context(), ticker)

	res := NewsResponse{
		Ticker:   ticker,
		Articles: make([]ArticleResponse, 0, len(articles)),
		Count:    len(articles),
	}
	for _, a := range articles {
		res.Articles = append(res.Articles, toArticleResponse(a))
	}

	c.JSON(http.StatusOK, res)
}
