package handler

import (
	"time"

	"github.com/netxspider/stock-news-ai-summarizer/pkg/llm"
	"github.com/netxspider/stock-news-ai-summarizer/pkg/news"
)

type ArticleResponse struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Provider    string `json:"provider"`
	PublishedAt string `json:"published_at"`
	Content     string `json:"content"`
	TimeAgo     string `json:"time_ago,omitempty"`
}

type NewsResponse struct {
	Ticker   string            `json:"ticker"`
	Articles []ArticleResponse `json:"articles"`
	Count    int               `json:"count"`
}

type SummaryResponse struct {
	Summary          string   `json:"summary"`
	WhatChangedToday string   `json:"what_changed_today"`
	KeyPoints        []string `json:"key_points"`
	Sentiment        string   `json:"sentiment"`
	MarketImpact     string   `json:"market_impact"`
	Confidence       string   `json:"confidence"`
	ArticlesAnalyzed int      `json:"articles_analyzed"`
	Ticker           string   `json:"ticker"`
	Recovered        bool     `json:"recovered"`
	Status           string   `json:"status"`
	GeneratedAt      string   `json:"generated_at"`
}

type SummariesResponse struct {
	Ticker  string            `json:"ticker"`
	Latest  *SummaryResponse  `json:"latest"`
	History []SummaryResponse `json:"history"`
}

func toArticleResponse(a news.Article) ArticleResponse {
	return ArticleResponse{
		Title:       a.Title,
		URL:         a.URL,
		Source:      a.Source,
		Provider:    a.Provider,
		PublishedAt: a.PublishedAt.Format(time.RFC3339),
		Content:     a.Content,
		TimeAgo:     a.TimeAgo,
	}
}

func toSummaryResponse(s llm.Summary) SummaryResponse {
	keyPoints := s.KeyPoints
	if keyPoints == nil {
		keyPoints = []string{}
	}
	return SummaryResponse{
		Summary:          s.Summary,
		WhatChangedToday: s.WhatChangedToday,
		KeyPoints:        keyPoints,
		Sentiment:        s.Sentiment,
		MarketImpact:     s.MarketImpact,
		Confidence:       s.Confidence,
		ArticlesAnalyzed: s.ArticlesAnalyzed,
		Ticker:           s.Ticker,
		Recovered:        s.Recovered,
		Status:           s.Status,
		GeneratedAt:      s.GeneratedAt.Format(time.RFC3339),
	}
}
