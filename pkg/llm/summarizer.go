package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/netxspider/stock-news-ai-summarizer/pkg/news"
)

// Summary generation outcomes.
const (
	StatusComplete  = "completed"
	StatusRecovered = "recovered"
	StatusFallback  = "fallback"
	StatusError     = "error"
)

// Neutral defaults used when a field cannot be determined.
const (
	defaultSentiment  = "neutral"
	defaultImpact     = "medium"
	defaultConfidence = "low"
)

var (
	validSentiments  = map[string]bool{"positive": true, "negative": true, "neutral": true, "mixed": true}
	validImpacts     = map[string]bool{"high": true, "medium": true, "low": true, "minimal": true}
	validConfidences = map[string]bool{"high": true, "medium": true, "low": true}
)

// Summary is the structured daily output. Every generation path fills
// the complete field set; degraded paths are reported through Status
// and Recovered, never through an error.
type Summary struct {
	Summary          string    `json:"summary"`
	WhatChangedToday string    `json:"what_changed_today"`
	KeyPoints        []string  `json:"key_points"`
	Sentiment        string    `json:"sentiment"`
	MarketImpact     string    `json:"market_impact"`
	Confidence       string    `json:"confidence"`
	ArticlesAnalyzed int       `json:"articles_analyzed"`
	Ticker           string    `json:"ticker"`
	Recovered        bool      `json:"recovered"`
	Status           string    `json:"status"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// Generator produces structured summaries through the shared rate
// limiter, with a three-stage parse pipeline behind it: strict JSON,
// field-level regex recovery, deterministic fallback.
type Generator struct {
	completer Completer
	limiter   *RateLimiter
}

func NewGenerator(completer Completer, limiter *RateLimiter) *Generator {
	return &Generator{completer: completer, limiter: limiter}
}

// Generate builds the daily summary for a ticker from today's articles
// and a historical window. It always returns a fully populated Summary.
func (g *Generator) Generate(ctx context.Context, ticker string, articles, history []news.Article) Summary {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return errorSummary(ticker)
	}
	if len(articles) == 0 {
		return fallbackSummary(ticker, nil)
	}

	if len(articles) > maxSummaryArticles {
		articles = articles[:maxSummaryArticles]
	}
	if len(history) > maxHistoryItems {
		history = history[:maxHistoryItems]
	}

	if err := g.limiter.Acquire(ctx); err != nil {
		slog.Warn("summary rate-limit wait interrupted", "ticker", ticker, "error", err)
		return fallbackSummary(ticker, articles)
	}

	raw, err := g.completer.Complete(ctx, buildSummaryPrompt(ticker, articles, history), CompleteOptions{
		Temperature:     0.4,
		TopP:            0.95,
		MaxOutputTokens: 1024,
	})
	if err != nil {
		slog.Warn("summary call failed, using deterministic fallback", "ticker", ticker, "error", err)
		return fallbackSummary(ticker, articles)
	}

	if s, ok := parseSummary(raw); ok {
		s.finalize(ticker, len(articles), StatusComplete, false)
		return s
	}

	slog.Warn("summary response was not valid JSON, recovering field by field", "ticker", ticker)
	s := recoverSummary(raw)
	s.finalize(ticker, len(articles), StatusRecovered, true)
	return s
}

func (s *Summary) finalize(ticker string, analyzed int, status string, recovered bool) {
	s.Ticker = ticker
	s.ArticlesAnalyzed = analyzed
	s.Status = status
	s.Recovered = recovered
	s.GeneratedAt = time.Now()

	if s.KeyPoints == nil {
		s.KeyPoints = []string{}
	}
	if !validSentiments[s.Sentiment] {
		s.Sentiment = defaultSentiment
	}
	if !validImpacts[s.MarketImpact] {
		s.MarketImpact = defaultImpact
	}
	if !validConfidences[s.Confidence] {
		s.Confidence = defaultConfidence
	}
	if recovered {
		s.Confidence = "low"
	}
}

// rawSummary matches the field names the prompt requests.
type rawSummary struct {
	Summary          string          `json:"summary"`
	WhatChangedToday string          `json:"whatChangedToday"`
	KeyPoints        json.RawMessage `json:"keyPoints"`
	Sentiment        string          `json:"sentiment"`
	MarketImpact     string          `json:"marketImpact"`
	Confidence       string          `json:"confidence"`
}

// parseSummary is stage one: strip fences, slice to the outermost brace
// pair, unmarshal.
func parseSummary(raw string) (Summary, bool) {
	var parsed rawSummary
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &parsed); err != nil {
		return Summary{}, false
	}
	if parsed.Summary == "" {
		return Summary{}, false
	}

	return Summary{
		Summary:          parsed.Summary,
		WhatChangedToday: parsed.WhatChangedToday,
		KeyPoints:        normalizeKeyPoints(parsed.KeyPoints),
		Sentiment:        strings.ToLower(parsed.Sentiment),
		MarketImpact:     strings.ToLower(parsed.MarketImpact),
		Confidence:       strings.ToLower(parsed.Confidence),
	}, true
}

// normalizeKeyPoints guarantees a slice: a JSON array passes through, a
// bare string becomes a one-element slice, anything else is empty.
func normalizeKeyPoints(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var points []string
	if err := json.Unmarshal(raw, &points); err == nil {
		return points
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}

	return []string{}
}

var (
	summaryFieldPattern = regexp.MustCompile(`"summary"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	changedFieldPattern = regexp.MustCompile(`"whatChangedToday"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	sentimentPattern    = regexp.MustCompile(`"sentiment"\s*:\s*"(positive|negative|neutral|mixed)`)
	impactPattern       = regexp.MustCompile(`"marketImpact"\s*:\s*"(high|medium|low|minimal)`)
	confidencePattern   = regexp.MustCompile(`"confidence"\s*:\s*"(high|medium|low)`)
	keyPointsPattern    = regexp.MustCompile(`"keyPoints"\s*:\s*\[([^\]]*)\]`)
	quotedItemPattern   = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)
)

// recoverSummary is stage two: extract each field independently from
// the possibly truncated text. Missing fields get neutral defaults.
func recoverSummary(raw string) Summary {
	s := Summary{
		Summary:          "Summary text could not be recovered from the model response.",
		WhatChangedToday: "Day-over-day change analysis unavailable.",
		KeyPoints:        []string{},
		Sentiment:        defaultSentiment,
		MarketImpact:     defaultImpact,
		Confidence:       "low",
	}

	if m := summaryFieldPattern.FindStringSubmatch(raw); m != nil {
		s.Summary = unescapeJSONString(m[1])
	}
	if m := changedFieldPattern.FindStringSubmatch(raw); m != nil {
		s.WhatChangedToday = unescapeJSONString(m[1])
	}
	if m := sentimentPattern.FindStringSubmatch(raw); m != nil {
		s.Sentiment = m[1]
	}
	if m := impactPattern.FindStringSubmatch(raw); m != nil {
		s.MarketImpact = m[1]
	}
	if m := confidencePattern.FindStringSubmatch(raw); m != nil {
		s.Confidence = m[1]
	}
	if m := keyPointsPattern.FindStringSubmatch(raw); m != nil {
		for _, item := range quotedItemPattern.FindAllStringSubmatch(m[1], -1) {
			if point := unescapeJSONString(item[1]); point != "" {
				s.KeyPoints = append(s.KeyPoints, point)
			}
		}
	}

	return s
}

func unescapeJSONString(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}

// fallbackSummary is stage three: a deterministic summary built purely
// from the raw article titles, no AI involved.
func fallbackSummary(ticker string, articles []news.Article) Summary {
	now := time.Now()

	if len(articles) == 0 {
		return Summary{
			Summary:          fmt.Sprintf("No recent news found for %s.", ticker),
			WhatChangedToday: "No new developments today.",
			KeyPoints:        []string{},
			Sentiment:        defaultSentiment,
			MarketImpact:     "minimal",
			Confidence:       defaultConfidence,
			ArticlesAnalyzed: 0,
			Ticker:           ticker,
			Status:           StatusFallback,
			GeneratedAt:      now,
		}
	}

	sources := make([]string, 0, 4)
	seen := make(map[string]bool)
	for _, a := range articles {
		if !seen[a.Source] {
			seen[a.Source] = true
			sources = append(sources, a.Source)
		}
	}

	keyPoints := make([]string, 0, 5)
	for _, a := range articles {
		if len(keyPoints) == 5 {
			break
		}
		keyPoints = append(keyPoints, a.Title)
	}

	return Summary{
		Summary: fmt.Sprintf("%d recent articles about %s collected from %s. Latest headline: %s.",
			len(articles), ticker, strings.Join(sources, ", "), articles[0].Title),
		WhatChangedToday: "Automated summary unavailable; see key points for today's headlines.",
		KeyPoints:        keyPoints,
		Sentiment:        defaultSentiment,
		MarketImpact:     defaultImpact,
		Confidence:       defaultConfidence,
		ArticlesAnalyzed: len(articles),
		Ticker:           ticker,
		Status:           StatusFallback,
		GeneratedAt:      now,
	}
}

// errorSummary covers the one case even the fallback cannot serve: an
// unusable request. Still a well-formed Summary, never an error value.
func errorSummary(ticker string) Summary {
	return Summary{
		Summary:          "Summary generation failed: no valid ticker supplied.",
		WhatChangedToday: "",
		KeyPoints:        []string{},
		Sentiment:        defaultSentiment,
		MarketImpact:     "minimal",
		Confidence:       defaultConfidence,
		Ticker:           ticker,
		Status:           StatusError,
		GeneratedAt:      time.Now(),
	}
}
