package llm

import (
	"fmt"
	"strings"

	"github.com/netxspider/stock-news-ai-summarizer/pkg/news"
)

const (
	maxSummaryArticles = 25
	maxHistoryItems    = 15
	maxContentChars    = 300
)

func buildSelectionPrompt(ticker string, articles []news.Article) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are a financial news editor selecting coverage of %s.\n\n", ticker))
	sb.WriteString("Candidate articles:\n\n")

	for i, a := range articles {
		sb.WriteString(fmt.Sprintf("%d. Title: %s\n", i+1, a.Title))
		sb.WriteString(fmt.Sprintf("   Source: %s (%s)\n", a.Source, a.Provider))
		sb.WriteString(fmt.Sprintf("   Published: %s\n", a.PublishedAt.Format("2006-01-02 15:04")))
		sb.WriteString(fmt.Sprintf("   Content: %s\n", truncate(a.Content, maxContentChars)))
		sb.WriteString(fmt.Sprintf("   URL: %s\n\n", a.URL))
	}

	sb.WriteString("Pick the 5-7 most relevant and credible items for an investor tracking this ticker. ")
	sb.WriteString("Credibility: Massive and FinnHub items rank above Finviz items, which rank above YahooFinance items. ")
	sb.WriteString("Respond with ONLY a JSON array of the item numbers, for example: [1, 4, 7]")

	return sb.String()
}

func buildSummaryPrompt(ticker string, articles, history []news.Article) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are a financial analyst writing the daily news summary for %s.\n\n", ticker))
	sb.WriteString("Today's articles:\n\n")

	for i, a := range articles {
		sb.WriteString(fmt.Sprintf("%d. %s (%s, %s)\n", i+1, a.Title, a.Provider, a.PublishedAt.Format("2006-01-02 15:04")))
		sb.WriteString(fmt.Sprintf("   %s\n\n", truncate(a.Content, maxContentChars)))
	}

	if len(history) > 0 {
		sb.WriteString("Coverage from previous days, for context only:\n\n")
		for _, h := range history {
			sb.WriteString(fmt.Sprintf("- %s (%s)\n", h.Title, h.PublishedAt.Format("2006-01-02")))
		}
		sb.WriteString("\nUse the historical coverage to identify what is genuinely NEW today versus ongoing storylines. ")
		sb.WriteString("whatChangedToday must describe the day-over-day change, not restate the summary.\n\n")
	} else {
		sb.WriteString("No historical coverage is available; note in whatChangedToday that this is the first day of tracking.\n\n")
	}

	sb.WriteString(`Respond with exactly one JSON object, no other text:
{
  "summary": "2-4 sentence overview of today's news",
  "whatChangedToday": "what is new or different compared to previous days",
  "keyPoints": ["key point 1", "key point 2", "key point 3"],
  "sentiment": "positive | negative | neutral | mixed",
  "marketImpact": "high | medium | low | minimal",
  "confidence": "high | medium | low"
}`)

	return sb.String()
}
