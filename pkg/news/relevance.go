package news

import (
	"regexp"
	"strings"
)

// companyAliases maps well-known tickers to name fragments that show up
// in headlines without the symbol itself. Unknown tickers fall back to
// symbol and keyword matching only.
var companyAliases = map[string][]string{
	"AAPL":  {"apple"},
	"MSFT":  {"microsoft"},
	"GOOGL": {"google", "alphabet"},
	"GOOG":  {"google", "alphabet"},
	"AMZN":  {"amazon"},
	"META":  {"meta platforms", "facebook"},
	"TSLA":  {"tesla"},
	"NVDA":  {"nvidia"},
	"NFLX":  {"netflix"},
	"AMD":   {"advanced micro devices"},
	"INTC":  {"intel"},
	"JPM":   {"jpmorgan", "jp morgan"},
	"BAC":   {"bank of america"},
	"WMT":   {"walmart"},
	"DIS":   {"disney"},
	"BA":    {"boeing"},
	"KO":    {"coca-cola", "coca cola"},
	"PFE":   {"pfizer"},
	"XOM":   {"exxon"},
	"V":     {"visa"},
}

// financeKeywords signal market-relevant text even when neither the
// symbol nor a company name appears.
var financeKeywords = []string{
	"earnings",
	"revenue",
	"analyst",
	"price target",
	"upgrade",
	"downgrade",
	"guidance",
	"dividend",
	"quarterly results",
	"sec filing",
}

// IsRelevant reports whether a candidate looks related to the ticker:
// the symbol appears case-insensitively, a known company alias matches,
// or the text carries a finance-signal keyword.
func IsRelevant(ticker, title, content string) bool {
	text := strings.ToLower(title + " " + content)

	if strings.Contains(text, strings.ToLower(ticker)) {
		return true
	}

	if pattern := aliasPattern(ticker); pattern != nil && pattern.MatchString(text) {
		return true
	}

	return hasFinanceKeyword(text)
}

func hasFinanceKeyword(lowered string) bool {
	for _, kw := range financeKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// aliasPattern builds a regex OR-ing the known name fragments for a
// ticker, or nil when the ticker has no alias entry.
func aliasPattern(ticker string) *regexp.Regexp {
	aliases, ok := companyAliases[strings.ToUpper(ticker)]
	if !ok {
		return nil
	}

	quoted := make([]string, len(aliases))
	for i, a := range aliases {
		quoted[i] = regexp.QuoteMeta(a)
	}
	return regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
}
