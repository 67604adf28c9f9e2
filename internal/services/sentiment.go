package services

import "strings"

// Small lexicon tuned for political queries. Scores land in [-1, 1]:
// the balance of positive vs negative words among those matched.
var positiveWords = map[string]bool{
	"good": true, "great": true, "best": true, "excellent": true,
	"support": true, "trust": true, "honest": true, "progress": true,
	"development": true, "hope": true, "promising": true, "strong": true,
	"success": true, "improve": true, "improved": true, "better": true,
	"achievement": true, "effective": true, "popular": true, "win": true,
}

var negativeWords = map[string]bool{
	"bad": true, "worst": true, "corrupt": true, "corruption": true,
	"scandal": true, "fail": true, "failed": true, "failure": true,
	"scam": true, "fraud": true, "liar": true, "weak": true,
	"criticism": true, "controversy": true, "protest": true, "crisis": true,
	"nepotism": true, "incompetent": true, "lose": true, "lost": true,
}

// SentimentScore rates the tone of a query. Neutral text scores 0.
func SentimentScore(text string) float64 {
	var positive, negative int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"'()")
		if positiveWords[word] {
			positive++
		}
		if negativeWords[word] {
			negative++
		}
	}

	total := positive + negative
	if total == 0 {
		return 0
	}
	return float64(positive-negative) / float64(total)
}
