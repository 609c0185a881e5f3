package digest

import "strings"

var positiveWords = []string{
	"wins",
	"award",
	"growth",
	"record",
	"approves",
	"success",
	"surge",
	"raises",
	"backs",
	"confirms",
	"expands",
	"appoints",
}

var negativeWords = []string{
	"fraud",
	"scandal",
	"probe",
	"lawsuit",
	"ban",
	"cuts",
	"warning",
	"fall",
	"drop",
	"decline",
	"sacked",
	"fined",
	"charged",
	"collapse",
	"sanction",
	"risk",
}

// Sentiment tags a title with a coarse label from the fixed keyword sets.
// The positive set is checked first, so a title hitting both sets is
// labelled positive.
func Sentiment(title string) string {
	text := strings.ToLower(title)

	for _, word := range positiveWords {
		if strings.Contains(text, word) {
			return SentimentPositive
		}
	}
	for _, word := range negativeWords {
		if strings.Contains(text, word) {
			return SentimentNegative
		}
	}
	return SentimentNeutral
}
