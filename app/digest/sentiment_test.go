package digest

import "testing"

func TestSentiment(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "positive keyword",
			title:    "Firm wins major award",
			expected: SentimentPositive,
		},
		{
			name:     "negative keyword",
			title:    "Partner fined over disclosure failure",
			expected: SentimentNegative,
		},
		{
			name:     "neutral title",
			title:    "Chambers relocates to new offices",
			expected: SentimentNeutral,
		},
		{
			name:     "positive checked before negative",
			title:    "Firm wins lawsuit against rival",
			expected: SentimentPositive,
		},
		{
			name:     "singular win is not in the positive set",
			title:    "A big win for the team",
			expected: SentimentNeutral,
		},
		{
			name:     "case insensitive",
			title:    "FRAUD probe launched",
			expected: SentimentNegative,
		},
		{
			name:     "substring match inside a word",
			title:    "Gleaning risks from the report",
			expected: SentimentNegative,
		},
	}

	for _, test := range tests {
		result := Sentiment(test.title)
		if result != test.expected {
			t.Errorf("%s: expected '%s', got '%s'", test.name, test.expected, result)
		}
	}
}
