package digest

import (
	"time"
)

// Sentiment labels assigned to digest items.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Item is one matched article, attributed to exactly one client.
type Item struct {
	Client      string
	Title       string
	URL         string
	Source      string
	PublishedAt time.Time
	Sentiment   string
	Excerpt     string // optional readable excerpt, filled by the extractor
}

// Digest is the per-run result handed to renderers: matched items grouped
// by client name, each group sorted newest-first.
type Digest struct {
	ItemsByClient map[string][]Item
	GeneratedAt   time.Time
}

func (d *Digest) TotalItems() int {
	total := 0
	for _, items := range d.ItemsByClient {
		total += len(items)
	}
	return total
}

func (d *Digest) IsEmpty() bool {
	return d.TotalItems() == 0
}
