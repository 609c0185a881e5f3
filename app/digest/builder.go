package digest

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/presswatch/presswatch/app/reader"
	"github.com/presswatch/presswatch/app/roster"
)

// Skip reasons reported by buildItem.
const (
	skipNoTitle   = "no_title_or_link"
	skipDuplicate = "duplicate"
	skipBlocked   = "blocked"
	skipUnmatched = "unmatched"
	skipError     = "error"
)

// Builder folds a batch of raw records into a Digest. All state (the seen
// set, the group map) lives in the run, so builders are reusable and runs
// are independent.
type Builder struct {
	entities  []roster.Entity
	blocklist []string
	location  *time.Location
	now       func() time.Time
}

func NewBuilder(entities []roster.Entity, blocklist []string, location *time.Location) *Builder {
	return &Builder{
		entities:  entities,
		blocklist: blocklist,
		location:  location,
		now:       time.Now,
	}
}

// Run classifies the batch. A malformed record is logged and skipped; the
// rest of the batch is processed normally.
func (b *Builder) Run(records []reader.Record) *Digest {
	deduper := NewDeduper()
	d := &Digest{
		ItemsByClient: make(map[string][]Item),
		GeneratedAt:   b.now().In(b.location),
	}

	skipped := map[string]int{}
	for _, rec := range records {
		item, skip := b.buildItem(rec, deduper)
		if skip != "" {
			skipped[skip]++
			continue
		}
		d.ItemsByClient[item.Client] = append(d.ItemsByClient[item.Client], item)
	}

	for name := range d.ItemsByClient {
		items := d.ItemsByClient[name]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].PublishedAt.After(items[j].PublishedAt)
		})
	}

	slog.Info("Digest built",
		"records", len(records),
		"matched", d.TotalItems(),
		"duplicates", skipped[skipDuplicate],
		"blocked", skipped[skipBlocked],
		"unmatched", skipped[skipUnmatched],
		"errors", skipped[skipError])

	return d
}

// buildItem runs one record through the pipeline stages. The returned skip
// reason is empty on success. A panic while reading the record is recovered
// here so one bad record cannot abort the batch.
func (b *Builder) buildItem(rec reader.Record, deduper *Deduper) (item Item, skip string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Skipping record due to parse error", "error", fmt.Sprint(r))
			item, skip = Item{}, skipError
		}
	}()

	title := strings.TrimSpace(rec.Title)
	canonicalURL, hasURL := CanonicalURL(rec)
	if title == "" || !hasURL {
		return Item{}, skipNoTitle
	}

	if deduper.Seen(canonicalURL) {
		return Item{}, skipDuplicate
	}

	lowerTitle := strings.ToLower(title)
	if blocked(lowerTitle, b.blocklist) {
		return Item{}, skipBlocked
	}

	source := resolveSource(rec, canonicalURL)

	entity, ok := classify(matchText(title, source), b.entities)
	if !ok {
		return Item{}, skipUnmatched
	}

	return Item{
		Client:      entity.Name,
		Title:       title,
		URL:         canonicalURL,
		Source:      source,
		PublishedAt: b.resolvePublished(rec),
		Sentiment:   Sentiment(title),
	}, ""
}

// resolvePublished interprets the record's published (or updated) epoch
// seconds as UTC and converts to the report timezone. A record without a
// timestamp gets the current time, so it sorts as most recent.
func (b *Builder) resolvePublished(rec reader.Record) time.Time {
	ts := rec.Published
	if ts == 0 {
		ts = rec.Updated
	}
	if ts > 0 {
		return time.Unix(int64(ts), 0).UTC().In(b.location)
	}
	return b.now().In(b.location)
}
