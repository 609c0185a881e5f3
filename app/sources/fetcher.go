package sources

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/presswatch/presswatch/app/reader"
)

// Fetcher downloads direct RSS/Atom sources and converts their items into
// reading-list records, so the classification core sees a single input
// contract regardless of where a record came from.
type Fetcher struct {
	httpClient   *http.Client
	gofeedParser *gofeed.Parser
	userAgent    string
}

func NewFetcher(userAgent string) *Fetcher {
	return &Fetcher{
		httpClient:   &http.Client{},
		gofeedParser: gofeed.NewParser(),
		userAgent:    userAgent,
	}
}

// FetchAll fetches every enabled source sequentially. A failing source is
// logged and skipped; it never aborts the run.
func (f *Fetcher) FetchAll(ctx context.Context, configs []*Config) []reader.Record {
	var records []reader.Record
	for _, config := range configs {
		if !config.Settings.Enabled {
			slog.Debug("Source disabled, skipping", "source", config.Name)
			continue
		}

		recs, err := f.Run(ctx, config)
		if err != nil {
			slog.Warn("Failed to fetch source, skipping", "source", config.Name, "error", err)
			continue
		}

		slog.Info("Source fetched", "source", config.Name, "records", len(recs))
		records = append(records, recs...)
	}
	return records
}

// Run fetches and parses one source.
func (f *Fetcher) Run(ctx context.Context, config *Config) ([]reader.Record, error) {
	data, err := f.fetch(ctx, config)
	if err != nil {
		return nil, err
	}

	feed, err := f.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	limit := len(feed.Items)
	if config.Settings.MaxItems > 0 && config.Settings.MaxItems < limit {
		limit = config.Settings.MaxItems
	}

	records := make([]reader.Record, 0, limit)
	for _, item := range feed.Items[:limit] {
		records = append(records, f.convertItem(item, cmp.Or(config.Name, feed.Title)))
	}

	return records, nil
}

func (f *Fetcher) fetch(ctx context.Context, config *Config) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(config.Settings.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func (f *Fetcher) convertItem(item *gofeed.Item, sourceTitle string) reader.Record {
	rec := reader.Record{
		ID:         cmp.Or(item.GUID, item.Link),
		Title:      item.Title,
		Link:       item.Link,
		Origin:     reader.Origin{Title: sourceTitle},
		Categories: item.Categories,
	}

	for _, link := range item.Links {
		rec.Alternate = append(rec.Alternate, reader.Link{Href: link})
	}

	if item.PublishedParsed != nil {
		rec.Published = reader.EpochSeconds(item.PublishedParsed.Unix())
	}
	if item.UpdatedParsed != nil {
		rec.Updated = reader.EpochSeconds(item.UpdatedParsed.Unix())
	}

	return rec
}
