// Package extractor enriches matched digest items with a readable excerpt
// of the linked article.
package extractor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	readability "github.com/go-shiori/go-readability"

	"github.com/presswatch/presswatch/app/digest"
)

const maxExcerptRunes = 280

type Extractor struct {
	httpClient *http.Client
	userAgent  string
}

func NewExtractor(userAgent string) *Extractor {
	return &Extractor{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  userAgent,
	}
}

// Run fills Excerpt on every item it can. Per-item failures are logged and
// skipped; extraction never changes which items are in the digest.
func (e *Extractor) Run(ctx context.Context, d *digest.Digest) {
	extracted := 0
	for client, items := range d.ItemsByClient {
		for i := range items {
			excerpt, err := e.extract(ctx, items[i].URL)
			if err != nil {
				slog.Warn("Failed to extract content, skipping", "client", client, "url", items[i].URL, "error", err)
				continue
			}
			items[i].Excerpt = excerpt
			extracted++
		}
	}

	slog.Info("Content extraction completed", "extracted", extracted, "items", d.TotalItems())
}

func (e *Extractor) extract(ctx context.Context, pageURL string) (string, error) {
	data, err := e.fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), parsedURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	excerpt := Excerpt(article.TextContent)
	if excerpt == "" {
		return "", fmt.Errorf("no content extracted from HTML data")
	}

	return excerpt, nil
}

func (e *Extractor) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
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

// Excerpt collapses whitespace and truncates the text to a short excerpt,
// cutting at a word boundary.
func Excerpt(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	runes := []rune(collapsed)
	if len(runes) <= maxExcerptRunes {
		return collapsed
	}

	cut := maxExcerptRunes
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = maxExcerptRunes
	}

	return strings.TrimSpace(string(runes[:cut])) + "…"
}
