package reader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	streamPath  = "/api/greader.php/reader/api/0/stream/contents/reading-list"
	labelPrefix = "user/-/label/"
)

// Client fetches the reading-list stream from a FreshRSS instance via the
// Google Reader compatibility API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
	userAgent  string
}

func NewClient(baseURL, username, password, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		password:   password,
		userAgent:  userAgent,
	}
}

// FetchReadingList returns up to maxItems records published after oldest.
// Records that fail to decode individually are logged and skipped; a
// transport or HTTP-level failure is returned as an error.
func (c *Client) FetchReadingList(ctx context.Context, maxItems int, oldest time.Time) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+streamPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("n", strconv.Itoa(maxItems))
	q.Set("ot", strconv.FormatInt(oldest.Unix(), 10))
	req.URL.RawQuery = q.Encode()

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reading list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var payload struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode stream payload: %w", err)
	}

	records := make([]Record, 0, len(payload.Items))
	for _, raw := range payload.Items {
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			slog.Warn("Skipping undecodable record", "error", err)
			continue
		}
		records = append(records, rec)
	}

	slog.Info("Reading list fetched", "total", len(payload.Items), "decoded", len(records))

	return records, nil
}

// FilterByLabel keeps records whose categories contain the given label.
// A bare label name is prefixed with the Reader label namespace; an empty
// label keeps everything.
func FilterByLabel(records []Record, label string) []Record {
	if label == "" {
		return records
	}

	normalized := label
	if !strings.HasPrefix(normalized, labelPrefix) {
		normalized = labelPrefix + normalized
	}

	filtered := make([]Record, 0, len(records))
	for _, rec := range records {
		for _, category := range rec.Categories {
			if category == normalized {
				filtered = append(filtered, rec)
				break
			}
		}
	}

	return filtered
}
