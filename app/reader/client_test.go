package reader

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchReadingList(t *testing.T) {
	var gotPath, gotAuth, gotN, gotOT, gotUA string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		user, pass, _ := r.BasicAuth()
		gotAuth = user + ":" + pass
		gotN = r.URL.Query().Get("n")
		gotOT = r.URL.Query().Get("ot")
		gotUA = r.Header.Get("User-Agent")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{
					"id": "tag:google.com,2005:reader/item/1",
					"title": "4PB silk appointed",
					"canonical": [{"href": "https://x.test/a"}],
					"published": 1700000000,
					"categories": ["user/-/label/PR", "user/-/state/com.google/reading-list"]
				},
				{"id": "bad", "title": {"nested": true}},
				{
					"id": "tag:google.com,2005:reader/item/2",
					"title": "Unlabelled item",
					"alternate": [{"href": "https://x.test/b"}],
					"published": 1700000100
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "alice", "api-pass", "presswatch/test")
	oldest := time.Unix(1699990000, 0)

	records, err := client.FetchReadingList(context.Background(), 500, oldest)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotPath != "/api/greader.php/reader/api/0/stream/contents/reading-list" {
		t.Errorf("Unexpected request path: '%s'", gotPath)
	}
	if gotAuth != "alice:api-pass" {
		t.Errorf("Expected basic auth credentials, got '%s'", gotAuth)
	}
	if gotN != "500" {
		t.Errorf("Expected n=500, got '%s'", gotN)
	}
	if gotOT != "1699990000" {
		t.Errorf("Expected ot=1699990000, got '%s'", gotOT)
	}
	if gotUA != "presswatch/test" {
		t.Errorf("Expected custom user agent, got '%s'", gotUA)
	}

	// The structurally malformed item is skipped, not fatal.
	if len(records) != 2 {
		t.Fatalf("Expected 2 decoded records, got %d", len(records))
	}
	if records[0].Title != "4PB silk appointed" {
		t.Errorf("Unexpected first record title: '%s'", records[0].Title)
	}
	if records[0].Published != 1700000000 {
		t.Errorf("Unexpected published timestamp: %d", records[0].Published)
	}
	if len(records[0].Canonical) != 1 || records[0].Canonical[0].Href != "https://x.test/a" {
		t.Errorf("Unexpected canonical links: %+v", records[0].Canonical)
	}
}

func TestFetchReadingList_LenientTimestamps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{
					"id": "tag:google.com,2005:reader/item/1",
					"title": "4PB barristers win landmark family court case",
					"alternate": [{"href": "https://x.test/a"}],
					"published": "1700000000"
				},
				{
					"id": "tag:google.com,2005:reader/item/2",
					"title": "Wilsons advises on estate dispute",
					"alternate": [{"href": "https://x.test/b"}],
					"published": "not-a-number"
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "alice", "api-pass", "presswatch/test")

	records, err := client.FetchReadingList(context.Background(), 100, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// A bad timestamp never costs the record itself.
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Published != 1700000000 {
		t.Errorf("Expected quoted numeric timestamp parsed, got %d", records[0].Published)
	}
	if records[1].Published != 0 {
		t.Errorf("Expected non-numeric timestamp decoded as zero, got %d", records[1].Published)
	}
	if records[1].Title != "Wilsons advises on estate dispute" {
		t.Errorf("Expected record kept despite bad timestamp, got '%s'", records[1].Title)
	}
}

func TestEpochSeconds_Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected EpochSeconds
	}{
		{"number", `{"published": 1700000000}`, 1700000000},
		{"quoted number", `{"published": "1700000000"}`, 1700000000},
		{"float", `{"published": 1700000000.7}`, 1700000000},
		{"junk", `{"published": "yesterday"}`, 0},
		{"null", `{"published": null}`, 0},
		{"absent", `{}`, 0},
	}

	for _, test := range tests {
		var rec Record
		if err := json.Unmarshal([]byte(test.payload), &rec); err != nil {
			t.Errorf("%s: expected no error, got %v", test.name, err)
			continue
		}
		if rec.Published != test.expected {
			t.Errorf("%s: expected %d, got %d", test.name, test.expected, rec.Published)
		}
	}
}

func TestFetchReadingList_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "alice", "wrong", "presswatch/test")

	_, err := client.FetchReadingList(context.Background(), 100, time.Unix(0, 0))
	if err == nil {
		t.Fatal("Expected an error for a non-200 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("Expected status code in error, got '%v'", err)
	}
}

func TestFetchReadingList_InvalidPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "alice", "api-pass", "presswatch/test")

	if _, err := client.FetchReadingList(context.Background(), 100, time.Unix(0, 0)); err == nil {
		t.Fatal("Expected an error for an undecodable payload")
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient("https://rss.example.com/", "u", "p", "ua")

	if client.baseURL != "https://rss.example.com" {
		t.Errorf("Expected trailing slash trimmed, got '%s'", client.baseURL)
	}
}

func TestFilterByLabel(t *testing.T) {
	records := []Record{
		{ID: "1", Categories: []string{"user/-/label/PR"}},
		{ID: "2", Categories: []string{"user/-/label/Other"}},
		{ID: "3"},
	}

	filtered := FilterByLabel(records, "PR")
	if len(filtered) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(filtered))
	}
	if filtered[0].ID != "1" {
		t.Errorf("Expected record '1', got '%s'", filtered[0].ID)
	}
}

func TestFilterByLabel_FullStreamID(t *testing.T) {
	records := []Record{
		{ID: "1", Categories: []string{"user/-/label/PR"}},
	}

	filtered := FilterByLabel(records, "user/-/label/PR")
	if len(filtered) != 1 {
		t.Errorf("Expected a prefixed label to match as-is, got %d records", len(filtered))
	}
}

func TestFilterByLabel_EmptyKeepsAll(t *testing.T) {
	records := []Record{{ID: "1"}, {ID: "2"}}

	filtered := FilterByLabel(records, "")
	if len(filtered) != 2 {
		t.Errorf("Expected all records kept, got %d", len(filtered))
	}
}
