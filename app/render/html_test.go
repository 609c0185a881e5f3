package render

import (
	"strings"
	"testing"
	"time"

	"github.com/presswatch/presswatch/app/digest"
	"github.com/presswatch/presswatch/app/roster"
)

var testEntities = []roster.Entity{
	{Name: "4PB", Aliases: []string{"4PB"}},
	{Name: "Wilsons", Aliases: []string{"Wilsons"}},
}

func testDigest(itemsByClient map[string][]digest.Item) *digest.Digest {
	return &digest.Digest{
		ItemsByClient: itemsByClient,
		GeneratedAt:   time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
	}
}

func TestSubject(t *testing.T) {
	subject := Subject(time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC))

	if subject != "Daily PR Coverage — Monday, 02 March 2026" {
		t.Errorf("Unexpected subject: '%s'", subject)
	}
}

func TestHTML_RendersItemsInRosterOrder(t *testing.T) {
	d := testDigest(map[string][]digest.Item{
		"Wilsons": {{
			Client:      "Wilsons",
			Title:       "Wilsons advises on estate dispute",
			URL:         "https://x.test/b",
			Source:      "Law Gazette",
			PublishedAt: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
			Sentiment:   digest.SentimentNeutral,
		}},
		"4PB": {{
			Client:      "4PB",
			Title:       "4PB silk appointed",
			URL:         "https://x.test/a",
			Source:      "x.test",
			PublishedAt: time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC),
			Sentiment:   digest.SentimentPositive,
		}},
	})

	result := HTML(d, testEntities, 24)

	first := strings.Index(result, "<h3>4PB</h3>")
	second := strings.Index(result, "<h3>Wilsons</h3>")
	if first == -1 || second == -1 {
		t.Fatalf("Expected both client headings, got:\n%s", result)
	}
	if first > second {
		t.Error("Expected clients rendered in roster order")
	}
	if !strings.Contains(result, `<a href="https://x.test/a">4PB silk appointed</a>`) {
		t.Error("Expected item link in output")
	}
	if !strings.Contains(result, "<em>2026-03-02 07:00</em>") {
		t.Error("Expected formatted item time in output")
	}
	if !strings.Contains(result, "<span>positive</span>") {
		t.Error("Expected sentiment label in output")
	}
}

func TestHTML_SkipsClientsWithoutItems(t *testing.T) {
	d := testDigest(map[string][]digest.Item{
		"4PB": {{
			Client:      "4PB",
			Title:       "4PB silk appointed",
			URL:         "https://x.test/a",
			Source:      "x.test",
			PublishedAt: time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC),
			Sentiment:   digest.SentimentPositive,
		}},
	})

	result := HTML(d, testEntities, 24)

	if strings.Contains(result, "Wilsons") {
		t.Error("Expected client without coverage to be omitted")
	}
}

func TestHTML_EmptyDigestPlaceholder(t *testing.T) {
	d := testDigest(map[string][]digest.Item{})

	result := HTML(d, testEntities, 24)

	if !strings.Contains(result, "<p>No coverage found in the last 24 hours.</p>") {
		t.Errorf("Expected placeholder paragraph, got:\n%s", result)
	}
	if strings.Contains(result, "<h3>") {
		t.Error("Expected no client headings in an empty digest")
	}
}

func TestHTML_FractionalLookback(t *testing.T) {
	d := testDigest(map[string][]digest.Item{})

	result := HTML(d, testEntities, 1.5)

	if !strings.Contains(result, "No coverage found in the last 1.5 hours.") {
		t.Errorf("Expected %%g-formatted hours, got:\n%s", result)
	}
}

func TestHTML_EscapesUserControlledStrings(t *testing.T) {
	d := testDigest(map[string][]digest.Item{
		"4PB": {{
			Client:      "4PB",
			Title:       `4PB <b>bold</b> & "quoted"`,
			URL:         "https://x.test/a?x=1&y=2",
			Source:      "Wire <feed>",
			PublishedAt: time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC),
			Sentiment:   digest.SentimentNeutral,
		}},
	})

	result := HTML(d, testEntities, 24)

	if strings.Contains(result, "<b>bold</b>") {
		t.Error("Expected title markup to be escaped")
	}
	if !strings.Contains(result, "4PB &lt;b&gt;bold&lt;/b&gt;") {
		t.Errorf("Expected escaped title, got:\n%s", result)
	}
	if !strings.Contains(result, "https://x.test/a?x=1&amp;y=2") {
		t.Error("Expected ampersand in URL to be escaped")
	}
	if !strings.Contains(result, "Wire &lt;feed&gt;") {
		t.Error("Expected source to be escaped")
	}
}

func TestHTML_IncludesExcerptWhenPresent(t *testing.T) {
	d := testDigest(map[string][]digest.Item{
		"4PB": {{
			Client:      "4PB",
			Title:       "4PB silk appointed",
			URL:         "https://x.test/a",
			Source:      "x.test",
			PublishedAt: time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC),
			Sentiment:   digest.SentimentNeutral,
			Excerpt:     "The appointment follows a decade of family work.",
		}},
	})

	result := HTML(d, testEntities, 24)

	if !strings.Contains(result, "<small>The appointment follows a decade of family work.</small>") {
		t.Errorf("Expected excerpt in output, got:\n%s", result)
	}
}
