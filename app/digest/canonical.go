package digest

import (
	"net/url"
	"strings"

	"github.com/presswatch/presswatch/app/reader"
)

// CanonicalURL picks the representative link of a record: the first href of
// the canonical list, then of the alternate list, then the plain link field.
// Canonicalization is whitespace trimming only; query strings and schemes
// are left as-is, so URLs differing in tracking-parameter order stay
// distinct.
func CanonicalURL(rec reader.Record) (string, bool) {
	for _, links := range [][]reader.Link{rec.Canonical, rec.Alternate} {
		if len(links) == 0 {
			continue
		}
		if href := strings.TrimSpace(links[0].Href); href != "" {
			return href, true
		}
	}

	if link := strings.TrimSpace(rec.Link); link != "" {
		return link, true
	}

	return "", false
}

// resolveSource derives the display source of a record: the origin feed
// title when present, otherwise the canonical URL's host.
func resolveSource(rec reader.Record, canonicalURL string) string {
	if rec.Origin.Title != "" {
		return rec.Origin.Title
	}

	if parsed, err := url.Parse(canonicalURL); err == nil && parsed.Host != "" {
		return parsed.Host
	}

	return "Unknown Source"
}
