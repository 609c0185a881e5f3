package digest

import "strings"

// staticBlocklist is the built-in phrase list, merged with the
// BLOCKLIST_PHRASES environment value at load time.
var staticBlocklist = []string{}

// LoadBlocklist merges the built-in phrases with a comma-separated extra
// list, dropping case-insensitive duplicates while preserving first-seen
// order.
func LoadBlocklist(extra string) []string {
	phrases := make([]string, 0, len(staticBlocklist))
	phrases = append(phrases, staticBlocklist...)
	for _, part := range strings.Split(extra, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			phrases = append(phrases, trimmed)
		}
	}

	seen := make(map[string]struct{}, len(phrases))
	unique := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		lower := strings.ToLower(phrase)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		unique = append(unique, phrase)
	}

	return unique
}

// blocked reports whether any blocklist phrase occurs in the lowercased
// title.
func blocked(lowerTitle string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(lowerTitle, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}
