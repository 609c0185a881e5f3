package digest

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/presswatch/presswatch/app/roster"
)

// matchText builds the lowercased text the matcher scans: title and source
// joined by a space, NFC-normalized so composed and decomposed forms of the
// same characters compare equal. The stored title and URL keep their
// original bytes.
func matchText(title, source string) string {
	return strings.ToLower(norm.NFC.String(title + " " + source))
}

// matchesEntity reports whether the lowercased text mentions the entity: at
// least one alias must occur as a substring, and when the entity carries
// context keywords, at least one of those must occur too.
func matchesEntity(lowerText string, entity roster.Entity) bool {
	aliasMatch := false
	for _, alias := range entity.Aliases {
		if strings.Contains(lowerText, strings.ToLower(alias)) {
			aliasMatch = true
			break
		}
	}
	if !aliasMatch {
		return false
	}

	if len(entity.ContextAny) == 0 {
		return true
	}

	for _, context := range entity.ContextAny {
		if strings.Contains(lowerText, strings.ToLower(context)) {
			return true
		}
	}
	return false
}

// classify attributes the text to the first matching roster entry. Roster
// order is the tie-break: scanning stops at the first match, so a record
// never lands under two clients.
func classify(lowerText string, entities []roster.Entity) (roster.Entity, bool) {
	for _, entity := range entities {
		if matchesEntity(lowerText, entity) {
			return entity, true
		}
	}
	return roster.Entity{}, false
}
