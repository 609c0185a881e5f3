package digest

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashURL returns the SHA-256 hex digest of the canonical URL's UTF-8
// bytes, the key used for batch-wide deduplication.
func HashURL(canonicalURL string) string {
	hash := sha256.Sum256([]byte(canonicalURL))
	return hex.EncodeToString(hash[:])
}

// Deduper tracks canonical-URL hashes seen within a single run. It holds no
// state beyond the run; a fresh Deduper starts every batch.
type Deduper struct {
	seen map[string]struct{}
}

func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]struct{})}
}

// Seen reports whether the URL was already processed in this run, recording
// it on a miss.
func (d *Deduper) Seen(canonicalURL string) bool {
	key := HashURL(canonicalURL)
	if _, dup := d.seen[key]; dup {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}
