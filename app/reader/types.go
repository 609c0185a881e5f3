package reader

import (
	"strconv"
	"strings"
)

// Google Reader API stream types, as served by FreshRSS.

type Link struct {
	Href string `json:"href"`
}

// EpochSeconds is a Unix timestamp that tolerates sloppy encodings: a JSON
// number, a quoted numeric string, or junk. Anything unparsable decodes to
// zero, and a zero timestamp is stamped with the current time downstream, so
// a bad timestamp never costs the record itself.
type EpochSeconds int64

func (e *EpochSeconds) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*e = EpochSeconds(v)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*e = EpochSeconds(int64(f))
		return nil
	}
	*e = 0
	return nil
}

type Origin struct {
	StreamID string `json:"streamId"`
	Title    string `json:"title"`
	HTMLURL  string `json:"htmlUrl"`
}

// Record is one entry of the reading-list stream. Published and Updated are
// Unix epoch seconds; zero means the field was absent or unparsable.
type Record struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Canonical  []Link       `json:"canonical"`
	Alternate  []Link       `json:"alternate"`
	Link       string       `json:"link"`
	Origin     Origin       `json:"origin"`
	Published  EpochSeconds `json:"published"`
	Updated    EpochSeconds `json:"updated"`
	Categories []string     `json:"categories"`
}
