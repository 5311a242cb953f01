package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Page is one immutable snapshot of a teletext page, identified by
// (station, page number, sub-page number) and stamped with the capture
// timestamp. Pages are assembled once and never mutated; a later
// capture of the same page supersedes the earlier snapshot.
type Page struct {
	// Station is the station id the page was captured from, e.g. "ndr".
	Station string

	// Number is the teletext page number, 100-899.
	Number int

	// SubPage is the rotating sub-page index, starting at 1. Stations
	// without sub-paging use 1.
	SubPage int

	// Timestamp is the UTC capture time.
	Timestamp time.Time

	// Error holds the decode failure reason when the page could not be
	// converted. An error page carries no rows but is still archived, so
	// a snapshot records which pages failed and why.
	Error string

	// Rows are the display lines in source order.
	Rows []Row
}

// SessionHeader identifies which station and capture time a batch of
// page records belongs to. One header precedes each scrape run's pages.
type SessionHeader struct {
	Station   string
	Timestamp time.Time
}

// Equal reports full equality: identity, timestamp, error, and rows.
func (p *Page) Equal(other *Page) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Station == other.Station &&
		p.Number == other.Number &&
		p.SubPage == other.SubPage &&
		p.Timestamp.Equal(other.Timestamp) &&
		p.Error == other.Error &&
		p.ContentEqual(other)
}

// ContentEqual compares only the row content of two pages. The scrape
// runner uses this to detect unchanged pages across captures without
// being fooled by the fresh timestamp.
func (p *Page) ContentEqual(other *Page) bool {
	if len(p.Rows) != len(other.Rows) {
		return false
	}
	for i := range p.Rows {
		if !p.Rows[i].Equal(other.Rows[i]) {
			return false
		}
	}
	return true
}

// ContentHash returns a SHA-256 hex digest over the page content
// (attribute codes, link targets, and text). Used by the archive store
// for change detection across snapshots.
func (p *Page) ContentHash() string {
	h := sha256.New()
	for _, row := range p.Rows {
		for _, seg := range row {
			h.Write([]byte(seg.Attr.Code()))
			if seg.Link != nil {
				h.Write([]byte(seg.Link.String()))
			}
			h.Write([]byte{0})
			h.Write([]byte(seg.Text))
			h.Write([]byte{1})
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
