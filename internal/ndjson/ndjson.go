// Package ndjson reads and writes the canonical newline-delimited JSON
// snapshot format:
//
//	{"scraper":"<station>","timestamp":"<ISO8601>"}
//	{"page":100,"sub_page":1,"timestamp":"<ISO8601>"}
//	[["wb","  100 "],["rb","ARD Text"]]
//	...
//
// One header line per scrape run, one marker line per page, one JSON
// array per row. Each row element is [colorCode, content] or
// [colorCode, content, linkTarget] with linkTarget an integer page
// number or a [page, subPage] pair. The textual shape is a
// compatibility contract with archived snapshots: serialization is
// round-trip exact, UTF-8, compact, and HTML-unescaped.
package ndjson

import "time"

// TimeLayout is the timestamp format used in header and marker lines:
// ISO 8601 without zone suffix, always UTC, second resolution.
const TimeLayout = "2006-01-02T15:04:05"

// FormatTime renders a timestamp in the archive format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses an archive timestamp.
func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.UTC)
}
