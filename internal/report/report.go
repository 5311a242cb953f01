// Package report models the outcome of scrape runs and renders run
// summaries as plain text or GitHub-flavored Markdown.
package report

import "time"

// Run summarizes one station's scrape: how the new snapshot compares to
// the previous one and which pages failed.
type Run struct {
	// Station is the station id.
	Station string

	// Timestamp is the run's capture time (the session header time).
	Timestamp time.Time

	// Added counts pages not present in the previous snapshot.
	Added int

	// Changed counts pages whose content differs from the previous
	// snapshot.
	Changed int

	// Unchanged counts pages reused from the previous snapshot.
	Unchanged int

	// Removed counts previous-snapshot pages the station no longer
	// serves.
	Removed int

	// Errors counts pages that failed to decode. Failed pages are
	// archived as error markers; the run itself still succeeds.
	Errors int

	// Failures lists the failed pages with their reasons.
	Failures []PageFailure
}

// PageFailure records one page that could not be decoded.
type PageFailure struct {
	Page    int
	SubPage int
	Reason  string
}

// Pages returns the total number of pages the run produced.
func (r Run) Pages() int {
	return r.Added + r.Changed + r.Unchanged + r.Errors
}
