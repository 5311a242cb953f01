package report

import (
	"strings"
	"testing"
	"time"
)

var testRuns = []Run{
	{
		Station:   "ndr",
		Timestamp: time.Date(2026, 8, 26, 9, 30, 15, 0, time.UTC),
		Added:     3,
		Changed:   2,
		Unchanged: 110,
		Removed:   1,
		Errors:    1,
		Failures: []PageFailure{
			{Page: 577, SubPage: 1, Reason: "page has no rows"},
		},
	},
	{
		Station:   "ntv",
		Timestamp: time.Date(2026, 8, 26, 9, 30, 20, 0, time.UTC),
		Unchanged: 80,
	},
}

// TestRunPages verifies the page total.
func TestRunPages(t *testing.T) {
	t.Parallel()

	if got := testRuns[0].Pages(); got != 116 {
		t.Errorf("Pages() = %d, want 116", got)
	}
}

// TestWriteMarkdown verifies the report structure: overview table plus
// a failures section only for stations that had errors.
func TestWriteMarkdown(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	if err := WriteMarkdown(&sb, testRuns); err != nil {
		t.Fatalf("WriteMarkdown failed: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"# Teletext scrape report",
		"ndr",
		"ntv",
		"Failures: ndr",
		"page 577/1: page has no rows",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "Failures: ntv") {
		t.Errorf("failure section emitted for clean station:\n%s", out)
	}
}

// TestWriteText verifies the terminal summary.
func TestWriteText(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	if err := WriteText(&sb, testRuns); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "added=3 changed=2 unchanged=110 removed=1 errors=1") {
		t.Errorf("summary line missing:\n%s", out)
	}
	if !strings.Contains(out, "page 577/1: page has no rows") {
		t.Errorf("failure line missing:\n%s", out)
	}
}
