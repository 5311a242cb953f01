package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/teletextarchive/ttx/internal/archive"
	"github.com/teletextarchive/ttx/internal/config"
	"github.com/teletextarchive/ttx/internal/log"
	"github.com/teletextarchive/ttx/internal/ndjson"
)

// newNDRServer serves a small NDR-shaped station: three pages, one of
// which is malformed and cannot be decoded.
func newNDRServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pages.js":
			_, _ = w.Write([]byte(`{100:1,101:1,102:1}`))
		case "/100_01.htm":
			_, _ = w.Write([]byte("<pre class=\"txt\"><b class=\"f7 b0\">100 NDR Text</b>\n</pre>"))
		case "/101_01.htm":
			_, _ = w.Write([]byte(`<html><body>not a teletext page</body></html>`))
		case "/102_01.htm":
			_, _ = w.Write([]byte("<pre class=\"txt\"><b class=\"f2\">Sport</b>\n</pre>"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		OutDir:      t.TempDir(),
		DataDir:     t.TempDir(),
		Concurrency: 2,
		Timeout:     5 * time.Second,
		UserAgent:   "ttx-test",
	}
}

// TestRunnerRun verifies the full station pipeline: decode failures are
// isolated as error pages, good pages are archived, and the snapshot
// file round-trips.
func TestRunnerRun(t *testing.T) {
	t.Parallel()

	srv := newNDRServer(t)
	st := config.Station{Name: "ndr", Family: config.FamilyHTML, Dialect: config.DialectNDR, BaseURL: srv.URL, Columns: 40}
	cfg := testConfig(t)

	runner := NewRunner(cfg, log.Discard(), nil)
	runs, err := runner.Run(context.Background(), []config.Station{st})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}

	run := runs[0]
	if run.Added != 2 || run.Errors != 1 || run.Changed != 0 || run.Removed != 0 {
		t.Errorf("run counts = %+v", run)
	}
	if len(run.Failures) != 1 || run.Failures[0].Page != 101 {
		t.Errorf("failures = %+v", run.Failures)
	}

	snap, err := ndjson.ReadFile(filepath.Join(cfg.OutDir, "ndr.ndjson"))
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if snap.Header.Station != "ndr" {
		t.Errorf("header station = %q", snap.Header.Station)
	}
	if len(snap.Pages) != 3 {
		t.Fatalf("snapshot has %d pages, want 3", len(snap.Pages))
	}

	if p := snap.Page(100, 1); p == nil || p.Rows[0].Text() != "100 NDR Text"+strings.Repeat(" ", 28) {
		t.Errorf("page 100 = %+v", p)
	}
	if p := snap.Page(101, 1); p == nil || p.Error == "" || len(p.Rows) != 0 {
		t.Errorf("page 101 should be an error marker: %+v", p)
	}
	if p := snap.Page(102, 1); p == nil || len(p.Rows) == 0 {
		t.Errorf("page 102 = %+v", p)
	}

	for _, p := range snap.Pages {
		for i, row := range p.Rows {
			if got := row.Width(); got != 40 {
				t.Errorf("page %d row %d width = %d, want 40", p.Number, i, got)
			}
		}
	}
}

// TestRunnerUnchangedReuse verifies that a second run over identical
// content reuses the previous pages, keeping their timestamps.
func TestRunnerUnchangedReuse(t *testing.T) {
	t.Parallel()

	srv := newNDRServer(t)
	st := config.Station{Name: "ndr", Family: config.FamilyHTML, Dialect: config.DialectNDR, BaseURL: srv.URL, Columns: 40}
	cfg := testConfig(t)

	history, err := archive.Open(cfg.DataDir)
	if err != nil {
		t.Fatalf("opening history: %v", err)
	}
	defer history.Close() //nolint:errcheck // test cleanup

	runner := NewRunner(cfg, log.Discard(), history)
	if _, err := runner.Run(context.Background(), []config.Station{st}); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	first, err := ndjson.ReadFile(filepath.Join(cfg.OutDir, "ndr.ndjson"))
	if err != nil {
		t.Fatalf("reading first snapshot: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)

	runs, err := runner.Run(context.Background(), []config.Station{st})
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	run := runs[0]
	if run.Unchanged != 2 || run.Added != 0 || run.Changed != 0 {
		t.Errorf("second run counts = %+v", run)
	}

	second, err := ndjson.ReadFile(filepath.Join(cfg.OutDir, "ndr.ndjson"))
	if err != nil {
		t.Fatalf("reading second snapshot: %v", err)
	}
	for _, number := range []int{100, 102} {
		prev := first.Page(number, 1)
		cur := second.Page(number, 1)
		if prev == nil || cur == nil {
			t.Fatalf("page %d missing from a snapshot", number)
		}
		if !cur.Timestamp.Equal(prev.Timestamp) {
			t.Errorf("page %d timestamp changed on unchanged content: %v vs %v", number, cur.Timestamp, prev.Timestamp)
		}
	}

	recorded, err := history.Runs(context.Background(), "ndr", 10)
	if err != nil {
		t.Fatalf("querying history: %v", err)
	}
	if len(recorded) != 2 {
		t.Errorf("history has %d runs, want 2", len(recorded))
	}
}

// TestRunnerStationIsolation verifies that one station's total failure
// does not stop the others.
func TestRunnerStationIsolation(t *testing.T) {
	t.Parallel()

	good := newNDRServer(t)
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(bad.Close)

	stations := []config.Station{
		{Name: "broken", Family: config.FamilyHTML, Dialect: config.DialectNDR, BaseURL: bad.URL, Columns: 40},
		{Name: "ndr", Family: config.FamilyHTML, Dialect: config.DialectNDR, BaseURL: good.URL, Columns: 40},
	}
	cfg := testConfig(t)

	runner := NewRunner(cfg, log.Discard(), nil)
	runs, err := runner.Run(context.Background(), stations)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}

	if _, err := os.Stat(filepath.Join(cfg.OutDir, "broken.ndjson")); !os.IsNotExist(err) {
		t.Error("broken station left a snapshot behind")
	}
	if _, err := os.Stat(filepath.Join(cfg.OutDir, "ndr.ndjson")); err != nil {
		t.Errorf("good station snapshot missing: %v", err)
	}
	if runs[1].Added != 2 {
		t.Errorf("good station run = %+v", runs[1])
	}
}

// TestRunnerRemovedPages verifies that pages present in the previous
// snapshot but missing from the walk are counted as removed.
func TestRunnerRemovedPages(t *testing.T) {
	t.Parallel()

	var shrunk bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pages.js":
			if shrunk {
				_, _ = w.Write([]byte(`{100:1}`))
				return
			}
			_, _ = w.Write([]byte(`{100:1,102:1}`))
		case "/100_01.htm", "/102_01.htm":
			_, _ = w.Write([]byte("<pre class=\"txt\"><b>x</b>\n</pre>"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	st := config.Station{Name: "ndr", Family: config.FamilyHTML, Dialect: config.DialectNDR, BaseURL: srv.URL, Columns: 40}
	cfg := testConfig(t)
	runner := NewRunner(cfg, log.Discard(), nil)

	if _, err := runner.Run(context.Background(), []config.Station{st}); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	shrunk = true
	runs, err := runner.Run(context.Background(), []config.Station{st})
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if runs[0].Removed != 1 {
		t.Errorf("Removed = %d, want 1", runs[0].Removed)
	}
}
