package ndjson

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/teletextarchive/ttx/internal/model"
)

var (
	sessionTime = time.Date(2026, 8, 26, 9, 30, 15, 0, time.UTC)
	wb          = model.Attribute{Fg: model.ColorWhite, Bg: model.ColorBlack}
	rb          = model.Attribute{Fg: model.ColorRed, Bg: model.ColorBlack}
	unset       = model.Attribute{Fg: model.ColorUnset, Bg: model.ColorUnset}
)

func writeSnapshot(t *testing.T, header model.SessionHeader, pages ...*model.Page) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteHeader(header); err != nil {
		t.Fatalf("WriteHeader failed: %v", err)
	}
	for _, p := range pages {
		if err := w.WritePage(p); err != nil {
			t.Fatalf("WritePage failed: %v", err)
		}
	}
	return buf.Bytes()
}

// TestWriterGoldenLines pins the exact textual shape of the snapshot
// format: key order, compact separators, raw UTF-8, unescaped HTML
// characters, and the two link target encodings.
func TestWriterGoldenLines(t *testing.T) {
	t.Parallel()

	page := &model.Page{
		Station:   "3sat",
		Number:    502,
		SubPage:   1,
		Timestamp: sessionTime,
		Rows: []model.Row{
			{
				{Attr: rb, Text: "502 "},
				{Attr: wb, Text: "Köln will Benin-Bronzen <zurück>    "},
			},
			{
				{Attr: wb, Text: "mehr auf "},
				{Attr: wb, Text: "503", Link: &model.Link{Page: 503}},
				{Attr: wb, Text: " und "},
				{Attr: wb, Text: "504/2", Link: &model.Link{Page: 504, SubPage: 2}},
			},
		},
	}

	got := writeSnapshot(t, model.SessionHeader{Station: "3sat", Timestamp: sessionTime}, page)
	want := strings.Join([]string{
		`{"scraper":"3sat","timestamp":"2026-08-26T09:30:15"}`,
		`{"page":502,"sub_page":1,"timestamp":"2026-08-26T09:30:15"}`,
		`[["rb","502 "],["wb","Köln will Benin-Bronzen <zurück>    "]]`,
		`[["wb","mehr auf "],["wb","503",503],["wb"," und "],["wb","504/2",[504,2]]]`,
		``,
	}, "\n")
	if string(got) != want {
		t.Errorf("snapshot bytes:\n%s\nwant:\n%s", got, want)
	}
}

// TestWriterErrorPage verifies that error pages serialize as a marker
// line only.
func TestWriterErrorPage(t *testing.T) {
	t.Parallel()

	page := &model.Page{
		Station:   "zdf",
		Number:    150,
		SubPage:   1,
		Timestamp: sessionTime,
		Error:     "missing div#content",
	}
	got := writeSnapshot(t, model.SessionHeader{Station: "zdf", Timestamp: sessionTime}, page)
	want := strings.Join([]string{
		`{"scraper":"zdf","timestamp":"2026-08-26T09:30:15"}`,
		`{"page":150,"sub_page":1,"timestamp":"2026-08-26T09:30:15","error":"missing div#content"}`,
		``,
	}, "\n")
	if string(got) != want {
		t.Errorf("snapshot bytes:\n%s\nwant:\n%s", got, want)
	}
}

// TestRoundTrip verifies that a written snapshot reads back equal and
// that re-serializing it is byte-identical.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	sep := model.Attribute{Fg: model.ColorGreen, Bg: model.ColorBlack, Charset: model.CharsetSeparated}
	pages := []*model.Page{
		{
			Station: "ndr", Number: 100, SubPage: 1, Timestamp: sessionTime,
			Rows: []model.Row{
				{
					{Attr: wb, Text: "100 NDR Text"},
					{Attr: unset, Text: strings.Repeat(" ", 28)},
				},
				{
					{Attr: sep, Text: "\U0001FB00▌█"},
					{Attr: unset, Text: strings.Repeat(" ", 37)},
				},
			},
		},
		{
			Station: "ndr", Number: 104, SubPage: 2, Timestamp: sessionTime.Add(time.Second),
			Rows: []model.Row{
				{
					{Attr: rb, Text: "Wetter "},
					{Attr: rb, Text: "105", Link: &model.Link{Page: 105}},
					{Attr: unset, Text: strings.Repeat(" ", 30)},
				},
			},
		},
		{
			Station: "ndr", Number: 110, SubPage: 1, Timestamp: sessionTime,
			Error: "page has no rows",
		},
	}
	header := model.SessionHeader{Station: "ndr", Timestamp: sessionTime}

	first := writeSnapshot(t, header, pages...)

	snap, err := Read(bytes.NewReader(first))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if snap.Header.Station != "ndr" || !snap.Header.Timestamp.Equal(sessionTime) {
		t.Errorf("header = %+v", snap.Header)
	}
	if len(snap.Pages) != len(pages) {
		t.Fatalf("got %d pages, want %d", len(snap.Pages), len(pages))
	}
	for i, p := range snap.Pages {
		if !p.Equal(pages[i]) {
			t.Errorf("page %d differs:\ngot  %+v\nwant %+v", i, p, pages[i])
		}
	}

	second := writeSnapshot(t, snap.Header, snap.Pages...)
	if !bytes.Equal(first, second) {
		t.Errorf("re-serialization changed bytes:\n%s\nvs\n%s", first, second)
	}
}

// TestSnapshotPage verifies the page lookup helper.
func TestSnapshotPage(t *testing.T) {
	t.Parallel()

	snap := &Snapshot{Pages: []*model.Page{
		{Number: 100, SubPage: 1},
		{Number: 101, SubPage: 1},
		{Number: 101, SubPage: 2},
	}}

	if p := snap.Page(101, 2); p == nil || p.SubPage != 2 {
		t.Errorf("Page(101, 2) = %+v", p)
	}
	if p := snap.Page(101, 0); p == nil || p.SubPage != 1 {
		t.Errorf("Page(101, 0) = %+v, want first sub-page", p)
	}
	if p := snap.Page(200, 1); p != nil {
		t.Errorf("Page(200, 1) = %+v, want nil", p)
	}
}

// TestReadRejectsMalformedLines verifies the failure modes of the
// reader.
func TestReadRejectsMalformedLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"row before marker", `{"scraper":"ndr","timestamp":"2026-08-26T09:30:15"}` + "\n" + `[["wb","x"]]`},
		{"garbage line", "hello\n"},
		{"bad timestamp", `{"scraper":"ndr","timestamp":"yesterday"}`},
		{"segment too short", "{\"scraper\":\"ndr\",\"timestamp\":\"2026-08-26T09:30:15\"}\n{\"page\":100,\"sub_page\":1,\"timestamp\":\"2026-08-26T09:30:15\"}\n[[\"wb\"]]"},
		{"unknown attribute", "{\"scraper\":\"ndr\",\"timestamp\":\"2026-08-26T09:30:15\"}\n{\"page\":100,\"sub_page\":1,\"timestamp\":\"2026-08-26T09:30:15\"}\n[[\"zz\",\"x\"]]"},
		{"bad link target", "{\"scraper\":\"ndr\",\"timestamp\":\"2026-08-26T09:30:15\"}\n{\"page\":100,\"sub_page\":1,\"timestamp\":\"2026-08-26T09:30:15\"}\n[[\"wb\",\"x\",\"101\"]]"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Read(strings.NewReader(tt.input)); err == nil {
				t.Error("Read succeeded, want error")
			}
		})
	}

	t.Run("bad snapshot wraps sentinel", func(t *testing.T) {
		t.Parallel()
		if _, err := Read(strings.NewReader("hello\n")); !errors.Is(err, ErrBadSnapshot) {
			t.Errorf("expected ErrBadSnapshot, got %v", err)
		}
	})
}

// TestTimeRoundTrip verifies the archive timestamp format.
func TestTimeRoundTrip(t *testing.T) {
	t.Parallel()

	s := FormatTime(sessionTime)
	if s != "2026-08-26T09:30:15" {
		t.Errorf("FormatTime = %q", s)
	}
	back, err := ParseTime(s)
	if err != nil {
		t.Fatalf("ParseTime failed: %v", err)
	}
	if !back.Equal(sessionTime) {
		t.Errorf("ParseTime = %v, want %v", back, sessionTime)
	}

	t.Run("non-UTC input normalized", func(t *testing.T) {
		t.Parallel()
		loc := time.FixedZone("CEST", 2*3600)
		local := time.Date(2026, 8, 26, 11, 30, 15, 0, loc)
		if got := FormatTime(local); got != "2026-08-26T09:30:15" {
			t.Errorf("FormatTime(local) = %q", got)
		}
	})
}
