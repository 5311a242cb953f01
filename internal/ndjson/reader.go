package ndjson

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/teletextarchive/ttx/internal/model"
)

// Snapshot is one parsed station archive: the session header plus the
// pages in the order they appear in the file.
type Snapshot struct {
	Header model.SessionHeader
	Pages  []*model.Page
}

// Deserialization errors.
var (
	// ErrBadSnapshot is returned when a snapshot line is neither a
	// valid header/marker object nor a valid row array, or when a row
	// line appears before any page marker.
	ErrBadSnapshot = errors.New("malformed snapshot line")
)

// maxLineSize bounds a single NDJSON line. A 40x25 page row is a few
// kilobytes at most; a megabyte of headroom tolerates exotic pages.
const maxLineSize = 1 << 20

// Read parses a station snapshot stream.
func Read(r io.Reader) (*Snapshot, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	snap := &Snapshot{}
	var current *model.Page
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}

		switch line[0] {
		case '{':
			page, err := snap.readObject(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if page != nil {
				snap.Pages = append(snap.Pages, page)
				current = page
			}
		case '[':
			if current == nil {
				return nil, fmt.Errorf("line %d: %w: row before page marker", lineNo, ErrBadSnapshot)
			}
			row, err := parseRow(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current.Rows = append(current.Rows, row)
		default:
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrBadSnapshot)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}

// ReadFile parses a station snapshot file.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path) //nolint:gosec // archive paths come from configuration
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file

	return Read(f)
}

// Page returns the first page matching number and, when subPage is
// positive, the sub-page. Nil when absent.
func (s *Snapshot) Page(number, subPage int) *model.Page {
	for _, p := range s.Pages {
		if p.Number != number {
			continue
		}
		if subPage <= 0 || p.SubPage == subPage {
			return p
		}
	}
	return nil
}

// readObject dispatches a JSON object line: session header or page
// marker. The header carries the pages' station id onto each page so a
// page value round-trips completely.
func (s *Snapshot) readObject(line []byte) (*model.Page, error) {
	var obj struct {
		Scraper   string `json:"scraper"`
		Page      int    `json:"page"`
		SubPage   int    `json:"sub_page"`
		Timestamp string `json:"timestamp"`
		Error     string `json:"error"`
	}
	if err := json.Unmarshal(line, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}

	ts, err := ParseTime(obj.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: bad timestamp %q", ErrBadSnapshot, obj.Timestamp)
	}

	if obj.Scraper != "" {
		s.Header = model.SessionHeader{Station: obj.Scraper, Timestamp: ts}
		return nil, nil
	}
	return &model.Page{
		Station:   s.Header.Station,
		Number:    obj.Page,
		SubPage:   obj.SubPage,
		Timestamp: ts,
		Error:     obj.Error,
	}, nil
}

// parseRow parses one row line: a JSON array of [code, text] or
// [code, text, link] triples.
func parseRow(line []byte) (model.Row, error) {
	var raw [][]json.RawMessage
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}

	row := make(model.Row, 0, len(raw))
	for _, elem := range raw {
		if len(elem) < 2 || len(elem) > 3 {
			return nil, fmt.Errorf("%w: segment has %d elements", ErrBadSnapshot, len(elem))
		}

		var code, text string
		if err := json.Unmarshal(elem[0], &code); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
		}
		if err := json.Unmarshal(elem[1], &text); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
		}

		attr, err := model.ParseAttribute(code)
		if err != nil {
			return nil, err
		}
		seg := model.Segment{Attr: attr, Text: text}

		if len(elem) == 3 {
			link, err := parseLink(elem[2])
			if err != nil {
				return nil, err
			}
			seg.Link = link
		}
		row = append(row, seg)
	}
	return row, nil
}

// parseLink parses the third segment element: an integer page number or
// a [page, subPage] pair.
func parseLink(raw json.RawMessage) (*model.Link, error) {
	var page int
	if err := json.Unmarshal(raw, &page); err == nil {
		return &model.Link{Page: page}, nil
	}

	var pair []int
	if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
		return nil, fmt.Errorf("%w: link target %s", ErrBadSnapshot, string(raw))
	}
	return &model.Link{Page: pair[0], SubPage: pair[1]}, nil
}
