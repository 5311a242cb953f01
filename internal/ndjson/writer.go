package ndjson

import (
	"encoding/json"
	"io"

	"github.com/teletextarchive/ttx/internal/model"
)

// Writer serializes session headers and pages as NDJSON lines.
type Writer struct {
	enc *json.Encoder
}

// NewWriter creates a Writer on the given output.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	// The archive stores raw UTF-8; escaping <, >, & would change bytes
	// that existing snapshots carry literally.
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// headerLine is the wire shape of the session header. Field order fixes
// key order in the output.
type headerLine struct {
	Scraper   string `json:"scraper"`
	Timestamp string `json:"timestamp"`
}

// markerLine is the wire shape of a page marker.
type markerLine struct {
	Page      int    `json:"page"`
	SubPage   int    `json:"sub_page"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
}

// WriteHeader writes the one-per-run session header line.
func (w *Writer) WriteHeader(h model.SessionHeader) error {
	return w.enc.Encode(headerLine{
		Scraper:   h.Station,
		Timestamp: FormatTime(h.Timestamp),
	})
}

// WritePage writes a page marker line followed by one line per row.
// Error pages write only the marker. Rows are serialized as-is: the
// assembler has already coalesced them, and serializing an
// already-coalesced page twice produces byte-identical output.
func (w *Writer) WritePage(p *model.Page) error {
	if err := w.enc.Encode(markerLine{
		Page:      p.Number,
		SubPage:   p.SubPage,
		Timestamp: FormatTime(p.Timestamp),
		Error:     p.Error,
	}); err != nil {
		return err
	}
	if p.Error != "" {
		return nil
	}

	for _, row := range p.Rows {
		if err := w.enc.Encode(rowValue(row)); err != nil {
			return err
		}
	}
	return nil
}

// rowValue builds the JSON value for one row: an array of two- or
// three-element segment arrays.
func rowValue(row model.Row) []any {
	out := make([]any, 0, len(row))
	for _, seg := range row {
		elem := []any{seg.Attr.Code(), seg.Text}
		if seg.Link != nil {
			if seg.Link.SubPage > 0 {
				elem = append(elem, []int{seg.Link.Page, seg.Link.SubPage})
			} else {
				elem = append(elem, seg.Link.Page)
			}
		}
		out = append(out, elem)
	}
	return out
}
