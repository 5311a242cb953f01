package decoder

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/teletextarchive/ttx/internal/config"
	"github.com/teletextarchive/ttx/internal/model"
)

// Payload is the raw input for one page decode. Body is the fetched
// page document. FontMap is the auxiliary glyph-to-character map the
// font-map family requires; it is an explicit input rather than decoder
// state because it is fetched alongside the page and can change between
// captures.
type Payload struct {
	Body    []byte
	FontMap []byte
}

// Decoder converts one station payload into display rows. Decoding is
// purely transformational and safe to run concurrently across stations;
// the only shared state is the read-only charset table.
type Decoder interface {
	// Decode walks the payload and returns the page's rows in source
	// order. It fails with ErrMalformedPayload when the payload shape
	// is wrong for the station, and with charset.ErrUnmappedCharacter
	// when a glyph has no Unicode mapping.
	Decode(p Payload) ([]model.Row, error)
}

// New returns the decoder for a station, dispatching on its format
// family.
func New(st config.Station, logger *slog.Logger) (Decoder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("station", st.Name)

	switch st.Family {
	case config.FamilyHTML:
		return &StyledHTML{station: st, logger: logger}, nil
	case config.FamilyFontMap:
		return &FontMapHTML{station: st, logger: logger}, nil
	case config.FamilyJSON:
		return &JSONFeed{station: st, logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: station %q has family %q", config.ErrInvalidStation, st.Name, st.Family)
	}
}

// rowBuilder accumulates segments into rows, splitting on embedded
// newlines. Stations that deliver a page as one <pre> block encode row
// boundaries as newline characters inside text nodes.
type rowBuilder struct {
	rows []model.Row
}

// newRow starts the next display line.
func (b *rowBuilder) newRow() {
	b.rows = append(b.rows, model.Row{})
}

// add appends a segment to the current row. Newlines in the segment
// text start new rows; the pieces keep the segment's attribute and
// link.
func (b *rowBuilder) add(seg model.Segment) {
	if len(b.rows) == 0 {
		b.newRow()
	}
	for i, part := range strings.Split(seg.Text, "\n") {
		if i > 0 {
			b.newRow()
		}
		if part == "" {
			continue
		}
		cur := len(b.rows) - 1
		b.rows[cur] = append(b.rows[cur], model.Segment{Attr: seg.Attr, Text: part, Link: seg.Link})
	}
}

// cell is one decoded glyph with its charset marker, before grouping
// into segments.
type cell struct {
	r       rune
	charset int
}

// segmentsFromCells groups a run of cells into segments, splitting
// whenever the charset marker changes. A single markup span may mix
// standard and separated-mosaic glyphs, and the marker belongs on the
// segment attribute, not the row.
func segmentsFromCells(cells []cell, attr model.Attribute) []model.Segment {
	var segs []model.Segment
	var sb strings.Builder
	current := attr

	flush := func() {
		if sb.Len() > 0 {
			segs = append(segs, model.Segment{Attr: current, Text: sb.String()})
			sb.Reset()
		}
	}

	for _, c := range cells {
		next := attr
		next.Charset = c.charset
		if next != current {
			flush()
			current = next
		}
		sb.WriteRune(c.r)
	}
	flush()
	return segs
}
