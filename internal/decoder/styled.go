package decoder

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/teletextarchive/ttx/internal/charset"
	"github.com/teletextarchive/ttx/internal/config"
	"github.com/teletextarchive/ttx/internal/model"
)

// StyledHTML decodes the styled-HTML family: stations that deliver a
// page as markup with colors encoded in CSS classes. The three dialects
// differ in markup shape and color scheme:
//
//   - zdf: div#content > div.row > span, hex-RGB classes c<rgb>/bc<rgb>,
//     mosaic glyphs marked by the teletextlinedrawregular class
//   - ndr: pre.txt with <b> runs, palette-index classes f<n>/b<n>,
//     mosaic glyphs in the private-use area at U+E000
//   - sr: pre.saartext_page with bare text and <a> page links
type StyledHTML struct {
	station config.Station
	logger  *slog.Logger
}

// unsetAttr is the attribute of segments the station left uncolored.
var unsetAttr = model.Attribute{Fg: model.ColorUnset, Bg: model.ColorUnset}

// Decode parses the HTML payload per the station's dialect.
func (d *StyledHTML) Decode(p Payload) ([]model.Row, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(repairEncoding(p.Body)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	switch d.station.Dialect {
	case config.DialectZDF:
		return d.decodeZDF(doc)
	case config.DialectNDR:
		return d.decodeNDR(doc)
	case config.DialectSR:
		return d.decodeSR(doc)
	default:
		return nil, fmt.Errorf("%w: station %q has dialect %q", config.ErrInvalidStation, d.station.Name, d.station.Dialect)
	}
}

// decodeZDF walks div#content's row divs. Every span carries its colors
// as class names; spans classed teletextlinedrawregular hold mosaic
// glyphs in an almost-G1 encoding.
func (d *StyledHTML) decodeZDF(doc *goquery.Document) ([]model.Row, error) {
	content := doc.Find("div#content")
	if content.Length() == 0 {
		return nil, fmt.Errorf("%w: missing div#content", ErrMalformedPayload)
	}
	rowSel := content.Find("div.row")
	if rowSel.Length() == 0 {
		return nil, fmt.Errorf("%w: page has no row divs", ErrMalformedPayload)
	}

	var rows []model.Row
	var decodeErr error
	rowSel.EachWithBreak(func(_ int, rowDiv *goquery.Selection) bool {
		row := model.Row{}
		rowDiv.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
			attr := unsetAttr
			linedraw := false
			for _, cls := range strings.Fields(span.AttrOr("class", "")) {
				switch {
				case cls == "teletextlinedrawregular":
					linedraw = true
				case strings.HasPrefix(cls, "bc"):
					attr.Bg, decodeErr = model.ColorFromRGB(cls[2:])
				case strings.HasPrefix(cls, "c"):
					attr.Fg, decodeErr = model.ColorFromRGB(cls[1:])
				}
				if decodeErr != nil {
					return false
				}
			}

			text := span.Text()
			if text == "" {
				return true
			}
			if !linedraw {
				row = append(row, model.Segment{Attr: attr, Text: text})
				return true
			}

			var segs []model.Segment
			segs, decodeErr = linedrawSegments(text, attr)
			if decodeErr != nil {
				return false
			}
			row = append(row, segs...)
			return true
		})
		if decodeErr != nil {
			return false
		}
		rows = append(rows, row)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return rows, nil
}

// linedrawSegments maps the ZDF mosaic encoding onto G1. Codes at
// 0xa0 and above are the separated-mosaic variant: the glyph shape is
// reused but the segment gets the charset marker so the switch stays
// detectable. 0x41 is the ZDF quirk for the full block.
func linedrawSegments(text string, attr model.Attribute) ([]model.Segment, error) {
	cells := make([]cell, 0, len(text))
	for _, r := range text {
		code := int(r)
		marker := model.CharsetStandard
		if code >= 0xa0 {
			code -= 0x80
			marker = model.CharsetSeparated
		}

		var mapped rune
		var err error
		switch {
		case code >= 0x20 && code <= 0x3f, code >= 0x60 && code <= 0x7f:
			mapped, err = charset.Map(charset.G1, code)
		case code == 0x41:
			mapped, err = charset.Map(charset.G1, 0x7f)
		default:
			return nil, fmt.Errorf("linedraw code 0x%02x: %w", int(r), charset.ErrUnmappedCharacter)
		}
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell{r: mapped, charset: marker})
	}
	return segmentsFromCells(cells, attr), nil
}

// ndrPalette maps NDR's single-digit color classes onto the palette.
// The digit is the classic teletext color index.
var ndrPalette = map[byte]model.Color{
	'0': model.ColorBlack,
	'1': model.ColorRed,
	'2': model.ColorGreen,
	'3': model.ColorYellow,
	'4': model.ColorBlue,
	'5': model.ColorMagenta,
	'6': model.ColorCyan,
	'7': model.ColorWhite,
}

// decodeNDR walks pre.txt. Newline text nodes are row boundaries;
// <b> runs carry f<n>/b<n> color classes; anchors are navigation text.
func (d *StyledHTML) decodeNDR(doc *goquery.Document) ([]model.Row, error) {
	pre := doc.Find("pre.txt")
	if pre.Length() == 0 {
		return nil, fmt.Errorf("%w: missing pre.txt", ErrMalformedPayload)
	}

	b := &rowBuilder{}
	b.newRow()
	var decodeErr error
	pre.Contents().EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		node := sel.Get(0)
		switch {
		case node.Type == html.TextNode:
			for i := 0; i < strings.Count(node.Data, "\n"); i++ {
				b.newRow()
			}
			return true

		case node.Data == "b", node.Data == "a":
			attr := unsetAttr
			if node.Data == "b" {
				for _, cls := range strings.Fields(sel.AttrOr("class", "")) {
					if len(cls) != 2 {
						continue
					}
					color, ok := ndrPalette[cls[1]]
					if !ok {
						decodeErr = fmt.Errorf("%w: color class %q", model.ErrUnknownColorCode, cls)
						return false
					}
					switch cls[0] {
					case 'f':
						attr.Fg = color
					case 'b':
						attr.Bg = color
					}
				}
			}

			text := sel.Text()
			if text == "" {
				return true
			}
			var segs []model.Segment
			segs, decodeErr = ndrSegments(text, attr)
			if decodeErr != nil {
				return false
			}
			for _, seg := range segs {
				b.add(seg)
			}
			return true

		default:
			d.logger.Debug("skipping unhandled element", "element", node.Data)
			return true
		}
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return trimTrailingEmptyRows(b.rows), nil
}

// ndrSegments maps NDR's private-use-area mosaic glyphs onto G1. The
// PUA offset past 0x40 selects the separated-mosaic variant, which
// keeps the shape but marks the charset switch.
func ndrSegments(text string, attr model.Attribute) ([]model.Segment, error) {
	cells := make([]cell, 0, len(text))
	for _, r := range text {
		if r < 0xe000 {
			cells = append(cells, cell{r: r, charset: model.CharsetStandard})
			continue
		}

		code := int(r) - 0xe000
		marker := model.CharsetStandard
		if code > 0x40 {
			code -= 0x40
			marker = model.CharsetSeparated
		}
		code += 0x20
		if code >= 0x40 && code <= 0x5f {
			code += 0x20
		}
		mapped, err := charset.Map(charset.G1, code)
		if err != nil {
			return nil, fmt.Errorf("pua glyph %U: %w", r, err)
		}
		cells = append(cells, cell{r: mapped, charset: marker})
	}
	return segmentsFromCells(cells, attr), nil
}

// decodeSR walks pre.saartext_page: bare text nodes with embedded
// newlines as row boundaries, and <a> elements as page cross-references
// whose href is the destination. A link whose destination does not
// parse degrades to plain text with a log record; the label is still
// valid page content.
func (d *StyledHTML) decodeSR(doc *goquery.Document) ([]model.Row, error) {
	pre := doc.Find("pre.saartext_page")
	if pre.Length() == 0 {
		return nil, fmt.Errorf("%w: missing pre.saartext_page", ErrMalformedPayload)
	}

	b := &rowBuilder{}
	b.newRow()
	pre.Contents().Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		switch {
		case node.Type == html.TextNode:
			b.add(model.Segment{Attr: unsetAttr, Text: node.Data})

		case node.Data == "a":
			label := sel.Text()
			href := sel.AttrOr("href", "")
			link, err := model.ParseLinkTarget(href)
			if err != nil {
				d.logger.Warn("degrading link to plain text", "href", href, "error", err)
				b.add(model.Segment{Attr: unsetAttr, Text: label})
				return
			}
			b.add(model.Segment{Attr: unsetAttr, Text: label, Link: &link})

		default:
			d.logger.Debug("skipping unhandled element", "element", node.Data)
		}
	})
	return trimTrailingEmptyRows(b.rows), nil
}

// trimTrailingEmptyRows drops empty rows after the last content row.
// Pre-formatted payloads end with a final newline that would otherwise
// produce a phantom row.
func trimTrailingEmptyRows(rows []model.Row) []model.Row {
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	return rows
}
