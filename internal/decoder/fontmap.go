package decoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/teletextarchive/ttx/internal/charset"
	"github.com/teletextarchive/ttx/internal/config"
	"github.com/teletextarchive/ttx/internal/model"
)

// FontMapHTML decodes the font-map family (3sat). The page markup is
// ZDF-style rows of color-classed spans, but the span text consists of
// glyph positions in a custom web font. A glyph map fetched alongside
// the page translates positions to characters; it is a required second
// input to Decode, not decoder state.
type FontMapHTML struct {
	station config.Station
	logger  *slog.Logger
}

// glyphMap is the wire shape of the auxiliary map: glyph codepoint
// (decimal, as a JSON key) to replacement string.
type glyphMap struct {
	Glyphs map[string]string `json:"glyphs"`
}

// Decode parses the page markup and resolves every glyph position
// through the font map. ASCII text passes through unmapped; a non-ASCII
// glyph absent from the map fails with ErrUnmappedCharacter.
func (d *FontMapHTML) Decode(p Payload) ([]model.Row, error) {
	if len(p.FontMap) == 0 {
		return nil, fmt.Errorf("%w: missing font map", ErrMalformedPayload)
	}
	var gm glyphMap
	if err := json.Unmarshal(p.FontMap, &gm); err != nil {
		return nil, fmt.Errorf("%w: font map: %v", ErrMalformedPayload, err)
	}
	if len(gm.Glyphs) == 0 {
		return nil, fmt.Errorf("%w: font map has no glyphs", ErrMalformedPayload)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.Body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	rowSel := doc.Find("div#content div.row")
	if rowSel.Length() == 0 {
		return nil, fmt.Errorf("%w: page has no row divs", ErrMalformedPayload)
	}

	var rows []model.Row
	var decodeErr error
	rowSel.EachWithBreak(func(_ int, rowDiv *goquery.Selection) bool {
		row := model.Row{}
		rowDiv.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
			attr := unsetAttr
			for _, cls := range strings.Fields(span.AttrOr("class", "")) {
				switch {
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
			var mapped string
			mapped, decodeErr = mapGlyphs(text, gm.Glyphs)
			if decodeErr != nil {
				return false
			}
			row = append(row, model.Segment{Attr: attr, Text: mapped})
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

// mapGlyphs translates glyph positions through the font map.
func mapGlyphs(text string, glyphs map[string]string) (string, error) {
	var sb strings.Builder
	for _, r := range text {
		if repl, ok := glyphs[strconv.Itoa(int(r))]; ok {
			sb.WriteString(repl)
			continue
		}
		if r < 0x80 {
			sb.WriteRune(r)
			continue
		}
		return "", fmt.Errorf("glyph %U not in font map: %w", r, charset.ErrUnmappedCharacter)
	}
	return sb.String(), nil
}
