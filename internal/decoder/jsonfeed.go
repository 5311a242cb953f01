package decoder

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/teletextarchive/ttx/internal/charset"
	"github.com/teletextarchive/ttx/internal/config"
	"github.com/teletextarchive/ttx/internal/model"
)

// JSONFeed decodes the native JSON feed family (n-tv). The feed is a
// cell matrix: one object per column with the character value, its
// colors as hex RGB, and a graphics flag marking G1 mosaic codes.
type JSONFeed struct {
	station config.Station
	logger  *slog.Logger
}

// ntvPage is the wire shape of one page response.
type ntvPage struct {
	Content struct {
		Page string   `json:"page"`
		Row  []ntvRow `json:"row"`
	} `json:"content"`
	Subpages struct {
		Subpage []string `json:"subpage"`
	} `json:"subpages"`
}

type ntvRow struct {
	Columns []ntvColumn `json:"columns"`
}

type ntvColumn struct {
	Value      string `json:"value"`
	Font       string `json:"font"`
	Background string `json:"background"`
	Graphic    bool   `json:"graphic"`
}

// Decode converts the cell matrix into rows of single-cell segments.
// Adjacent cells with equal attributes are merged later during
// assembly.
func (d *JSONFeed) Decode(p Payload) ([]model.Row, error) {
	var page ntvPage
	if err := json.Unmarshal(p.Body, &page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if len(page.Content.Row) == 0 {
		return nil, fmt.Errorf("%w: feed has no rows", ErrMalformedPayload)
	}

	rows := make([]model.Row, 0, len(page.Content.Row))
	for i, feedRow := range page.Content.Row {
		row := make(model.Row, 0, len(feedRow.Columns))
		for j, col := range feedRow.Columns {
			seg, err := d.column(col)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i, j, err)
			}
			row = append(row, seg)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// column converts one feed cell into a single-character segment.
func (d *JSONFeed) column(col ntvColumn) (model.Segment, error) {
	fg, err := model.ColorFromRGB(strings.TrimPrefix(col.Font, "#"))
	if err != nil {
		return model.Segment{}, err
	}
	bg, err := model.ColorFromRGB(strings.TrimPrefix(col.Background, "#"))
	if err != nil {
		return model.Segment{}, err
	}
	attr := model.Attribute{Fg: fg, Bg: bg}

	text := col.Value
	if col.Graphic {
		code, err := strconv.Atoi(strings.TrimSpace(col.Value))
		if err != nil {
			return model.Segment{}, fmt.Errorf("%w: graphic value %q", ErrMalformedPayload, col.Value)
		}
		r, err := charset.Map(charset.G1, code)
		if err != nil {
			return model.Segment{}, err
		}
		text = string(r)
	}
	return model.Segment{Attr: attr, Text: text}, nil
}
