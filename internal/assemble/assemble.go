// Package assemble groups decoded rows into immutable page snapshots:
// it coalesces adjacent equal-attribute segments, fills rows out to the
// station's fixed grid width, and stamps page identity and capture
// time.
package assemble

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teletextarchive/ttx/internal/model"
)

// ErrIncompletePage is returned when a source signaled a page start but
// supplied zero rows. The failure is fatal for the page only.
var ErrIncompletePage = errors.New("page has no rows")

// Assembler builds Page values for one station.
type Assembler struct {
	// Station is stamped onto every assembled page.
	Station string

	// Columns is the station's fixed grid width. Rows narrower than
	// this are filled with uncolored spaces so the concatenated
	// content always reconstructs the full display line. Zero
	// disables filling.
	Columns int
}

// Assemble builds one immutable page snapshot from decoded rows.
// SubPage zero defaults to 1 for stations without sub-paging. The
// timestamp is truncated to whole seconds in UTC, matching the archive
// format's resolution.
func (a Assembler) Assemble(number, subPage int, rows []model.Row, ts time.Time) (*model.Page, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s page %d", ErrIncompletePage, a.Station, number)
	}
	if subPage <= 0 {
		subPage = 1
	}

	assembled := make([]model.Row, len(rows))
	for i, row := range rows {
		assembled[i] = a.fill(row.Coalesce())
	}

	return &model.Page{
		Station:   a.Station,
		Number:    number,
		SubPage:   subPage,
		Timestamp: ts.UTC().Truncate(time.Second),
		Rows:      assembled,
	}, nil
}

// ErrorPage builds the archived record of a page that failed to decode:
// identity and timestamp with the failure reason, no rows. Archiving
// failures keeps the snapshot honest about what could not be captured.
func (a Assembler) ErrorPage(number, subPage int, decodeErr error, ts time.Time) *model.Page {
	if subPage <= 0 {
		subPage = 1
	}
	return &model.Page{
		Station:   a.Station,
		Number:    number,
		SubPage:   subPage,
		Timestamp: ts.UTC().Truncate(time.Second),
		Error:     decodeErr.Error(),
	}
}

// fill pads a row with uncolored spaces up to the grid width. The pad
// is appended as its own segment and re-coalesced so a trailing unset
// segment merges with it.
func (a Assembler) fill(row model.Row) model.Row {
	if a.Columns <= 0 {
		return row
	}
	missing := a.Columns - row.Width()
	if missing <= 0 {
		return row
	}
	pad := model.Segment{
		Attr: model.Attribute{Fg: model.ColorUnset, Bg: model.ColorUnset},
		Text: strings.Repeat(" ", missing),
	}
	return append(row, pad).Coalesce()
}
