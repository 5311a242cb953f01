// Package render draws archived teletext pages on a terminal using
// ANSI escape sequences, or as plain text. It exists for inspection and
// debugging; the archive itself stores only the NDJSON form.
package render

import (
	"fmt"
	"io"

	"github.com/teletextarchive/ttx/internal/model"
)

// Options controls page rendering.
type Options struct {
	// Colors enables ANSI color escapes. Without it the plain text grid
	// is printed.
	Colors bool
}

// Page writes one page to w, one line per row. Segments are rendered in
// bright ANSI colors (foreground 90+, background 100+) with a reset
// after each segment so partial output never bleeds color into the
// caller's terminal. Uncolored segments fall back to white on black,
// the teletext default.
func Page(w io.Writer, p *model.Page, opts Options) error {
	if p.Error != "" {
		_, err := fmt.Fprintf(w, "page %d/%d failed: %s\n", p.Number, p.SubPage, p.Error)
		return err
	}

	for _, row := range p.Rows {
		for _, seg := range row {
			if opts.Colors {
				if _, err := fmt.Fprintf(w, "\033[%d;%dm%s\033[0m",
					90+seg.Attr.Fg.ANSI(model.ColorWhite),
					100+seg.Attr.Bg.ANSI(model.ColorBlack),
					seg.Text,
				); err != nil {
					return err
				}
				continue
			}
			if _, err := io.WriteString(w, seg.Text); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
