package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
)

// WriteMarkdown renders run summaries as GitHub-flavored Markdown: one
// overview table plus a failure list per station that had errors.
func WriteMarkdown(w io.Writer, runs []Run) error {
	md := markdown.NewMarkdown(w)

	md.H1("Teletext scrape report")
	md.PlainText("")

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.Station,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			strconv.Itoa(run.Added),
			strconv.Itoa(run.Changed),
			strconv.Itoa(run.Unchanged),
			strconv.Itoa(run.Removed),
			strconv.Itoa(run.Errors),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Station", "Captured", "Added", "Changed", "Unchanged", "Removed", "Errors"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, run := range runs {
		if len(run.Failures) == 0 {
			continue
		}
		md.H2("Failures: " + run.Station)
		items := make([]string, 0, len(run.Failures))
		for _, f := range run.Failures {
			items = append(items, fmt.Sprintf("page %d/%d: %s", f.Page, f.SubPage, f.Reason))
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	return md.Build()
}

// WriteText renders run summaries as aligned plain text for terminal
// output.
func WriteText(w io.Writer, runs []Run) error {
	for _, run := range runs {
		if _, err := fmt.Fprintf(w, "%-10s added=%d changed=%d unchanged=%d removed=%d errors=%d\n",
			run.Station, run.Added, run.Changed, run.Unchanged, run.Removed, run.Errors); err != nil {
			return err
		}
		for _, f := range run.Failures {
			if _, err := fmt.Fprintf(w, "           page %d/%d: %s\n", f.Page, f.SubPage, f.Reason); err != nil {
				return err
			}
		}
	}
	return nil
}
