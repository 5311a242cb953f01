package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teletextarchive/ttx/internal/archive"
	"github.com/teletextarchive/ttx/internal/assemble"
	"github.com/teletextarchive/ttx/internal/config"
	"github.com/teletextarchive/ttx/internal/decoder"
	"github.com/teletextarchive/ttx/internal/model"
	"github.com/teletextarchive/ttx/internal/ndjson"
	"github.com/teletextarchive/ttx/internal/report"
)

// Runner drives scrape runs: one independent pipeline per station,
// multiple stations in parallel.
type Runner struct {
	cfg     *config.Config
	client  *Client
	logger  *slog.Logger
	history *archive.DB
}

// NewRunner creates a Runner. The history store may be nil, in which
// case no run history is recorded.
func NewRunner(cfg *config.Config, logger *slog.Logger, history *archive.DB) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:     cfg,
		client:  NewClient(cfg.Timeout, cfg.UserAgent, logger),
		logger:  logger,
		history: history,
	}
}

// Run scrapes the given stations concurrently and returns one run
// summary per station, in input order. A station whose run fails
// entirely (page index unreachable, malformed walk) is logged and
// reported with its error; it does not abort the other stations.
// Context cancellation does.
func (r *Runner) Run(ctx context.Context, stations []config.Station) ([]report.Run, error) {
	runs := make([]report.Run, len(stations))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for i, st := range stations {
		i, st := i, st
		g.Go(func() error {
			run, err := r.runStation(ctx, st)
			runs[i] = run
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				r.logger.Error("station run failed", "station", st.Name, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return runs, err
	}
	return runs, nil
}

// runStation executes one station's full pipeline: walk, decode,
// assemble, serialize, persist.
func (r *Runner) runStation(ctx context.Context, st config.Station) (report.Run, error) {
	logger := r.logger.With("station", st.Name)
	now := time.Now().UTC().Truncate(time.Second)
	run := report.Run{Station: st.Name, Timestamp: now}

	if err := st.Validate(); err != nil {
		return run, err
	}
	dec, err := decoder.New(st, r.logger)
	if err != nil {
		return run, err
	}
	src, err := NewSource(st, r.client, r.logger)
	if err != nil {
		return run, err
	}
	asm := assemble.Assembler{Station: st.Name, Columns: st.Columns}

	// The previous snapshot lets unchanged pages keep their original
	// timestamp, so consecutive captures of a static page diff empty.
	// A missing or corrupt previous snapshot only disables that reuse.
	outPath := r.snapshotPath(st)
	prev, err := ndjson.ReadFile(outPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("ignoring unreadable previous snapshot", "path", outPath, "error", err)
		}
		prev = &ndjson.Snapshot{}
	}

	var buf bytes.Buffer
	w := ndjson.NewWriter(&buf)
	if err := w.WriteHeader(model.SessionHeader{Station: st.Name, Timestamp: now}); err != nil {
		return run, err
	}

	retrieved := make(map[[2]int]bool)
	walkErr := src.Walk(ctx, func(raw RawPage) error {
		page := r.decodePage(dec, asm, st, raw, &run, logger)
		retrieved[[2]int{page.Number, page.SubPage}] = true

		if prevPage := prev.Page(page.Number, page.SubPage); prevPage != nil && page.Error == "" {
			if prevPage.Error == "" && page.ContentEqual(prevPage) {
				page = prevPage
				run.Unchanged++
			} else {
				run.Changed++
			}
		} else if page.Error == "" {
			run.Added++
		}

		r.recordHash(ctx, st, page, logger)
		return w.WritePage(page)
	})
	if walkErr != nil {
		return run, walkErr
	}

	for _, p := range prev.Pages {
		if !retrieved[[2]int{p.Number, p.SubPage}] {
			run.Removed++
		}
	}

	if err := r.writeSnapshot(outPath, buf.Bytes()); err != nil {
		return run, err
	}
	logger.Info("snapshot written",
		"path", outPath,
		"pages", run.Pages(),
		"added", run.Added,
		"changed", run.Changed,
		"unchanged", run.Unchanged,
		"removed", run.Removed,
		"errors", run.Errors,
	)

	if r.history != nil {
		if err := r.history.RecordRun(ctx, run); err != nil {
			logger.Warn("run history not recorded", "error", err)
		}
	}
	return run, nil
}

// decodePage converts one raw page, turning a decode failure into an
// archived error page so one bad page never aborts the station run.
func (r *Runner) decodePage(dec decoder.Decoder, asm assemble.Assembler, st config.Station, raw RawPage, run *report.Run, logger *slog.Logger) *model.Page {
	captured := time.Now()

	rows, err := dec.Decode(raw.Payload)
	var page *model.Page
	if err == nil {
		page, err = asm.Assemble(raw.Number, raw.SubPage, rows, captured)
	}
	if err != nil {
		logger.Warn("page decode failed", "page", raw.Number, "sub_page", raw.SubPage, "error", err)
		run.Errors++
		run.Failures = append(run.Failures, report.PageFailure{Page: raw.Number, SubPage: raw.SubPage, Reason: err.Error()})
		return asm.ErrorPage(raw.Number, raw.SubPage, err, captured)
	}
	return page
}

// recordHash updates the change-detection hash for a decoded page.
func (r *Runner) recordHash(ctx context.Context, st config.Station, page *model.Page, logger *slog.Logger) {
	if r.history == nil || page.Error != "" {
		return
	}
	if _, err := r.history.UpdatePageHash(ctx, st.Name, page.Number, page.SubPage, page.ContentHash(), page.Timestamp); err != nil {
		logger.Warn("page hash not recorded", "page", page.Number, "sub_page", page.SubPage, "error", err)
	}
}

// snapshotPath returns the station's snapshot file path.
func (r *Runner) snapshotPath(st config.Station) string {
	return filepath.Join(r.cfg.OutDir, st.Name+".ndjson")
}

// writeSnapshot persists the snapshot atomically enough for a single
// writer: write to a temp file in the same directory, then rename.
func (r *Runner) writeSnapshot(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
