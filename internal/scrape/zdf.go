package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/teletextarchive/ttx/internal/config"
	"github.com/teletextarchive/ttx/internal/decoder"
)

// zdfSource walks the ZDF-infrastructure teletext service. For every
// page number a status endpoint reports the sub-page count and a
// last-modified date ("-1" for empty pages); sub-pages are then fetched
// as classic HTML documents.
type zdfSource struct {
	station config.Station
	client  *Client
	logger  *slog.Logger
}

// Walk probes the full 100-899 page range.
func (s *zdfSource) Walk(ctx context.Context, fn func(RawPage) error) error {
	for page := 100; page < 900; page++ {
		subPages, ok, err := s.pageStatus(ctx, page)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		for sub := 0; sub < subPages; sub++ {
			raw, status, err := s.client.Get(ctx, s.pageURL(page, sub))
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				s.logger.Debug("page fetch skipped", "page", page, "sub_page", sub+1, "status", status)
				continue
			}
			if err := fn(RawPage{Number: page, SubPage: sub + 1, Payload: decoder.Payload{Body: raw}}); err != nil {
				return err
			}
		}
	}
	return nil
}

// pageStatus queries the options endpoint. The response is
// "<subPages>,<date>"; a date of -1 marks an empty page slot.
func (s *zdfSource) pageStatus(ctx context.Context, page int) (int, bool, error) {
	url := fmt.Sprintf("%s/php/options.php?mandant=%s&site=%d", s.station.BaseURL, s.station.Mandant, page)
	body, status, err := s.client.Get(ctx, url)
	if err != nil {
		return 0, false, err
	}
	if status != http.StatusOK {
		return 0, false, nil
	}

	parts := strings.SplitN(strings.TrimSpace(string(body)), ",", 2)
	if len(parts) != 2 {
		s.logger.Debug("unexpected status response", "page", page, "body", string(body))
		return 0, false, nil
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		s.logger.Debug("unexpected sub-page count", "page", page, "body", string(body))
		return 0, false, nil
	}
	if parts[1] == "-1" {
		return 0, false, nil
	}
	return n + 1, true, nil
}

// pageURL builds the classic page document URL. The first sub-page has
// no suffix; later ones append "_<index>".
func (s *zdfSource) pageURL(page, sub int) string {
	name := strconv.Itoa(page)
	if sub > 0 {
		name += "_" + strconv.Itoa(sub)
	}
	return fmt.Sprintf("%s/teletext/%s/seiten/klassisch/%s.html", s.station.BaseURL, s.station.Mandant, name)
}

// fontMapSource walks a font-map station. The page walk matches the
// ZDF scheme (3sat runs on the same infrastructure), but the glyph map
// is fetched once per run and attached to every payload as the
// decoder's required second input.
type fontMapSource struct {
	station config.Station
	client  *Client
	logger  *slog.Logger
}

// Walk fetches the glyph map, then delegates to the ZDF page walk.
func (s *fontMapSource) Walk(ctx context.Context, fn func(RawPage) error) error {
	fontMap, status, err := s.client.Get(ctx, s.station.FontMapURL)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("font map %s: unexpected status %d", s.station.FontMapURL, status)
	}

	inner := &zdfSource{station: s.station, client: s.client, logger: s.logger}
	return inner.Walk(ctx, func(raw RawPage) error {
		raw.Payload.FontMap = fontMap
		return fn(raw)
	})
}
