package scrape

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/teletextarchive/ttx/internal/config"
	"github.com/teletextarchive/ttx/internal/decoder"
)

// RawPage is one fetched page before decoding.
type RawPage struct {
	Number  int
	SubPage int
	Payload decoder.Payload
}

// Source walks a station's page index in source order and hands each
// raw page to fn. Walk stops and returns fn's error when fn fails;
// fetch errors for individual pages are skipped, transport-level
// failures abort the walk.
type Source interface {
	Walk(ctx context.Context, fn func(RawPage) error) error
}

// NewSource returns the page source for a station.
func NewSource(st config.Station, c *Client, logger *slog.Logger) (Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("station", st.Name)

	switch {
	case st.Family == config.FamilyHTML && st.Dialect == config.DialectZDF:
		return &zdfSource{station: st, client: c, logger: logger}, nil
	case st.Family == config.FamilyHTML && st.Dialect == config.DialectNDR:
		return &ndrSource{station: st, client: c, logger: logger}, nil
	case st.Family == config.FamilyHTML && st.Dialect == config.DialectSR:
		return &srSource{station: st, client: c, logger: logger}, nil
	case st.Family == config.FamilyFontMap:
		return &fontMapSource{station: st, client: c, logger: logger}, nil
	case st.Family == config.FamilyJSON:
		return &ntvSource{station: st, client: c, logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: no source for station %q", config.ErrInvalidStation, st.Name)
	}
}
