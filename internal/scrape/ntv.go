package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/teletextarchive/ttx/internal/config"
	"github.com/teletextarchive/ttx/internal/decoder"
)

// ntvSource walks the n-tv JSON API. Every response names its own page
// number and sub-page list; the ascend endpoint yields the next page,
// and the walk ends when the page number stops increasing.
type ntvSource struct {
	station config.Station
	client  *Client
	logger  *slog.Logger
}

// ntvIndex is the subset of the feed the walker needs to navigate.
type ntvIndex struct {
	Content struct {
		Page string `json:"page"`
	} `json:"content"`
	Subpages struct {
		Subpage []string `json:"subpage"`
	} `json:"subpages"`
}

// Walk ascends from page 100 until the page numbers wrap around.
func (s *ntvSource) Walk(ctx context.Context, fn func(RawPage) error) error {
	url := s.station.BaseURL + "/100/0"
	page := 0
	for page < 900 {
		body, status, err := s.client.Get(ctx, url)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("feed %s: unexpected status %d", url, status)
		}

		var index ntvIndex
		if err := json.Unmarshal(body, &index); err != nil {
			return fmt.Errorf("feed %s: %w", url, err)
		}
		if len(index.Content.Page) < 3 {
			return fmt.Errorf("feed %s: missing page number", url)
		}
		next, err := strconv.Atoi(index.Content.Page[:3])
		if err != nil {
			return fmt.Errorf("feed %s: bad page number %q: %w", url, index.Content.Page, err)
		}
		if next <= page {
			break
		}
		page = next

		if err := fn(RawPage{Number: page, SubPage: 1, Payload: decoder.Payload{Body: body}}); err != nil {
			return err
		}

		// The first sub-page is the response itself; fetch the rest.
		for _, raw := range rest(index.Subpages.Subpage) {
			sub, err := strconv.Atoi(raw)
			if err != nil {
				s.logger.Debug("skipping bad sub-page index", "page", page, "sub_page", raw)
				continue
			}
			subBody, subStatus, err := s.client.Get(ctx, fmt.Sprintf("%s/%d/%d", s.station.BaseURL, page, sub))
			if err != nil {
				return err
			}
			if subStatus != http.StatusOK {
				s.logger.Debug("sub-page fetch skipped", "page", page, "sub_page", sub, "status", subStatus)
				continue
			}
			if err := fn(RawPage{Number: page, SubPage: sub, Payload: decoder.Payload{Body: subBody}}); err != nil {
				return err
			}
		}

		url = fmt.Sprintf("%s/ascend/%d", s.station.BaseURL, page)
	}
	return nil
}

// rest returns all but the first element.
func rest(s []string) []string {
	if len(s) <= 1 {
		return nil
	}
	return s[1:]
}
