package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"strconv"

	"github.com/teletextarchive/ttx/internal/config"
	"github.com/teletextarchive/ttx/internal/decoder"
)

// ndrSource walks the NDR teletext service. A pages.js index lists
// every available page with its sub-page count; pages are fetched as
// static HTM documents.
type ndrSource struct {
	station config.Station
	client  *Client
	logger  *slog.Logger
}

// pagesPattern extracts "page:subPageCount" pairs from pages.js.
var pagesPattern = regexp.MustCompile(`(\d+):(\d+)`)

// Walk fetches the page index and then every listed sub-page, in
// ascending page order.
func (s *ndrSource) Walk(ctx context.Context, fn func(RawPage) error) error {
	index, err := s.pageIndex(ctx)
	if err != nil {
		return err
	}

	pages := make([]int, 0, len(index))
	for page := range index {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	for _, page := range pages {
		for sub := 1; sub <= index[page]; sub++ {
			url := fmt.Sprintf("%s/%d_%02d.htm", s.station.BaseURL, page, sub)
			body, status, err := s.client.Get(ctx, url)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				s.logger.Debug("page fetch skipped", "page", page, "sub_page", sub, "status", status)
				continue
			}
			if err := fn(RawPage{Number: page, SubPage: sub, Payload: decoder.Payload{Body: body}}); err != nil {
				return err
			}
		}
	}
	return nil
}

// pageIndex parses pages.js into page number to sub-page count.
func (s *ndrSource) pageIndex(ctx context.Context) (map[int]int, error) {
	body, status, err := s.client.Get(ctx, s.station.BaseURL+"/pages.js")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("page index: unexpected status %d", status)
	}

	index := make(map[int]int)
	for _, match := range pagesPattern.FindAllStringSubmatch(string(body), -1) {
		page, _ := strconv.Atoi(match[1])
		subs, _ := strconv.Atoi(match[2])
		index[page] = subs
	}
	if len(index) == 0 {
		return nil, fmt.Errorf("page index is empty")
	}
	return index, nil
}
