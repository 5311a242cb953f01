package scrape

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/teletextarchive/ttx/internal/config"
	"github.com/teletextarchive/ttx/internal/decoder"
)

// srSource walks the Saartext service by following each page's
// next-button link, which is how the site itself exposes the page
// index. The walk ends when the next link wraps back below the current
// page.
type srSource struct {
	station config.Station
	client  *Client
	logger  *slog.Logger
}

// Walk follows next-page links from page 100.
func (s *srSource) Walk(ctx context.Context, fn func(RawPage) error) error {
	page, sub := 100, 1
	for page < 900 {
		url := fmt.Sprintf("%s/%d/%02d", s.station.BaseURL, page, sub)
		body, status, err := s.client.Get(ctx, url)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("page %d/%d: unexpected status %d", page, sub, status)
		}

		if err := fn(RawPage{Number: page, SubPage: sub, Payload: decoder.Payload{Body: body}}); err != nil {
			return err
		}

		nextPage, nextSub, err := s.nextPage(body)
		if err != nil {
			return err
		}
		if nextPage < page || (nextPage == page && nextSub == sub) {
			break
		}
		page, sub = nextPage, nextSub
	}
	return nil
}

// nextPage extracts the next-button destination from a page document.
func (s *srSource) nextPage(body []byte) (int, int, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("parse page for next link: %w", err)
	}
	href, ok := doc.Find("a#nextButton").Attr("href")
	if !ok {
		return 0, 0, fmt.Errorf("page has no next link")
	}

	parts := strings.Split(strings.Trim(href, "/"), "/")
	page, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad next link %q: %w", href, err)
	}
	sub := 1
	if len(parts) > 1 {
		sub, err = strconv.Atoi(strings.TrimLeft(parts[1], "0"))
		if err != nil {
			return 0, 0, fmt.Errorf("bad next link %q: %w", href, err)
		}
	}
	return page, sub, nil
}
