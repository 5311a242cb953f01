package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Link is a cross-reference to another teletext page. SubPage is zero
// when the destination names only a page number.
type Link struct {
	Page    int
	SubPage int
}

// String renders the link target the way stations display it.
func (l Link) String() string {
	if l.SubPage > 0 {
		return fmt.Sprintf("%d/%d", l.Page, l.SubPage)
	}
	return strconv.Itoa(l.Page)
}

// ParseLinkTarget parses a link destination such as "101" or "101/5"
// strictly as integers. Teletext pages live in the 100-899 range;
// anything else fails with ErrInvalidLinkTarget so the caller can decide
// to degrade the segment to plain text (keeping the label) rather than
// invent a destination.
func ParseLinkTarget(s string) (Link, error) {
	parts := strings.Split(strings.Trim(strings.TrimSpace(s), "/"), "/")
	if len(parts) == 0 || len(parts) > 2 {
		return Link{}, fmt.Errorf("%w: %q", ErrInvalidLinkTarget, s)
	}

	page, err := strconv.Atoi(parts[0])
	if err != nil || page < 100 || page > 899 {
		return Link{}, fmt.Errorf("%w: %q", ErrInvalidLinkTarget, s)
	}
	link := Link{Page: page}

	if len(parts) == 2 {
		// Sub-pages are often zero-padded ("02") in station URLs.
		sub, err := strconv.Atoi(strings.TrimLeft(parts[1], "0"))
		if err != nil || sub < 1 {
			return Link{}, fmt.Errorf("%w: %q", ErrInvalidLinkTarget, s)
		}
		link.SubPage = sub
	}
	return link, nil
}

// Segment is a run of characters within a row that shares one attribute.
// Text holds the already charset-mapped Unicode content with its exact
// column width, spaces included. Link is non-nil when the station marked
// the run as a cross-reference; the text then doubles as the link label.
type Segment struct {
	Attr Attribute
	Text string
	Link *Link
}

// Equal reports whether two segments match in attribute, text, and link.
func (s Segment) Equal(other Segment) bool {
	return s.Text == other.Text && s.sameAttr(other)
}

// sameAttr reports whether two segments could be coalesced: equal
// attribute and equal link target.
func (s Segment) sameAttr(other Segment) bool {
	if s.Attr != other.Attr {
		return false
	}
	if (s.Link == nil) != (other.Link == nil) {
		return false
	}
	return s.Link == nil || *s.Link == *other.Link
}
