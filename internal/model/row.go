package model

import "unicode/utf8"

// Row is the ordered sequence of segments making up one display line.
// Concatenating the segment texts reconstructs the full fixed-width
// line: no gaps, no overlaps.
type Row []Segment

// Width returns the total column count of the row, i.e. the rune count
// of all segment texts. Teletext glyphs map onto single Unicode
// codepoints, so rune count equals grid columns.
func (r Row) Width() int {
	var n int
	for _, seg := range r {
		n += utf8.RuneCountInString(seg.Text)
	}
	return n
}

// Text returns the plain concatenated content of the row.
func (r Row) Text() string {
	var sb []byte
	for _, seg := range r {
		sb = append(sb, seg.Text...)
	}
	return string(sb)
}

// Coalesce merges adjacent segments that share the same attribute and
// link target into one segment. Serialized rows never contain two
// consecutive segments with equal attributes; calling Coalesce on an
// already-coalesced row returns an equal row.
func (r Row) Coalesce() Row {
	if len(r) < 2 {
		return r
	}
	out := make(Row, 0, len(r))
	cur := r[0]
	for _, seg := range r[1:] {
		if seg.sameAttr(cur) {
			cur.Text += seg.Text
			continue
		}
		out = append(out, cur)
		cur = seg
	}
	return append(out, cur)
}

// Equal reports whether two rows have the same segments.
func (r Row) Equal(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if !r[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
