package model

import (
	"fmt"
	"strings"
)

// Charset markers attached to an Attribute. The decoded text is always
// already Unicode; the marker records that the glyphs originated from an
// alternate station character set. CharsetSeparated in particular marks
// the thin-box mosaic variant whose glyphs have no Unicode mapping, so
// consumers can at least detect that a charset switch occurred.
const (
	CharsetStandard  = 0
	CharsetSeparated = 1
)

// Attribute is the display attribute of one segment: a foreground and
// background color pair plus the charset marker and the double-height
// flag. Attributes are immutable values; two attributes are equal iff
// all fields match.
type Attribute struct {
	Fg           Color
	Bg           Color
	Charset      int
	DoubleHeight bool
}

// Code returns the canonical compact encoding: foreground letter,
// background letter, then an optional charset digit and an optional 'd'
// double-height suffix. Plain segments encode as exactly two letters,
// e.g. "wb" for white on black, which is the shape archived consumers
// rely on.
func (a Attribute) Code() string {
	var sb strings.Builder
	sb.WriteByte(a.Fg.Code())
	sb.WriteByte(a.Bg.Code())
	if a.Charset != CharsetStandard {
		sb.WriteByte(byte('0' + a.Charset))
	}
	if a.DoubleHeight {
		sb.WriteByte('d')
	}
	return sb.String()
}

// ParseAttribute decodes a canonical attribute code produced by Code.
func ParseAttribute(code string) (Attribute, error) {
	if len(code) < 2 {
		return Attribute{}, fmt.Errorf("%w: %q", ErrBadAttributeCode, code)
	}

	fg, err := ParseColorCode(code[0])
	if err != nil {
		return Attribute{}, err
	}
	bg, err := ParseColorCode(code[1])
	if err != nil {
		return Attribute{}, err
	}

	attr := Attribute{Fg: fg, Bg: bg}
	rest := code[2:]
	if len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
		attr.Charset = int(rest[0] - '0')
		rest = rest[1:]
	}
	if rest == "d" {
		attr.DoubleHeight = true
		rest = ""
	}
	if rest != "" {
		return Attribute{}, fmt.Errorf("%w: %q", ErrBadAttributeCode, code)
	}
	return attr, nil
}
