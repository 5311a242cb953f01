package model

import (
	"fmt"
	"strconv"
)

// Color is one of the eight teletext palette colors, or ColorUnset for
// segments that never received an explicit color from the station.
//
// The numeric values follow the classic teletext C1 control-code order
// (black=0 .. white=7), which is also the ANSI terminal color order.
type Color int8

// Teletext palette colors.
const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite

	// ColorUnset marks a foreground or background the station left
	// unspecified. It serializes as '_'.
	ColorUnset Color = -1
)

// colorCodes maps Color values to their single-letter archive codes.
// Blue uses 'l' because 'b' is taken by black.
var colorCodes = [8]byte{'b', 'r', 'g', 'y', 'l', 'm', 'c', 'w'}

// Code returns the single-letter archive code for the color.
func (c Color) Code() byte {
	if c < 0 || int(c) >= len(colorCodes) {
		return '_'
	}
	return colorCodes[c]
}

// String returns the color name for logging and error messages.
func (c Color) String() string {
	switch c {
	case ColorBlack:
		return "black"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	case ColorUnset:
		return "unset"
	default:
		return "invalid"
	}
}

// ANSI returns the 0-7 ANSI color index. ColorUnset falls back to the
// given default, which keeps terminal rendering defined for segments
// the station left uncolored.
func (c Color) ANSI(fallback Color) int {
	if c == ColorUnset {
		c = fallback
	}
	return int(c)
}

// ParseColorCode resolves a single-letter archive code back to a Color.
// Unknown codes fail rather than defaulting; a typo in an archived
// snapshot must surface, not silently recolor a page.
func ParseColorCode(b byte) (Color, error) {
	if b == '_' {
		return ColorUnset, nil
	}
	for i, code := range colorCodes {
		if code == b {
			return Color(i), nil
		}
	}
	return ColorUnset, fmt.Errorf("%w: %q", ErrUnknownColorCode, string(b))
}

// ColorFromRGB maps a 3- or 6-digit hex RGB value (without '#') onto the
// nearest teletext palette color. Stations encode their palette as CSS
// hex colors; each channel is thresholded to a bit and the three bits
// select the palette entry, e.g. "ff0" -> yellow, "eee" -> white.
func ColorFromRGB(hex string) (Color, error) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ColorUnset, fmt.Errorf("%w: %q", ErrUnknownColorCode, hex)
	}

	var r, g, b bool
	switch len(hex) {
	case 3:
		r = (v>>8)&0xf > 0x5
		g = (v>>4)&0xf > 0x5
		b = v&0xf > 0x5
	case 6:
		r = (v>>16)&0xff > 0x50
		g = (v>>8)&0xff > 0x50
		b = v&0xff > 0x50
	default:
		return ColorUnset, fmt.Errorf("%w: %q", ErrUnknownColorCode, hex)
	}

	var bits Color
	if r {
		bits |= 1
	}
	if g {
		bits |= 2
	}
	if b {
		bits |= 4
	}
	return bits, nil
}
