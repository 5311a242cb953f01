package model

import "errors"

// Value parsing errors.
// These are returned when archived or station-provided codes do not
// resolve to a known value. Decoding fails loudly instead of guessing:
// a silently substituted color or link would corrupt the archive.
var (
	// ErrUnknownColorCode is returned when a color letter or an RGB hex
	// value has no teletext palette equivalent.
	ErrUnknownColorCode = errors.New("unknown color code")

	// ErrBadAttributeCode is returned when a serialized attribute code
	// is too short or carries an unknown suffix.
	ErrBadAttributeCode = errors.New("malformed attribute code")

	// ErrInvalidLinkTarget is returned when a cross-reference destination
	// does not parse as a page number (or page/sub-page pair) in the
	// 100-899 teletext range.
	ErrInvalidLinkTarget = errors.New("invalid link target")
)
