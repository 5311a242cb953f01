package charset

import "errors"

var (
	// ErrUnmappedCharacter is returned when a raw code has no Unicode
	// mapping in the requested character set.
	ErrUnmappedCharacter = errors.New("no unicode mapping for character")

	// ErrUnknownSet is returned when the requested character set itself
	// is not one of G0, G1, or G3.
	ErrUnknownSet = errors.New("unknown character set")
)
