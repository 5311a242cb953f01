package charset

import (
	"fmt"
	"sync"
)

// Set selects one of the teletext character sets.
type Set int

const (
	// G0 is the primary Latin text set with the German national option
	// subset (Ä, Ö, Ü, ß, §, °).
	G0 Set = iota

	// G1 is the contiguous block-mosaic graphics set, mapped onto the
	// Unicode sextant characters in the Symbols for Legacy Computing
	// block.
	G1

	// G3 is the smooth-mosaic (line drawing) set.
	G3
)

// String returns the conventional set name.
func (s Set) String() string {
	switch s {
	case G0:
		return "G0"
	case G1:
		return "G1"
	case G3:
		return "G3"
	default:
		return fmt.Sprintf("Set(%d)", int(s))
	}
}

// tables holds the forward and reverse mappings for all sets. It is
// built exactly once; decoders only ever read it.
type tableSet struct {
	forward map[Set]map[int]rune
	reverse map[rune]Entry
}

// Entry names the set and raw code a Unicode codepoint originated from.
type Entry struct {
	Set  Set
	Code int
}

var load = sync.OnceValue(func() *tableSet {
	ts := &tableSet{
		forward: map[Set]map[int]rune{
			G0: g0Table(),
			G1: g1Table(),
			G3: g3Table(),
		},
		reverse: make(map[rune]Entry),
	}
	// Reverse entries prefer the lowest set so that e.g. the space
	// character resolves to G0 rather than the empty G1 mosaic.
	for _, set := range []Set{G3, G1, G0} {
		for code, r := range ts.forward[set] {
			ts.reverse[r] = Entry{Set: set, Code: code}
		}
	}
	return ts
})

// Map resolves a raw station character code within the given set to a
// Unicode codepoint. It fails with ErrUnmappedCharacter when the code
// has no entry.
func Map(set Set, code int) (rune, error) {
	table, ok := load().forward[set]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownSet, set)
	}
	r, ok := table[code]
	if !ok {
		return 0, fmt.Errorf("%w: %s 0x%02x", ErrUnmappedCharacter, set, code)
	}
	return r, nil
}

// Lookup is the reverse direction: given a Unicode codepoint it reports
// which set and raw code produced it. The second return is false for
// codepoints no table emits.
func Lookup(r rune) (Entry, bool) {
	e, ok := load().reverse[r]
	return e, ok
}

// Codes returns the sorted-by-nothing list of raw codes present in a
// set's table. It exists for completeness checks; callers must not
// assume any order.
func Codes(set Set) []int {
	table := load().forward[set]
	codes := make([]int, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	return codes
}
