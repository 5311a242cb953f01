package charset

import (
	"errors"
	"testing"
	"unicode/utf8"
)

// TestMapKnownCodes spot-checks the anchor points of every table: the
// ASCII passthrough, the German national option characters, and the
// mosaic runs.
func TestMapKnownCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		set  Set
		code int
		want rune
	}{
		{"G0 space", G0, 0x20, ' '},
		{"G0 letter", G0, 0x41, 'A'},
		{"G0 section sign", G0, 0x40, '§'},
		{"G0 A umlaut", G0, 0x5b, 'Ä'},
		{"G0 o umlaut", G0, 0x7c, 'ö'},
		{"G0 sharp s", G0, 0x7e, 'ß'},
		{"G0 degree", G0, 0x60, '°'},
		{"G0 filled box", G0, 0x7f, '■'},
		{"G1 blank", G1, 0x20, ' '},
		{"G1 first sextant", G1, 0x21, '\U0001FB00'},
		{"G1 left half", G1, 0x35, '▌'},
		{"G1 right half", G1, 0x6a, '▐'},
		{"G1 full block", G1, 0x7f, '█'},
		{"G1 bottom-right sextant", G1, 0x60, '\U0001FB1E'},
		{"G3 first", G3, 0x20, '\U0001FB3C'},
		{"G3 last", G3, 0x4b, '\U0001FB67'},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Map(tt.set, tt.code)
			if err != nil {
				t.Fatalf("Map(%s, 0x%02x) failed: %v", tt.set, tt.code, err)
			}
			if got != tt.want {
				t.Errorf("Map(%s, 0x%02x) = %q, want %q", tt.set, tt.code, got, tt.want)
			}
		})
	}
}

// TestMapUnmapped verifies that absent codes fail instead of producing
// a substitute glyph.
func TestMapUnmapped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		set  Set
		code int
	}{
		{"G0 control code", G0, 0x1f},
		{"G0 past table", G0, 0x80},
		{"G1 capital letter range", G1, 0x41},
		{"G3 past run", G3, 0x4c},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Map(tt.set, tt.code); !errors.Is(err, ErrUnmappedCharacter) {
				t.Errorf("Map(%s, 0x%02x) = %v, want ErrUnmappedCharacter", tt.set, tt.code, err)
			}
		})
	}

	t.Run("unknown set", func(t *testing.T) {
		t.Parallel()
		if _, err := Map(Set(9), 0x20); !errors.Is(err, ErrUnknownSet) {
			t.Errorf("expected ErrUnknownSet, got %v", err)
		}
	})
}

// TestTablesComplete verifies that every code each set claims actually
// maps to a single valid codepoint, and that G1 never collides two
// codes onto different sextants by accident: distinct cell patterns
// must produce distinct runes.
func TestTablesComplete(t *testing.T) {
	t.Parallel()

	for _, set := range []Set{G0, G1, G3} {
		set := set
		t.Run(set.String(), func(t *testing.T) {
			t.Parallel()
			codes := Codes(set)
			if len(codes) == 0 {
				t.Fatalf("%s table is empty", set)
			}
			for _, code := range codes {
				r, err := Map(set, code)
				if err != nil {
					t.Fatalf("Map(%s, 0x%02x) failed: %v", set, code, err)
				}
				if !utf8.ValidRune(r) {
					t.Errorf("Map(%s, 0x%02x) produced invalid rune %v", set, code, r)
				}
			}
		})
	}

	t.Run("G1 covers both code spans", func(t *testing.T) {
		t.Parallel()
		if got := len(Codes(G1)); got != 0x40 {
			t.Errorf("G1 table has %d codes, want 64", got)
		}
	})

	t.Run("G1 low and high spans repeat the same shapes", func(t *testing.T) {
		t.Parallel()
		// Codes 0x20-0x3f and 0x60-0x7f differ only in bit 6, which is
		// the sixth mosaic cell; patterns within one span are unique.
		seen := make(map[rune]int)
		for code := 0x20; code <= 0x3f; code++ {
			r, err := Map(G1, code)
			if err != nil {
				t.Fatalf("Map(G1, 0x%02x) failed: %v", code, err)
			}
			if prev, dup := seen[r]; dup {
				t.Errorf("codes 0x%02x and 0x%02x both map to %q", prev, code, r)
			}
			seen[r] = code
		}
	})
}

// TestLookup verifies the reverse mapping, including the G0-wins rule
// for the shared space character.
func TestLookup(t *testing.T) {
	t.Parallel()

	t.Run("round-trips every table entry", func(t *testing.T) {
		t.Parallel()
		for _, set := range []Set{G0, G1, G3} {
			for _, code := range Codes(set) {
				r, err := Map(set, code)
				if err != nil {
					t.Fatalf("Map(%s, 0x%02x) failed: %v", set, code, err)
				}
				entry, ok := Lookup(r)
				if !ok {
					t.Fatalf("Lookup(%q) found nothing", r)
				}
				back, err := Map(entry.Set, entry.Code)
				if err != nil || back != r {
					t.Errorf("Lookup(%q) -> (%s, 0x%02x) does not map back", r, entry.Set, entry.Code)
				}
			}
		}
	})

	t.Run("space resolves to G0", func(t *testing.T) {
		t.Parallel()
		entry, ok := Lookup(' ')
		if !ok || entry.Set != G0 {
			t.Errorf("Lookup(' ') = %+v, %v; want G0 entry", entry, ok)
		}
	})

	t.Run("unmapped rune reports false", func(t *testing.T) {
		t.Parallel()
		if _, ok := Lookup('→'); ok {
			t.Error("Lookup('→') unexpectedly found an entry")
		}
	})
}
