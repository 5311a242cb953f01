package model

import (
	"errors"
	"testing"
)

// TestColorCode verifies the archive letter for every palette color,
// including the '_' fallback for unset and out-of-range values.
func TestColorCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		color Color
		want  byte
	}{
		{ColorBlack, 'b'},
		{ColorRed, 'r'},
		{ColorGreen, 'g'},
		{ColorYellow, 'y'},
		{ColorBlue, 'l'},
		{ColorMagenta, 'm'},
		{ColorCyan, 'c'},
		{ColorWhite, 'w'},
		{ColorUnset, '_'},
		{Color(42), '_'},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.color.String(), func(t *testing.T) {
			t.Parallel()
			if got := tt.color.Code(); got != tt.want {
				t.Errorf("Code() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestParseColorCode verifies that every emitted code parses back to
// the same color, and that unknown letters fail.
func TestParseColorCode(t *testing.T) {
	t.Parallel()

	t.Run("round-trips every palette color", func(t *testing.T) {
		t.Parallel()
		for c := ColorBlack; c <= ColorWhite; c++ {
			got, err := ParseColorCode(c.Code())
			if err != nil {
				t.Fatalf("ParseColorCode(%q) failed: %v", c.Code(), err)
			}
			if got != c {
				t.Errorf("ParseColorCode(%q) = %v, want %v", c.Code(), got, c)
			}
		}
	})

	t.Run("underscore parses to unset", func(t *testing.T) {
		t.Parallel()
		got, err := ParseColorCode('_')
		if err != nil {
			t.Fatalf("ParseColorCode('_') failed: %v", err)
		}
		if got != ColorUnset {
			t.Errorf("ParseColorCode('_') = %v, want unset", got)
		}
	})

	t.Run("unknown letter fails", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseColorCode('x'); !errors.Is(err, ErrUnknownColorCode) {
			t.Errorf("expected ErrUnknownColorCode, got %v", err)
		}
	})
}

// TestColorFromRGB verifies the hex-to-palette mapping stations use via
// CSS colors.
func TestColorFromRGB(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hex  string
		want Color
	}{
		{"000", ColorBlack},
		{"f00", ColorRed},
		{"0f0", ColorGreen},
		{"ff0", ColorYellow},
		{"00f", ColorBlue},
		{"f0f", ColorMagenta},
		{"0ff", ColorCyan},
		{"fff", ColorWhite},
		{"eee", ColorWhite},
		{"000000", ColorBlack},
		{"ff0000", ColorRed},
		{"ffffff", ColorWhite},
		{"cccccc", ColorWhite},
		{"101010", ColorBlack},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.hex, func(t *testing.T) {
			t.Parallel()
			got, err := ColorFromRGB(tt.hex)
			if err != nil {
				t.Fatalf("ColorFromRGB(%q) failed: %v", tt.hex, err)
			}
			if got != tt.want {
				t.Errorf("ColorFromRGB(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}

	t.Run("rejects non-hex input", func(t *testing.T) {
		t.Parallel()
		if _, err := ColorFromRGB("zzz"); !errors.Is(err, ErrUnknownColorCode) {
			t.Errorf("expected ErrUnknownColorCode, got %v", err)
		}
	})

	t.Run("rejects odd digit counts", func(t *testing.T) {
		t.Parallel()
		if _, err := ColorFromRGB("ffff"); !errors.Is(err, ErrUnknownColorCode) {
			t.Errorf("expected ErrUnknownColorCode, got %v", err)
		}
	})
}

// TestColorANSI verifies the terminal index mapping and the unset
// fallback.
func TestColorANSI(t *testing.T) {
	t.Parallel()

	if got := ColorYellow.ANSI(ColorBlack); got != 3 {
		t.Errorf("yellow ANSI index = %d, want 3", got)
	}
	if got := ColorUnset.ANSI(ColorWhite); got != 7 {
		t.Errorf("unset ANSI fallback = %d, want 7", got)
	}
}
