package charset

// g0Table builds the G0 Latin table: printable ASCII with the German
// national option characters substituted per ETS 300 706.
func g0Table() map[int]rune {
	t := make(map[int]rune, 0x60)
	for code := 0x20; code <= 0x7e; code++ {
		t[code] = rune(code)
	}
	for code, r := range map[int]rune{
		0x40: '§',
		0x5b: 'Ä',
		0x5c: 'Ö',
		0x5d: 'Ü',
		0x60: '°',
		0x7b: 'ä',
		0x7c: 'ö',
		0x7d: 'ü',
		0x7e: 'ß',
		0x7f: '■',
	} {
		t[code] = r
	}
	return t
}

// g1Table builds the contiguous block-mosaic table. G1 codes occupy
// 0x20-0x3f and 0x60-0x7f; the six mosaic cells are the low five bits
// plus bit 6 shifted down. Unicode encodes the 60 sextant shapes at
// U+1FB00 onward, with the four shapes that predate the Legacy
// Computing block (blank, half blocks, full block) living elsewhere.
func g1Table() map[int]rune {
	t := make(map[int]rune, 0x40)
	for _, span := range [][2]int{{0x20, 0x3f}, {0x60, 0x7f}} {
		for code := span[0]; code <= span[1]; code++ {
			t[code] = sextantRune(code&0x1f | (code&0x40)>>1)
		}
	}
	return t
}

// sextantRune maps a 6-bit mosaic cell pattern to its codepoint.
// Cell bits run left-right, top-bottom: bit 0 is the top-left cell,
// bit 5 the bottom-right.
func sextantRune(bits int) rune {
	switch bits {
	case 0x00:
		return ' '
	case 0x15: // left column
		return '▌'
	case 0x2a: // right column
		return '▐'
	case 0x3f:
		return '█'
	}
	// U+1FB00.. skips the blank and the two half blocks.
	offset := bits - 1
	if bits > 0x15 {
		offset--
	}
	if bits > 0x2a {
		offset--
	}
	return rune(0x1fb00 + offset)
}

// g3Table builds the smooth-mosaic table. The Legacy Computing block
// carries the teletext smooth mosaics as a contiguous run starting at
// U+1FB3C, in G3 code order from 0x20. Codes past that run (arrows and
// other late G3 additions) stay unmapped and surface as
// ErrUnmappedCharacter.
func g3Table() map[int]rune {
	t := make(map[int]rune, 0x2c)
	for i := 0; i < 0x2c; i++ {
		t[0x20+i] = rune(0x1fb3c + i)
	}
	return t
}
