// Package charset maps station-native teletext character codes onto
// Unicode codepoints, including the "Symbols for Legacy Computing"
// block used to render mosaic graphics as text.
//
// Three character sets are supported: G0 (German Latin text), G1
// (contiguous block mosaics), and G3 (smooth mosaics). The tables are
// built once on first use and are read-only afterwards, so concurrent
// decoders need no synchronization. A raw code without an entry fails
// with ErrUnmappedCharacter instead of substituting a placeholder;
// archival fidelity beats completeness, and the caller decides whether
// to abort the page or skip it.
package charset
