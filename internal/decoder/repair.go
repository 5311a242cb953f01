package decoder

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// repairEncoding undoes the UTF-8-as-Latin-1 mojibake present in the
// ZDF feed's historic output ("KÃ¶ln" for "Köln"). If the whole text
// survives an encode back to the single-byte charset and the resulting
// bytes are valid UTF-8, the text was double-decoded and the round trip
// restores it. Clean input comes back unchanged: real umlauts encode to
// bytes that are not valid UTF-8, so the repair is rejected.
func repairEncoding(body []byte) []byte {
	for _, cm := range []*charmap.Charmap{charmap.Windows1252, charmap.ISO8859_1} {
		raw, err := cm.NewEncoder().Bytes(body)
		if err != nil {
			continue
		}
		if !utf8.Valid(raw) {
			continue
		}
		// Pure ASCII round-trips to itself; only accept an actual change.
		if string(raw) == string(body) {
			return body
		}
		return raw
	}
	return body
}
