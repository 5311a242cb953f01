// Package decoder turns raw station payloads into ordered rows of
// attributed segments.
//
// There are exactly three source format families, a closed set
// dispatched by station configuration: styled HTML (ZDF, NDR, and SR
// dialects), HTML with an external font map (3sat), and a native JSON
// feed (n-tv). All variants implement the same Decode contract and
// normalize the station's color and charset signals into the shared
// attribute model. Decoders never reorder, merge, or split rows across
// the station's stated boundaries.
package decoder
