package decoder

import "errors"

var (
	// ErrMalformedPayload is returned when a payload's structure does
	// not match the expected shape for the station: missing markup
	// nodes, wrong JSON shape, or a missing font map. The failure is
	// fatal for the page, not for the run.
	ErrMalformedPayload = errors.New("malformed station payload")
)
