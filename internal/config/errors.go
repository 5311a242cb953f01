package config

import "errors"

// Configuration validation errors, matched with errors.Is.
var (
	// ErrUnknownStation is returned when a selected station name is not
	// in the catalog.
	ErrUnknownStation = errors.New("unknown station")

	// ErrInvalidStation is returned when a station definition is
	// incomplete: missing name, unknown family, or a missing dialect
	// for the styled-HTML family.
	ErrInvalidStation = errors.New("invalid station definition")

	// ErrInvalidTimeout is returned when the request timeout is not
	// positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the station concurrency is
	// not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")
)
