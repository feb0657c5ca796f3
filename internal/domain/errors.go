package domain

import "errors"

var (
	// ErrInvalidGeometry marks malformed quads, mismatched edges, or degenerate traces.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrUnsupportedDialect is returned when no parser recognizes a raw document.
	ErrUnsupportedDialect = errors.New("unsupported dialect")

	// ErrConfiguration marks missing or unusable policy data such as the
	// tectonic boundary file.
	ErrConfiguration = errors.New("configuration error")
)
