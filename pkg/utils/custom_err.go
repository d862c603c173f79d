package utils

import "errors"

var (
	ErrMissingCredential = errors.New("provider credential not configured")
	ErrProviderRequest   = errors.New("provider request failed")
	ErrNoDataFound       = errors.New("no data found")
	ErrMalformedInput    = errors.New("no trip details found in input")
	ErrInvalidInput      = errors.New("invalid input")
	ErrNoItinerary       = errors.New("itinerary not generated yet")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
