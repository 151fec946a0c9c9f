// Package errs defines the sentinel errors shared across tbbocodec's
// packages. Callers compare against these with errors.Is; call sites add
// context with fmt.Errorf("%w: ...", errs.ErrX, ...) rather than defining
// new error types.
package errs

import "errors"

var (
	// ErrMalformedRecord is returned when a CSV line has fewer than eight
	// comma-separated fields.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrDictionaryFull is returned when a dictionary already holds 65535
	// entries and a new symbol needs an id.
	ErrDictionaryFull = errors.New("ticker dictionary full")

	// ErrUnknownTicker is returned when a decoded record references a
	// ticker id that is absent from the dictionary.
	ErrUnknownTicker = errors.New("unknown ticker id")

	// ErrTruncatedInput is returned when a compressed stream ends mid-record
	// or before the expected dictionary sentinel.
	ErrTruncatedInput = errors.New("truncated input")
)
