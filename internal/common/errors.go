// Package common defines shared constants and sentinel errors used across
// the server, the client and the CLI. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Lookup outcome: no entry stored for the locality. Not a failure.
	ErrUnknown = errors.New("unknown locality")

	// Input errors (empty locality or term, malformed request).
	ErrValidation = errors.New("validation error")

	// The backing store could not be read or written.
	ErrStoreUnavailable = errors.New("store unavailable")

	// Geocoding produced no usable locality.
	ErrResolutionFailed = errors.New("resolution failed")

	// Unexpected server-side failure reported over the wire.
	ErrorInternal = errors.New("internal error")
)
