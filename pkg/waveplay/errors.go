// ABOUTME: Sentinel errors for the engine API
// ABOUTME: Distinguishes the missing-source, validation and closed failure classes
package waveplay

import "errors"

var (
	// ErrNoSource indicates playback was requested without a buffer
	ErrNoSource = errors.New("waveplay: no source buffer set")

	// ErrInvalidRange indicates the configured offsets or parameters
	// violate their ordering requirements
	ErrInvalidRange = errors.New("waveplay: invalid playback range")

	// ErrClosed indicates an operation on a closed engine
	ErrClosed = errors.New("waveplay: engine closed")
)
