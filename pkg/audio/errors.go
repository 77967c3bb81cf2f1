// ABOUTME: Sentinel errors for the audio engine
// ABOUTME: Decode-boundary, trigger and sink error values
package audio

import "errors"

var (
	// ErrUnsupportedChannelLayout reports a decoded channel layout that does
	// not resolve to front-left/front-right stereo.
	ErrUnsupportedChannelLayout = errors.New("unsupported channel layout")

	// ErrUnsupportedSampleFormat reports a decoded block whose samples are
	// not interleaved 32-bit floats.
	ErrUnsupportedSampleFormat = errors.New("unsupported sample format")

	// ErrSpecMismatch reports a decoded block whose spec differs from the
	// spec the builder was created with.
	ErrSpecMismatch = errors.New("sample spec mismatch")

	// ErrSampleRateMismatch reports a sound whose rate differs from the
	// output's configured rate. No resampling is performed.
	ErrSampleRateMismatch = errors.New("sample rate mismatch")

	// ErrOutputClosed reports a play request after shutdown.
	ErrOutputClosed = errors.New("output closed")

	// ErrUnknownChannel reports a channel position the sink cannot map to a
	// backend slot.
	ErrUnknownChannel = errors.New("unknown channel position")
)
