// ABOUTME: Audio sink package documentation
// ABOUTME: Describes the blocking-write sink contract and its backends
// Package output adapts hardware audio backends to a single blocking-write
// Sink contract.
//
// A Sink accepts fixed-cadence chunks of interleaved stereo frames and blocks
// until the backend has taken them; pacing is the caller's job. Backends:
// oto (default, cross-platform), pulse (PulseAudio native protocol, supports
// device selection) and portaudio (behind -tags portaudio).
package output
