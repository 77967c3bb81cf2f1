// ABOUTME: Sink interface and backend dispatch
// ABOUTME: Opens exactly one output stream per config
package output

import (
	"fmt"

	"github.com/harperreed/chime-go/pkg/audio"
)

// DefaultBufferFrames is the backend buffer granularity used when the config
// does not say otherwise.
const DefaultBufferFrames = 1024

// Sink is one opened hardware output stream.
type Sink interface {
	// Write hands one chunk of stereo frames to the backend, blocking until
	// the backend has taken it. An empty chunk is a no-op.
	Write(chunk []audio.Frame) error

	// Close tears the stream down. The sink must not be written after Close.
	Close() error
}

// Config selects and parameterizes a backend.
type Config struct {
	SampleRate int

	// Layout of the frames handed to Write. Defaults to stereo, which is
	// also the only layout the backends accept.
	Layout audio.Layout

	// Device is a backend-specific output selector; empty means the system
	// default. Honored by the pulse backend, ignored with a warning by the
	// others.
	Device string

	// Backend is "oto" (default), "pulse" or "portaudio".
	Backend string

	// BufferFrames is the backend buffer granularity in frames.
	BufferFrames int
}

func (c Config) withDefaults() Config {
	if c.Layout == 0 {
		c.Layout = audio.LayoutStereo
	}
	if c.BufferFrames <= 0 {
		c.BufferFrames = DefaultBufferFrames
	}
	if c.Backend == "" {
		c.Backend = "oto"
	}
	return c
}

// Open opens exactly one output stream for the given config. It fails
// synchronously if the spec is invalid for the backend or the device cannot
// be opened.
func Open(cfg Config) (Sink, error) {
	cfg = cfg.withDefaults()
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", cfg.SampleRate)
	}
	switch cfg.Backend {
	case "oto":
		return openOto(cfg)
	case "pulse":
		return openPulse(cfg)
	case "portaudio":
		return openPortAudio(cfg)
	default:
		return nil, fmt.Errorf("unknown audio backend %q", cfg.Backend)
	}
}
