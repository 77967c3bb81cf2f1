// ABOUTME: Immutable decoded sound buffers and their builder
// ABOUTME: Builder accumulates decoded blocks, Sound freezes them for sharing
package audio

import (
	"fmt"
	"time"
)

// Builder accumulates decoded blocks into a sample buffer. It is not safe
// for concurrent use; decode on one goroutine, then freeze with Sound().
type Builder struct {
	spec   Spec
	frames []Frame
}

// NewBuilder creates a builder for the given spec. The spec's layout must be
// exactly front-left/front-right stereo; everything else is rejected here so
// the mixer never sees a non-stereo buffer.
func NewBuilder(spec Spec) (*Builder, error) {
	if spec.Layout != LayoutStereo {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChannelLayout, spec.Layout)
	}
	if spec.Rate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", spec.Rate)
	}
	return &Builder{spec: spec}, nil
}

// Append validates one decoded block and adds its frames to the buffer.
// Blocks must be interleaved 32-bit float and carry the builder's spec; a
// zero-frame block is accepted and contributes nothing.
func (b *Builder) Append(blk Block) error {
	if blk.Format != FormatFloat32 {
		return fmt.Errorf("%w: %s", ErrUnsupportedSampleFormat, blk.Format)
	}
	if blk.Spec != b.spec {
		return fmt.Errorf("%w: builder %d Hz %s, block %d Hz %s",
			ErrSpecMismatch, b.spec.Rate, b.spec.Layout, blk.Spec.Rate, blk.Spec.Layout)
	}
	if len(blk.Samples)%2 != 0 {
		return fmt.Errorf("stereo block has odd sample count %d", len(blk.Samples))
	}
	for i := 0; i+1 < len(blk.Samples); i += 2 {
		b.frames = append(b.frames, Frame{blk.Samples[i], blk.Samples[i+1]})
	}
	return nil
}

// Sound freezes the accumulated frames into an immutable sound. The builder
// gives up its buffer; further Append calls start a new one.
func (b *Builder) Sound() *Sound {
	s := &Sound{frames: b.frames, spec: b.spec}
	b.frames = nil
	return s
}

// Sound is a fully decoded stereo sample buffer. The frame slice is shared
// by every playing instance and is never mutated after the sound is handed
// to an output; SetVolume is the single sanctioned exception and must happen
// before that point.
type Sound struct {
	frames []Frame
	spec   Spec
}

// Spec returns the sound's sample spec.
func (s *Sound) Spec() Spec {
	return s.spec
}

// Frames returns the shared decoded frames. Callers must treat the slice as
// read-only.
func (s *Sound) Frames() []Frame {
	return s.frames
}

// Len returns the sound's length in frames.
func (s *Sound) Len() int {
	return len(s.frames)
}

// Duration returns the sound's playback duration at its native rate.
func (s *Sound) Duration() time.Duration {
	return FramesDuration(len(s.frames), s.spec.Rate)
}

// SetVolume scales every sample on both channels by factor, in place. Call
// it at most once, before the sound is shared with an output; mutating a
// sound that is already playing is a logic error.
func (s *Sound) SetVolume(factor float32) {
	for i := range s.frames {
		s.frames[i][0] *= factor
		s.frames[i][1] *= factor
	}
}
