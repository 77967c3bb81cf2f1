// ABOUTME: Package documentation for core audio types
// ABOUTME: Describes sounds, specs, channel layouts and the decode boundary
// Package audio defines the core types of the chime playback engine.
//
// A Sound is an immutable, fully decoded stereo sample buffer. Decoders
// deliver audio as a sequence of Blocks (interleaved float32 samples tagged
// with their Spec); a Builder validates and accumulates Blocks and freezes
// them into a Sound. Once frozen, a Sound is safe to share across goroutines
// without locking.
//
// Example:
//
//	b, err := audio.NewBuilder(audio.Spec{Rate: 48000, Layout: audio.LayoutStereo})
//	err = b.Append(block)
//	sound := b.Sound()
package audio
