// ABOUTME: Core audio type definitions
// ABOUTME: Sample specs, channel layouts, sample formats and decoded blocks
package audio

import (
	"math/bits"
	"strings"
	"time"
)

// Position identifies a single abstract speaker position. Positions form a
// closed set; backends translate them to their own positional tags.
type Position uint32

const (
	Mono Position = 1 << iota
	FrontLeft
	FrontRight
	FrontCenter
	LFE
	RearLeft
	RearRight
	RearCenter
	SideLeft
	SideRight
	TopCenter
	TopFrontLeft
	TopFrontCenter
	TopFrontRight
)

var positionNames = map[Position]string{
	Mono:           "mono",
	FrontLeft:      "front-left",
	FrontRight:     "front-right",
	FrontCenter:    "front-center",
	LFE:            "lfe",
	RearLeft:       "rear-left",
	RearRight:      "rear-right",
	RearCenter:     "rear-center",
	SideLeft:       "side-left",
	SideRight:      "side-right",
	TopCenter:      "top-center",
	TopFrontLeft:   "top-front-left",
	TopFrontCenter: "top-front-center",
	TopFrontRight:  "top-front-right",
}

func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return "unknown"
}

// Layout is a set of channel positions, in interleave order from the lowest
// bit up.
type Layout uint32

// Common layouts.
const (
	LayoutMono   = Layout(Mono)
	LayoutStereo = Layout(FrontLeft | FrontRight)
)

// LayoutForChannels maps a plain channel count, as reported by decoders that
// carry no position metadata, to the conventional layout.
func LayoutForChannels(n int) Layout {
	switch n {
	case 1:
		return LayoutMono
	case 2:
		return LayoutStereo
	default:
		return 0
	}
}

// Count returns the number of channels in the layout.
func (l Layout) Count() int {
	return bits.OnesCount32(uint32(l))
}

// Positions returns the layout's positions in interleave order.
func (l Layout) Positions() []Position {
	positions := make([]Position, 0, l.Count())
	for bit := Position(1); bit != 0 && Layout(bit) <= l; bit <<= 1 {
		if uint32(l)&uint32(bit) != 0 {
			positions = append(positions, bit)
		}
	}
	return positions
}

func (l Layout) String() string {
	if l == 0 {
		return "none"
	}
	names := make([]string, 0, l.Count())
	for _, p := range l.Positions() {
		names = append(names, p.String())
	}
	return strings.Join(names, "|")
}

// SampleFormat identifies the in-memory representation of decoded samples.
// The engine consumes only Float32; other formats exist so decoders can
// report what they found before the engine rejects it.
type SampleFormat int

const (
	FormatUnknown SampleFormat = iota
	FormatFloat32
	FormatInt16
	FormatInt24
	FormatInt32
)

func (f SampleFormat) String() string {
	switch f {
	case FormatFloat32:
		return "f32"
	case FormatInt16:
		return "s16"
	case FormatInt24:
		return "s24"
	case FormatInt32:
		return "s32"
	default:
		return "unknown"
	}
}

// Spec describes a PCM stream: its sample rate and channel layout.
type Spec struct {
	Rate   int
	Layout Layout
}

// Channels returns the channel count of the spec's layout.
func (s Spec) Channels() int {
	return s.Layout.Count()
}

// Frame is one stereo sample frame: front-left, front-right.
type Frame [2]float32

// Block is one decoded run of interleaved samples as delivered by a decoder,
// tagged with its spec and sample format. Samples is only populated for
// FormatFloat32 blocks.
type Block struct {
	Spec    Spec
	Format  SampleFormat
	Samples []float32
}

// Frames returns the number of whole frames in the block.
func (b Block) Frames() int {
	if ch := b.Spec.Channels(); ch > 0 {
		return len(b.Samples) / ch
	}
	return 0
}

// FramesDuration converts a frame count at the given rate to wall-clock time.
func FramesDuration(frames, rate int) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(rate)
}
