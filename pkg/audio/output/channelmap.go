// ABOUTME: Channel position to backend slot mapping
// ABOUTME: Resolved and validated once when a sink is opened
package output

import (
	"fmt"

	"github.com/harperreed/chime-go/pkg/audio"
)

// slotByPosition maps abstract channel positions to the interleaved slot the
// backends expect. The engine is stereo-only, so the table is exactly the
// two front channels; every other position is unmappable by construction.
var slotByPosition = map[audio.Position]int{
	audio.FrontLeft:  0,
	audio.FrontRight: 1,
}

// channelOrder resolves a layout to per-channel slot indices. Called once at
// open time so an unmappable layout fails the open, not a write.
func channelOrder(layout audio.Layout) ([]int, error) {
	positions := layout.Positions()
	if len(positions) != 2 {
		return nil, fmt.Errorf("%w: %s (%d channels)",
			audio.ErrUnsupportedChannelLayout, layout, len(positions))
	}
	order := make([]int, len(positions))
	for i, p := range positions {
		slot, ok := slotByPosition[p]
		if !ok {
			return nil, fmt.Errorf("%w: %s", audio.ErrUnknownChannel, p)
		}
		order[i] = slot
	}
	return order, nil
}

// interleave writes chunk into dst, one float32 per channel slot per frame.
// dst must hold 2*len(chunk) values.
func interleave(dst []float32, chunk []audio.Frame, order []int) {
	for i, f := range chunk {
		for c, slot := range order {
			dst[i*2+slot] = f[c]
		}
	}
}
