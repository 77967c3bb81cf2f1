// ABOUTME: Tests for the channel-position mapping
// ABOUTME: Verifies open-time validation of layouts and interleaving
package output

import (
	"errors"
	"testing"

	"github.com/harperreed/chime-go/pkg/audio"
)

func TestChannelOrderStereo(t *testing.T) {
	order, err := channelOrder(audio.LayoutStereo)
	if err != nil {
		t.Fatalf("channelOrder: %v", err)
	}
	if len(order) != 2 || order[0] != 0 || order[1] != 1 {
		t.Fatalf("order = %v, want [0 1]", order)
	}
}

func TestChannelOrderRejectsNonStereoCounts(t *testing.T) {
	if _, err := channelOrder(audio.LayoutMono); !errors.Is(err, audio.ErrUnsupportedChannelLayout) {
		t.Errorf("mono: got %v, want ErrUnsupportedChannelLayout", err)
	}
	threeCh := audio.Layout(audio.FrontLeft | audio.FrontRight | audio.FrontCenter)
	if _, err := channelOrder(threeCh); !errors.Is(err, audio.ErrUnsupportedChannelLayout) {
		t.Errorf("3 channels: got %v, want ErrUnsupportedChannelLayout", err)
	}
}

func TestChannelOrderRejectsUnmappablePositions(t *testing.T) {
	rear := audio.Layout(audio.RearLeft | audio.RearRight)
	_, err := channelOrder(rear)
	if !errors.Is(err, audio.ErrUnknownChannel) {
		t.Fatalf("got %v, want ErrUnknownChannel", err)
	}
}

func TestInterleave(t *testing.T) {
	chunk := []audio.Frame{{0.1, 0.2}, {0.3, 0.4}}
	dst := make([]float32, 4)
	interleave(dst, chunk, []int{0, 1})

	want := []float32{0.1, 0.2, 0.3, 0.4}
	for i, v := range dst {
		if v != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, v, want[i])
		}
	}
}
