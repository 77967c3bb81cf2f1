// ABOUTME: Tests for the WAV decoder
// ABOUTME: Covers the 16-bit PCM happy path and the fail-fast boundaries
package decode

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/chime-go/pkg/audio"
)

func TestWAVMonoRejected(t *testing.T) {
	path := writeWAV(t, "mono.wav", 48000, 1, 16, []int{100, 200, 300})
	_, err := File(path)
	if !errors.Is(err, audio.ErrUnsupportedChannelLayout) {
		t.Fatalf("got %v, want ErrUnsupportedChannelLayout", err)
	}
}

func TestWAV24BitRejected(t *testing.T) {
	// Higher bit depths are a deliberate scope boundary, not a rounding
	// policy; they must fail instead of silently truncating.
	path := writeWAV(t, "hires.wav", 96000, 2, 24, []int{1 << 20, -(1 << 20)})
	_, err := File(path)
	if !errors.Is(err, audio.ErrUnsupportedSampleFormat) {
		t.Fatalf("got %v, want ErrUnsupportedSampleFormat", err)
	}
}

func TestWAVGarbageRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.wav")
	if err := os.WriteFile(path, []byte("RIFF but not really a wave file"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := File(path); err == nil {
		t.Fatal("garbage wav accepted")
	}
}

func TestWAVEmptyDataPlaysAsZeroLengthSound(t *testing.T) {
	path := writeWAV(t, "empty.wav", 48000, 2, 16, nil)
	sound, err := File(path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if sound.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", sound.Len())
	}
}
