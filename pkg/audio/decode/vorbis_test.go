// ABOUTME: Tests for the Ogg Vorbis decoder
// ABOUTME: Container-level validation before the codec sees anything
package decode

import (
	"bytes"
	"errors"
	"testing"
)

func TestVorbisWithoutOggPagesRejected(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("no container here")), "ogg")
	if !errors.Is(err, ErrNoTrack) {
		t.Fatalf("got %v, want ErrNoTrack", err)
	}
}

func TestVorbisCorruptPageRejected(t *testing.T) {
	// One well-flagged page whose payload is not a vorbis header.
	data := append(oggPage(true), []byte("garbage payload")...)
	if _, err := Read(bytes.NewReader(data), "ogg"); err == nil {
		t.Fatal("corrupt ogg accepted")
	}
}
