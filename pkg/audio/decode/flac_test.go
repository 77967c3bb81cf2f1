// ABOUTME: Tests for the FLAC decoder
// ABOUTME: Probe failures surface instead of producing garbage audio
package decode

import (
	"bytes"
	"testing"
)

func TestFLACGarbageRejected(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("nothing flac about this")), "flac")
	if err == nil {
		t.Fatal("garbage flac accepted")
	}
}

func TestFLACTruncatedStreamRejected(t *testing.T) {
	// Correct magic, nothing after it.
	_, err := Read(bytes.NewReader([]byte("fLaC")), "flac")
	if err == nil {
		t.Fatal("truncated flac accepted")
	}
}
