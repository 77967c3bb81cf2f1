// ABOUTME: Tests for the decoder front door
// ABOUTME: Covers extension hints, content sniffing and ogg stream counting
package decode

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/harperreed/chime-go/pkg/audio"
)

// writeWAV writes a PCM wav fixture and returns its path.
func writeWAV(t *testing.T, name string, rate, channels, bitDepth int, samples []int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	enc := wav.NewEncoder(f, rate, bitDepth, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}
	return path
}

func TestFileDecodesWAV(t *testing.T) {
	// 16384/32768 = 0.5 and 8192/32768 = 0.25, exact in float32.
	path := writeWAV(t, "ding.wav", 48000, 2, 16, []int{16384, -16384, 8192, -8192})

	sound, err := File(path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if got := sound.Spec(); got.Rate != 48000 || got.Layout != audio.LayoutStereo {
		t.Fatalf("Spec() = %+v", got)
	}
	want := []audio.Frame{{0.5, -0.5}, {0.25, -0.25}}
	if sound.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", sound.Len(), len(want))
	}
	for i, f := range sound.Frames() {
		if f != want[i] {
			t.Errorf("frame %d = %v, want %v", i, f, want[i])
		}
	}
}

func TestReadSniffsWithoutHint(t *testing.T) {
	path := writeWAV(t, "hint-less", 44100, 2, 16, []int{100, -100})
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	sound, err := Read(f, "")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if sound.Spec().Rate != 44100 {
		t.Errorf("rate = %d, want 44100", sound.Spec().Rate)
	}
}

func TestSniffMagicNumbers(t *testing.T) {
	tests := []struct {
		name string
		head []byte
	}{
		{"riff", []byte("RIFFxxxxWAVEfmt ")},
		{"flac", []byte("fLaCxxxx")},
		{"id3", []byte("ID3\x04xxxx")},
		{"mpeg sync", []byte{0xFF, 0xFB, 0x90, 0x00}},
		{"ogg vorbis", append(oggPage(true), []byte("\x01vorbis")...)},
		{"ogg opus", append(oggPage(true), []byte("OpusHead")...)},
	}
	for _, tt := range tests {
		open, err := sniff(bytes.NewReader(tt.head))
		if err != nil {
			t.Errorf("%s: sniff failed: %v", tt.name, err)
			continue
		}
		if open == nil {
			t.Errorf("%s: no opener", tt.name)
		}
	}
}

func TestSniffUnknownInput(t *testing.T) {
	_, err := sniff(bytes.NewReader([]byte("definitely not audio data")))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("got %v, want ErrUnknownFormat", err)
	}
}

func TestSniffOggWithUnknownCodec(t *testing.T) {
	_, err := sniff(bytes.NewReader(append(oggPage(true), []byte("speex???")...)))
	if !errors.Is(err, ErrNoTrack) {
		t.Fatalf("got %v, want ErrNoTrack", err)
	}
}

// oggPage builds a minimal 27-byte ogg page header with no segments.
func oggPage(bos bool) []byte {
	page := make([]byte, 27)
	copy(page, "OggS")
	page[4] = 0 // stream structure version
	if bos {
		page[5] = 0x02 // beginning-of-stream flag
	}
	return page
}

func TestCheckOggStreams(t *testing.T) {
	single := oggPage(true)
	if err := checkOggStreams(bytes.NewReader(single)); err != nil {
		t.Errorf("single stream: %v", err)
	}

	multiplexed := append(oggPage(true), oggPage(true)...)
	if err := checkOggStreams(bytes.NewReader(multiplexed)); !errors.Is(err, ErrMultipleTracks) {
		t.Errorf("two streams: got %v, want ErrMultipleTracks", err)
	}

	continuation := append(oggPage(true), oggPage(false)...)
	if err := checkOggStreams(bytes.NewReader(continuation)); err != nil {
		t.Errorf("stream with continuation page: %v", err)
	}

	if err := checkOggStreams(bytes.NewReader([]byte("no pages here"))); !errors.Is(err, ErrNoTrack) {
		t.Errorf("no pages: got %v, want ErrNoTrack", err)
	}
}

func TestReadRejectsMultiplexedOgg(t *testing.T) {
	data := append(oggPage(true), oggPage(true)...)
	_, err := Read(bytes.NewReader(data), "ogg")
	if !errors.Is(err, ErrMultipleTracks) {
		t.Fatalf("got %v, want ErrMultipleTracks", err)
	}
}
