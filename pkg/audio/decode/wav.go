// ABOUTME: WAV container decoder
// ABOUTME: Decodes 16-bit PCM WAV files into float32 blocks
package decode

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/harperreed/chime-go/pkg/audio"
)

// wavReader decodes a whole RIFF/WAVE file up front and hands it back as a
// single block. Notification sounds are short, so there is nothing to gain
// from chunked reads here.
type wavReader struct {
	spec  audio.Spec
	block *audio.Block
}

func newWAVReader(r io.ReadSeeker) (blockReader, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid wav file", ErrNoTrack)
	}

	// Anything but plain 16-bit integer PCM stays unimplemented on purpose:
	// silently truncating 24/32-bit material would lose precision without the
	// caller noticing.
	if dec.WavAudioFormat != 1 {
		return nil, fmt.Errorf("%w: wav audio format %d", audio.ErrUnsupportedSampleFormat, dec.WavAudioFormat)
	}
	if dec.BitDepth != 16 {
		return nil, fmt.Errorf("%w: wav %d-bit pcm", audio.ErrUnsupportedSampleFormat, dec.BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav data: %w", err)
	}

	spec := audio.Spec{
		Rate:   buf.Format.SampleRate,
		Layout: audio.LayoutForChannels(buf.Format.NumChannels),
	}
	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / 32768
	}

	return &wavReader{
		spec:  spec,
		block: &audio.Block{Spec: spec, Format: audio.FormatFloat32, Samples: samples},
	}, nil
}

func (w *wavReader) Spec() audio.Spec {
	return w.spec
}

func (w *wavReader) Next() (audio.Block, error) {
	if w.block == nil {
		return audio.Block{}, io.EOF
	}
	blk := *w.block
	w.block = nil
	return blk, nil
}
