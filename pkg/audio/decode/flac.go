// ABOUTME: FLAC decoder
// ABOUTME: Emits one float32 block per FLAC frame via mewkiz/flac
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/harperreed/chime-go/pkg/audio"
)

type flacReader struct {
	stream *flac.Stream
	spec   audio.Spec
	scale  float32
}

func newFLACReader(r io.ReadSeeker) (blockReader, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("probe flac: %w", err)
	}
	info := stream.Info
	return &flacReader{
		stream: stream,
		spec: audio.Spec{
			Rate:   int(info.SampleRate),
			Layout: audio.LayoutForChannels(int(info.NChannels)),
		},
		scale: float32(int64(1) << (info.BitsPerSample - 1)),
	}, nil
}

func (f *flacReader) Spec() audio.Spec {
	return f.spec
}

func (f *flacReader) Next() (audio.Block, error) {
	frame, err := f.stream.Next()
	if errors.Is(err, io.EOF) {
		return audio.Block{}, io.EOF
	}
	if err != nil {
		return audio.Block{}, fmt.Errorf("decode flac frame: %w", err)
	}

	channels := len(frame.Subframes)
	if channels == 0 {
		return audio.Block{Spec: f.spec, Format: audio.FormatFloat32}, nil
	}
	frames := len(frame.Subframes[0].Samples)
	samples := make([]float32, frames*channels)
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			samples[i*channels+c] = float32(frame.Subframes[c].Samples[i]) / f.scale
		}
	}
	return audio.Block{Spec: f.spec, Format: audio.FormatFloat32, Samples: samples}, nil
}
