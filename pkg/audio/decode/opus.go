// ABOUTME: Ogg Opus decoder
// ABOUTME: Streams float32 samples out of libopusfile via hraban/opus
package decode

import (
	"errors"
	"fmt"
	"io"

	opus "gopkg.in/hraban/opus.v2"

	"github.com/harperreed/chime-go/pkg/audio"
)

// opusMaxFrame is the largest opus packet: 120 ms at 48 kHz, per channel.
const opusMaxFrame = 5760

type opusReader struct {
	stream *opus.Stream
	spec   audio.Spec
	pcm    []float32
}

func newOpusReader(r io.ReadSeeker) (blockReader, error) {
	if err := checkOggStreams(r); err != nil {
		return nil, err
	}
	stream, err := opus.NewStream(r)
	if err != nil {
		return nil, fmt.Errorf("probe ogg/opus: %w", err)
	}
	// libopusfile always plays opus out at 48 kHz. Stereo is assumed and
	// enforced downstream; mono files should be exported as stereo.
	return &opusReader{
		stream: stream,
		spec:   audio.Spec{Rate: 48000, Layout: audio.LayoutStereo},
		pcm:    make([]float32, opusMaxFrame*2),
	}, nil
}

func (o *opusReader) Spec() audio.Spec {
	return o.spec
}

func (o *opusReader) Next() (audio.Block, error) {
	n, err := o.stream.ReadFloat32(o.pcm)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return audio.Block{}, fmt.Errorf("decode opus: %w", err)
		}
		return audio.Block{}, io.EOF
	}
	// n counts samples per channel.
	samples := make([]float32, n*2)
	copy(samples, o.pcm[:n*2])
	return audio.Block{Spec: o.spec, Format: audio.FormatFloat32, Samples: samples}, nil
}
