// ABOUTME: Ogg Vorbis decoder
// ABOUTME: Streams native float32 samples via jfreymuth/oggvorbis
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/harperreed/chime-go/pkg/audio"
)

type vorbisReader struct {
	dec  *oggvorbis.Reader
	spec audio.Spec
	buf  []float32
}

func newVorbisReader(r io.ReadSeeker) (blockReader, error) {
	if err := checkOggStreams(r); err != nil {
		return nil, err
	}
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("probe ogg/vorbis: %w", err)
	}
	return &vorbisReader{
		dec: dec,
		spec: audio.Spec{
			Rate:   dec.SampleRate(),
			Layout: audio.LayoutForChannels(dec.Channels()),
		},
		buf: make([]float32, 8192),
	}, nil
}

func (v *vorbisReader) Spec() audio.Spec {
	return v.spec
}

func (v *vorbisReader) Next() (audio.Block, error) {
	n, err := v.dec.Read(v.buf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return audio.Block{}, fmt.Errorf("decode vorbis: %w", err)
		}
		return audio.Block{}, io.EOF
	}
	samples := make([]float32, n)
	copy(samples, v.buf[:n])
	return audio.Block{Spec: v.spec, Format: audio.FormatFloat32, Samples: samples}, nil
}
