// ABOUTME: MP3 decoder
// ABOUTME: Converts go-mp3's 16-bit little-endian output to float32 blocks
package decode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/harperreed/chime-go/pkg/audio"
)

// mp3Reader streams decoded blocks out of go-mp3. The library always emits
// interleaved 16-bit little-endian stereo at the file's sample rate, but a
// Read may stop mid-frame, so leftover bytes are carried into the next block.
type mp3Reader struct {
	dec  *mp3.Decoder
	spec audio.Spec
	buf  []byte
	rem  int // leftover bytes at the front of buf from the previous read
}

func newMP3Reader(r io.ReadSeeker) (blockReader, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("probe mp3: %w", err)
	}
	return &mp3Reader{
		dec:  dec,
		spec: audio.Spec{Rate: dec.SampleRate(), Layout: audio.LayoutStereo},
		buf:  make([]byte, 16384),
	}, nil
}

func (m *mp3Reader) Spec() audio.Spec {
	return m.spec
}

func (m *mp3Reader) Next() (audio.Block, error) {
	n, err := m.dec.Read(m.buf[m.rem:])
	if err != nil && !errors.Is(err, io.EOF) {
		return audio.Block{}, fmt.Errorf("decode mp3: %w", err)
	}
	total := m.rem + n
	if total == 0 || (n == 0 && total < 4) {
		// Done, or only a truncated final frame remains.
		return audio.Block{}, io.EOF
	}

	// One stereo frame is 4 bytes; keep any trailing partial frame around.
	whole := total - total%4
	samples := make([]float32, whole/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(m.buf[2*i:]))
		samples[i] = float32(v) / 32768
	}
	m.rem = copy(m.buf, m.buf[whole:total])

	return audio.Block{Spec: m.spec, Format: audio.FormatFloat32, Samples: samples}, nil
}
