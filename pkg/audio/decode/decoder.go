// ABOUTME: Decoder front door with format hint and content sniffing
// ABOUTME: Streams decoded blocks through a builder into an immutable Sound
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/chime-go/pkg/audio"
)

var (
	// ErrUnknownFormat reports input no decoder recognizes.
	ErrUnknownFormat = errors.New("unrecognized audio format")

	// ErrNoTrack reports a container with no decodable audio track.
	ErrNoTrack = errors.New("no decodable audio track")

	// ErrMultipleTracks reports a container carrying more than one audio
	// track; exactly one is required.
	ErrMultipleTracks = errors.New("multiple audio tracks")
)

// blockReader decodes one audio track as a sequence of blocks. Next returns
// io.EOF after the final block.
type blockReader interface {
	Spec() audio.Spec
	Next() (audio.Block, error)
}

type openFunc func(io.ReadSeeker) (blockReader, error)

// byExtension maps lower-case file extensions to container openers, the
// extension being a hint in the same sense a probe hint is: sniffing takes
// over when it is absent or unknown.
var byExtension = map[string]openFunc{
	"wav":  newWAVReader,
	"wave": newWAVReader,
	"mp3":  newMP3Reader,
	"flac": newFLACReader,
	"ogg":  newVorbisReader,
	"oga":  newVorbisReader,
	"opus": newOpusReader,
}

// File opens and fully decodes a sound file (e.g. mp3).
func File(path string) (*audio.Sound, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound file: %w", err)
	}
	defer f.Close()

	hint := strings.TrimPrefix(filepath.Ext(path), ".")
	sound, err := Read(f, hint)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return sound, nil
}

// Read fully decodes one sound from r. The hint is a file extension without
// the dot and may be empty.
func Read(r io.ReadSeeker, hint string) (*audio.Sound, error) {
	open, ok := byExtension[strings.ToLower(hint)]
	if !ok {
		var err error
		open, err = sniff(r)
		if err != nil {
			return nil, err
		}
	}

	br, err := open(r)
	if err != nil {
		return nil, err
	}

	builder, err := audio.NewBuilder(br.Spec())
	if err != nil {
		return nil, err
	}
	for {
		blk, err := br.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode block: %w", err)
		}
		if err := builder.Append(blk); err != nil {
			return nil, err
		}
	}
	return builder.Sound(), nil
}

// sniffLen covers every magic number we look for plus the ogg header pages
// that carry the codec id and any extra beginning-of-stream pages.
const sniffLen = 8192

// sniff inspects the first bytes of r to pick a container, rewinding r
// before returning.
func sniff(r io.ReadSeeker) (openFunc, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("probe audio input: %w", err)
	}
	head = head[:n]
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind after probe: %w", err)
	}

	switch {
	case bytes.HasPrefix(head, []byte("RIFF")):
		return newWAVReader, nil
	case bytes.HasPrefix(head, []byte("fLaC")):
		return newFLACReader, nil
	case bytes.HasPrefix(head, []byte("OggS")):
		if bytes.Contains(head, []byte("OpusHead")) {
			return newOpusReader, nil
		}
		if bytes.Contains(head, []byte("\x01vorbis")) {
			return newVorbisReader, nil
		}
		return nil, fmt.Errorf("%w: ogg container with unknown codec", ErrNoTrack)
	case bytes.HasPrefix(head, []byte("ID3")):
		return newMP3Reader, nil
	case len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0:
		// Bare MPEG frame sync, an mp3 without an ID3 tag.
		return newMP3Reader, nil
	}
	return nil, ErrUnknownFormat
}

// checkOggStreams counts beginning-of-stream pages at the front of an ogg
// container: zero means no track, more than one means the file multiplexes
// several logical streams. Rewinds r before returning.
func checkOggStreams(r io.ReadSeeker) error {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("probe ogg container: %w", err)
	}
	head = head[:n]
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind after probe: %w", err)
	}

	bos := 0
	for off := 0; ; {
		i := bytes.Index(head[off:], []byte("OggS"))
		if i < 0 {
			break
		}
		off += i
		// Page layout: "OggS", version byte, header type byte. Bit 0x02 of
		// the header type marks a beginning-of-stream page.
		if off+5 < len(head) && head[off+4] == 0 && head[off+5]&0x02 != 0 {
			bos++
		}
		off += 4
	}

	switch {
	case bos == 0:
		return fmt.Errorf("%w: no ogg stream header found", ErrNoTrack)
	case bos > 1:
		return fmt.Errorf("%w: found %d ogg streams", ErrMultipleTracks, bos)
	}
	return nil
}
