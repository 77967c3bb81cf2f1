// ABOUTME: Oto-based sink, the default backend
// ABOUTME: Blocking writes through an io.Pipe feeding a persistent player
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/ebitengine/oto/v3"

	"github.com/harperreed/chime-go/pkg/audio"
)

// otoSink plays through oto. A persistent player drains an io.Pipe, so
// Write blocks exactly until oto has consumed the chunk.
type otoSink struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	order      []int
	buf        []byte
}

func openOto(cfg Config) (Sink, error) {
	order, err := channelOrder(cfg.Layout)
	if err != nil {
		return nil, err
	}
	if cfg.Device != "" {
		log.Printf("oto backend cannot select device %q, using the system default", cfg.Device)
	}

	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Layout.Count(),
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open oto context: %w", err)
	}
	<-ready

	pr, pw := io.Pipe()
	player := ctx.NewPlayer(pr)
	player.Play()

	return &otoSink{
		otoCtx:     ctx,
		player:     player,
		pipeReader: pr,
		pipeWriter: pw,
		order:      order,
	}, nil
}

func (s *otoSink) Write(chunk []audio.Frame) error {
	if len(chunk) == 0 {
		return nil
	}

	need := len(chunk) * 8
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	buf := s.buf[:need]
	for i, f := range chunk {
		base := i * 8
		for c, slot := range s.order {
			binary.LittleEndian.PutUint32(buf[base+slot*4:], math.Float32bits(f[c]))
		}
	}

	if _, err := s.pipeWriter.Write(buf); err != nil {
		return fmt.Errorf("write to audio output: %w", err)
	}
	return nil
}

func (s *otoSink) Close() error {
	err := s.pipeWriter.Close()
	if cerr := s.player.Close(); err == nil {
		err = cerr
	}
	if cerr := s.pipeReader.Close(); err == nil {
		err = cerr
	}
	// oto allows one context per process; suspend instead of tearing down.
	if cerr := s.otoCtx.Suspend(); err == nil {
		err = cerr
	}
	return err
}
