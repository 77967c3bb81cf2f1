//go:build portaudio

// ABOUTME: PortAudio sink implementation
// ABOUTME: Blocking stream writes in fixed-size buffers
package output

import (
	"fmt"
	"log"

	"github.com/gordonklaus/portaudio"

	"github.com/harperreed/chime-go/pkg/audio"
)

type paSink struct {
	stream *portaudio.Stream
	buf    []float32
	frames int
	order  []int
}

func openPortAudio(cfg Config) (Sink, error) {
	order, err := channelOrder(cfg.Layout)
	if err != nil {
		return nil, err
	}
	if cfg.Device != "" {
		log.Printf("portaudio backend cannot select device %q, using the system default", cfg.Device)
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}

	buf := make([]float32, cfg.BufferFrames*2)
	stream, err := portaudio.OpenDefaultStream(0, 2, float64(cfg.SampleRate), cfg.BufferFrames, buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open portaudio stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("start portaudio stream: %w", err)
	}

	return &paSink{stream: stream, buf: buf, frames: cfg.BufferFrames, order: order}, nil
}

func (s *paSink) Write(chunk []audio.Frame) error {
	for len(chunk) > 0 {
		n := s.frames
		if n > len(chunk) {
			n = len(chunk)
		}
		interleave(s.buf, chunk[:n], s.order)
		// A short tail still flushes a full backend buffer; pad with silence.
		zeroFill(s.buf[n*2:])
		if err := s.stream.Write(); err != nil {
			return fmt.Errorf("write to portaudio stream: %w", err)
		}
		chunk = chunk[n:]
	}
	return nil
}

func (s *paSink) Close() error {
	err := s.stream.Stop()
	if cerr := s.stream.Close(); err == nil {
		err = cerr
	}
	if cerr := portaudio.Terminate(); err == nil {
		err = cerr
	}
	return err
}
