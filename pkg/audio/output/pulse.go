// ABOUTME: PulseAudio sink via the native protocol
// ABOUTME: Callback stream fed from a small channel for write backpressure
package output

import (
	"fmt"
	"sync"

	"github.com/jfreymuth/pulse"

	"github.com/harperreed/chime-go/pkg/audio"
)

// pulseSink plays through a PulseAudio server. The stream pulls samples in a
// callback; Write pushes interleaved chunks into a small channel, so a slow
// server backpressures the writer while an idle gap plays silence instead of
// underrunning the stream.
type pulseSink struct {
	client *pulse.Client
	stream *pulse.PlaybackStream
	ch     chan []float32
	order  []int

	pending []float32 // callback-side remainder of the current chunk

	closeOnce sync.Once
}

func openPulse(cfg Config) (Sink, error) {
	order, err := channelOrder(cfg.Layout)
	if err != nil {
		return nil, err
	}

	client, err := pulse.NewClient(pulse.ClientApplicationName("chime"))
	if err != nil {
		return nil, fmt.Errorf("connect to pulseaudio: %w", err)
	}

	s := &pulseSink{
		client: client,
		ch:     make(chan []float32, 2),
		order:  order,
	}

	opts := []pulse.PlaybackOption{
		pulse.PlaybackStereo,
		pulse.PlaybackSampleRate(cfg.SampleRate),
		pulse.PlaybackLatency(2 * float64(cfg.BufferFrames) / float64(cfg.SampleRate)),
	}
	if cfg.Device != "" {
		dev, err := client.SinkByID(cfg.Device)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("pulse sink %q: %w", cfg.Device, err)
		}
		opts = append(opts, pulse.PlaybackSink(dev))
	}

	stream, err := client.NewPlayback(pulse.Float32Reader(s.read), opts...)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("open pulse stream: %w", err)
	}
	s.stream = stream
	stream.Start()

	return s, nil
}

// read runs on the stream's callback goroutine.
func (s *pulseSink) read(out []float32) (int, error) {
	filled := 0
	for filled < len(out) {
		if len(s.pending) == 0 {
			select {
			case chunk, ok := <-s.ch:
				if !ok {
					if filled == 0 {
						return 0, pulse.EndOfData
					}
					zeroFill(out[filled:])
					return len(out), nil
				}
				s.pending = chunk
				continue
			default:
				// Nothing queued right now; keep the stream fed with silence.
				zeroFill(out[filled:])
				return len(out), nil
			}
		}
		n := copy(out[filled:], s.pending)
		s.pending = s.pending[n:]
		filled += n
	}
	return filled, nil
}

func (s *pulseSink) Write(chunk []audio.Frame) error {
	if len(chunk) == 0 {
		return nil
	}
	buf := make([]float32, len(chunk)*2)
	interleave(buf, chunk, s.order)
	s.ch <- buf
	return nil
}

// Close drains what the stream has already pulled and tears the connection
// down. The pulse client's close methods report nothing, so neither can we.
func (s *pulseSink) Close() error {
	s.closeOnce.Do(func() {
		close(s.ch)
		s.stream.Drain()
		s.stream.Close()
		s.client.Close()
	})
	return nil
}

func zeroFill(p []float32) {
	for i := range p {
		p[i] = 0
	}
}
