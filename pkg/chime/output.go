// ABOUTME: Public output handle with the trigger/shutdown protocol
// ABOUTME: Spawns the mixer thread and owns the sending end of its queue
package chime

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/harperreed/chime-go/pkg/audio"
	"github.com/harperreed/chime-go/pkg/audio/output"
)

// ErrQueueFull is returned by Play when the trigger queue is saturated.
// The mixer drains the queue every tick, so this only happens when callers
// submit hundreds of triggers inside one tick.
var ErrQueueFull = errors.New("trigger queue full")

// WritePolicy decides what the mixer does when a sink write fails.
type WritePolicy int

const (
	// WriteFail tears the mixer down on the first failed write; the error
	// surfaces from Shutdown.
	WriteFail WritePolicy = iota

	// WriteRetry retries a failed write a bounded number of times, one chunk
	// period apart, before giving up.
	WriteRetry
)

// DefaultChunkFrames is the mixing tick size when the config does not set one.
const DefaultChunkFrames = 1024

// triggerQueueSize bounds the trigger channel. Triggers are two words each;
// the mixer drains the queue every tick, so this is never reached in sane use
// and a Play that does hit it fails fast with ErrQueueFull.
const triggerQueueSize = 256

// Config parameterizes Spawn.
type Config struct {
	// SampleRate every played sound must match; no resampling is performed.
	SampleRate int

	// Backend and Device select the sink; see output.Config.
	Backend string
	Device  string

	// ChunkFrames is the number of frames mixed per tick.
	ChunkFrames int

	// WritePolicy for sink write failures. Defaults to WriteFail.
	WritePolicy WritePolicy

	// Sink, when non-nil, is used instead of opening a backend. The output
	// takes ownership and closes it when the mixer exits.
	Sink output.Sink
}

// trigger is one play request: a shared handle to the sound's frames, never
// a copy of the sample data.
type trigger struct {
	id     string
	frames []audio.Frame
}

// Output is the handle to one spawned mixer thread.
//
// Shutdown is the only clean-termination path; an Output that is simply
// dropped leaves the mixer blocked on its queue.
type Output struct {
	sampleRate int

	mu       sync.Mutex
	closed   bool
	triggers chan trigger

	joinOnce sync.Once
	joinErr  error
	done     chan error

	// dead is closed by the mixer thread on exit, so Play can tell a dying
	// mixer apart from a merely busy one.
	dead chan struct{}
}

// Spawn opens exactly one sink at the given rate and starts exactly one
// mixer goroutine, pinned to its OS thread. It fails synchronously if the
// sink cannot be opened.
func Spawn(cfg Config) (*Output, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", cfg.SampleRate)
	}
	chunkFrames := cfg.ChunkFrames
	if chunkFrames <= 0 {
		chunkFrames = DefaultChunkFrames
	}

	sink := cfg.Sink
	if sink == nil {
		var err error
		sink, err = output.Open(output.Config{
			SampleRate:   cfg.SampleRate,
			Layout:       audio.LayoutStereo,
			Backend:      cfg.Backend,
			Device:       cfg.Device,
			BufferFrames: chunkFrames,
		})
		if err != nil {
			return nil, err
		}
	}

	o := &Output{
		sampleRate: cfg.SampleRate,
		triggers:   make(chan trigger, triggerQueueSize),
		done:       make(chan error, 1),
		dead:       make(chan struct{}),
	}
	go o.mixerThread(sink, chunkFrames, cfg.WritePolicy)
	return o, nil
}

// Play submits a sound to the mixer thread and returns without waiting for
// it: it either hands the trigger off immediately or fails immediately.
// Safe to call from any goroutine; the sound's buffer is shared, not copied.
func (o *Output) Play(sound *audio.Sound) error {
	if rate := sound.Spec().Rate; rate != o.sampleRate {
		return fmt.Errorf("%w: output %d Hz, sound %d Hz",
			audio.ErrSampleRateMismatch, o.sampleRate, rate)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return audio.ErrOutputClosed
	}
	// A mixer that died on a write error no longer consumes the queue; the
	// error it died with surfaces from Shutdown.
	select {
	case <-o.dead:
		return audio.ErrOutputClosed
	default:
	}
	select {
	case o.triggers <- trigger{id: uuid.NewString(), frames: sound.Frames()}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting triggers, lets every queued and playing sound
// drain to completion, then joins the mixer thread. A panic inside the mixer
// comes back as an error. Idempotent.
func (o *Output) Shutdown() error {
	o.mu.Lock()
	if !o.closed {
		o.closed = true
		close(o.triggers)
	}
	o.mu.Unlock()

	o.joinOnce.Do(func() {
		o.joinErr = <-o.done
	})
	return o.joinErr
}

// mixerThread wraps the mixing loop with thread pinning, sink teardown and
// panic capture, and reports the loop's outcome for Shutdown to join on.
func (o *Output) mixerThread(sink output.Sink, chunkFrames int, policy WritePolicy) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("mixer panicked: %v", r)
			}
		}()
		defer func() {
			if cerr := sink.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close sink: %w", cerr)
			}
		}()
		return o.run(sink, chunkFrames, policy)
	}()
	close(o.dead)
	o.done <- err
}
