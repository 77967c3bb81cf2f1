// ABOUTME: The mixing loop run on the dedicated output thread
// ABOUTME: Accumulates active sounds into paced fixed-size chunks
package chime

import (
	"fmt"
	"log"
	"time"

	"github.com/harperreed/chime-go/pkg/audio"
	"github.com/harperreed/chime-go/pkg/audio/output"
)

// writeRetryAttempts bounds the WriteRetry policy.
const writeRetryAttempts = 3

// instance is mixer-private playback state: a shared handle to a sound's
// frames plus the cursor of frames already consumed. Owned exclusively by
// the mixer thread.
type instance struct {
	id     string
	frames []audio.Frame
	cursor int
}

// run is the mixer state machine. With nothing playing it blocks on the
// trigger queue; with sounds active it mixes one chunk per tick and paces
// itself against a wall-clock anchor. A closed queue ends the loop once all
// active sounds have drained.
func (o *Output) run(sink output.Sink, chunkFrames int, policy WritePolicy) error {
	period := audio.FramesDuration(chunkFrames, o.sampleRate)
	chunk := make([]audio.Frame, chunkFrames)
	var playing []*instance
	var anchor time.Time

	for {
		if len(playing) == 0 {
			t, ok := <-o.triggers
			if !ok {
				return nil
			}
			playing = append(playing, newInstance(t))
			anchor = time.Now()
		}

		// Pick up any further triggers without blocking the tick.
	drain:
		for {
			select {
			case t, ok := <-o.triggers:
				if !ok {
					break drain
				}
				playing = append(playing, newInstance(t))
			default:
				break drain
			}
		}

		for i := range chunk {
			chunk[i] = audio.Frame{}
		}
		for _, in := range playing {
			tail := in.frames[in.cursor:]
			if len(tail) > len(chunk) {
				tail = tail[:len(chunk)]
			}
			for i, f := range tail {
				chunk[i][0] += f[0]
				chunk[i][1] += f[1]
			}
			// Advance by the full chunk so a short tail lands exactly on the
			// buffer's end.
			in.cursor += len(chunk)
		}

		kept := playing[:0]
		for _, in := range playing {
			if in.cursor < len(in.frames) {
				kept = append(kept, in)
			} else {
				log.Printf("sound %s: done", in.id)
			}
		}
		playing = kept

		// Always a full-size chunk, silence included; the sink sees a
		// constant cadence.
		if err := writeChunk(sink, chunk, policy, period); err != nil {
			return err
		}

		// Advance the anchor by exactly one chunk of wall-clock time. An
		// overrun leaves the anchor in the past and later iterations absorb
		// it; the anchor is never reset, so jitter cannot accumulate.
		anchor = anchor.Add(period)
		if d := time.Until(anchor); d > 0 {
			time.Sleep(d)
		}
	}
}

func newInstance(t trigger) *instance {
	log.Printf("sound %s: start (%d frames)", t.id, len(t.frames))
	return &instance{id: t.id, frames: t.frames}
}

func writeChunk(sink output.Sink, chunk []audio.Frame, policy WritePolicy, period time.Duration) error {
	err := sink.Write(chunk)
	if err == nil {
		return nil
	}
	if policy != WriteRetry {
		return fmt.Errorf("write chunk: %w", err)
	}
	for attempt := 1; attempt <= writeRetryAttempts; attempt++ {
		log.Printf("chunk write failed, retrying (%d/%d): %v", attempt, writeRetryAttempts, err)
		time.Sleep(period)
		if err = sink.Write(chunk); err == nil {
			return nil
		}
	}
	return fmt.Errorf("write chunk after %d retries: %w", writeRetryAttempts, err)
}
