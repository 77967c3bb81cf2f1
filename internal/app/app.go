// ABOUTME: Soundboard application wiring
// ABOUTME: Loads sound files once and plays them on line-based triggers
// Package app wires decoded sounds to one playback output and drives it from
// a line-based trigger source such as stdin.
package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harperreed/chime-go/pkg/audio"
	"github.com/harperreed/chime-go/pkg/audio/decode"
	"github.com/harperreed/chime-go/pkg/chime"
)

// Config holds the soundboard configuration.
type Config struct {
	// Backend and Device select the audio output; see output.Config.
	Backend string
	Device  string

	// Volume scales every loaded sound once, before playback starts.
	Volume float64

	// Paths are the sound files to load. Every file must share one sample
	// rate since the output runs at a single fixed rate.
	Paths []string
}

// App owns one output and the sounds it can trigger.
type App struct {
	out    *chime.Output
	sounds map[string]*audio.Sound
	first  string
}

// New decodes every configured sound exactly once and spawns the output at
// their shared sample rate.
func New(cfg Config) (*App, error) {
	sounds, first, rate, err := loadSounds(cfg)
	if err != nil {
		return nil, err
	}

	out, err := chime.Spawn(chime.Config{
		SampleRate: rate,
		Backend:    cfg.Backend,
		Device:     cfg.Device,
	})
	if err != nil {
		return nil, err
	}
	return &App{out: out, sounds: sounds, first: first}, nil
}

// loadSounds decodes the configured files, applies the one-time volume scale
// and checks that they agree on a sample rate.
func loadSounds(cfg Config) (sounds map[string]*audio.Sound, first string, rate int, err error) {
	if len(cfg.Paths) == 0 {
		return nil, "", 0, errors.New("no sound files given")
	}

	sounds = make(map[string]*audio.Sound, len(cfg.Paths))
	for _, path := range cfg.Paths {
		sound, err := decode.File(path)
		if err != nil {
			return nil, "", 0, err
		}
		if cfg.Volume != 1 {
			sound.SetVolume(float32(cfg.Volume))
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if _, dup := sounds[name]; dup {
			return nil, "", 0, fmt.Errorf("duplicate sound name %q", name)
		}
		if rate == 0 {
			rate = sound.Spec().Rate
			first = name
		} else if got := sound.Spec().Rate; got != rate {
			return nil, "", 0, fmt.Errorf("%w: %s is %d Hz, output runs at %d Hz",
				audio.ErrSampleRateMismatch, name, got, rate)
		}
		sounds[name] = sound
		log.Printf("loaded %s: %d frames (%v) at %d Hz", name, sound.Len(), sound.Duration(), rate)
	}
	return sounds, first, rate, nil
}

// Names returns the trigger names in sorted order.
func (a *App) Names() []string {
	names := make([]string, 0, len(a.sounds))
	for name := range a.sounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run reads trigger lines from r until EOF: an empty line plays the first
// loaded sound, anything else names one. Unknown names are logged and
// skipped. Returns after a clean shutdown, with all triggered sounds played
// to the end.
func (a *App) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			name = a.first
		}
		sound, ok := a.sounds[name]
		if !ok {
			log.Printf("no sound named %q (have %s)", name, strings.Join(a.Names(), ", "))
			continue
		}
		if err := a.out.Play(sound); err != nil {
			serr := a.out.Shutdown()
			if serr != nil {
				return fmt.Errorf("play %s: %v (shutdown: %w)", name, err, serr)
			}
			return fmt.Errorf("play %s: %w", name, err)
		}
	}
	if err := sc.Err(); err != nil {
		if serr := a.out.Shutdown(); serr != nil {
			log.Printf("shutdown after read error: %v", serr)
		}
		return fmt.Errorf("read triggers: %w", err)
	}
	return a.out.Shutdown()
}
