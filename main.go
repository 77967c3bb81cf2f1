// ABOUTME: Entry point for the chime soundboard CLI
// ABOUTME: Parses flags, loads sounds and plays one per stdin line
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/harperreed/chime-go/internal/app"
)

var (
	backend = flag.String("backend", "", `audio backend: "oto" (default), "pulse" or "portaudio"`)
	device  = flag.String("device", "", "output device selector (pulse sink id)")
	volume  = flag.Float64("volume", 1, "volume scale applied to every sound")
)

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatalf("usage: chime [flags] sound-file...")
	}

	a, err := app.New(app.Config{
		Backend: *backend,
		Device:  *device,
		Volume:  *volume,
		Paths:   flag.Args(),
	})
	if err != nil {
		log.Fatalf("Failed to set up playback: %v", err)
	}

	log.Printf("Ready. Enter plays the first sound; names: %s", strings.Join(a.Names(), ", "))

	if err := a.Run(os.Stdin); err != nil {
		log.Fatalf("Playback failed: %v", err)
	}
}
