//go:build !portaudio

// ABOUTME: PortAudio stub when the library is not compiled in
// ABOUTME: Keeps the backend selectable without the cgo dependency
package output

import "fmt"

func openPortAudio(Config) (Sink, error) {
	return nil, fmt.Errorf("portaudio support not enabled (build with -tags portaudio)")
}
