// ABOUTME: Audio file decoder package documentation
// ABOUTME: Describes the container/codec front door and block readers
// Package decode turns encoded sound files into immutable audio.Sounds.
//
// Supports: WAV (16-bit PCM), MP3, FLAC, Ogg Vorbis, Ogg Opus.
//
// The container is picked by file extension hint and confirmed by content
// sniffing when the hint is missing or unknown. Each decoder streams the file
// as a sequence of audio.Blocks which are validated and accumulated by an
// audio.Builder; decoding happens exactly once per file, playback then shares
// the frozen buffer.
//
// Example:
//
//	sound, err := decode.File("chime.ogg")
package decode
