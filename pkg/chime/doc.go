// ABOUTME: Playback engine package documentation
// ABOUTME: Describes the output handle, trigger protocol and mixer thread
// Package chime mixes overlapping sound-effect triggers into one continuous
// stream on a hardware output.
//
// Spawn opens one sink and starts one mixer goroutine pinned to its OS
// thread. Play enqueues a shared handle to a decoded Sound and returns
// immediately; any number of overlapping triggers from any goroutine are
// summed sample-wise. Shutdown stops accepting triggers, lets everything
// already queued or playing drain to the end, and joins the mixer.
//
// Example:
//
//	sound, err := decode.File("ding.mp3")
//	out, err := chime.Spawn(chime.Config{SampleRate: sound.Spec().Rate})
//	err = out.Play(sound)
//	err = out.Shutdown()
package chime
