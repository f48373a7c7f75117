// SPDX-License-Identifier: EPL-2.0

// Package audmix routes, equalizes and sequences decoded audio tracks.
//
// A Session opens one file, decodes it with the matching decoder from
// formats/, and exposes a stereo audio.Source whose channel routing follows a
// 2x2 pad grid:
//
//	s, err := audmix.Open("take.wav")
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	// swap the ears
//	_, _ = s.SetPads(routing.PadState{TopRight: true, BottomLeft: true})
//	_ = s.Equalizer().SetGain(0, 6)
//
//	pcm16, err := audmix.Render16(s.Source(), 44100, 2, 4096)
//
// # Supported Formats
//
// DefaultRegistry maps file extensions to decoders:
//   - WAV (8/16/24/32-bit integer PCM) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//
// # Packages
//
//   - region: ordered playback regions and the action taken when one ends
//   - routing: pad grid to routing plan, and a graph that renders a plan
//   - transport: playback cursor, rate, zoom, region playback
//   - multitrack: several tracks on one timeline, mixed to stereo
//   - audio: the Source pipeline (resampler, remixer, gain, equalizer)
//   - utils: time and volume formatting, PCM conversion
package audmix
