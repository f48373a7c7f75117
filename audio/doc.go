// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming building blocks every other package
// plugs into.
//
//   - Source, the pull interface for interleaved float32 PCM
//   - Registry, decoders keyed by format name
//   - Info and Describe, the sample rate, channel count and duration of a source
//   - Resampler, Remixer and Gain for rate, layout and level changes
//   - Equalizer, a ten band graphic equalizer built from Biquad filters
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are float32 in [-1, 1], interleaved by channel. ReadSamples returns
// the number of values written, not frames, and io.EOF once the stream is
// finished. Processors wrap a Source and are Sources themselves, so they chain:
//
//	eq := audio.NewEqualizer(src)
//	_ = eq.SetGain(0, 6) // +6 dB at 32 Hz
//	out := audio.NewResampler(audio.NewStereoMixer(eq), 48000)
//
// Close on a processor closes the source it wraps.
//
// # Equalizer
//
// The bands sit at 32, 64, 125, 250, 500, 1k, 2k, 4k, 8k and 16k Hz. The lowest
// band is a low shelf, the highest a high shelf and the rest are peaking filters,
// all with Q = 1. Gains are clamped to [-40, 40] dB and may be changed while the
// equalizer is being read.
//
// # Decoded audio
//
// Decoders register under a format key and hand back a Source. Sources that know
// their length implement Durationer, which Describe picks up:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	src, err := reg.Decode("wav", f)
//	info := audio.Describe(src)
//	if info.MultiChannel() {
//	    // per-channel routing is available
//	}
package audio
