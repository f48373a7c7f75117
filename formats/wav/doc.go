// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files with github.com/go-audio/wav.
//
// # Decoding
//
// Integer PCM at 8, 16, 24 and 32 bits is supported, with any channel count
// and sample rate:
//
//	f, _ := os.Open("take.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close() // closes f
//
// The returned Source implements audio.Durationer; the duration is derived from
// the size of the data chunk. Inputs that cannot seek are read into memory
// first.
//
// # Encoding
//
// Encode drains any audio.Source into a seekable writer at 16, 24 or 32 bits.
// Samples outside [-1, 1] are clipped:
//
//	out, _ := os.Create("mix.wav")
//	frames, err := wav.Encode(out, src, 16)
//
// WriteWAV16 writes an already converted 16-bit buffer in one pass and does not
// need to seek, so it also works on pipes.
//
// # Errors
//
//   - ErrNotWavFile: the input has no valid RIFF/WAVE header
//   - ErrOnlyIntegerPCM: float or unusual bit depths
//   - ErrUnsupportedWavLayout: no data chunk, or a zero channel count
//   - ErrUnsupportedBitDepth: Encode asked for an unsupported depth
package wav
