// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/audmix/audio"
)

// Encode drains src into w as integer PCM of the given bit depth (16, 24 or
// 32). w must be seekable so the RIFF sizes can be patched on close. It
// returns the number of frames written.
func Encode(w io.WriteSeeker, src audio.Source, bitDepth int) (int, error) {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := src.Channels()
	enc := gowav.NewEncoder(w, src.SampleRate(), bitDepth, channels, formatPCM)

	size := max(channels, src.BufSize()-src.BufSize()%channels)
	in := make([]float32, size)
	out := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: src.SampleRate()},
		Data:           make([]int, size),
		SourceBitDepth: bitDepth,
	}
	peak := float64(int64(1)<<(bitDepth-1) - 1)

	frames := 0
	for {
		n, err := src.ReadSamples(in)
		if n > 0 {
			out.Data = out.Data[:n]
			for i, v := range in[:n] {
				out.Data[i] = int(math.Round(math.Max(-1, math.Min(1, float64(v))) * peak))
			}
			if werr := enc.Write(out); werr != nil {
				return frames, fmt.Errorf("%w", werr)
			}
			frames += n / channels
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = enc.Close()
			return frames, fmt.Errorf("%w", err)
		}
	}

	if frames == 0 {
		// header and an empty data chunk
		if err := enc.Write(&goaudio.IntBuffer{Format: out.Format}); err != nil {
			return 0, fmt.Errorf("%w", err)
		}
	}
	if err := enc.Close(); err != nil {
		return frames, fmt.Errorf("%w", err)
	}
	return frames, nil
}
