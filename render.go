// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

// Render16 reads src to the end and returns it as interleaved 16-bit PCM at
// targetRate with the requested channel count. Samples outside [-1, 1] are
// clipped.
//
// The pipeline is resample -> remix -> convert:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	pcm16, err := audmix.Render16(src, 8000, 1, 4096)
//
// src is not closed.
func Render16(src audio.Source, targetRate, channels, bufferSize int) ([]int16, error) {
	if targetRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidLayout, targetRate, channels)
	}

	remix, err := audio.NewRemixer(audio.NewResampler(src, targetRate), channels)
	if err != nil {
		return nil, err
	}

	bufferSize = max(bufferSize-bufferSize%channels, channels)
	buf := make([]float32, bufferSize)
	pcm16 := make([]int16, 0, targetRate*channels*2)

	for {
		n, err := remix.ReadSamples(buf)
		if n > 0 {
			start := len(pcm16)
			pcm16 = slices.Grow(pcm16, n)[:start+n]
			utils.Float32ToInt16Slice(pcm16[start:], buf[:n])
		}

		if errors.Is(err, io.EOF) {
			return pcm16, nil
		}
		if err != nil {
			return pcm16, fmt.Errorf("%w", err)
		}
		if n == 0 {
			return pcm16, io.ErrNoProgress
		}
	}
}
