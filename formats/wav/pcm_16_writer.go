// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

type header struct {
	RIFF          [4]byte
	RIFFSize      uint32
	WAVE          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

// WriteWAV16 writes interleaved 16-bit PCM with a canonical 44 byte header.
// Unlike Encode it needs no seeking, so it can target pipes and stdout.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels <= 0 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedWavLayout, channels)
	}

	dataSize := uint32(len(samples) * 2)
	h := header{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		RIFFSize:      36 + dataSize,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   formatPCM,
		Channels:      uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * channels * 2),
		BlockAlign:    uint16(channels * 2),
		BitsPerSample: 16,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}

	bw := bufio.NewWriterSize(w, 16*1024)
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
