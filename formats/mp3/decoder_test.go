// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/audiotest"
)

// mockMP3Reader serves 16-bit PCM in short, uneven reads like the real decoder.
type mockMP3Reader struct {
	rate    int
	data    []byte
	off     int
	length  int64
	failErr error
}

func newMock(rate int, samples []int16, seekable bool) *mockMP3Reader {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}
	length := int64(-1)
	if seekable {
		length = int64(len(data))
	}
	return &mockMP3Reader{rate: rate, data: data, length: length}
}

func (m *mockMP3Reader) SampleRate() int { return m.rate }
func (m *mockMP3Reader) Length() int64   { return m.length }

func (m *mockMP3Reader) Read(p []byte) (int, error) {
	if m.failErr != nil {
		return 0, m.failErr
	}
	if m.off >= len(m.data) {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), 7)], m.data[m.off:])
	m.off += n
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("This is not MP3 data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); !errors.Is(err, ErrNotMP3File) {
			t.Errorf("Decode(%q) error = %v, want ErrNotMP3File", data, err)
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	in := []int16{0, 16384, 32767, -16384, -32768, 8192, -8192, 0}
	src := &source{dec: newMock(8000, in, true)}

	got, err := audiotest.Drain(src, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(in) {
		t.Fatalf("samples = %d, want %d", len(got), len(in))
	}
	for i, v := range in {
		want := float32(v) / 32768
		if math.Abs(float64(got[i]-want)) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, got[i], want)
		}
	}

	if n, err := src.ReadSamples(make([]float32, 4)); n != 0 || err != io.EOF {
		t.Errorf("read after end = %d, %v; want 0, EOF", n, err)
	}
}

func TestSource_DropsPartialFrame(t *testing.T) {
	t.Parallel()

	src := &source{dec: newMock(8000, []int16{1, 2, 3}, true)}
	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)
	if n != 2 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v; want 2, EOF", n, err)
	}
}

func TestSource_Duration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		seekable bool
		want     time.Duration
	}{
		{"seekable", true, 500 * time.Millisecond},
		{"stream", false, 0},
	}

	for _, tt := range tests {
		src := &source{dec: newMock(8000, make([]int16, 8000), tt.seekable)}
		info := audio.Describe(src)
		if info.Duration != tt.want {
			t.Errorf("%s: Duration = %v, want %v", tt.name, info.Duration, tt.want)
		}
		if info.Channels != 2 || info.SampleRate != 8000 {
			t.Errorf("%s: info = %+v", tt.name, info)
		}
	}
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt frame")
	m := newMock(8000, make([]int16, 8), true)
	m.failErr = boom
	src := &source{dec: m}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(3) error = %v, want ErrInvalidDstSize", err)
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int16, 44100*2)
	buf := make([]float32, 4096)
	b.ReportAllocs()

	for b.Loop() {
		src := &source{dec: newMock(44100, samples, true), buf: make([]byte, 8192)}
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
