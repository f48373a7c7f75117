// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"slices"
	"sync"
	"time"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Durationer is implemented by sources that know their total length up front.
type Durationer interface {
	Duration() time.Duration
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Info is what is known about a source once decoding has started.
type Info struct {
	SampleRate int           `json:"sample_rate" yaml:"sample_rate"`
	Channels   int           `json:"channels" yaml:"channels"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// MultiChannel reports whether the source carries more than one channel.
func (i Info) MultiChannel() bool { return i.Channels > 1 }

// Describe collects the Info of src. Duration is zero when src does not
// implement Durationer.
func Describe(src Source) Info {
	info := Info{SampleRate: src.SampleRate(), Channels: src.Channels()}
	if d, ok := src.(Durationer); ok {
		info.Duration = d.Duration()
	}
	return info
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats returns the registered format keys, sorted.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Decode looks up the decoder for format and decodes rd with it.
func (r *Registry) Decode(format string, rd io.Reader) (Source, error) {
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	src, err := d.Decode(rd)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return src, nil
}
