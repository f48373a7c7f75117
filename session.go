// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"
	"os"
	"sync"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/region"
	"github.com/ik5/audmix/routing"
	"github.com/ik5/audmix/transport"
)

// Session is one loaded track with its processing chain and playback state:
//
//	decoder -> Equalizer -> SampleGraph (routing) -> Source()
//
// Pad and gain changes recompute the routing plan and apply it to the graph.
// A Session is safe for concurrent use; reads of Source must come from a
// single goroutine.
type Session struct {
	info   audio.Info
	eq     *audio.Equalizer
	graph  *routing.SampleGraph
	router *routing.Router
	player *transport.Player

	mtx        sync.Mutex
	pads       routing.PadState
	gains      routing.Gains
	leftMuted  bool
	rightMuted bool
}

// Open decodes path with the decoder registered for its extension in
// DefaultRegistry and builds a session around it.
func Open(path string) (*Session, error) {
	return OpenWith(DefaultRegistry(), path)
}

// OpenWith is Open with a caller supplied registry.
func OpenWith(reg *audio.Registry, path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := reg.Decode(FormatOf(path), f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s, err := NewSession(src)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// NewSession wires src into a session with the default pads and gains. src
// must report its duration. The session owns src from now on.
func NewSession(src audio.Source) (*Session, error) {
	info := audio.Describe(src)
	if info.Duration <= 0 {
		return nil, ErrUnknownDuration
	}

	t, err := transport.New(info.Duration.Seconds())
	if err != nil {
		return nil, err
	}

	eq := audio.NewEqualizer(src)
	graph := routing.NewSampleGraph(eq)

	s := &Session{
		info:   info,
		eq:     eq,
		graph:  graph,
		router: routing.NewRouter(graph),
		player: transport.NewPlayer(t, region.NewSequencer()),
		pads:   routing.DefaultPads(),
		gains:  routing.DefaultGains(),
	}

	if _, err := s.router.Update(s.pads, s.gains, info.MultiChannel()); err != nil {
		return nil, err
	}
	return s, nil
}

// Info is the decode-complete data the routing decisions are based on.
func (s *Session) Info() audio.Info { return s.info }

// Source is the routed stereo output.
func (s *Session) Source() audio.Source { return s.graph }

func (s *Session) Equalizer() *audio.Equalizer { return s.eq }
func (s *Session) Player() *transport.Player   { return s.player }
func (s *Session) Transport() *transport.Transport {
	return s.player.Transport()
}

// Plan returns the routing plan currently applied to the graph.
func (s *Session) Plan() routing.Plan {
	p, _ := s.router.Plan()
	return p
}

func (s *Session) Pads() routing.PadState {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.pads
}

// Gains returns the stored gain levels, ignoring mute.
func (s *Session) Gains() routing.Gains {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.gains
}

// Muted reports the left and right mute toggles.
func (s *Session) Muted() (left, right bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.leftMuted, s.rightMuted
}

func (s *Session) SetPads(p routing.PadState) (routing.Plan, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.pads = p
	return s.applyLocked()
}

func (s *Session) SetGains(g routing.Gains) (routing.Plan, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.gains = g
	return s.applyLocked()
}

// ToggleMuteLeft flips the left mute. The stored gain is kept and comes back
// on unmute. Like the gains, mutes only affect the route while a diagonal is
// selected.
func (s *Session) ToggleMuteLeft() (routing.Plan, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.leftMuted = !s.leftMuted
	return s.applyLocked()
}

func (s *Session) ToggleMuteRight() (routing.Plan, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.rightMuted = !s.rightMuted
	return s.applyLocked()
}

func (s *Session) applyLocked() (routing.Plan, error) {
	g := s.gains
	if s.leftMuted {
		g.Left = 0
	}
	if s.rightMuted {
		g.Right = 0
	}
	return s.router.Update(s.pads, g, s.info.MultiChannel())
}

// Close releases the decoder and its input.
func (s *Session) Close() error {
	return s.graph.Close()
}
