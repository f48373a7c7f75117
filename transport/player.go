// SPDX-License-Identifier: EPL-2.0

package transport

import (
	"sync"

	"github.com/ik5/audmix/region"
)

// Step reports what one call to Player.Advance did.
type Step struct {
	Position float64
	// Exited is set when the cursor left the active region and Action was applied.
	Exited bool
	Action region.Action
}

// Player drives a Transport through the regions of a Sequencer.
// All region edits must go through the Player so the sequencer is never
// touched concurrently.
type Player struct {
	mtx    sync.Mutex
	t      *Transport
	seq    *region.Sequencer
	active region.Region
	hasReg bool
	loop   bool
}

func NewPlayer(t *Transport, seq *region.Sequencer) *Player {
	if seq == nil {
		seq = region.NewSequencer()
	}
	return &Player{t: t, seq: seq}
}

func (p *Player) Transport() *Transport { return p.t }

// AddRegion validates r and stores it.
func (p *Player) AddRegion(r region.Region) error {
	if err := r.Validate(); err != nil {
		return err
	}

	p.mtx.Lock()
	p.seq.Insert(r)
	p.mtx.Unlock()
	return nil
}

// UpdateRegion replaces the stored snapshot of r.
func (p *Player) UpdateRegion(r region.Region) error {
	if err := r.Validate(); err != nil {
		return err
	}

	p.mtx.Lock()
	defer p.mtx.Unlock()

	p.seq.Update(r)
	if p.hasReg && p.active.ID == r.ID {
		p.active = r
	}
	return nil
}

// RemoveRegion deletes a region. Removing the active region stops region playback
// but leaves the transport running.
func (p *Player) RemoveRegion(id string) bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.hasReg && p.active.ID == id {
		p.hasReg = false
		p.active = region.Region{}
	}
	return p.seq.Remove(id)
}

func (p *Player) Regions() []region.Region {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.seq.Regions()
}

// PlayRegion seeks to the start of r and plays it.
func (p *Player) PlayRegion(r region.Region) error {
	if err := r.Validate(); err != nil {
		return err
	}

	p.mtx.Lock()
	defer p.mtx.Unlock()

	p.playLocked(r)
	return nil
}

func (p *Player) playLocked(r region.Region) {
	p.active = r
	p.hasReg = true
	p.t.Seek(r.Start)
	p.t.Play()
}

// Active returns the region being played, if any.
func (p *Player) Active() (region.Region, bool) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.active, p.hasReg
}

func (p *Player) SetLoop(loop bool) {
	p.mtx.Lock()
	p.loop = loop
	p.mtx.Unlock()
}

func (p *Player) Loop() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.loop
}

// Advance moves the cursor by dt seconds of wall time. When the cursor leaves
// the active region the exit action is applied:
//
//	replay: seek back to the region start
//	play:   seek to the start of the next region and make it active
//	stop:   pause at the region end
func (p *Player) Advance(dt float64) Step {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	pos, finished := p.t.Advance(dt)
	if !p.hasReg {
		if finished {
			p.t.Finish()
		}
		return Step{Position: pos}
	}

	if cur, ok := p.seq.Get(p.active.ID); ok {
		p.active = cur
	}

	if !finished && pos < p.active.End {
		return Step{Position: pos}
	}

	act := p.seq.OnRegionExit(p.active, p.loop)
	switch act.Kind {
	case region.ActionReplay, region.ActionPlay:
		p.playLocked(act.Region)
	default:
		p.t.Pause()
		p.t.Seek(p.active.End)
		p.hasReg = false
		p.active = region.Region{}
	}

	return Step{Position: p.t.Position(), Exited: true, Action: act}
}
