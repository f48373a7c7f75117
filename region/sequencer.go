// SPDX-License-Identifier: EPL-2.0

package region

// ActionKind tells the host what to do once a region has finished playing.
type ActionKind int

const (
	// ActionStop means there is nothing left to play.
	ActionStop ActionKind = iota
	// ActionReplay means the region that just ended plays again.
	ActionReplay
	// ActionPlay means the next region in timeline order starts.
	ActionPlay
)

func (k ActionKind) String() string {
	switch k {
	case ActionReplay:
		return "replay"
	case ActionPlay:
		return "play"
	default:
		return "stop"
	}
}

// Action is the result of OnRegionExit. Region is empty for ActionStop.
type Action struct {
	Kind   ActionKind
	Region Region
}

// Sequencer keeps region snapshots ordered by start time.
// Regions sharing a start keep their insertion order.
//
// The zero value is an empty sequencer ready for use. A Sequencer is not safe for
// concurrent use; events must be applied in the order they are received.
type Sequencer struct {
	regions []Region
	starts  map[string]float64 // id -> stored start
}

func NewSequencer() *Sequencer {
	return &Sequencer{}
}

func (s *Sequencer) Len() int { return len(s.regions) }

// At returns the region at index i in start order.
func (s *Sequencer) At(i int) (Region, bool) {
	if i < 0 || i >= len(s.regions) {
		return Region{}, false
	}
	return s.regions[i], true
}

// Regions returns a copy of the ordered collection.
func (s *Sequencer) Regions() []Region {
	out := make([]Region, len(s.regions))
	copy(out, s.regions)
	return out
}

func (s *Sequencer) Get(id string) (Region, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.regions[i], true
	}
	return Region{}, false
}

func (s *Sequencer) Clear() {
	s.regions = s.regions[:0]
	clear(s.starts)
}

// Insert adds r and returns its index. An existing region with the same id is replaced.
func (s *Sequencer) Insert(r Region) int {
	if i := s.indexOf(r.ID); i >= 0 {
		s.removeAt(i)
	}

	i := s.upperBound(r.Start)
	s.regions = append(s.regions, Region{})
	copy(s.regions[i+1:], s.regions[i:])
	s.regions[i] = r

	if s.starts == nil {
		s.starts = make(map[string]float64)
	}
	s.starts[r.ID] = r.Start

	return i
}

// Remove deletes the region with the given id. Unknown ids are ignored.
func (s *Sequencer) Remove(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.removeAt(i)
	return true
}

// Update replaces the stored snapshot of r and moves it to its new position.
func (s *Sequencer) Update(r Region) int {
	s.Remove(r.ID)
	return s.Insert(r)
}

// Locate returns the index of r when its id is stored, otherwise the index where a
// region starting at r.Start would be placed (lower bound). The result is in [0, Len()].
func (s *Sequencer) Locate(r Region) int {
	if i := s.indexOf(r.ID); i >= 0 {
		return i
	}
	return s.lowerBound(r.Start)
}

// NextAfter returns the region that follows r in timeline order.
// For a region that is not stored, that is the first region starting strictly after it.
func (s *Sequencer) NextAfter(r Region) (Region, bool) {
	next := s.upperBound(r.Start)
	if i := s.indexOf(r.ID); i >= 0 {
		next = i + 1
	}
	return s.At(next)
}

// OnRegionExit decides what plays once r has finished.
func (s *Sequencer) OnRegionExit(r Region, loop bool) Action {
	if loop {
		return Action{Kind: ActionReplay, Region: r}
	}

	if next, ok := s.NextAfter(r); ok {
		return Action{Kind: ActionPlay, Region: next}
	}

	return Action{Kind: ActionStop}
}

// RegionAt returns the first region, in start order, containing t.
func (s *Sequencer) RegionAt(t float64) (Region, bool) {
	end := s.upperBound(t)
	for i := range end {
		if s.regions[i].Contains(t) {
			return s.regions[i], true
		}
	}
	return Region{}, false
}

// indexOf binary searches the stored start of id and scans the run of regions
// sharing that start. Returns -1 when id is not stored.
func (s *Sequencer) indexOf(id string) int {
	start, ok := s.starts[id]
	if !ok {
		return -1
	}

	for i := s.lowerBound(start); i < len(s.regions) && s.regions[i].Start == start; i++ {
		if s.regions[i].ID == id {
			return i
		}
	}

	return -1
}

// lowerBound returns the first index whose start is >= t.
func (s *Sequencer) lowerBound(t float64) int {
	left, right := 0, len(s.regions)
	for left < right {
		middle := int(uint(left+right) >> 1)
		if s.regions[middle].Start < t {
			left = middle + 1
		} else {
			right = middle
		}
	}
	return left
}

// upperBound returns the first index whose start is > t.
func (s *Sequencer) upperBound(t float64) int {
	left, right := 0, len(s.regions)
	for left < right {
		middle := int(uint(left+right) >> 1)
		if s.regions[middle].Start <= t {
			left = middle + 1
		} else {
			right = middle
		}
	}
	return left
}

func (s *Sequencer) removeAt(i int) {
	delete(s.starts, s.regions[i].ID)
	copy(s.regions[i:], s.regions[i+1:])
	s.regions[len(s.regions)-1] = Region{}
	s.regions = s.regions[:len(s.regions)-1]
}
