package umpire

// Observation is what a player knows about a single tile: either nothing,
// or a snapshot taken at some point in the past, tagged with whether it
// reflects the tile's current state.
type Observation struct {
	Observed    bool   `json:"observed"`
	Tile        Tile   `json:"tile"`
	Turn        uint32 `json:"turn"`
	ActionCount uint64 `json:"action_count"`
	Current     bool   `json:"current"`
}

// Unobserved is the zero-value Observation.
var Unobserved = Observation{}

// PlayerObsTracker is one player's fog-of-war grid: a per-tile
// Observation, updated whenever one of the player's units or cities sees
// that tile.
type PlayerObsTracker struct {
	dims  Dims
	cells []Observation
}

func newPlayerObsTracker(dims Dims) *PlayerObsTracker {
	return &PlayerObsTracker{dims: dims, cells: make([]Observation, dims.Area())}
}

func (t *PlayerObsTracker) index(loc Location) int {
	return int(loc.Y)*int(t.dims.Width) + int(loc.X)
}

// Get returns the observation at loc.
func (t *PlayerObsTracker) Get(loc Location) Observation {
	return t.cells[t.index(loc)]
}

// record stores a fresh, current observation of tile at the given turn and
// action count.
func (t *PlayerObsTracker) record(tile Tile, turn uint32, actionCount uint64) {
	t.cells[t.index(tile.Loc)] = Observation{
		Observed:    true,
		Tile:        tile.snapshot(),
		Turn:        turn,
		ActionCount: actionCount,
		Current:     true,
	}
}

// archive flips every observation's Current flag to false, without
// discarding the recorded data. Called when the owning player's turn
// ends.
func (t *PlayerObsTracker) archive() {
	for i := range t.cells {
		t.cells[i].Current = false
	}
}

// observeFrom records observations of every tile within sight of an
// observer at loc, reading live tiles from m.
func (t *PlayerObsTracker) observeFrom(m *MapData, loc Location, sight uint16, turn uint32, actionCount uint64) {
	t.record(m.TileAt(loc), turn, actionCount)
	for dist := 1; dist <= int(sight); dist++ {
		for _, l := range ring(loc, dist, m.dims, m.wrapping) {
			if ChebyshevDistance(loc, l, m.dims, m.wrapping) > int(sight) {
				continue
			}
			t.record(m.TileAt(l), turn, actionCount)
		}
	}
}

// ring returns every in-bounds location at exactly the given Chebyshev
// radius from center (a cheap way to enumerate a sight disc ring by ring).
func ring(center Location, radius int, dims Dims, wrap Wrap2d) []Location {
	if radius == 0 {
		return []Location{center}
	}
	seen := make(map[Location]bool)
	var out []Location
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			if abs(dx) != radius && abs(dy) != radius {
				continue
			}
			if loc, ok := step(center, dx, dy, dims, wrap); ok && !seen[loc] {
				seen[loc] = true
				out = append(out, loc)
			}
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// FractionObserved returns the fraction of the map this tracker has ever
// observed (regardless of currentness).
func (t *PlayerObsTracker) FractionObserved() float64 {
	if len(t.cells) == 0 {
		return 0
	}
	count := 0
	for _, c := range t.cells {
		if c.Observed {
			count++
		}
	}
	return float64(count) / float64(len(t.cells))
}

// clone returns a deep copy of the tracker.
func (t *PlayerObsTracker) clone() *PlayerObsTracker {
	c := &PlayerObsTracker{dims: t.dims, cells: make([]Observation, len(t.cells))}
	copy(c.cells, t.cells)
	return c
}

// TilesObserved returns the count of tiles this tracker has ever observed.
func (t *PlayerObsTracker) TilesObserved() int {
	count := 0
	for _, c := range t.cells {
		if c.Observed {
			count++
		}
	}
	return count
}
