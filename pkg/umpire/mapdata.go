package umpire

// MapData is the single source of truth for terrain, units, and cities. It
// keeps a set of secondary indices in step with the tile grid so that
// unit/city lookups by id are O(1); every mutating method either leaves
// both the grid and the indices consistent, or returns an error and
// changes nothing.
type MapData struct {
	dims     Dims
	wrapping Wrap2d
	tiles    []Tile

	unitLocByID       map[UnitID]Location
	unitCarrierByID   map[UnitID]UnitID // carried units only
	cityLocByID       map[CityID]Location

	nextUnitID uint64
	nextCityID uint64

	alignmentCityCounts     map[Alignment]int
	alignmentUnitTypeCounts map[Alignment][10]int
}

// NewMapData constructs an empty, all-Land map of the given dimensions.
func NewMapData(dims Dims, wrapping Wrap2d) *MapData {
	m := &MapData{
		dims:                    dims,
		wrapping:                wrapping,
		tiles:                   make([]Tile, dims.Area()),
		unitLocByID:             make(map[UnitID]Location),
		unitCarrierByID:         make(map[UnitID]UnitID),
		cityLocByID:             make(map[CityID]Location),
		alignmentCityCounts:     make(map[Alignment]int),
		alignmentUnitTypeCounts: make(map[Alignment][10]int),
	}
	for y := uint16(0); y < dims.Height; y++ {
		for x := uint16(0); x < dims.Width; x++ {
			loc := Location{X: x, Y: y}
			m.tiles[m.index(loc)] = newTile(loc, Land)
		}
	}
	return m
}

// newMapDataFromTiles builds a MapData from a pre-populated grid (as
// produced by ParseMapText), recomputing every secondary index by walking
// the grid once. The next unit/city id counters start one past the
// largest id already present in the grid, so that freshly produced units
// never collide with the parsed fixture's ids.
func newMapDataFromTiles(dims Dims, wrapping Wrap2d, tiles []Tile) *MapData {
	m := &MapData{
		dims:                    dims,
		wrapping:                wrapping,
		tiles:                   tiles,
		unitLocByID:             make(map[UnitID]Location),
		unitCarrierByID:         make(map[UnitID]UnitID),
		cityLocByID:             make(map[CityID]Location),
		alignmentCityCounts:     make(map[Alignment]int),
		alignmentUnitTypeCounts: make(map[Alignment][10]int),
	}
	for i := range m.tiles {
		tile := &m.tiles[i]
		if tile.Unit != nil {
			m.unitLocByID[tile.Unit.ID] = tile.Loc
			m.bumpUnitCount(tile.Unit.Alignment, tile.Unit.Type, 1)
			if uint64(tile.Unit.ID) >= m.nextUnitID {
				m.nextUnitID = uint64(tile.Unit.ID)
			}
			if tile.Unit.CarryingSpace != nil {
				for _, held := range tile.Unit.CarryingSpace.Held {
					m.unitCarrierByID[held.ID] = tile.Unit.ID
					m.bumpUnitCount(held.Alignment, held.Type, 1)
					if uint64(held.ID) >= m.nextUnitID {
						m.nextUnitID = uint64(held.ID)
					}
				}
			}
		}
		if tile.City != nil {
			m.cityLocByID[tile.City.ID] = tile.Loc
			m.alignmentCityCounts[tile.City.Alignment]++
			if uint64(tile.City.ID) >= m.nextCityID {
				m.nextCityID = uint64(tile.City.ID)
			}
		}
	}
	return m
}

func (m *MapData) Dims() Dims         { return m.dims }
func (m *MapData) Wrapping() Wrap2d   { return m.wrapping }

func (m *MapData) index(loc Location) int {
	return int(loc.Y)*int(m.dims.Width) + int(loc.X)
}

// TileAt returns a value copy of the tile at loc. Callers must not assume
// loc is in bounds; out-of-bounds access panics, matching the invariant
// that every caller validates locations via InBounds first.
func (m *MapData) TileAt(loc Location) Tile {
	return m.tiles[m.index(loc)]
}

func (m *MapData) setTerrain(loc Location, t Terrain) {
	m.tiles[m.index(loc)].Terrain = t
}

// SetTerrain retiles the tile at loc, used by fixtures that need terrain
// the map text format can't express directly (e.g. a unit standing on
// Water).
func (m *MapData) SetTerrain(loc Location, t Terrain) {
	m.setTerrain(loc, t)
}

func (m *MapData) bumpUnitCount(a Alignment, t UnitType, delta int) {
	counts := m.alignmentUnitTypeCounts[a]
	counts[t] += delta
	m.alignmentUnitTypeCounts[a] = counts
}

// --- Units ---

// NewUnit creates a fresh top-level unit at loc and returns its id.
func (m *MapData) NewUnit(loc Location, t UnitType, alignment Alignment, name string) (UnitID, *GameError) {
	if !InBounds(loc, m.dims) {
		return 0, errNoTileAtLocation(loc)
	}
	tile := &m.tiles[m.index(loc)]
	if tile.Unit != nil {
		return 0, errUnitAlreadyPresent(loc)
	}
	m.nextUnitID++
	id := UnitID(m.nextUnitID)
	u := newUnit(id, loc, t, alignment, name)
	tile.Unit = &u
	m.unitLocByID[id] = loc
	m.bumpUnitCount(alignment, t, 1)
	return id, nil
}

// SetUnit places unit as the top-level unit at its own Loc, replacing any
// unit already there and returning it.
func (m *MapData) SetUnit(unit Unit) (*Unit, *GameError) {
	if !InBounds(unit.Loc, m.dims) {
		return nil, errNoTileAtLocation(unit.Loc)
	}
	tile := &m.tiles[m.index(unit.Loc)]
	prev := tile.Unit
	if prev != nil {
		delete(m.unitLocByID, prev.ID)
		m.bumpUnitCount(prev.Alignment, prev.Type, -1)
	}
	tile.Unit = &unit
	m.unitLocByID[unit.ID] = unit.Loc
	m.bumpUnitCount(unit.Alignment, unit.Type, 1)
	return prev, nil
}

// PopToplevelUnitByLoc removes and returns the top-level unit at loc.
func (m *MapData) PopToplevelUnitByLoc(loc Location) (*Unit, *GameError) {
	if !InBounds(loc, m.dims) {
		return nil, errNoTileAtLocation(loc)
	}
	tile := &m.tiles[m.index(loc)]
	if tile.Unit == nil {
		return nil, errNoUnitAtLocation(loc)
	}
	u := tile.Unit
	tile.Unit = nil
	delete(m.unitLocByID, u.ID)
	m.bumpUnitCount(u.Alignment, u.Type, -1)
	return u, nil
}

// PopToplevelUnitByID removes and returns the unit with id, if it is a
// top-level (not carried) unit.
func (m *MapData) PopToplevelUnitByID(id UnitID) (*Unit, *GameError) {
	loc, ok := m.unitLocByID[id]
	if !ok {
		return nil, errNoSuchUnit(id)
	}
	return m.PopToplevelUnitByLoc(loc)
}

// UnitByID returns the current value of a unit, top-level or carried.
func (m *MapData) UnitByID(id UnitID) (*Unit, *GameError) {
	if loc, ok := m.unitLocByID[id]; ok {
		tile := m.tiles[m.index(loc)]
		if tile.Unit != nil && tile.Unit.ID == id {
			u := *tile.Unit
			return &u, nil
		}
	}
	if carrierID, ok := m.unitCarrierByID[id]; ok {
		carrier, gerr := m.UnitByID(carrierID)
		if gerr != nil {
			return nil, gerr
		}
		for i := range carrier.CarryingSpace.Held {
			if carrier.CarryingSpace.Held[i].ID == id {
				held := carrier.CarryingSpace.Held[i]
				return &held, nil
			}
		}
	}
	return nil, errNoSuchUnit(id)
}

// UnitLocByID returns the location a unit occupies, which for a carried
// unit equals its carrier's location.
func (m *MapData) UnitLocByID(id UnitID) (Location, *GameError) {
	if loc, ok := m.unitLocByID[id]; ok {
		return loc, nil
	}
	if carrierID, ok := m.unitCarrierByID[id]; ok {
		return m.UnitLocByID(carrierID)
	}
	return Location{}, errNoSuchUnit(id)
}

// PopCarriedUnitByID removes and returns a carried unit from its carrier.
func (m *MapData) PopCarriedUnitByID(id UnitID) (*Unit, *GameError) {
	carrierID, ok := m.unitCarrierByID[id]
	if !ok {
		return nil, errNoSuchUnit(id)
	}
	carrierLoc, ok := m.unitLocByID[carrierID]
	if !ok {
		return nil, errNoSuchUnit(carrierID)
	}
	carrier := m.tiles[m.index(carrierLoc)].Unit
	if carrier == nil || carrier.CarryingSpace == nil {
		return nil, errNoSuchUnit(id)
	}
	held := carrier.CarryingSpace.Held
	for i := range held {
		if held[i].ID == id {
			u := held[i]
			carrier.CarryingSpace.Held = append(held[:i], held[i+1:]...)
			delete(m.unitCarrierByID, id)
			m.bumpUnitCount(u.Alignment, u.Type, -1)
			return &u, nil
		}
	}
	return nil, errNoSuchUnit(id)
}

// CarryUnitByID places the carried unit into carrier's hold. The carried
// unit is popped from wherever it currently lives (top-level or another
// carrier) on success; on failure nothing changes.
func (m *MapData) CarryUnitByID(carrierID, carriedID UnitID) *GameError {
	carrierLoc, ok := m.unitLocByID[carrierID]
	if !ok {
		return errNoSuchUnit(carrierID)
	}
	carrier := m.tiles[m.index(carrierLoc)].Unit
	if carrier == nil || carrier.ID != carrierID {
		return errNoSuchUnit(carrierID)
	}
	if carrier.CarryingSpace == nil {
		return errUnitHasNoCarryingSpace(carrierID)
	}

	carried, gerr := m.UnitByID(carriedID)
	if gerr != nil {
		return gerr
	}
	if !carrier.CarryingSpace.Owner.Friendly(carried.Alignment) {
		return errOnlyAlliesCarry()
	}
	if carried.Type.Mode() != carrier.CarryingSpace.AcceptedMode {
		return errWrongTransportMode()
	}
	if uint16(len(carrier.CarryingSpace.Held)) >= carrier.CarryingSpace.Capacity {
		return errInsufficientCarryingSpace()
	}

	// Remove the carried unit from wherever it lives now.
	if _, gerr := m.popUnitWherever(carriedID); gerr != nil {
		return gerr
	}

	moved := *carried
	moved.Loc = carrierLoc
	moved.MovesRemaining = carried.MovesRemaining
	carrier.CarryingSpace.Held = append(carrier.CarryingSpace.Held, moved)
	m.unitCarrierByID[carriedID] = carrierID
	m.bumpUnitCount(moved.Alignment, moved.Type, 1)
	return nil
}

// RelocateUnitByID moves the unit (wherever it lives) to become the
// top-level unit at dest, returning any unit that was previously there.
func (m *MapData) RelocateUnitByID(id UnitID, dest Location) (*Unit, *GameError) {
	if !InBounds(dest, m.dims) {
		return nil, errNoTileAtLocation(dest)
	}
	u, gerr := m.popUnitWherever(id)
	if gerr != nil {
		return nil, gerr
	}
	u.Loc = dest
	return m.SetUnit(*u)
}

// popUnitWherever removes id from wherever it currently lives — top-level
// on some tile, or held by a carrier — without the caller needing to know
// which.
func (m *MapData) popUnitWherever(id UnitID) (*Unit, *GameError) {
	if _, isTop := m.unitLocByID[id]; isTop {
		return m.PopToplevelUnitByID(id)
	}
	return m.PopCarriedUnitByID(id)
}

// relocateUnitState is RelocateUnitByID for a caller that has already
// computed the unit's full post-move state (HP, remaining moves, fuel)
// in a local copy: it clears the unit's old tile/carrier slot and places
// the given value at its own Loc, rather than discarding the caller's
// state in favor of whatever used to be on the grid.
func (m *MapData) relocateUnitState(u Unit) (*Unit, *GameError) {
	if _, gerr := m.popUnitWherever(u.ID); gerr != nil {
		return nil, gerr
	}
	return m.SetUnit(u)
}

// --- Cities ---

// NewCity creates a city at loc and returns its id.
func (m *MapData) NewCity(loc Location, alignment Alignment, name string) (CityID, *GameError) {
	if !InBounds(loc, m.dims) {
		return 0, errNoTileAtLocation(loc)
	}
	tile := &m.tiles[m.index(loc)]
	m.nextCityID++
	id := CityID(m.nextCityID)
	c := newCity(id, loc, alignment, name)
	tile.City = &c
	m.cityLocByID[id] = loc
	m.alignmentCityCounts[alignment]++
	return id, nil
}

// CityByLoc returns a copy of the city at loc.
func (m *MapData) CityByLoc(loc Location) (*City, *GameError) {
	if !InBounds(loc, m.dims) {
		return nil, errNoTileAtLocation(loc)
	}
	tile := m.tiles[m.index(loc)]
	if tile.City == nil {
		return nil, errNoCityAtLocation(loc)
	}
	c := *tile.City
	return &c, nil
}

// CityByID returns a copy of the city with id.
func (m *MapData) CityByID(id CityID) (*City, *GameError) {
	loc, ok := m.cityLocByID[id]
	if !ok {
		return nil, errNoSuchCity(id)
	}
	return m.CityByLoc(loc)
}

// SetCityProduction assigns a production target to the city at loc.
func (m *MapData) SetCityProduction(loc Location, t UnitType) *GameError {
	if !InBounds(loc, m.dims) {
		return errNoTileAtLocation(loc)
	}
	tile := &m.tiles[m.index(loc)]
	if tile.City == nil {
		return errNoCityAtLocation(loc)
	}
	prod := t
	tile.City.Production = &prod
	tile.City.IgnoreClearedProduction = false
	return nil
}

// ClearCityProduction removes the city's production target.
func (m *MapData) ClearCityProduction(loc Location, ignore bool) *GameError {
	if !InBounds(loc, m.dims) {
		return errNoTileAtLocation(loc)
	}
	tile := &m.tiles[m.index(loc)]
	if tile.City == nil {
		return errNoCityAtLocation(loc)
	}
	tile.City.Production = nil
	tile.City.ProductionProgress = 0
	tile.City.IgnoreClearedProduction = ignore
	return nil
}

// PopCityByLoc removes and returns the city at loc.
func (m *MapData) PopCityByLoc(loc Location) (*City, *GameError) {
	if !InBounds(loc, m.dims) {
		return nil, errNoTileAtLocation(loc)
	}
	tile := &m.tiles[m.index(loc)]
	if tile.City == nil {
		return nil, errNoCityAtLocation(loc)
	}
	c := tile.City
	tile.City = nil
	delete(m.cityLocByID, c.ID)
	m.alignmentCityCounts[c.Alignment]--
	return c, nil
}

// OccupyCity sets the city at loc to unit's alignment and relocates unit
// onto the tile. Fails if the tile already holds any other top-level unit,
// friendly or not (a "garrisoned" city must be cleared first).
func (m *MapData) OccupyCity(unitID UnitID, loc Location) *GameError {
	if !InBounds(loc, m.dims) {
		return errNoTileAtLocation(loc)
	}
	tile := &m.tiles[m.index(loc)]
	if tile.City == nil {
		return errNoCityAtLocation(loc)
	}
	unit, gerr := m.UnitByID(unitID)
	if gerr != nil {
		return gerr
	}
	if tile.Unit != nil && tile.Unit.ID != unitID {
		return errCannotOccupyGarrisonedCity(loc)
	}
	oldAlignment := tile.City.Alignment
	if oldAlignment != unit.Alignment {
		m.alignmentCityCounts[oldAlignment]--
		m.alignmentCityCounts[unit.Alignment]++
	}
	tile.City.Alignment = unit.Alignment
	_, gerr = m.RelocateUnitByID(unitID, loc)
	return gerr
}

// AlignmentCityCount returns how many cities belong to the given
// alignment.
func (m *MapData) AlignmentCityCount(a Alignment) int {
	return m.alignmentCityCounts[a]
}

// AlignmentUnitTypeCounts returns, for the given alignment, the count of
// each unit type in declared UnitTypes order.
func (m *MapData) AlignmentUnitTypeCounts(a Alignment) [10]int {
	return m.alignmentUnitTypeCounts[a]
}

// AllTiles returns a copy of every tile in row-major order.
func (m *MapData) AllTiles() []Tile {
	out := make([]Tile, len(m.tiles))
	copy(out, m.tiles)
	return out
}

// clone returns a deep copy sharing no mutable state with m: every tile's
// unit/city pointers are copied, and every index map is rebuilt.
func (m *MapData) clone() *MapData {
	c := &MapData{
		dims:                    m.dims,
		wrapping:                m.wrapping,
		tiles:                   make([]Tile, len(m.tiles)),
		unitLocByID:             make(map[UnitID]Location, len(m.unitLocByID)),
		unitCarrierByID:         make(map[UnitID]UnitID, len(m.unitCarrierByID)),
		cityLocByID:             make(map[CityID]Location, len(m.cityLocByID)),
		nextUnitID:              m.nextUnitID,
		nextCityID:              m.nextCityID,
		alignmentCityCounts:     make(map[Alignment]int, len(m.alignmentCityCounts)),
		alignmentUnitTypeCounts: make(map[Alignment][10]int, len(m.alignmentUnitTypeCounts)),
	}
	for i, t := range m.tiles {
		c.tiles[i] = t.snapshot()
	}
	for k, v := range m.unitLocByID {
		c.unitLocByID[k] = v
	}
	for k, v := range m.unitCarrierByID {
		c.unitCarrierByID[k] = v
	}
	for k, v := range m.cityLocByID {
		c.cityLocByID[k] = v
	}
	for k, v := range m.alignmentCityCounts {
		c.alignmentCityCounts[k] = v
	}
	for k, v := range m.alignmentUnitTypeCounts {
		c.alignmentUnitTypeCounts[k] = v
	}
	return c
}
