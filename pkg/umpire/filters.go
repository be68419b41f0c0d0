package umpire

// UnitMovementFilter accepts tiles a unit could actually enter: matching
// terrain/transport mode, no blocking enemy occupant, and enough carrying
// capacity at the destination when the unit cannot enter the terrain
// directly (e.g. a land unit stepping onto a tile with a friendly
// transport).
type UnitMovementFilter struct {
	Unit *Unit
}

func (f UnitMovementFilter) Passable(loc Location, tile Tile) bool {
	return unitCanEnter(f.Unit, tile)
}

func unitCanEnter(u *Unit, tile Tile) bool {
	terrainOK := (u.Type.Mode() == ModeLand && tile.Terrain == Land) ||
		(u.Type.Mode() == ModeSea && tile.Terrain == Water) ||
		u.Type.Mode() == ModeAir

	if tile.Unit != nil {
		if tile.Unit.Alignment.Friendly(u.Alignment) {
			if terrainOK {
				return true
			}
			return tile.Unit.CarryingSpace != nil && tile.Unit.CanCarry(u)
		}
		// Enemy occupant: combat is always attemptable regardless of
		// terrain match, since victory lets the attacker take the tile.
		return true
	}

	if !terrainOK {
		return false
	}
	if tile.City != nil && !tile.City.Alignment.Friendly(u.Alignment) {
		// Attacking an undefended enemy city is allowed.
		return true
	}
	return true
}

// UnitMovementFilterXenophile is like UnitMovementFilter but treats
// unobserved tiles (zero-value Tile with no terrain information recorded)
// as traversable, used for planning GoTo/Explore orders that may lead
// through territory the player hasn't yet seen.
type UnitMovementFilterXenophile struct {
	Unit *Unit
}

func (f UnitMovementFilterXenophile) Passable(loc Location, obs Observation) bool {
	if !obs.Observed {
		return true
	}
	return unitCanEnter(f.Unit, obs.Tile)
}

// AndFilter passes only when both wrapped filters pass.
type AndFilter[T any] struct {
	A, B Filter[T]
}

func (f AndFilter[T]) Passable(loc Location, value T) bool {
	return f.A.Passable(loc, value) && f.B.Passable(loc, value)
}

// NoUnitsFilter rejects any tile occupied by a top-level unit.
type NoUnitsFilter struct{}

func (NoUnitsFilter) Passable(loc Location, tile Tile) bool {
	return tile.Unit == nil
}

// NoCitiesButOursFilter rejects tiles with a city not belonging to
// Alignment.
type NoCitiesButOursFilter struct {
	Alignment Alignment
}

func (f NoCitiesButOursFilter) Passable(loc Location, tile Tile) bool {
	return tile.City == nil || tile.City.Alignment.Friendly(f.Alignment)
}

// ObservedReachableByPacifistUnit accepts only tiles the unit could enter
// without engaging in combat: no enemy units or undefended enemy cities.
type ObservedReachableByPacifistUnit struct {
	Unit *Unit
}

func (f ObservedReachableByPacifistUnit) Passable(loc Location, obs Observation) bool {
	if !obs.Observed {
		return false
	}
	tile := obs.Tile
	terrainOK := (f.Unit.Type.Mode() == ModeLand && tile.Terrain == Land) ||
		(f.Unit.Type.Mode() == ModeSea && tile.Terrain == Water) ||
		f.Unit.Type.Mode() == ModeAir
	if !terrainOK {
		return false
	}
	if tile.Unit != nil && !tile.Unit.Alignment.Friendly(f.Unit.Alignment) {
		return false
	}
	if tile.City != nil && !tile.City.Alignment.Friendly(f.Unit.Alignment) {
		return false
	}
	return true
}
