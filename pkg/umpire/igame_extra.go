package umpire

// This file rounds out the direct, per-operation methods on the IGame
// surface: single-purpose queries and mutations that TakeAction's
// dispatch table already covers in bulk, but which a caller (UI, AI
// look-ahead, or a test) may want to invoke individually without going
// through the PlayerAction envelope.

// --- Lifecycle ---

// TurnIsDone reports whether the given player has already completed the
// named turn: either a later turn is underway, or this turn is underway
// but play has already passed this player's slot in the current round.
func (g *Game) TurnIsDone(player PlayerNum, turn uint32) bool {
	if g.turn > turn {
		return true
	}
	if g.turn < turn {
		return false
	}
	return int(player) < int(g.currentPlayer)
}

// PlayerObservations returns a row-major copy of player's entire
// observation grid.
func (g *Game) PlayerObservations(p PlayerNum, secret PlayerSecret) ([]Observation, *GameError) {
	if gerr := g.checkSecret(p, secret); gerr != nil {
		return nil, gerr
	}
	tracker := g.playerObservations[p]
	out := make([]Observation, len(tracker.cells))
	copy(out, tracker.cells)
	return out, nil
}

// --- Cities ---

// PlayerCityCount returns how many cities player owns.
func (g *Game) PlayerCityCount(p PlayerNum, secret PlayerSecret) (int, *GameError) {
	cities, gerr := g.PlayerCities(p, secret)
	if gerr != nil {
		return 0, gerr
	}
	return len(cities), nil
}

// PlayerCitiesProducingOrNotIgnored returns every city that either has a
// production target set or has not been explicitly marked to ignore its
// cleared target — i.e. every city except the ones a caller has
// deliberately silenced.
func (g *Game) PlayerCitiesProducingOrNotIgnored(p PlayerNum, secret PlayerSecret) ([]City, *GameError) {
	cities, gerr := g.PlayerCities(p, secret)
	if gerr != nil {
		return nil, gerr
	}
	var out []City
	for _, c := range cities {
		if c.Productive() || !c.IgnoreClearedProduction {
			out = append(out, c)
		}
	}
	return out, nil
}

// PlayerCityByLoc returns player's city at loc, failing if loc has no
// city or the city belongs to someone else.
func (g *Game) PlayerCityByLoc(p PlayerNum, secret PlayerSecret, loc Location) (*City, *GameError) {
	if gerr := g.checkSecret(p, secret); gerr != nil {
		return nil, gerr
	}
	c, gerr := g.mapData.CityByLoc(loc)
	if gerr != nil {
		return nil, gerr
	}
	if !c.Alignment.Friendly(Belligerent(p)) {
		return nil, errNoCityAtLocation(loc)
	}
	return c, nil
}

// PlayerCityByID returns player's city with the given id.
func (g *Game) PlayerCityByID(p PlayerNum, secret PlayerSecret, id CityID) (*City, *GameError) {
	if gerr := g.checkSecret(p, secret); gerr != nil {
		return nil, gerr
	}
	c, gerr := g.mapData.CityByID(id)
	if gerr != nil {
		return nil, gerr
	}
	if !c.Alignment.Friendly(Belligerent(p)) {
		return nil, errNoSuchCity(id)
	}
	return c, nil
}

// ValidProductions lists every unit type a city at loc could be set to
// produce. Production has no tech-tree gating in this engine, so every
// declared UnitType is always valid.
func (g *Game) ValidProductions(p PlayerNum, secret PlayerSecret, loc Location) ([]UnitType, *GameError) {
	if _, gerr := g.PlayerCityByLoc(p, secret, loc); gerr != nil {
		return nil, gerr
	}
	out := make([]UnitType, len(UnitTypes))
	copy(out, UnitTypes[:])
	return out, nil
}

// ValidProductionsConservative is ValidProductions minus sea-mode types
// for a city with no adjacent water tile, since such a unit could never
// leave the city once built.
func (g *Game) ValidProductionsConservative(p PlayerNum, secret PlayerSecret, loc Location) ([]UnitType, *GameError) {
	all, gerr := g.ValidProductions(p, secret, loc)
	if gerr != nil {
		return nil, gerr
	}
	coastal := false
	for _, n := range Neighbors(loc, g.mapData.Dims(), g.wrapping) {
		if g.mapData.TileAt(n).Terrain == Water {
			coastal = true
			break
		}
	}
	if coastal {
		return all, nil
	}
	out := make([]UnitType, 0, len(all))
	for _, t := range all {
		if t.Mode() != ModeSea {
			out = append(out, t)
		}
	}
	return out, nil
}

// ClearProductions clears the production target of every city player
// owns, matching ClearProduction's ignore semantics.
func (g *Game) ClearProductions(p PlayerNum, secret PlayerSecret, ignore bool) *GameError {
	cities, gerr := g.PlayerCities(p, secret)
	if gerr != nil {
		return gerr
	}
	for _, c := range cities {
		if cerr := g.mapData.ClearCityProduction(c.Loc, ignore); cerr != nil {
			return cerr
		}
	}
	return nil
}

// --- Units ---

// PlayerUnitTypeCounts returns, in declared UnitType order, how many
// units of each type player controls.
func (g *Game) PlayerUnitTypeCounts(p PlayerNum, secret PlayerSecret) ([10]int, *GameError) {
	if gerr := g.checkSecret(p, secret); gerr != nil {
		return [10]int{}, gerr
	}
	return g.mapData.AlignmentUnitTypeCounts(Belligerent(p)), nil
}

// PlayerUnitLoc returns the location of player's unit with the given id.
func (g *Game) PlayerUnitLoc(p PlayerNum, secret PlayerSecret, id UnitID) (Location, *GameError) {
	u, gerr := g.PlayerUnitByID(p, secret, id)
	if gerr != nil {
		return Location{}, gerr
	}
	return u.Loc, nil
}

// PlayerToplevelUnitByLoc returns player's top-level unit at loc, failing
// if the tile is empty or holds someone else's unit.
func (g *Game) PlayerToplevelUnitByLoc(p PlayerNum, secret PlayerSecret, loc Location) (*Unit, *GameError) {
	if gerr := g.checkSecret(p, secret); gerr != nil {
		return nil, gerr
	}
	if !InBounds(loc, g.mapData.Dims()) {
		return nil, errNoTileAtLocation(loc)
	}
	tile := g.mapData.TileAt(loc)
	if tile.Unit == nil {
		return nil, errNoUnitAtLocation(loc)
	}
	if !tile.Unit.Alignment.Friendly(Belligerent(p)) {
		return nil, errNoUnitAtLocation(loc)
	}
	u := *tile.Unit
	return &u, nil
}

// PlayerUnitOrdersRequests returns the locations of player's units that
// still need orders this turn (no standing orders, moves remaining).
func (g *Game) PlayerUnitOrdersRequests(p PlayerNum, secret PlayerSecret) ([]Location, *GameError) {
	units, gerr := g.PlayerUnitsWithOrdersRequests(p, secret)
	if gerr != nil {
		return nil, gerr
	}
	out := make([]Location, len(units))
	for i, u := range units {
		out[i] = u.Loc
	}
	return out, nil
}

// PlayerUnitsWithPendingOrders returns every unit that currently carries
// a standing order (Skip, Sentry, GoTo, or Explore) not yet cleared.
func (g *Game) PlayerUnitsWithPendingOrders(p PlayerNum, secret PlayerSecret) ([]Unit, *GameError) {
	units, gerr := g.PlayerUnits(p, secret)
	if gerr != nil {
		return nil, gerr
	}
	var out []Unit
	for _, u := range units {
		if u.Orders != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

// PlayerUnitLegalOneStepDestinations returns every tile adjacent to the
// unit's location it could step onto right now.
func (g *Game) PlayerUnitLegalOneStepDestinations(p PlayerNum, secret PlayerSecret, id UnitID) ([]Location, *GameError) {
	u, gerr := g.PlayerUnitByID(p, secret, id)
	if gerr != nil {
		return nil, gerr
	}
	dims, wrap := g.mapData.Dims(), g.mapData.Wrapping()
	filter := UnitMovementFilter{Unit: u}
	var out []Location
	for _, n := range Neighbors(u.Loc, dims, wrap) {
		if filter.Passable(n, g.mapData.TileAt(n)) {
			out = append(out, n)
		}
	}
	return out, nil
}

// PlayerUnitLegalDirections returns the compass directions the unit could
// step in right now.
func (g *Game) PlayerUnitLegalDirections(p PlayerNum, secret PlayerSecret, id UnitID) ([]Direction, *GameError) {
	u, gerr := g.PlayerUnitByID(p, secret, id)
	if gerr != nil {
		return nil, gerr
	}
	dims, wrap := g.mapData.Dims(), g.mapData.Wrapping()
	filter := UnitMovementFilter{Unit: u}
	var out []Direction
	for _, d := range Directions {
		n, ok := Neighbor(u.Loc, d, dims, wrap)
		if ok && filter.Passable(n, g.mapData.TileAt(n)) {
			out = append(out, d)
		}
	}
	return out, nil
}

// --- Movement ---

// MoveUnitByID moves player's unit toward dest using the normal
// (combat-permitting) pipeline.
func (g *Game) MoveUnitByID(p PlayerNum, secret PlayerSecret, id UnitID, dest Location) (*Move, *GameError) {
	if gerr := g.checkSecret(p, secret); gerr != nil {
		return nil, gerr
	}
	if _, gerr := g.PlayerUnitByID(p, secret, id); gerr != nil {
		return nil, gerr
	}
	move, gerr := g.moveUnit(p, id, dest)
	g.recordAction(p)
	return move, gerr
}

// MoveUnitByIDInDirection moves player's unit one step in the given
// compass direction.
func (g *Game) MoveUnitByIDInDirection(p PlayerNum, secret PlayerSecret, id UnitID, dir Direction) (*Move, *GameError) {
	u, gerr := g.PlayerUnitByID(p, secret, id)
	if gerr != nil {
		return nil, gerr
	}
	dest, ok := Neighbor(u.Loc, dir, g.mapData.Dims(), g.wrapping)
	if !ok {
		return nil, errMove(&MoveError{Code: ErrDestinationOutOfBounds})
	}
	return g.MoveUnitByID(p, secret, id, dest)
}

// MoveUnitByIDAvoidingCombat is MoveUnitByID, but the route planner
// refuses any tile occupied by a unit or by a city not belonging to
// player, so the move only ever proceeds through uncontested territory.
func (g *Game) MoveUnitByIDAvoidingCombat(p PlayerNum, secret PlayerSecret, id UnitID, dest Location) (*Move, *GameError) {
	if gerr := g.checkSecret(p, secret); gerr != nil {
		return nil, gerr
	}
	unit, gerr := g.PlayerUnitByID(p, secret, id)
	if gerr != nil {
		return nil, gerr
	}
	if !InBounds(dest, g.mapData.Dims()) {
		return nil, errMove(&MoveError{Code: ErrDestinationOutOfBounds, Dest: dest})
	}
	if unit.Loc == dest {
		return nil, errMove(&MoveError{Code: ErrZeroLengthMove, Src: unit.Loc, Dest: dest})
	}
	dims, wrap := g.mapData.Dims(), g.mapData.Wrapping()
	filter := AndFilter[Tile]{
		A: UnitMovementFilterNoCombat{Unit: unit},
		B: NoCitiesButOursFilter{Alignment: unit.Alignment},
	}
	result := Dijkstra[Tile](unit.Loc, unit.MovesRemaining, TileSource{Map: g.mapData}, filter, dims, wrap)
	path, ok := result.PathTo(dest)
	if !ok || len(path) < 2 {
		return nil, errMove(&MoveError{Code: ErrNoRoute, Src: unit.Loc, Dest: dest, UnitID: id})
	}
	// The combat-free route is guaranteed contested-free, so stepping it
	// with the normal pipeline cannot trigger combat.
	move, mgerr := g.moveUnit(p, id, dest)
	g.recordAction(p)
	return move, mgerr
}

// MoveToplevelUnitByID is MoveUnitByID under another name, for API
// symmetry with the by-location variants below. It does not check that
// the unit is top-level: a carried unit's id moves that unit out of its
// carrier, as MoveUnitByID does.
func (g *Game) MoveToplevelUnitByID(p PlayerNum, secret PlayerSecret, id UnitID, dest Location) (*Move, *GameError) {
	return g.MoveUnitByID(p, secret, id, dest)
}

// MoveToplevelUnitByIDAvoidingCombat is the combat-avoiding counterpart
// of MoveToplevelUnitByID.
func (g *Game) MoveToplevelUnitByIDAvoidingCombat(p PlayerNum, secret PlayerSecret, id UnitID, dest Location) (*Move, *GameError) {
	return g.MoveUnitByIDAvoidingCombat(p, secret, id, dest)
}

// MoveToplevelUnitByLoc resolves the top-level unit at src and moves it
// to dest.
func (g *Game) MoveToplevelUnitByLoc(p PlayerNum, secret PlayerSecret, src, dest Location) (*Move, *GameError) {
	u, gerr := g.PlayerToplevelUnitByLoc(p, secret, src)
	if gerr != nil {
		return nil, gerr
	}
	return g.MoveUnitByID(p, secret, u.ID, dest)
}

// MoveToplevelUnitByLocAvoidingCombat is the combat-avoiding counterpart
// of MoveToplevelUnitByLoc.
func (g *Game) MoveToplevelUnitByLocAvoidingCombat(p PlayerNum, secret PlayerSecret, src, dest Location) (*Move, *GameError) {
	u, gerr := g.PlayerToplevelUnitByLoc(p, secret, src)
	if gerr != nil {
		return nil, gerr
	}
	return g.MoveUnitByIDAvoidingCombat(p, secret, u.ID, dest)
}

// --- Orders convenience wrappers ---

func (g *Game) OrderUnitSentry(p PlayerNum, secret PlayerSecret, id UnitID) *GameError {
	return g.SetOrders(p, secret, id, Orders{Kind: OrdersSentry})
}

func (g *Game) OrderUnitSkip(p PlayerNum, secret PlayerSecret, id UnitID) *GameError {
	return g.SetOrders(p, secret, id, Orders{Kind: OrdersSkip})
}

func (g *Game) OrderUnitGoTo(p PlayerNum, secret PlayerSecret, id UnitID, dest Location) *GameError {
	return g.SetOrders(p, secret, id, Orders{Kind: OrdersGoTo, Dest: dest})
}

func (g *Game) OrderUnitExplore(p PlayerNum, secret PlayerSecret, id UnitID) *GameError {
	return g.SetOrders(p, secret, id, Orders{Kind: OrdersExplore})
}

// SetAndFollowOrders sets orders on player's unit and immediately carries
// out one step of them, rather than waiting for the unit's next
// begin_turn.
func (g *Game) SetAndFollowOrders(p PlayerNum, secret PlayerSecret, id UnitID, orders Orders) (*OrdersOutcome, *GameError) {
	if gerr := g.SetOrders(p, secret, id, orders); gerr != nil {
		return nil, gerr
	}
	unit, gerr := g.mapData.UnitByID(id)
	if gerr != nil {
		return nil, gerr
	}
	outcome := g.carryOutOrders(p, unit)
	return &outcome, nil
}

// ActivateUnitByLoc clears standing orders from player's top-level unit
// at loc, returning it to the pool of units awaiting fresh orders.
func (g *Game) ActivateUnitByLoc(p PlayerNum, secret PlayerSecret, loc Location) *GameError {
	u, gerr := g.PlayerToplevelUnitByLoc(p, secret, loc)
	if gerr != nil {
		return gerr
	}
	return g.ClearOrders(p, secret, u.ID)
}

// UnitMovementFilterNoCombat accepts only tiles a combat-avoiding route
// may cross: unoccupied, and (for the purposes of this filter) entered
// without needing to fight. NoCitiesButOursFilter handles the
// city-ownership half of "no combat"; this handles unit occupancy while
// still allowing a friendly carrier to take the unit aboard.
type UnitMovementFilterNoCombat struct {
	Unit *Unit
}

func (f UnitMovementFilterNoCombat) Passable(loc Location, tile Tile) bool {
	if tile.Unit != nil {
		if !tile.Unit.Alignment.Friendly(f.Unit.Alignment) {
			return false
		}
		return unitCanEnter(f.Unit, tile)
	}
	terrainOK := (f.Unit.Type.Mode() == ModeLand && tile.Terrain == Land) ||
		(f.Unit.Type.Mode() == ModeSea && tile.Terrain == Water) ||
		f.Unit.Type.Mode() == ModeAir
	return terrainOK
}
