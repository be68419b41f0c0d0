package umpire

// MoveComponent records one tile's worth of a Move: the tile entered, and
// what happened there.
type MoveComponent struct {
	Loc          Location       `json:"loc"`
	Combat       *CombatOutcome `json:"combat,omitempty"`
	CarriedUnit  bool           `json:"carried_unit"`
	OccupiedCity bool           `json:"occupied_city"`
}

// Move is the outcome of a (possibly multi-tile) movement attempt.
type Move struct {
	UnitID                 UnitID          `json:"unit_id"`
	Components             []MoveComponent `json:"components,omitempty"`
	MovementCompleteAtCity bool            `json:"movement_complete_at_city"`
	FuelRanOut             bool            `json:"fuel_ran_out"`
	Destroyed              bool            `json:"destroyed"`
}

// EndingLoc returns the location the unit ended the move at, if it
// survived.
func (m *Move) EndingLoc() (Location, bool) {
	if m.Destroyed || len(m.Components) == 0 {
		return Location{}, false
	}
	return m.Components[len(m.Components)-1].Loc, true
}

// MovedSuccessfully reports whether the unit is alive and moved at least
// one tile.
func (m *Move) MovedSuccessfully() bool {
	return !m.Destroyed && len(m.Components) > 0
}

// DistanceMoved returns the number of tiles actually traversed.
func (m *Move) DistanceMoved() uint16 {
	return uint16(len(m.Components))
}

// moveUnit implements the seven-step movement pipeline of SPEC_FULL.md
// §4.5: validate, plan, advance-and-observe one step at a time,
// replanning whenever a newly observed tile's passability changed,
// dispatching combat/carry/occupy per entered tile, until the unit
// reaches dest, exhausts moves or fuel, dies, or no route exists.
func (g *Game) moveUnit(player PlayerNum, unitID UnitID, dest Location) (*Move, *GameError) {
	if !InBounds(dest, g.mapData.Dims()) {
		return nil, errMove(&MoveError{Code: ErrDestinationOutOfBounds, Dest: dest})
	}
	unit, gerr := g.mapData.UnitByID(unitID)
	if gerr != nil {
		return nil, errMove(&MoveError{Code: ErrSourceUnitDoesNotExist, UnitID: unitID})
	}
	src := unit.Loc
	if src == dest {
		return nil, errMove(&MoveError{Code: ErrZeroLengthMove, Src: src, Dest: dest})
	}

	move := &Move{UnitID: unitID}
	obsTracker := g.playerObservations[player]
	dims, wrap := g.mapData.Dims(), g.mapData.Wrapping()

	cur := *unit
	for cur.Loc != dest {
		if cur.MovesRemaining == 0 {
			break
		}
		if !cur.HasFuelFor(1) {
			move.FuelRanOut = true
			g.destroyUnit(cur.ID)
			move.Destroyed = true
			return move, nil
		}

		filter := UnitMovementFilterXenophile{Unit: &cur}
		result := Dijkstra[Observation](cur.Loc, cur.MovesRemaining, ObsSource{Tracker: obsTracker}, filter, dims, wrap)
		path, ok := result.PathTo(dest)
		if !ok || len(path) < 2 {
			return nil, errMove(&MoveError{Code: ErrNoRoute, Src: cur.Loc, Dest: dest, UnitID: unitID})
		}
		next := path[1]

		beforeTile := g.mapData.TileAt(next)
		comp, outcome, stop := g.enterTile(player, &cur, next)
		move.Components = append(move.Components, comp)
		cur.MovesRemaining--
		cur.consumeFuel(1)

		g.recordAction(player)
		obsTracker.observeFrom(g.mapData, cur.Loc, cur.Type.SightDistance(), g.turn, g.actionCounts[player])

		afterTile := g.mapData.TileAt(next)
		if tilePassabilityChanged(beforeTile, afterTile, &cur) {
			// A later step revealed the plan is stale; the loop will
			// replan from cur.Loc on the next iteration.
		}

		switch outcome {
		case enterDestroyed:
			move.Destroyed = true
			return move, nil
		case enterOccupiedCity:
			move.MovementCompleteAtCity = true
			cur.MovesRemaining = 0
			g.mapData.relocateUnitState(cur)
			return move, nil
		case enterBlocked:
			return move, nil
		}
		if stop {
			break
		}
	}
	g.mapData.relocateUnitState(cur)
	return move, nil
}

type enterOutcome int

const (
	enterOK enterOutcome = iota
	enterDestroyed
	enterOccupiedCity
	enterBlocked
)

// enterTile dispatches the per-tile effects of stepping onto next:
// friendly unit (carry), enemy unit (combat, possibly followed by city
// combat), friendly city (walk in), enemy city with no defender (city
// combat), or an empty tile (plain relocation).
func (g *Game) enterTile(player PlayerNum, cur *Unit, next Location) (MoveComponent, enterOutcome, bool) {
	tile := g.mapData.TileAt(next)
	comp := MoveComponent{Loc: next}

	if tile.Unit != nil && tile.Unit.Alignment.Friendly(cur.Alignment) && tile.Unit.ID != cur.ID {
		if tile.Unit.CanCarry(cur) {
			if gerr := g.mapData.CarryUnitByID(tile.Unit.ID, cur.ID); gerr == nil {
				comp.CarriedUnit = true
				// CarryUnitByID snapshots the carried unit from its
				// pre-step map state; apply this step's cost to the
				// newly-held copy so fuel/moves reflect having just
				// boarded rather than the state before the step.
				held := &tile.Unit.CarryingSpace.Held[len(tile.Unit.CarryingSpace.Held)-1]
				held.MovesRemaining = 0
				held.consumeFuel(1)
				cur.MovesRemaining = 0
				return comp, enterBlocked, true
			}
		}
		cur.Loc = tile.Unit.Loc
		return comp, enterBlocked, true
	}

	if tile.Unit != nil && !tile.Unit.Alignment.Friendly(cur.Alignment) {
		defenderPlayer := playerOf(tile.Unit.Alignment)
		defenderMaxHP := tile.Unit.Type.MaxHP()
		attackerMaxHP := cur.Type.MaxHP()
		outcome := resolveCombat(g.rng, *cur, *tile.Unit)
		comp.Combat = &outcome
		if !outcome.AttackerSurvived {
			g.recordDefeat(defenderPlayer, attackerMaxHP)
			return comp, enterDestroyed, true
		}
		*cur = outcome.Attacker
		cur.Loc = next
		g.mapData.PopToplevelUnitByLoc(next)
		g.recordDefeat(player, defenderMaxHP)

		if tile.City != nil && !tile.City.Alignment.Friendly(cur.Alignment) {
			if cur.Type.CanOccupyCities() {
				g.mapData.relocateUnitState(*cur)
				g.mapData.OccupyCity(cur.ID, next)
				comp.OccupiedCity = true
				return comp, enterOccupiedCity, true
			}
			return comp, enterBlocked, true
		}
		g.mapData.relocateUnitState(*cur)
		return comp, enterOK, false
	}

	if tile.City != nil && !tile.City.Alignment.Friendly(cur.Alignment) {
		// Undefended enemy city: resolve as a zero-HP-defender city combat.
		if cur.Type.CanOccupyCities() {
			cur.Loc = next
			g.mapData.relocateUnitState(*cur)
			g.mapData.OccupyCity(cur.ID, next)
			comp.OccupiedCity = true
			return comp, enterOccupiedCity, true
		}
		cur.Loc = next
		g.mapData.relocateUnitState(*cur)
		return comp, enterOK, false
	}

	cur.Loc = next
	g.mapData.relocateUnitState(*cur)
	if tile.City != nil && tile.City.Alignment.Friendly(cur.Alignment) {
		g.refuelAt(cur)
	}
	return comp, enterOK, false
}

func (g *Game) refuelAt(u *Unit) {
	u.Refuel()
}

func tilePassabilityChanged(before, after Tile, unit *Unit) bool {
	return unitCanEnter(unit, before) != unitCanEnter(unit, after)
}
