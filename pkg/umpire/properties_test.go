package umpire

import "testing"

// Property: player_cities count matches the alignment index's city count.
func TestPropertyCityCountMatchesIndex(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 4, Height: 4}, WrapNeither, 2)
	g.mapData.NewCity(Location{0, 0}, Belligerent(0), "A")
	g.mapData.NewCity(Location{1, 0}, Belligerent(0), "B")
	g.mapData.NewCity(Location{2, 0}, Belligerent(1), "C")

	cities, gerr := g.PlayerCities(0, secrets[0])
	if gerr != nil {
		t.Fatalf("PlayerCities: %v", gerr)
	}
	if len(cities) != g.mapData.AlignmentCityCount(Belligerent(0)) {
		t.Errorf("player_cities count %d != alignment index count %d", len(cities), g.mapData.AlignmentCityCount(Belligerent(0)))
	}
}

// Property: a carried unit's location and alignment always mirror its
// carrier's, and its transport mode matches what the carrier accepts.
func TestPropertyCarriedUnitMirrorsCarrier(t *testing.T) {
	m := NewMapData(Dims{Width: 3, Height: 1}, WrapNeither)
	carrierID, _ := m.NewUnit(Location{0, 0}, Transport, Belligerent(0), "T")
	carriedID, _ := m.NewUnit(Location{1, 0}, Armor, Belligerent(0), "A")
	if gerr := m.CarryUnitByID(carrierID, carriedID); gerr != nil {
		t.Fatalf("CarryUnitByID: %v", gerr)
	}
	carrier, _ := m.UnitByID(carrierID)
	carried, _ := m.UnitByID(carriedID)
	if carried.Loc != carrier.Loc {
		t.Errorf("carried.Loc = %v, carrier.Loc = %v", carried.Loc, carrier.Loc)
	}
	if carried.Alignment != carrier.Alignment {
		t.Errorf("carried.Alignment = %v, carrier.Alignment = %v", carried.Alignment, carrier.Alignment)
	}
	if carried.Type.Mode() != carrier.CarryingSpace.AcceptedMode {
		t.Errorf("carried mode %v does not match carrier's accepted mode %v", carried.Type.Mode(), carrier.CarryingSpace.AcceptedMode)
	}
}

// Property: begin_turn then end_turn with no other actions advances the
// turn counter (when the actor was the last player) and increments
// production_progress for every productive city by exactly one.
func TestPropertyBeginEndTurnAdvancesProductionByOne(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 1, Height: 1}, WrapNeither, 1)
	loc := Location{0, 0}
	g.mapData.NewCity(loc, Belligerent(0), "Home")
	g.SetProductionByLoc(0, secrets[0], loc, Carrier) // high cost, won't complete this turn

	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}
	city, _ := g.mapData.CityByLoc(loc)
	if city.ProductionProgress != 1 {
		t.Errorf("expected production_progress = 1 after one begin_turn, got %d", city.ProductionProgress)
	}
	beforeTurn := g.Turn()
	if gerr := g.ForceEndTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("ForceEndTurn: %v", gerr)
	}
	if g.Turn() != beforeTurn+1 {
		t.Errorf("expected turn to advance from %d to %d, got %d", beforeTurn, beforeTurn+1, g.Turn())
	}
}

// Property: a unit with limited fuel cannot move further than its max fuel
// allows between refuels; the move that would exceed it instead destroys
// the unit with FuelRanOut set (see scenario S5).
func TestPropertyFuelExhaustionDestroysUnit(t *testing.T) {
	maxFuel := Fighter.InitialFuel().Max
	g, secrets := newTestGame(t, Dims{Width: maxFuel + 3, Height: 1}, WrapNeither, 1)
	unitID, _ := g.mapData.NewUnit(Location{0, 0}, Fighter, Belligerent(0), "Scout")

	for i := uint16(0); i < maxFuel; i++ {
		if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
			t.Fatalf("BeginTurn %d: %v", i, gerr)
		}
		unit, _ := g.PlayerUnitByID(0, secrets[0], unitID)
		dest, _ := Neighbor(unit.Loc, East, g.mapData.Dims(), g.Wrapping())
		outcome, gerr := g.TakeAction(0, secrets[0], PlayerAction{Kind: ActionMoveUnit, UnitID: unitID, Dest: dest})
		if gerr != nil {
			t.Fatalf("move %d: %v", i, gerr)
		}
		if outcome.Move.Destroyed {
			t.Fatalf("unit destroyed early at step %d, fuel should have lasted %d steps", i, maxFuel)
		}
		g.ForceEndTurn(0, secrets[0])
	}

	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("final BeginTurn: %v", gerr)
	}
	unit, _ := g.PlayerUnitByID(0, secrets[0], unitID)
	dest, _ := Neighbor(unit.Loc, East, g.mapData.Dims(), g.Wrapping())
	outcome, gerr := g.TakeAction(0, secrets[0], PlayerAction{Kind: ActionMoveUnit, UnitID: unitID, Dest: dest})
	if gerr != nil {
		t.Fatalf("final move: %v", gerr)
	}
	if !outcome.Move.FuelRanOut || !outcome.Move.Destroyed {
		t.Errorf("expected fuel exhaustion to destroy the unit, got %+v", outcome.Move)
	}
}

// Property: player_features is invariant under renumbering players that
// preserves the friend/enemy partition: swapping player 0 and player 1 in
// an otherwise symmetric two-player game yields the same feature vector
// for "the player at the focus unit".
func TestPropertyFeaturesInvariantUnderPlayerSwap(t *testing.T) {
	build := func(focusIsPlayer0 bool) *Game {
		g, _ := newTestGame(t, Dims{Width: 5, Height: 5}, WrapNeither, 2)
		var focus, other PlayerNum = 0, 1
		if !focusIsPlayer0 {
			focus, other = 1, 0
		}
		g.mapData.NewUnit(Location{2, 2}, Infantry, Belligerent(focus), "Mine")
		g.mapData.NewUnit(Location{3, 2}, Infantry, Belligerent(other), "Theirs")
		secrets := []PlayerSecret{mintSecret(0, 1), mintSecret(1, 1)}
		g.BeginTurn(0, secrets[0])
		g.ForceEndTurn(0, secrets[0])
		g.BeginTurn(1, secrets[1])
		g.ForceEndTurn(1, secrets[1])
		return g
	}

	g1 := build(true)
	g2 := build(false)

	f1 := g1.playerFeatures(0)
	f2 := g2.playerFeatures(1)

	if len(f1) != len(f2) {
		t.Fatalf("feature vector lengths differ: %d vs %d", len(f1), len(f2))
	}
	for i := range f1 {
		if f1[i] != f2[i] {
			t.Fatalf("feature vectors diverge at index %d: %v vs %v", i, f1[i], f2[i])
		}
	}
}
