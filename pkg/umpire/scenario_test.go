package umpire

import "testing"

// S4: after begin_turn then disbanding the lone infantry on a 1x1 map
// parsed from the literal "i" fixture, the tile's observation has
// turn=0, action_count=1, no unit, and the game's total action_count
// for that player is 1.
func TestScenarioDisbandObservationLiteralFixture(t *testing.T) {
	m, err := ParseMapText("i", WrapNeither)
	if err != nil {
		t.Fatalf("ParseMapText: %v", err)
	}
	g := NewGame(NewGameOptions{Dims: m.Dims(), Wrapping: WrapNeither, NumPlayers: 1, Seed: 1})
	g.mapData = m
	secret := mintSecret(0, 1)

	tile := m.TileAt(Location{0, 0})
	if tile.Unit == nil || tile.Unit.Type != Infantry {
		t.Fatalf("expected an infantry unit parsed from \"i\", got %+v", tile.Unit)
	}
	unitID := tile.Unit.ID

	if _, gerr := g.BeginTurn(0, secret); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}
	if gerr := g.DisbandUnitByID(0, secret, unitID); gerr != nil {
		t.Fatalf("DisbandUnitByID: %v", gerr)
	}

	obs, gerr := g.PlayerObs(0, secret, Location{0, 0})
	if gerr != nil {
		t.Fatalf("PlayerObs: %v", gerr)
	}
	if obs.Turn != 0 {
		t.Errorf("obs.Turn = %d, want 0", obs.Turn)
	}
	if obs.ActionCount != 1 {
		t.Errorf("obs.ActionCount = %d, want 1", obs.ActionCount)
	}
	if obs.Tile.Unit != nil {
		t.Errorf("expected no unit recorded after disband, got %+v", obs.Tile.Unit)
	}
	if g.actionCounts[0] != 1 {
		t.Errorf("game's total action_count for player 0 = %d, want 1", g.actionCounts[0])
	}
}

// S6: a Bomber stepping from open ground onto a friendly Carrier
// decrements fuel by 1 per step; at end-of-turn while atop the carrier,
// fuel resets to max.
func TestScenarioRefuelAboardCarrier(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 3, Height: 1}, WrapNeither, 1)
	bomberID, _ := g.mapData.NewUnit(Location{0, 0}, Bomber, Belligerent(0), "Wing")
	g.mapData.NewUnit(Location{1, 0}, Carrier, Belligerent(0), "Deck")

	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}
	maxFuel := Bomber.InitialFuel().Max
	bomber, _ := g.mapData.UnitByID(bomberID)
	if bomber.FuelRemaining != maxFuel {
		t.Fatalf("expected fresh bomber at max fuel %d, got %d", maxFuel, bomber.FuelRemaining)
	}

	outcome, gerr := g.TakeAction(0, secrets[0], PlayerAction{Kind: ActionMoveUnit, UnitID: bomberID, Dest: Location{1, 0}})
	if gerr != nil {
		t.Fatalf("TakeAction: %v", gerr)
	}
	if !outcome.Move.Components[len(outcome.Move.Components)-1].CarriedUnit {
		t.Fatal("expected the bomber to be carried aboard the carrier")
	}

	deckTile := g.mapData.TileAt(Location{1, 0})
	if deckTile.Unit == nil || deckTile.Unit.Type != Carrier {
		t.Fatalf("expected the carrier at (1,0), got %+v", deckTile.Unit)
	}
	carrier := deckTile.Unit
	var carried *Unit
	for i := range carrier.CarryingSpace.Held {
		if carrier.CarryingSpace.Held[i].ID == bomberID {
			carried = &carrier.CarryingSpace.Held[i]
		}
	}
	if carried == nil {
		t.Fatal("expected the bomber among the carrier's held units")
	}
	if carried.FuelRemaining != maxFuel-1 {
		t.Errorf("expected fuel decremented by one step, got %d (max %d)", carried.FuelRemaining, maxFuel)
	}

	if gerr := g.ForceEndTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("ForceEndTurn: %v", gerr)
	}
	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn (next turn): %v", gerr)
	}
	carrier2, _ := g.mapData.UnitByID(carrier.ID)
	var refueled *Unit
	for i := range carrier2.CarryingSpace.Held {
		if carrier2.CarryingSpace.Held[i].ID == bomberID {
			refueled = &carrier2.CarryingSpace.Held[i]
		}
	}
	if refueled == nil {
		t.Fatal("expected the bomber still aboard the carrier")
	}
	if refueled.FuelRemaining != maxFuel {
		t.Errorf("expected fuel reset to max %d at next begin_turn, got %d", maxFuel, refueled.FuelRemaining)
	}
}

// Property: for a move with no combat involved (so no PRNG draw affects
// the result), what propose_action predicts on a clone is exactly what
// take_action then produces on the live game.
func TestPropertyProposeThenTakeAreEquivalentForUncontestedMoves(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 5, Height: 1}, WrapNeither, 1)
	unitID, _ := g.mapData.NewUnit(Location{0, 0}, Armor, Belligerent(0), "Scout")
	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}

	proposed, gerr := g.ProposeAction(0, secrets[0], PlayerAction{Kind: ActionMoveUnit, UnitID: unitID, Dest: Location{2, 0}})
	if gerr != nil {
		t.Fatalf("ProposeAction: %v", gerr)
	}
	taken, gerr := g.TakeAction(0, secrets[0], PlayerAction{Kind: ActionMoveUnit, UnitID: unitID, Dest: Location{2, 0}})
	if gerr != nil {
		t.Fatalf("TakeAction: %v", gerr)
	}

	proposedEnd, proposedOk := proposed.Move.EndingLoc()
	takenEnd, takenOk := taken.Move.EndingLoc()
	if proposedOk != takenOk || proposedEnd != takenEnd {
		t.Errorf("propose predicted ending %v (ok=%v), take produced %v (ok=%v)", proposedEnd, proposedOk, takenEnd, takenOk)
	}
	if len(proposed.Move.Components) != len(taken.Move.Components) {
		t.Errorf("propose/take diverge on component count: %d vs %d", len(proposed.Move.Components), len(taken.Move.Components))
	}
}

// A multi-tile move must clear every tile the unit passed through, not
// just leave the destination occupied: each intermediate tile is a stale
// duplicate otherwise, and alignmentUnitTypeCounts gets bumped once per
// step instead of once total.
func TestScenarioMultiTileMoveClearsSourceAndIntermediateTiles(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 5, Height: 1}, WrapNeither, 1)
	unitID, _ := g.mapData.NewUnit(Location{0, 0}, Armor, Belligerent(0), "Scout")
	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}

	outcome, gerr := g.TakeAction(0, secrets[0], PlayerAction{Kind: ActionMoveUnit, UnitID: unitID, Dest: Location{2, 0}})
	if gerr != nil {
		t.Fatalf("TakeAction: %v", gerr)
	}
	if len(outcome.Move.Components) != 2 {
		t.Fatalf("expected a 2-step move, got %d components", len(outcome.Move.Components))
	}

	for x := 0; x < 2; x++ {
		if tile := g.mapData.TileAt(Location{uint16(x), 0}); tile.Unit != nil {
			t.Errorf("tile (%d,0) still shows a unit after the mover passed through it: %+v", x, tile.Unit)
		}
	}
	dest := g.mapData.TileAt(Location{2, 0})
	if dest.Unit == nil || dest.Unit.ID != unitID {
		t.Fatalf("expected unit %d at destination, got %+v", unitID, dest.Unit)
	}

	counts := g.mapData.AlignmentUnitTypeCounts(Belligerent(0))
	if got := counts[Armor]; got != 1 {
		t.Errorf("alignment unit type count for Armor = %d, want 1 (each step must not re-count the mover)", got)
	}
	units, gerr := g.PlayerUnits(0, secrets[0])
	if gerr != nil {
		t.Fatalf("PlayerUnits: %v", gerr)
	}
	if len(units) != 1 {
		t.Errorf("PlayerUnits returned %d units after a multi-tile move, want 1", len(units))
	}
}

// Disembarking a carried unit — moving it off the tile it shares with its
// carrier — must pop it out of the carrier's hold, not merely duplicate it
// top-level while it is still listed among the carrier's held units.
func TestScenarioDisembarkClearsCarrierHold(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 3, Height: 1}, WrapNeither, 1)
	carrierID, _ := g.mapData.NewUnit(Location{0, 0}, Transport, Belligerent(0), "Deck")
	if gerr := g.mapData.CarryUnitByID(carrierID, 0); gerr == nil {
		t.Fatal("expected CarryUnitByID with a bogus carried ID to fail")
	}
	infID, _ := g.mapData.NewUnit(Location{1, 0}, Infantry, Belligerent(0), "Marine")
	if gerr := g.mapData.CarryUnitByID(carrierID, infID); gerr != nil {
		t.Fatalf("CarryUnitByID: %v", gerr)
	}

	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}
	outcome, gerr := g.TakeAction(0, secrets[0], PlayerAction{Kind: ActionMoveUnit, UnitID: infID, Dest: Location{1, 0}})
	if gerr != nil {
		t.Fatalf("TakeAction: %v", gerr)
	}
	if !outcome.Move.MovedSuccessfully() {
		t.Fatalf("expected the marine to disembark successfully, got %+v", outcome.Move)
	}

	carrierTile := g.mapData.TileAt(Location{0, 0})
	if carrierTile.Unit == nil || carrierTile.Unit.Type != Transport {
		t.Fatalf("expected the carrier still at (0,0), got %+v", carrierTile.Unit)
	}
	for _, held := range carrierTile.Unit.CarryingSpace.Held {
		if held.ID == infID {
			t.Fatalf("expected the marine removed from the carrier's hold, still found: %+v", held)
		}
	}

	destTile := g.mapData.TileAt(Location{1, 0})
	if destTile.Unit == nil || destTile.Unit.ID != infID {
		t.Fatalf("expected the marine top-level at (1,0), got %+v", destTile.Unit)
	}

	units, gerr := g.PlayerUnits(0, secrets[0])
	if gerr != nil {
		t.Fatalf("PlayerUnits: %v", gerr)
	}
	if len(units) != 2 {
		t.Errorf("PlayerUnits returned %d units after disembarking, want 2 (carrier + marine, no duplicate)", len(units))
	}
}
