package umpire

import "testing"

func TestTurnIsDone(t *testing.T) {
	g, _ := newTestGame(t, Dims{Width: 2, Height: 2}, WrapNeither, 2)
	g.turn = 5
	g.currentPlayer = 1

	if !g.TurnIsDone(0, 5) {
		t.Error("player 0 should be done with turn 5 once play has moved to player 1")
	}
	if g.TurnIsDone(1, 5) {
		t.Error("player 1 is still in the middle of turn 5")
	}
	if !g.TurnIsDone(0, 4) {
		t.Error("turn 4 is entirely in the past")
	}
	if g.TurnIsDone(0, 6) {
		t.Error("turn 6 has not started yet")
	}
}

func TestPlayerCityQueries(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 3, Height: 1}, WrapNeither, 1)
	loc := Location{0, 0}
	id, gerr := g.mapData.NewCity(loc, Belligerent(0), "Home")
	if gerr != nil {
		t.Fatalf("NewCity: %v", gerr)
	}

	count, gerr := g.PlayerCityCount(0, secrets[0])
	if gerr != nil || count != 1 {
		t.Fatalf("PlayerCityCount = %d, %v; want 1, nil", count, gerr)
	}

	byLoc, gerr := g.PlayerCityByLoc(0, secrets[0], loc)
	if gerr != nil || byLoc.ID != id {
		t.Fatalf("PlayerCityByLoc = %+v, %v", byLoc, gerr)
	}

	byID, gerr := g.PlayerCityByID(0, secrets[0], id)
	if gerr != nil || byID.Loc != loc {
		t.Fatalf("PlayerCityByID = %+v, %v", byID, gerr)
	}

	if _, gerr := g.PlayerCityByLoc(0, secrets[0], Location{2, 0}); gerr == nil {
		t.Error("expected an error for a location with no city")
	}

	producing, gerr := g.PlayerCitiesProducingOrNotIgnored(0, secrets[0])
	if gerr != nil || len(producing) != 1 {
		t.Fatalf("expected the untouched city to count as not-ignored, got %d, %v", len(producing), gerr)
	}
	if gerr := g.mapData.ClearCityProduction(loc, true); gerr != nil {
		t.Fatalf("ClearCityProduction: %v", gerr)
	}
	producing, gerr = g.PlayerCitiesProducingOrNotIgnored(0, secrets[0])
	if gerr != nil || len(producing) != 0 {
		t.Fatalf("expected the ignored, empty city to be excluded, got %d, %v", len(producing), gerr)
	}
}

func TestValidProductionsConservativeExcludesSeaInlandCity(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 3, Height: 1}, WrapNeither, 1)
	loc := Location{1, 0}
	if _, gerr := g.mapData.NewCity(loc, Belligerent(0), "Inland"); gerr != nil {
		t.Fatalf("NewCity: %v", gerr)
	}

	all, gerr := g.ValidProductions(0, secrets[0], loc)
	if gerr != nil || len(all) != len(UnitTypes) {
		t.Fatalf("ValidProductions should list every unit type, got %d, %v", len(all), gerr)
	}

	conservative, gerr := g.ValidProductionsConservative(0, secrets[0], loc)
	if gerr != nil {
		t.Fatalf("ValidProductionsConservative: %v", gerr)
	}
	for _, ut := range conservative {
		if ut.Mode() == ModeSea {
			t.Errorf("expected no sea unit types for an inland city, got %v", ut)
		}
	}

	g.mapData.SetTerrain(Location{2, 0}, Water)
	conservative, gerr = g.ValidProductionsConservative(0, secrets[0], loc)
	if gerr != nil {
		t.Fatalf("ValidProductionsConservative after coastal terrain: %v", gerr)
	}
	found := false
	for _, ut := range conservative {
		if ut.Mode() == ModeSea {
			found = true
		}
	}
	if !found {
		t.Error("expected sea unit types once an adjacent tile is water")
	}
}

func TestClearProductions(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 2, Height: 1}, WrapNeither, 1)
	loc := Location{0, 0}
	if _, gerr := g.mapData.NewCity(loc, Belligerent(0), "Home"); gerr != nil {
		t.Fatalf("NewCity: %v", gerr)
	}
	if gerr := g.SetProductionByLoc(0, secrets[0], loc, Infantry); gerr != nil {
		t.Fatalf("SetProductionByLoc: %v", gerr)
	}
	if gerr := g.ClearProductions(0, secrets[0], false); gerr != nil {
		t.Fatalf("ClearProductions: %v", gerr)
	}
	c, gerr := g.PlayerCityByLoc(0, secrets[0], loc)
	if gerr != nil {
		t.Fatalf("PlayerCityByLoc: %v", gerr)
	}
	if c.Production != nil {
		t.Errorf("expected production cleared, got %v", c.Production)
	}
}

func TestPlayerUnitTypeCountsAndLocQueries(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 3, Height: 1}, WrapNeither, 1)
	loc := Location{0, 0}
	unitID, gerr := g.mapData.NewUnit(loc, Armor, Belligerent(0), "Scout")
	if gerr != nil {
		t.Fatalf("NewUnit: %v", gerr)
	}

	counts, gerr := g.PlayerUnitTypeCounts(0, secrets[0])
	if gerr != nil || counts[Armor] != 1 {
		t.Fatalf("PlayerUnitTypeCounts[Armor] = %d, %v; want 1, nil", counts[Armor], gerr)
	}

	gotLoc, gerr := g.PlayerUnitLoc(0, secrets[0], unitID)
	if gerr != nil || gotLoc != loc {
		t.Fatalf("PlayerUnitLoc = %v, %v; want %v, nil", gotLoc, gerr, loc)
	}

	top, gerr := g.PlayerToplevelUnitByLoc(0, secrets[0], loc)
	if gerr != nil || top.ID != unitID {
		t.Fatalf("PlayerToplevelUnitByLoc = %+v, %v", top, gerr)
	}

	if _, gerr := g.PlayerToplevelUnitByLoc(0, secrets[0], Location{2, 0}); gerr == nil {
		t.Error("expected an error for an empty tile")
	}
}

func TestOrdersRequestsAndPendingOrders(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 4, Height: 1}, WrapNeither, 1)
	unitID, gerr := g.mapData.NewUnit(Location{0, 0}, Armor, Belligerent(0), "Scout")
	if gerr != nil {
		t.Fatalf("NewUnit: %v", gerr)
	}
	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}

	requests, gerr := g.PlayerUnitOrdersRequests(0, secrets[0])
	if gerr != nil || len(requests) != 1 || requests[0] != (Location{0, 0}) {
		t.Fatalf("PlayerUnitOrdersRequests = %v, %v", requests, gerr)
	}

	if gerr := g.OrderUnitSentry(0, secrets[0], unitID); gerr != nil {
		t.Fatalf("OrderUnitSentry: %v", gerr)
	}

	pending, gerr := g.PlayerUnitsWithPendingOrders(0, secrets[0])
	if gerr != nil || len(pending) != 1 || pending[0].ID != unitID {
		t.Fatalf("PlayerUnitsWithPendingOrders = %v, %v", pending, gerr)
	}

	requests, gerr = g.PlayerUnitOrdersRequests(0, secrets[0])
	if gerr != nil || len(requests) != 0 {
		t.Fatalf("expected no outstanding requests once orders are set, got %v, %v", requests, gerr)
	}

	if gerr := g.ActivateUnitByLoc(0, secrets[0], Location{0, 0}); gerr != nil {
		t.Fatalf("ActivateUnitByLoc: %v", gerr)
	}
	requests, gerr = g.PlayerUnitOrdersRequests(0, secrets[0])
	if gerr != nil || len(requests) != 1 {
		t.Fatalf("expected the unit to need orders again after activation, got %v, %v", requests, gerr)
	}
}

func TestPlayerUnitLegalDirectionsAndDestinations(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 3, Height: 3}, WrapNeither, 1)
	unitID, gerr := g.mapData.NewUnit(Location{1, 1}, Armor, Belligerent(0), "Scout")
	if gerr != nil {
		t.Fatalf("NewUnit: %v", gerr)
	}

	dests, gerr := g.PlayerUnitLegalOneStepDestinations(0, secrets[0], unitID)
	if gerr != nil || len(dests) == 0 {
		t.Fatalf("expected at least one legal destination, got %v, %v", dests, gerr)
	}
	dirs, gerr := g.PlayerUnitLegalDirections(0, secrets[0], unitID)
	if gerr != nil || len(dirs) != len(dests) {
		t.Fatalf("expected directions and destinations to agree in count, got %d dirs, %d dests", len(dirs), len(dests))
	}
}

func TestMoveUnitByIDInDirection(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 3, Height: 1}, WrapNeither, 1)
	unitID, gerr := g.mapData.NewUnit(Location{0, 0}, Armor, Belligerent(0), "Scout")
	if gerr != nil {
		t.Fatalf("NewUnit: %v", gerr)
	}
	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}

	move, gerr := g.MoveUnitByIDInDirection(0, secrets[0], unitID, East)
	if gerr != nil {
		t.Fatalf("MoveUnitByIDInDirection: %v", gerr)
	}
	end, ok := move.EndingLoc()
	if !ok || end != (Location{1, 0}) {
		t.Fatalf("expected the unit to end at (1,0), got %v (ok=%v)", end, ok)
	}
}

func TestMoveUnitByIDAvoidingCombatRefusesContestedRoute(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 3, Height: 1}, WrapNeither, 2)
	moverID, gerr := g.mapData.NewUnit(Location{0, 0}, Armor, Belligerent(0), "Scout")
	if gerr != nil {
		t.Fatalf("NewUnit mover: %v", gerr)
	}
	if _, gerr := g.mapData.NewUnit(Location{1, 0}, Infantry, Belligerent(1), "Blocker"); gerr != nil {
		t.Fatalf("NewUnit blocker: %v", gerr)
	}
	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}

	if _, gerr := g.MoveUnitByIDAvoidingCombat(0, secrets[0], moverID, Location{2, 0}); gerr == nil {
		t.Error("expected the combat-avoiding move to fail when the only route is blocked")
	}
}

func TestSetAndFollowOrdersMovesImmediately(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 3, Height: 1}, WrapNeither, 1)
	unitID, gerr := g.mapData.NewUnit(Location{0, 0}, Armor, Belligerent(0), "Scout")
	if gerr != nil {
		t.Fatalf("NewUnit: %v", gerr)
	}
	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}

	outcome, gerr := g.SetAndFollowOrders(0, secrets[0], unitID, Orders{Kind: OrdersGoTo, Dest: Location{2, 0}})
	if gerr != nil {
		t.Fatalf("SetAndFollowOrders: %v", gerr)
	}
	if outcome.Move == nil || len(outcome.Move.Components) == 0 {
		t.Fatalf("expected SetAndFollowOrders to take at least one step immediately, got %+v", outcome)
	}
}
