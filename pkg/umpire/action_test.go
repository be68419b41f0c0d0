package umpire

import "testing"

func TestNextCityActionIndexMatchesUnitTypesOrder(t *testing.T) {
	for i, ut := range UnitTypes {
		a := NextCityAction{Type: ut}
		if a.Index() != i {
			t.Errorf("NextCityAction{%v}.Index() = %d, want %d", ut, a.Index(), i)
		}
	}
}

func TestNextUnitActionIndexConvention(t *testing.T) {
	if (NextUnitAction{Kind: NextUnitDisband}).Index() != 0 {
		t.Error("Disband should index to 0")
	}
	if (NextUnitAction{Kind: NextUnitSkip}).Index() != 1 {
		t.Error("Skip should index to 1")
	}
	for i, d := range Directions {
		a := NextUnitAction{Kind: NextUnitMove, Direction: d}
		if a.Index() != 2+i {
			t.Errorf("NextUnitAction{Move,%v}.Index() = %d, want %d", d, a.Index(), 2+i)
		}
	}
}

func TestAiPlayerActionIndexConvention(t *testing.T) {
	for i, ut := range UnitTypes {
		a := AiPlayerAction{Kind: AiSetNextCityProduction, Type: ut}
		if a.Index() != i {
			t.Errorf("SetNextCityProduction{%v}.Index() = %d, want %d", ut, a.Index(), i)
		}
	}
	for i, d := range Directions {
		a := AiPlayerAction{Kind: AiMoveNextUnit, Direction: d}
		if a.Index() != 10+i {
			t.Errorf("MoveNextUnit{%v}.Index() = %d, want %d", d, a.Index(), 10+i)
		}
	}
	if (AiPlayerAction{Kind: AiDisbandNextUnit}).Index() != 18 {
		t.Error("DisbandNextUnit should index to 18")
	}
	if (AiPlayerAction{Kind: AiSkipNextUnit}).Index() != 19 {
		t.Error("SkipNextUnit should index to 19")
	}
}

func TestTakeSimpleActionDispatchesSetProduction(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 2, Height: 1}, WrapNeither, 1)
	loc := Location{0, 0}
	g.mapData.NewCity(loc, Belligerent(0), "Home")
	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}
	if _, gerr := g.TakeSimpleAction(0, secrets[0], AiPlayerAction{Kind: AiSetNextCityProduction, Type: Bomber}); gerr != nil {
		t.Fatalf("TakeSimpleAction: %v", gerr)
	}
	city, _ := g.mapData.CityByLoc(loc)
	if city.Production == nil || *city.Production != Bomber {
		t.Errorf("expected production set to Bomber, got %v", city.Production)
	}
}

func TestTakeSimpleActionDispatchesMoveNextUnit(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 3, Height: 1}, WrapNeither, 1)
	unitID, _ := g.mapData.NewUnit(Location{1, 0}, Infantry, Belligerent(0), "Mover")
	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}
	if _, gerr := g.TakeSimpleAction(0, secrets[0], AiPlayerAction{Kind: AiMoveNextUnit, Direction: East}); gerr != nil {
		t.Fatalf("TakeSimpleAction: %v", gerr)
	}
	unit, _ := g.PlayerUnitByID(0, secrets[0], unitID)
	if unit.Loc != (Location{2, 0}) {
		t.Errorf("expected unit to have moved east to (2,0), got %v", unit.Loc)
	}
}

func TestTakeSimpleActionDisbandsPendingUnit(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 1, Height: 1}, WrapNeither, 1)
	unitID, _ := g.mapData.NewUnit(Location{0, 0}, Infantry, Belligerent(0), "Gone")
	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}
	if _, gerr := g.TakeSimpleAction(0, secrets[0], AiPlayerAction{Kind: AiDisbandNextUnit}); gerr != nil {
		t.Fatalf("TakeSimpleAction: %v", gerr)
	}
	if _, gerr := g.mapData.UnitByID(unitID); gerr == nil {
		t.Error("expected the disbanded unit to no longer exist")
	}
}

func TestMoveUnitInDirectionFailsOutOfBounds(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 2, Height: 1}, WrapNeither, 1)
	unitID, _ := g.mapData.NewUnit(Location{0, 0}, Infantry, Belligerent(0), "Edge")
	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}
	if _, gerr := g.TakeAction(0, secrets[0], PlayerAction{Kind: ActionMoveUnitInDirection, UnitID: unitID, Direction: West}); gerr == nil {
		t.Error("expected moving west off a non-wrapping map's edge to fail")
	}
}

func TestOrderUnitSetsOrders(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 2, Height: 1}, WrapNeither, 1)
	unitID, _ := g.mapData.NewUnit(Location{0, 0}, Infantry, Belligerent(0), "Orderly")
	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}
	if _, gerr := g.TakeAction(0, secrets[0], PlayerAction{Kind: ActionOrderUnit, UnitID: unitID, Orders: Orders{Kind: OrdersSentry}}); gerr != nil {
		t.Fatalf("TakeAction: %v", gerr)
	}
	unit, _ := g.PlayerUnitByID(0, secrets[0], unitID)
	if unit.Orders == nil || unit.Orders.Kind != OrdersSentry {
		t.Errorf("expected Sentry orders set, got %v", unit.Orders)
	}
}
