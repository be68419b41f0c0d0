package umpire

import "testing"

func TestOrdersSentryReportsInProgress(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 3, Height: 1}, WrapNeither, 1)
	unitID, _ := g.mapData.NewUnit(Location{0, 0}, Infantry, Belligerent(0), "Watch")
	if gerr := g.SetOrders(0, secrets[0], unitID, Orders{Kind: OrdersSentry}); gerr != nil {
		t.Fatalf("SetOrders: %v", gerr)
	}
	start, gerr := g.BeginTurn(0, secrets[0])
	if gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}
	var found bool
	for _, outcome := range start.OrdersResults {
		if outcome.UnitID == unitID {
			found = true
			if outcome.Status != OrdersInProgress {
				t.Errorf("expected Sentry orders to report InProgress, got %v", outcome.Status)
			}
		}
	}
	if !found {
		t.Error("expected an orders_results entry for the sentried unit")
	}
}

func TestGoToOrdersCompleteOnArrival(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 4, Height: 1}, WrapNeither, 1)
	unitID, _ := g.mapData.NewUnit(Location{0, 0}, Infantry, Belligerent(0), "Walker")
	if gerr := g.SetOrders(0, secrets[0], unitID, Orders{Kind: OrdersGoTo, Dest: Location{1, 0}}); gerr != nil {
		t.Fatalf("SetOrders: %v", gerr)
	}
	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}
	unit, gerr := g.PlayerUnitByID(0, secrets[0], unitID)
	if gerr != nil {
		t.Fatalf("PlayerUnitByID: %v", gerr)
	}
	if unit.Loc != (Location{1, 0}) {
		t.Errorf("expected unit to have reached (1,0), got %v", unit.Loc)
	}
	if unit.Orders != nil {
		t.Errorf("expected GoTo orders cleared on arrival, got %v", unit.Orders)
	}
}

func TestOutstandingBlocksEndTurnUntilAllUnitsActed(t *testing.T) {
	g, secrets := newTestGame(t, Dims{Width: 2, Height: 1}, WrapNeither, 1)
	unitID, _ := g.mapData.NewUnit(Location{0, 0}, Infantry, Belligerent(0), "Guard")
	if _, gerr := g.BeginTurn(0, secrets[0]); gerr != nil {
		t.Fatalf("BeginTurn: %v", gerr)
	}
	if !g.outstanding(0) {
		t.Fatal("expected outstanding() true with an un-ordered unit present")
	}
	if gerr := g.EndTurn(0, secrets[0]); gerr == nil {
		t.Error("expected EndTurn to fail with an outstanding unit")
	}
	if gerr := g.SetOrders(0, secrets[0], unitID, Orders{Kind: OrdersSkip}); gerr != nil {
		t.Fatalf("SetOrders: %v", gerr)
	}
	if g.outstanding(0) {
		t.Error("expected outstanding() false once every unit has orders")
	}
	if gerr := g.EndTurn(0, secrets[0]); gerr != nil {
		t.Errorf("EndTurn should now succeed: %v", gerr)
	}
}
