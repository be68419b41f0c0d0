package umpire

// carryOutOrders executes one unit's standing orders for the current
// turn and returns the outcome. Sentry gets a real (no-op) dispatch arm
// rather than being filtered out before this is called — see
// SPEC_FULL.md §4.7's resolution of the Sentry/orders_results
// inconsistency.
func (g *Game) carryOutOrders(player PlayerNum, unit *Unit) OrdersOutcome {
	orders := *unit.Orders
	var outcome OrdersOutcome
	switch orders.Kind {
	case OrdersSkip:
		unit.Orders = nil
		outcome = OrdersOutcome{UnitID: unit.ID, Orders: orders, Status: OrdersCompleted}
	case OrdersSentry:
		outcome = OrdersOutcome{UnitID: unit.ID, Orders: orders, Status: OrdersInProgress}
	case OrdersGoTo:
		outcome = g.carryOutGoTo(player, unit, orders)
	case OrdersExplore:
		outcome = g.carryOutExplore(player, unit, orders)
	default:
		outcome = OrdersOutcome{UnitID: unit.ID, Orders: orders, Status: OrdersCompleted}
	}
	// unit is a copy; completed orders are also cleared on the stored unit.
	if _, top := g.mapData.unitLocByID[unit.ID]; top && outcome.Status == OrdersCompleted {
		if live, gerr := g.mapData.UnitByID(unit.ID); gerr == nil && live.Orders != nil {
			live.Orders = nil
			g.mapData.SetUnit(*live)
		}
	}
	return outcome
}

func (g *Game) carryOutGoTo(player PlayerNum, unit *Unit, orders Orders) OrdersOutcome {
	if orders.Dest == unit.Loc {
		unit.Orders = nil
		return OrdersOutcome{UnitID: unit.ID, Orders: orders, Status: OrdersCompleted}
	}
	move, gerr := g.moveUnit(player, unit.ID, orders.Dest)
	if gerr != nil {
		// NoRoute or similar: leave the orders in place, report InProgress
		// with no move — a future turn's observations may open a path.
		return OrdersOutcome{UnitID: unit.ID, Orders: orders, Status: OrdersInProgress}
	}
	status := OrdersInProgress
	if end, ok := move.EndingLoc(); ok && end == orders.Dest {
		status = OrdersCompleted
		if refreshed, gerr := g.mapData.UnitByID(unit.ID); gerr == nil {
			refreshed.Orders = nil
			g.mapData.SetUnit(*refreshed)
		}
	}
	return OrdersOutcome{UnitID: unit.ID, Orders: orders, Move: move, Status: status}
}

// carryOutExplore makes one move per call, toward the nearest observed
// tile that borders unobserved ground; it does not pick a further target
// in the same call when moves remain after reaching it.
func (g *Game) carryOutExplore(player PlayerNum, unit *Unit, orders Orders) OrdersOutcome {
	obsTracker := g.playerObservations[player]
	dims, wrap := g.mapData.Dims(), g.mapData.Wrapping()

	target, found := nearestFrontier(unit, obsTracker, dims, wrap)
	if !found {
		unit.Orders = nil
		return OrdersOutcome{UnitID: unit.ID, Orders: orders, Status: OrdersCompleted}
	}
	move, gerr := g.moveUnit(player, unit.ID, target)
	if gerr != nil {
		unit.Orders = nil
		return OrdersOutcome{UnitID: unit.ID, Orders: orders, Status: OrdersCompleted}
	}
	return OrdersOutcome{UnitID: unit.ID, Orders: orders, Move: move, Status: OrdersInProgress}
}

// nearestFrontier finds the closest observed, reachable-without-combat
// tile that is adjacent to at least one unobserved tile.
func nearestFrontier(unit *Unit, obsTracker *PlayerObsTracker, dims Dims, wrap Wrap2d) (Location, bool) {
	filter := ObservedReachableByPacifistUnit{Unit: unit}
	result := Dijkstra[Observation](unit.Loc, unit.MovesRemaining*64, ObsSource{Tracker: obsTracker}, filter, dims, wrap)

	var best Location
	bestDist := uint16(0)
	found := false
	for loc, dist := range result.dist {
		if loc == unit.Loc {
			continue
		}
		for _, n := range Neighbors(loc, dims, wrap) {
			if !obsTracker.Get(n).Observed {
				if !found || dist < bestDist {
					best, bestDist, found = loc, dist, true
				}
				break
			}
		}
	}
	return best, found
}
