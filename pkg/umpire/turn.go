package umpire

// TurnStart summarizes what begin_turn did: units produced, cities whose
// production was blocked by an occupied tile, and the outcome of
// carrying out every unit's pending orders.
type TurnStart struct {
	Player            PlayerNum       `json:"player"`
	Turn              uint32          `json:"turn"`
	Produced          []UnitID        `json:"produced,omitempty"`
	ProductionBlocked []Location      `json:"production_blocked,omitempty"`
	OrdersResults     []OrdersOutcome `json:"orders_results,omitempty"`
}

// BeginTurn transitions player from Pre to Main: advances city
// production, refreshes unit movement, observes from every friendly
// unit/city, and carries out standing orders.
func (g *Game) BeginTurn(player PlayerNum, secret PlayerSecret) (*TurnStart, *GameError) {
	if gerr := g.checkSecret(player, secret); gerr != nil {
		return nil, gerr
	}
	if g.turnPhase != PhasePre || g.currentPlayer != player {
		return nil, errNotPlayersTurn(player)
	}

	start := &TurnStart{Player: player, Turn: g.turn}
	alignment := Belligerent(player)

	for i := range g.mapData.tiles {
		tile := &g.mapData.tiles[i]
		if tile.City == nil || !tile.City.Alignment.Friendly(alignment) {
			continue
		}
		if produced := tile.City.advanceProduction(); produced != nil {
			if tile.Unit != nil {
				start.ProductionBlocked = append(start.ProductionBlocked, tile.Loc)
				// Refund the progress so production is retried next turn.
				tile.City.Production = produced
				tile.City.ProductionProgress = produced.Cost() - 1
				continue
			}
			name := g.unitNamer.NameFor(*produced)
			id, _ := g.mapData.NewUnit(tile.Loc, *produced, alignment, name)
			start.Produced = append(start.Produced, id)
		}
	}

	for i := range g.mapData.tiles {
		u := g.mapData.tiles[i].Unit
		if u == nil || !u.Alignment.Friendly(alignment) {
			continue
		}
		u.MovesRemaining = u.Type.MovePerTurn()
		if u.CarryingSpace != nil {
			for j := range u.CarryingSpace.Held {
				held := &u.CarryingSpace.Held[j]
				held.MovesRemaining = held.Type.MovePerTurn()
				held.Refuel()
			}
		}
	}

	obsTracker := g.playerObservations[player]
	for _, tile := range g.mapData.AllTiles() {
		if tile.Unit != nil && tile.Unit.Alignment.Friendly(alignment) {
			obsTracker.observeFrom(g.mapData, tile.Loc, tile.Unit.Type.SightDistance(), g.turn, g.actionCounts[player])
		}
		if tile.City != nil && tile.City.Alignment.Friendly(alignment) {
			obsTracker.observeFrom(g.mapData, tile.Loc, 1, g.turn, g.actionCounts[player])
		}
	}

	for _, tile := range g.mapData.AllTiles() {
		if tile.Unit == nil || !tile.Unit.Alignment.Friendly(alignment) || tile.Unit.Orders == nil {
			continue
		}
		unit, gerr := g.mapData.UnitByID(tile.Unit.ID)
		if gerr != nil {
			continue
		}
		if unit.Orders == nil {
			continue
		}
		outcome := g.carryOutOrders(player, unit)
		start.OrdersResults = append(start.OrdersResults, outcome)
	}

	g.turnPhase = PhaseMain
	return start, nil
}

// outstanding reports whether player has any unresolved production-set or
// unit-orders requests, which blocks EndTurn (but not ForceEndTurn).
func (g *Game) outstanding(player PlayerNum) bool {
	alignment := Belligerent(player)
	for _, tile := range g.mapData.AllTiles() {
		if tile.City != nil && tile.City.Alignment.Friendly(alignment) && tile.City.NeedsProductionOrder() {
			return true
		}
		if tile.Unit != nil && tile.Unit.Alignment.Friendly(alignment) && tile.Unit.Orders == nil && tile.Unit.MovesRemaining > 0 {
			return true
		}
	}
	return false
}

// EndTurn transitions player from Main to Pre, failing if they have
// outstanding requests.
func (g *Game) EndTurn(player PlayerNum, secret PlayerSecret) *GameError {
	if gerr := g.checkSecret(player, secret); gerr != nil {
		return gerr
	}
	if g.turnPhase != PhaseMain || g.currentPlayer != player {
		return errNotPlayersTurn(player)
	}
	if g.outstanding(player) {
		return errTurnEndRequirementsNotMet(player)
	}
	g.endTurnUnconditionally(player)
	return nil
}

// ForceEndTurn is EndTurn without the outstanding-requests check.
func (g *Game) ForceEndTurn(player PlayerNum, secret PlayerSecret) *GameError {
	if gerr := g.checkSecret(player, secret); gerr != nil {
		return gerr
	}
	if g.turnPhase != PhaseMain || g.currentPlayer != player {
		return errNotPlayersTurn(player)
	}
	g.endTurnUnconditionally(player)
	return nil
}

func (g *Game) endTurnUnconditionally(player PlayerNum) {
	g.playerObservations[player].archive()
	g.currentPlayer = PlayerNum((int(player) + 1) % g.numPlayers)
	if g.currentPlayer == 0 {
		g.turn++
	}
	g.turnPhase = PhasePre
}

// EndThenBeginTurn combines EndTurn and BeginTurn for the next player.
func (g *Game) EndThenBeginTurn(player PlayerNum, secret PlayerSecret, nextSecret PlayerSecret) (*TurnStart, *GameError) {
	if gerr := g.EndTurn(player, secret); gerr != nil {
		return nil, gerr
	}
	return g.BeginTurn(g.currentPlayer, nextSecret)
}

// ForceEndThenBeginTurn is EndThenBeginTurn using ForceEndTurn.
func (g *Game) ForceEndThenBeginTurn(player PlayerNum, secret PlayerSecret, nextSecret PlayerSecret) (*TurnStart, *GameError) {
	if gerr := g.ForceEndTurn(player, secret); gerr != nil {
		return nil, gerr
	}
	return g.BeginTurn(g.currentPlayer, nextSecret)
}

// CurrentTurnIsDone reports whether the current player has no outstanding
// requests (i.e. EndTurn would succeed right now).
func (g *Game) CurrentTurnIsDone() bool {
	if g.turnPhase != PhaseMain {
		return true
	}
	return !g.outstanding(g.currentPlayer)
}
