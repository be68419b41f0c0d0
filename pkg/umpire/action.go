package umpire

// PlayerActionKind tags which variant a PlayerAction is.
type PlayerActionKind int

const (
	ActionBeginTurn PlayerActionKind = iota
	ActionEndTurn
	ActionSetCityProduction
	ActionMoveUnit
	ActionMoveUnitInDirection
	ActionDisbandUnit
	ActionOrderUnit
	ActionSkipUnit
)

// PlayerAction is the uniform, serializable action type used by both UI
// and AI clients to drive the game through IGame's action interface.
type PlayerAction struct {
	Kind                     PlayerActionKind `json:"kind"`
	ClearAfterUnitProduction bool             `json:"clear_after_unit_production"`
	CityID                   CityID           `json:"city_id,omitempty"`
	ProductionType           UnitType         `json:"production_type,omitempty"`
	UnitID                   UnitID           `json:"unit_id,omitempty"`
	Dest                     Location         `json:"dest"`
	Direction                Direction        `json:"direction"`
	Orders                   Orders           `json:"orders"`
}

// PlayerActionOutcome reports the effect of applying one PlayerAction.
type PlayerActionOutcome struct {
	Action    PlayerAction   `json:"action"`
	TurnStart *TurnStart     `json:"turn_start,omitempty"`
	Move      *Move          `json:"move,omitempty"`
	Orders    *OrdersOutcome `json:"orders,omitempty"`
}

// TakeAction validates the secret and applies action, mutating live
// state.
func (g *Game) TakeAction(player PlayerNum, secret PlayerSecret, action PlayerAction) (*PlayerActionOutcome, *GameError) {
	if gerr := g.checkSecret(player, secret); gerr != nil {
		return nil, gerr
	}
	return g.applyAction(player, secret, action)
}

// ProposeAction runs action on a clone of g and returns the outcome
// without mutating g.
func (g *Game) ProposeAction(player PlayerNum, secret PlayerSecret, action PlayerAction) (*PlayerActionOutcome, *GameError) {
	if gerr := g.checkSecret(player, secret); gerr != nil {
		return nil, gerr
	}
	clone := g.Clone()
	return clone.applyAction(player, secret, action)
}

func (g *Game) applyAction(player PlayerNum, secret PlayerSecret, action PlayerAction) (*PlayerActionOutcome, *GameError) {
	out := &PlayerActionOutcome{Action: action}
	switch action.Kind {
	case ActionBeginTurn:
		ts, gerr := g.BeginTurn(player, secret)
		if gerr != nil {
			return nil, gerr
		}
		out.TurnStart = ts
	case ActionEndTurn:
		if gerr := g.EndTurn(player, secret); gerr != nil {
			return nil, gerr
		}
	case ActionSetCityProduction:
		if gerr := g.SetProductionByID(player, secret, action.CityID, action.ProductionType); gerr != nil {
			return nil, gerr
		}
	case ActionMoveUnit:
		move, gerr := g.moveUnit(player, action.UnitID, action.Dest)
		g.recordAction(player)
		if gerr != nil {
			return nil, gerr
		}
		out.Move = move
	case ActionMoveUnitInDirection:
		unit, gerr := g.PlayerUnitByID(player, secret, action.UnitID)
		if gerr != nil {
			return nil, gerr
		}
		dest, ok := Neighbor(unit.Loc, action.Direction, g.mapData.Dims(), g.wrapping)
		if !ok {
			return nil, errMove(&MoveError{Code: ErrDestinationOutOfBounds})
		}
		move, gerr2 := g.moveUnit(player, action.UnitID, dest)
		g.recordAction(player)
		if gerr2 != nil {
			return nil, gerr2
		}
		out.Move = move
	case ActionDisbandUnit:
		if gerr := g.DisbandUnitByID(player, secret, action.UnitID); gerr != nil {
			return nil, gerr
		}
	case ActionOrderUnit:
		if gerr := g.SetOrders(player, secret, action.UnitID, action.Orders); gerr != nil {
			return nil, gerr
		}
	case ActionSkipUnit:
		if gerr := g.SetOrders(player, secret, action.UnitID, Orders{Kind: OrdersSkip}); gerr != nil {
			return nil, gerr
		}
	}
	return out, nil
}

// NextCityAction is the reduced action space for the first pending city:
// SetProduction{type}, index == position of type in declared UnitTypes
// order (0..9).
type NextCityAction struct {
	Type UnitType `json:"type"`
}

func (a NextCityAction) Index() int {
	for i, t := range UnitTypes {
		if t == a.Type {
			return i
		}
	}
	return -1
}

// NextUnitAction is the reduced action space for the first pending unit:
// Disband=0, Skip=1, Move{direction} at 2+position-of-direction (0..9
// overall, 10 values).
type NextUnitActionKind int

const (
	NextUnitDisband NextUnitActionKind = iota
	NextUnitSkip
	NextUnitMove
)

type NextUnitAction struct {
	Kind      NextUnitActionKind `json:"kind"`
	Direction Direction          `json:"direction"`
}

func (a NextUnitAction) Index() int {
	switch a.Kind {
	case NextUnitDisband:
		return 0
	case NextUnitSkip:
		return 1
	case NextUnitMove:
		for i, d := range Directions {
			if d == a.Direction {
				return 2 + i
			}
		}
	}
	return -1
}

// AiPlayerAction is the combined enumeration used by take_simple_action:
// one SetNextCityProduction per UnitType (0..9), one MoveNextUnit per
// Direction (10..17), DisbandNextUnit (18), SkipNextUnit (19).
type AiPlayerActionKind int

const (
	AiSetNextCityProduction AiPlayerActionKind = iota
	AiMoveNextUnit
	AiDisbandNextUnit
	AiSkipNextUnit
)

type AiPlayerAction struct {
	Kind      AiPlayerActionKind `json:"kind"`
	Type      UnitType           `json:"type"`
	Direction Direction          `json:"direction"`
}

func (a AiPlayerAction) Index() int {
	switch a.Kind {
	case AiSetNextCityProduction:
		for i, t := range UnitTypes {
			if t == a.Type {
				return i
			}
		}
	case AiMoveNextUnit:
		for i, d := range Directions {
			if d == a.Direction {
				return 10 + i
			}
		}
	case AiDisbandNextUnit:
		return 18
	case AiSkipNextUnit:
		return 19
	}
	return -1
}

// firstPendingCity and firstPendingUnit give NextCityAction/NextUnitAction
// a stable target: the first outstanding request found in tile scan
// order (row-major).
func (g *Game) firstPendingCity(player PlayerNum) (*City, bool) {
	alignment := Belligerent(player)
	for _, tile := range g.mapData.AllTiles() {
		if tile.City != nil && tile.City.Alignment.Friendly(alignment) && tile.City.NeedsProductionOrder() {
			return tile.City, true
		}
	}
	return nil, false
}

func (g *Game) firstPendingUnit(player PlayerNum) (*Unit, bool) {
	alignment := Belligerent(player)
	for _, tile := range g.mapData.AllTiles() {
		if tile.Unit != nil && tile.Unit.Alignment.Friendly(alignment) && tile.Unit.Orders == nil && tile.Unit.MovesRemaining > 0 {
			return tile.Unit, true
		}
	}
	return nil, false
}

// TakeNextCityAction applies a NextCityAction to the first pending city.
func (g *Game) TakeNextCityAction(player PlayerNum, secret PlayerSecret, action NextCityAction) (*PlayerActionOutcome, *GameError) {
	city, ok := g.firstPendingCity(player)
	if !ok {
		return nil, errNoCityAtLocation(Location{})
	}
	return g.TakeAction(player, secret, PlayerAction{Kind: ActionSetCityProduction, CityID: city.ID, ProductionType: action.Type})
}

// TakeNextUnitAction applies a NextUnitAction to the first pending unit.
func (g *Game) TakeNextUnitAction(player PlayerNum, secret PlayerSecret, action NextUnitAction) (*PlayerActionOutcome, *GameError) {
	unit, ok := g.firstPendingUnit(player)
	if !ok {
		return nil, errNoUnitAtLocation(Location{})
	}
	switch action.Kind {
	case NextUnitDisband:
		return g.TakeAction(player, secret, PlayerAction{Kind: ActionDisbandUnit, UnitID: unit.ID})
	case NextUnitSkip:
		return g.TakeAction(player, secret, PlayerAction{Kind: ActionSkipUnit, UnitID: unit.ID})
	case NextUnitMove:
		return g.TakeAction(player, secret, PlayerAction{Kind: ActionMoveUnitInDirection, UnitID: unit.ID, Direction: action.Direction})
	}
	return nil, errNoUnitAtLocation(unit.Loc)
}

// TakeSimpleAction applies the combined AiPlayerAction space.
func (g *Game) TakeSimpleAction(player PlayerNum, secret PlayerSecret, action AiPlayerAction) (*PlayerActionOutcome, *GameError) {
	switch action.Kind {
	case AiSetNextCityProduction:
		return g.TakeNextCityAction(player, secret, NextCityAction{Type: action.Type})
	case AiMoveNextUnit:
		return g.TakeNextUnitAction(player, secret, NextUnitAction{Kind: NextUnitMove, Direction: action.Direction})
	case AiDisbandNextUnit:
		return g.TakeNextUnitAction(player, secret, NextUnitAction{Kind: NextUnitDisband})
	case AiSkipNextUnit:
		return g.TakeNextUnitAction(player, secret, NextUnitAction{Kind: NextUnitSkip})
	}
	return nil, errNoPlayerIdentifiedBySecret()
}
