package umpire

import "fmt"

// ErrorCode tags the kind of failure a GameError represents, so callers can
// branch on the kind without string-matching Error().
type ErrorCode int

const (
	ErrNoPlayerIdentifiedBySecret ErrorCode = iota
	ErrNoSuchPlayer
	ErrNotPlayersTurn
	ErrTurnEndRequirementsNotMet
	ErrNoPlayerSlotsAvailable
	ErrNoTileAtLocation
	ErrNoCityAtLocation
	ErrNoSuchCity
	ErrNoUnitAtLocation
	ErrNoSuchUnit
	ErrUnitNotControlledByCurrentPlayer
	ErrCannotOccupyGarrisonedCity
	ErrOnlyAlliesCarry
	ErrWrongTransportMode
	ErrInsufficientCarryingSpace
	ErrUnitHasNoCarryingSpace
	ErrUnitAlreadyPresent
	ErrMove
)

// GameError is the single tagged error type returned by every public
// engine entry point. It carries structured payload fields (rather than a
// family of bare sentinels) because several of the spec's error variants
// need to report the offending value, not just the kind of failure.
type GameError struct {
	Code ErrorCode
	// Payload fields, populated according to Code.
	Player   PlayerNum
	Loc      Location
	UnitID   UnitID
	CityID   CityID
	Message  string
	Move     *MoveError
}

func (e *GameError) Error() string {
	if e.Code == ErrMove && e.Move != nil {
		return e.Move.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("game error %d", e.Code)
}

func errNoPlayerIdentifiedBySecret() *GameError {
	return &GameError{Code: ErrNoPlayerIdentifiedBySecret, Message: "no player identified by that secret"}
}

func errNoSuchPlayer(p PlayerNum) *GameError {
	return &GameError{Code: ErrNoSuchPlayer, Player: p, Message: fmt.Sprintf("no such player: %d", p)}
}

func errNotPlayersTurn(p PlayerNum) *GameError {
	return &GameError{Code: ErrNotPlayersTurn, Player: p, Message: fmt.Sprintf("it is not player %d's turn", p)}
}

func errTurnEndRequirementsNotMet(p PlayerNum) *GameError {
	return &GameError{Code: ErrTurnEndRequirementsNotMet, Player: p, Message: fmt.Sprintf("player %d has outstanding orders or production requests", p)}
}

func errNoPlayerSlotsAvailable() *GameError {
	return &GameError{Code: ErrNoPlayerSlotsAvailable, Message: "no player slots available"}
}

func errNoTileAtLocation(loc Location) *GameError {
	return &GameError{Code: ErrNoTileAtLocation, Loc: loc, Message: fmt.Sprintf("no tile at %s", loc)}
}

func errNoCityAtLocation(loc Location) *GameError {
	return &GameError{Code: ErrNoCityAtLocation, Loc: loc, Message: fmt.Sprintf("no city at %s", loc)}
}

func errNoSuchCity(id CityID) *GameError {
	return &GameError{Code: ErrNoSuchCity, CityID: id, Message: fmt.Sprintf("no such city: %d", id)}
}

func errNoUnitAtLocation(loc Location) *GameError {
	return &GameError{Code: ErrNoUnitAtLocation, Loc: loc, Message: fmt.Sprintf("no unit at %s", loc)}
}

func errNoSuchUnit(id UnitID) *GameError {
	return &GameError{Code: ErrNoSuchUnit, UnitID: id, Message: fmt.Sprintf("no such unit: %d", id)}
}

func errUnitNotControlledByCurrentPlayer(id UnitID) *GameError {
	return &GameError{Code: ErrUnitNotControlledByCurrentPlayer, UnitID: id, Message: fmt.Sprintf("unit %d is not controlled by the current player", id)}
}

func errCannotOccupyGarrisonedCity(loc Location) *GameError {
	return &GameError{Code: ErrCannotOccupyGarrisonedCity, Loc: loc, Message: fmt.Sprintf("city at %s is garrisoned", loc)}
}

func errOnlyAlliesCarry() *GameError {
	return &GameError{Code: ErrOnlyAlliesCarry, Message: "only friendly units may be carried"}
}

func errWrongTransportMode() *GameError {
	return &GameError{Code: ErrWrongTransportMode, Message: "unit's transport mode is not accepted by this carrier"}
}

func errInsufficientCarryingSpace() *GameError {
	return &GameError{Code: ErrInsufficientCarryingSpace, Message: "carrier has no remaining capacity"}
}

func errUnitHasNoCarryingSpace(id UnitID) *GameError {
	return &GameError{Code: ErrUnitHasNoCarryingSpace, UnitID: id, Message: fmt.Sprintf("unit %d cannot carry other units", id)}
}

func errUnitAlreadyPresent(loc Location) *GameError {
	return &GameError{Code: ErrUnitAlreadyPresent, Loc: loc, Message: fmt.Sprintf("a unit is already present at %s", loc)}
}

func errMove(m *MoveError) *GameError {
	return &GameError{Code: ErrMove, Move: m, Message: m.Error()}
}

// MoveErrorCode tags the kind of movement failure.
type MoveErrorCode int

const (
	ErrDestinationOutOfBounds MoveErrorCode = iota
	ErrZeroLengthMove
	ErrSourceUnitDoesNotExist
	ErrSourceUnitNotAtLocation
	ErrRemainingMovesExceeded
	ErrInsufficientFuel
	ErrNoRoute
)

// MoveError is the movement-specific error family wrapped by
// GameError{Code: ErrMove}.
type MoveError struct {
	Code      MoveErrorCode
	Src, Dest Location
	UnitID    UnitID
	Intended  uint16
	Remaining uint16
}

func (e *MoveError) Error() string {
	switch e.Code {
	case ErrDestinationOutOfBounds:
		return fmt.Sprintf("destination %s is out of bounds", e.Dest)
	case ErrZeroLengthMove:
		return "move has zero length"
	case ErrSourceUnitDoesNotExist:
		return fmt.Sprintf("source unit %d does not exist", e.UnitID)
	case ErrSourceUnitNotAtLocation:
		return fmt.Sprintf("unit %d is not at %s", e.UnitID, e.Src)
	case ErrRemainingMovesExceeded:
		return fmt.Sprintf("move of %d exceeds %d remaining moves", e.Intended, e.Remaining)
	case ErrInsufficientFuel:
		return fmt.Sprintf("unit %d has insufficient fuel", e.UnitID)
	case ErrNoRoute:
		return fmt.Sprintf("no route from %s to %s for unit %d", e.Src, e.Dest, e.UnitID)
	default:
		return "move error"
	}
}
