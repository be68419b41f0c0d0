package umpire

// Unit is a single military unit: its identity, location, type, owner,
// health, remaining movement, optional standing orders, optional cargo
// hold, and remaining fuel.
type Unit struct {
	ID             UnitID         `json:"unit_id"`
	Loc            Location       `json:"loc"`
	Type           UnitType       `json:"type"`
	Alignment      Alignment      `json:"alignment"`
	HP             uint16         `json:"hp"`
	MovesRemaining uint16         `json:"moves_remaining"`
	Name           string         `json:"name"`
	Orders         *Orders        `json:"orders,omitempty"`
	CarryingSpace  *CarryingSpace `json:"carrying_space,omitempty"`
	FuelRemaining  uint16         `json:"fuel_remaining"` // meaningless if Type.InitialFuel().Limited is false
}

func newUnit(id UnitID, loc Location, t UnitType, alignment Alignment, name string) Unit {
	u := Unit{
		ID:             id,
		Loc:            loc,
		Type:           t,
		Alignment:      alignment,
		HP:             t.MaxHP(),
		MovesRemaining: t.MovePerTurn(),
		Name:           name,
	}
	if t.InitialFuel().Limited {
		u.FuelRemaining = t.InitialFuel().Max
	}
	if capacity := t.CarryCapacity(); capacity > 0 {
		u.CarryingSpace = &CarryingSpace{
			Owner:        alignment,
			AcceptedMode: t.Accepts(),
			Capacity:     capacity,
		}
	}
	return u
}

// CanCarry reports whether this unit has room and compatible transport
// mode to carry other.
func (u *Unit) CanCarry(other *Unit) bool {
	if u.CarryingSpace == nil {
		return false
	}
	cs := u.CarryingSpace
	if !cs.Owner.Friendly(other.Alignment) {
		return false
	}
	if other.Type.Mode() != cs.AcceptedMode {
		return false
	}
	return uint16(len(cs.Held)) < cs.Capacity
}

// Refuel restores FuelRemaining to the type's max, if fuel is limited.
func (u *Unit) Refuel() {
	if u.Type.InitialFuel().Limited {
		u.FuelRemaining = u.Type.InitialFuel().Max
	}
}

// HasFuelFor reports whether the unit can afford to move dist more tiles.
func (u *Unit) HasFuelFor(dist uint16) bool {
	if !u.Type.InitialFuel().Limited {
		return true
	}
	return u.FuelRemaining >= dist
}

// consumeFuel spends dist tiles of fuel; it is a no-op for unlimited fuel.
func (u *Unit) consumeFuel(dist uint16) {
	if u.Type.InitialFuel().Limited {
		if dist > u.FuelRemaining {
			u.FuelRemaining = 0
		} else {
			u.FuelRemaining -= dist
		}
	}
}

// CarryingSpace holds other units inside a carrier unit (a Transport
// carrying land units, or a Carrier carrying air units). Every held unit's
// Loc mirrors its carrier's Loc at all times, and every held unit shares
// the carrier's Alignment and matches AcceptedMode.
type CarryingSpace struct {
	Owner        Alignment     `json:"owner"`
	AcceptedMode TransportMode `json:"accepted_mode"`
	Capacity     uint16        `json:"capacity"`
	Held         []Unit        `json:"held,omitempty"`
}

// Orders is a standing instruction attached to a unit, executed during
// begin_turn.
type Orders struct {
	Kind OrdersKind `json:"kind"`
	Dest Location   `json:"dest"` // only meaningful for GoTo
}

type OrdersKind int

const (
	OrdersSkip OrdersKind = iota
	OrdersSentry
	OrdersGoTo
	OrdersExplore
)

func (k OrdersKind) String() string {
	switch k {
	case OrdersSkip:
		return "Skip"
	case OrdersSentry:
		return "Sentry"
	case OrdersGoTo:
		return "GoTo"
	case OrdersExplore:
		return "Explore"
	default:
		return "?"
	}
}

// OrdersOutcome reports the result of carrying out one unit's orders
// during a turn.
type OrdersOutcome struct {
	UnitID UnitID       `json:"unit_id"`
	Orders Orders       `json:"orders"`
	Move   *Move        `json:"move,omitempty"`
	Status OrdersStatus `json:"status"`
}

type OrdersStatus int

const (
	OrdersCompleted OrdersStatus = iota
	OrdersInProgress
)

func (s OrdersStatus) String() string {
	if s == OrdersCompleted {
		return "Completed"
	}
	return "InProgress"
}
