package umpire

// UnitType is one of the ten fixed unit types, each with its own combat,
// movement, and transport attributes.
type UnitType int

const (
	Infantry UnitType = iota
	Armor
	Fighter
	Bomber
	Transport
	Destroyer
	Submarine
	Cruiser
	Battleship
	Carrier
)

// UnitTypes lists every unit type in declared order; this order is the
// stable index convention relied on by NextCityAction and the feature
// extractor's one-hot encoding.
var UnitTypes = [10]UnitType{
	Infantry, Armor, Fighter, Bomber, Transport,
	Destroyer, Submarine, Cruiser, Battleship, Carrier,
}

// TransportMode is the domain (land, sea, or air) a unit moves through.
type TransportMode int

const (
	ModeLand TransportMode = iota
	ModeSea
	ModeAir
)

// Fuel is either unlimited or capped at a maximum that is restored by
// refueling at a friendly city or compatible carrier.
type Fuel struct {
	Limited bool
	Max     uint16
}

// UnlimitedFuel is the zero-value-equivalent Fuel of a type with no range
// limit.
var UnlimitedFuel = Fuel{}

// LimitedFuel returns a Fuel capped at max.
func LimitedFuel(max uint16) Fuel {
	return Fuel{Limited: true, Max: max}
}

type unitStats struct {
	key          byte
	name         string
	maxHP        uint16
	cost         uint16
	sight        uint16
	movePerTurn  uint16
	mode         TransportMode
	fuel         Fuel
	carryCap     uint16
	carryAccepts TransportMode
}

// statTable holds the exact per-type attributes recovered from the
// original implementation (see SPEC_FULL.md §3 supplement).
var statTable = [10]unitStats{
	Infantry:   {'i', "Infantry", 1, 6, 2, 1, ModeLand, UnlimitedFuel, 0, ModeLand},
	Armor:      {'a', "Armor", 2, 11, 2, 2, ModeLand, UnlimitedFuel, 0, ModeLand},
	Fighter:    {'f', "Fighter", 1, 12, 4, 5, ModeAir, LimitedFuel(20), 0, ModeLand},
	Bomber:     {'b', "Bomber", 2, 18, 4, 3, ModeAir, LimitedFuel(30), 0, ModeLand},
	Transport:  {'t', "Transport", 3, 30, 2, 2, ModeSea, UnlimitedFuel, 4, ModeLand},
	Destroyer:  {'d', "Destroyer", 2, 24, 3, 3, ModeSea, UnlimitedFuel, 0, ModeLand},
	Submarine:  {'s', "Submarine", 2, 24, 3, 2, ModeSea, UnlimitedFuel, 0, ModeLand},
	Cruiser:    {'c', "Cruiser", 4, 36, 3, 2, ModeSea, UnlimitedFuel, 0, ModeLand},
	Battleship: {'p', "Battleship", 8, 60, 4, 1, ModeSea, UnlimitedFuel, 0, ModeLand},
	Carrier:    {'k', "Carrier", 6, 48, 4, 1, ModeSea, UnlimitedFuel, 5, ModeAir},
}

func (t UnitType) stats() unitStats { return statTable[t] }

func (t UnitType) String() string        { return t.stats().name }
func (t UnitType) Key() byte             { return t.stats().key }
func (t UnitType) MaxHP() uint16         { return t.stats().maxHP }
func (t UnitType) Cost() uint16          { return t.stats().cost }
func (t UnitType) SightDistance() uint16 { return t.stats().sight }
func (t UnitType) MovePerTurn() uint16   { return t.stats().movePerTurn }
func (t UnitType) Mode() TransportMode   { return t.stats().mode }
func (t UnitType) InitialFuel() Fuel     { return t.stats().fuel }
func (t UnitType) CarryCapacity() uint16 { return t.stats().carryCap }
func (t UnitType) Accepts() TransportMode { return t.stats().carryAccepts }

// CanOccupyCities reports whether units of this type can capture and hold
// cities, which is true exactly for land-mode units.
func (t UnitType) CanOccupyCities() bool { return t.Mode() == ModeLand }

// UnitTypeByKey looks up a unit type by its single-character map-format
// key (case-insensitive), returning false if no type matches.
func UnitTypeByKey(key byte) (UnitType, bool) {
	lower := key
	if lower >= 'A' && lower <= 'Z' {
		lower += 'a' - 'A'
	}
	for _, t := range UnitTypes {
		if t.Key() == lower {
			return t, true
		}
	}
	return 0, false
}
