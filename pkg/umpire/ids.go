package umpire

// UnitID and CityID are opaque, monotonically increasing identifiers
// allocated by MapData. They are never reused within the lifetime of a
// Game.
type UnitID uint64

type CityID uint64

// PlayerSecret is an opaque per-player token that authorizes private
// queries and mutations for that player. Games never log or return a
// secret that isn't the caller's own; it implements Stringer with a
// redacted form so an accidental log call cannot leak the token.
type PlayerSecret string

func (PlayerSecret) String() string {
	return "<redacted>"
}
