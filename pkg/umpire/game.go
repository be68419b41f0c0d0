package umpire

import "sync/atomic"

// UnitNamer supplies names for newly produced units. It is the one
// legitimately shared resource between a Game and its Propose-clones (see
// SPEC_FULL.md design notes): synchronized internally so that concurrent
// clones can draw names without racing.
type UnitNamer interface {
	NameFor(t UnitType) string
}

// sequentialNamer is the default UnitNamer: "<Type> <n>" with a shared
// atomic counter.
type sequentialNamer struct {
	counter *int64
}

func newSequentialNamer() *sequentialNamer {
	var c int64
	return &sequentialNamer{counter: &c}
}

func (n *sequentialNamer) NameFor(t UnitType) string {
	id := atomic.AddInt64(n.counter, 1)
	return t.String() + " " + itoa64(id)
}

func itoa64(n int64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// TurnPhase is Pre (awaiting begin_turn) or Main (actions accepted).
type TurnPhase int

const (
	PhasePre TurnPhase = iota
	PhaseMain
)

// Game is the authoritative, mutable state of one Umpire match: the map,
// every player's fog-of-war observations, the turn counter, and
// per-player bookkeeping. Game is deep-clonable via Clone/Propose without
// any shared mutable state except the UnitNamer.
type Game struct {
	mapData             *MapData
	playerObservations  []*PlayerObsTracker
	turn                uint32
	numPlayers          int
	playerSecrets       []PlayerSecret
	currentPlayer       PlayerNum
	wrapping            Wrap2d
	unitNamer           UnitNamer
	fogOfWar            bool
	actionCounts        []uint64
	defeatedUnitHP      []uint64
	turnPhase           TurnPhase
	rng                 *rng
}

// NewGameOptions configures a new Game.
type NewGameOptions struct {
	Dims       Dims
	Wrapping   Wrap2d
	NumPlayers int
	FogOfWar   bool
	Seed       int64
	UnitNamer  UnitNamer
}

// NewGame constructs a fresh game with an empty, all-Land map.
func NewGame(opts NewGameOptions) *Game {
	g := newGameShell(opts)
	g.mapData = NewMapData(opts.Dims, opts.Wrapping)
	return g
}

func newGameShell(opts NewGameOptions) *Game {
	namer := opts.UnitNamer
	if namer == nil {
		namer = newSequentialNamer()
	}
	g := &Game{
		numPlayers:         opts.NumPlayers,
		wrapping:           opts.Wrapping,
		unitNamer:          namer,
		fogOfWar:           opts.FogOfWar,
		turnPhase:          PhasePre,
		rng:                newRNG(opts.Seed),
		actionCounts:       make([]uint64, opts.NumPlayers),
		defeatedUnitHP:     make([]uint64, opts.NumPlayers),
		playerObservations: make([]*PlayerObsTracker, opts.NumPlayers),
		playerSecrets:      make([]PlayerSecret, opts.NumPlayers),
	}
	for p := 0; p < opts.NumPlayers; p++ {
		g.playerObservations[p] = newPlayerObsTracker(opts.Dims)
		g.playerSecrets[p] = mintSecret(PlayerNum(p), opts.Seed)
	}
	return g
}

// mintSecret is overridden via SetSecretMinter by internal/auth when that
// package is linked in; the fallback here keeps pkg/umpire independently
// usable (and testable) without a JWT signing key configured.
var mintSecret = func(p PlayerNum, seed int64) PlayerSecret {
	return PlayerSecret("secret-" + itoa64(int64(p)) + "-" + itoa64(seed))
}

// SetSecretMinter replaces the function used to mint a PlayerSecret for a
// freshly-created game's players. Call it once, before constructing any
// Game, to back player secrets with JWTs instead of the plain fallback.
func SetSecretMinter(fn func(PlayerNum, int64) PlayerSecret) {
	mintSecret = fn
}

// --- Lifecycle / public queries (no secret required) ---

func (g *Game) NumPlayers() int        { return g.numPlayers }
func (g *Game) Turn() uint32           { return g.turn }
func (g *Game) TurnPhase() TurnPhase   { return g.turnPhase }
func (g *Game) CurrentPlayer() PlayerNum { return g.currentPlayer }
func (g *Game) Dims() Dims             { return g.mapData.Dims() }
func (g *Game) Wrapping() Wrap2d       { return g.wrapping }

// PlayerSecretByIdx returns the secret minted for player p at game creation.
// Callers that host a Game (rather than being handed a secret by a player)
// use this once, at creation time, to distribute credentials.
func (g *Game) PlayerSecretByIdx(p PlayerNum) PlayerSecret { return g.playerSecrets[p] }

func (g *Game) IsPlayerTurn(p PlayerNum) bool {
	return g.turnPhase == PhaseMain && g.currentPlayer == p
}

// Victor returns the sole surviving belligerent, if any. A player is the
// victor iff they are the only one holding a city or a city-capable unit.
func (g *Game) Victor() (PlayerNum, bool) {
	holders := map[PlayerNum]bool{}
	for p := 0; p < g.numPlayers; p++ {
		a := Belligerent(PlayerNum(p))
		if g.mapData.AlignmentCityCount(a) > 0 {
			holders[PlayerNum(p)] = true
			continue
		}
		counts := g.mapData.AlignmentUnitTypeCounts(a)
		for _, t := range UnitTypes {
			if t.CanOccupyCities() && counts[t] > 0 {
				holders[PlayerNum(p)] = true
				break
			}
		}
	}
	if len(holders) != 1 {
		return 0, false
	}
	for p := range holders {
		return p, true
	}
	return 0, false
}

func (g *Game) checkSecret(p PlayerNum, secret PlayerSecret) *GameError {
	if int(p) >= g.numPlayers {
		return errNoSuchPlayer(p)
	}
	if g.playerSecrets[p] != secret {
		return errNoPlayerIdentifiedBySecret()
	}
	return nil
}

// playerForSecret finds which player a secret belongs to.
func (g *Game) playerForSecret(secret PlayerSecret) (PlayerNum, *GameError) {
	for p, s := range g.playerSecrets {
		if s == secret {
			return PlayerNum(p), nil
		}
	}
	return 0, errNoPlayerIdentifiedBySecret()
}

func playerOf(a Alignment) PlayerNum {
	p, _ := a.Player()
	return p
}

func (g *Game) recordAction(p PlayerNum) {
	g.actionCounts[p]++
}

// recordDefeat credits victor with defeating a unit whose type's max HP
// was hp, feeding the score formula's defeated_unit_hitpoints term.
func (g *Game) recordDefeat(victor PlayerNum, hp uint16) {
	g.defeatedUnitHP[victor] += uint64(hp)
}

func (g *Game) destroyUnit(id UnitID) {
	g.mapData.PopToplevelUnitByID(id)
}

// --- Observations ---

func (g *Game) PlayerTile(p PlayerNum, secret PlayerSecret, loc Location) (*Tile, *GameError) {
	if gerr := g.checkSecret(p, secret); gerr != nil {
		return nil, gerr
	}
	obs := g.playerObservations[p].Get(loc)
	if !obs.Observed {
		return nil, nil
	}
	return &obs.Tile, nil
}

func (g *Game) PlayerObs(p PlayerNum, secret PlayerSecret, loc Location) (Observation, *GameError) {
	if gerr := g.checkSecret(p, secret); gerr != nil {
		return Observation{}, gerr
	}
	return g.playerObservations[p].Get(loc), nil
}

// --- Cities ---

func (g *Game) PlayerCities(p PlayerNum, secret PlayerSecret) ([]City, *GameError) {
	if gerr := g.checkSecret(p, secret); gerr != nil {
		return nil, gerr
	}
	var out []City
	for _, t := range g.mapData.AllTiles() {
		if t.City != nil && t.City.Alignment.Friendly(Belligerent(p)) {
			out = append(out, *t.City)
		}
	}
	return out, nil
}

func (g *Game) PlayerCitiesWithProductionTarget(p PlayerNum, secret PlayerSecret) ([]City, *GameError) {
	cities, gerr := g.PlayerCities(p, secret)
	if gerr != nil {
		return nil, gerr
	}
	var out []City
	for _, c := range cities {
		if c.Productive() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (g *Game) PlayerProductionSetRequests(p PlayerNum, secret PlayerSecret) ([]Location, *GameError) {
	cities, gerr := g.PlayerCities(p, secret)
	if gerr != nil {
		return nil, gerr
	}
	var out []Location
	for _, c := range cities {
		if c.NeedsProductionOrder() {
			out = append(out, c.Loc)
		}
	}
	return out, nil
}

func (g *Game) SetProductionByLoc(p PlayerNum, secret PlayerSecret, loc Location, t UnitType) *GameError {
	if gerr := g.checkSecret(p, secret); gerr != nil {
		return gerr
	}
	city, gerr := g.mapData.CityByLoc(loc)
	if gerr != nil {
		return gerr
	}
	if !city.Alignment.Friendly(Belligerent(p)) {
		return errNoCityAtLocation(loc)
	}
	return g.mapData.SetCityProduction(loc, t)
}

func (g *Game) SetProductionByID(p PlayerNum, secret PlayerSecret, id CityID, t UnitType) *GameError {
	city, gerr := g.mapData.CityByID(id)
	if gerr != nil {
		return gerr
	}
	return g.SetProductionByLoc(p, secret, city.Loc, t)
}

func (g *Game) ClearProduction(p PlayerNum, secret PlayerSecret, loc Location, ignore bool) *GameError {
	if gerr := g.checkSecret(p, secret); gerr != nil {
		return gerr
	}
	return g.mapData.ClearCityProduction(loc, ignore)
}

// --- Units ---

func (g *Game) PlayerUnits(p PlayerNum, secret PlayerSecret) ([]Unit, *GameError) {
	if gerr := g.checkSecret(p, secret); gerr != nil {
		return nil, gerr
	}
	var out []Unit
	for _, t := range g.mapData.AllTiles() {
		if t.Unit != nil && t.Unit.Alignment.Friendly(Belligerent(p)) {
			out = append(out, *t.Unit)
			if t.Unit.CarryingSpace != nil {
				out = append(out, t.Unit.CarryingSpace.Held...)
			}
		}
	}
	return out, nil
}

func (g *Game) PlayerUnitByID(p PlayerNum, secret PlayerSecret, id UnitID) (*Unit, *GameError) {
	if gerr := g.checkSecret(p, secret); gerr != nil {
		return nil, gerr
	}
	u, gerr := g.mapData.UnitByID(id)
	if gerr != nil {
		return nil, gerr
	}
	if !u.Alignment.Friendly(Belligerent(p)) {
		return nil, errUnitNotControlledByCurrentPlayer(id)
	}
	return u, nil
}

func (g *Game) PlayerUnitsWithOrdersRequests(p PlayerNum, secret PlayerSecret) ([]Unit, *GameError) {
	units, gerr := g.PlayerUnits(p, secret)
	if gerr != nil {
		return nil, gerr
	}
	var out []Unit
	for _, u := range units {
		if u.Orders == nil && u.MovesRemaining > 0 {
			out = append(out, u)
		}
	}
	return out, nil
}

// DisbandUnitByID removes a unit outright, recording an observation of its
// absence.
func (g *Game) DisbandUnitByID(p PlayerNum, secret PlayerSecret, id UnitID) *GameError {
	if gerr := g.checkSecret(p, secret); gerr != nil {
		return gerr
	}
	u, gerr := g.mapData.UnitByID(id)
	if gerr != nil {
		return gerr
	}
	if !u.Alignment.Friendly(Belligerent(p)) {
		return errUnitNotControlledByCurrentPlayer(id)
	}
	loc := u.Loc
	if _, gerr := g.mapData.popUnitWherever(id); gerr != nil {
		return gerr
	}
	g.recordAction(p)
	g.playerObservations[p].observeFrom(g.mapData, loc, 1, g.turn, g.actionCounts[p])
	return nil
}

// SetOrders attaches standing orders to a unit.
func (g *Game) SetOrders(p PlayerNum, secret PlayerSecret, id UnitID, orders Orders) *GameError {
	u, gerr := g.PlayerUnitByID(p, secret, id)
	if gerr != nil {
		return gerr
	}
	u.Orders = &orders
	_, gerr2 := g.mapData.SetUnit(*u)
	return gerr2
}

// ClearOrders removes a unit's standing orders.
func (g *Game) ClearOrders(p PlayerNum, secret PlayerSecret, id UnitID) *GameError {
	u, gerr := g.PlayerUnitByID(p, secret, id)
	if gerr != nil {
		return gerr
	}
	u.Orders = nil
	_, gerr2 := g.mapData.SetUnit(*u)
	return gerr2
}

// Clone returns a deep copy of g that shares nothing mutable with the
// original except the UnitNamer (which is internally synchronized). Used
// by every Propose* operation.
func (g *Game) Clone() *Game {
	c := &Game{
		turn:          g.turn,
		numPlayers:    g.numPlayers,
		currentPlayer: g.currentPlayer,
		wrapping:      g.wrapping,
		unitNamer:     g.unitNamer,
		fogOfWar:      g.fogOfWar,
		turnPhase:     g.turnPhase,
		rng:           g.rng.clone(),
	}
	c.playerSecrets = append([]PlayerSecret(nil), g.playerSecrets...)
	c.actionCounts = append([]uint64(nil), g.actionCounts...)
	c.defeatedUnitHP = append([]uint64(nil), g.defeatedUnitHP...)
	c.mapData = g.mapData.clone()
	c.playerObservations = make([]*PlayerObsTracker, len(g.playerObservations))
	for i, o := range g.playerObservations {
		c.playerObservations[i] = o.clone()
	}
	return c
}

// PlayerScore and PlayerFeatures are implemented in score.go and
// features.go respectively.
