// Package service hosts the facade that sits between a transport (RPC,
// CLI, test harness) and the pkg/umpire engine.
package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/umpire-engine/umpire/pkg/umpire"
)

// ErrMatchNotFound is returned by Manager when a match ID has no engine.
var ErrMatchNotFound = errors.New("match not found")

// Engine wraps a single pkg/umpire.Game behind a read/write lock: query
// methods take the read side, mutating methods take the write side.
// Multiple concurrent readers are permitted; writers are exclusive. The
// engine itself never blocks once the lock is held, so the context is
// only checked before acquiring the lock, never inside it.
type Engine struct {
	mu   sync.RWMutex
	game *umpire.Game
}

// NewEngine wraps an already-constructed game.
func NewEngine(game *umpire.Game) *Engine {
	return &Engine{game: game}
}

func (e *Engine) read(ctx context.Context, fn func(g *umpire.Game)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn(e.game)
	return nil
}

func (e *Engine) write(ctx context.Context, fn func(g *umpire.Game)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.game)
	return nil
}

// --- Public queries (no lock-free fast path; read-locked for a consistent view) ---

func (e *Engine) NumPlayers(ctx context.Context) (int, error) {
	var n int
	err := e.read(ctx, func(g *umpire.Game) { n = g.NumPlayers() })
	return n, err
}

func (e *Engine) Turn(ctx context.Context) (uint32, error) {
	var t uint32
	err := e.read(ctx, func(g *umpire.Game) { t = g.Turn() })
	return t, err
}

func (e *Engine) CurrentPlayer(ctx context.Context) (umpire.PlayerNum, error) {
	var p umpire.PlayerNum
	err := e.read(ctx, func(g *umpire.Game) { p = g.CurrentPlayer() })
	return p, err
}

func (e *Engine) Victor(ctx context.Context) (umpire.PlayerNum, bool, error) {
	var p umpire.PlayerNum
	var ok bool
	err := e.read(ctx, func(g *umpire.Game) { p, ok = g.Victor() })
	return p, ok, err
}

func (e *Engine) PlayerScores(ctx context.Context) ([]float64, error) {
	var scores []float64
	err := e.read(ctx, func(g *umpire.Game) { scores = g.PlayerScores() })
	return scores, err
}

// --- Turn lifecycle (mutating) ---

func (e *Engine) BeginTurn(ctx context.Context, player umpire.PlayerNum, secret umpire.PlayerSecret) (*umpire.TurnStart, error) {
	log.Debug().Uint8("player", uint8(player)).Str("action", "begin_turn").Msg("engine: mutating call")
	var start *umpire.TurnStart
	var gerr *umpire.GameError
	err := e.write(ctx, func(g *umpire.Game) { start, gerr = g.BeginTurn(player, secret) })
	if err != nil {
		return nil, err
	}
	if gerr != nil {
		return nil, gerr
	}
	return start, nil
}

func (e *Engine) EndTurn(ctx context.Context, player umpire.PlayerNum, secret umpire.PlayerSecret) error {
	log.Debug().Uint8("player", uint8(player)).Str("action", "end_turn").Msg("engine: mutating call")
	var gerr *umpire.GameError
	err := e.write(ctx, func(g *umpire.Game) { gerr = g.EndTurn(player, secret) })
	if err != nil {
		return err
	}
	if gerr != nil {
		return gerr
	}
	return nil
}

func (e *Engine) ForceEndTurn(ctx context.Context, player umpire.PlayerNum, secret umpire.PlayerSecret) error {
	log.Debug().Uint8("player", uint8(player)).Str("action", "force_end_turn").Msg("engine: mutating call")
	var gerr *umpire.GameError
	err := e.write(ctx, func(g *umpire.Game) { gerr = g.ForceEndTurn(player, secret) })
	if err != nil {
		return err
	}
	if gerr != nil {
		return gerr
	}
	return nil
}

// --- Actions ---

func (e *Engine) TakeAction(ctx context.Context, player umpire.PlayerNum, secret umpire.PlayerSecret, action umpire.PlayerAction) (*umpire.PlayerActionOutcome, error) {
	log.Debug().Uint8("player", uint8(player)).Int("kind", int(action.Kind)).Str("action", "take_action").Msg("engine: mutating call")
	var out *umpire.PlayerActionOutcome
	var gerr *umpire.GameError
	err := e.write(ctx, func(g *umpire.Game) { out, gerr = g.TakeAction(player, secret, action) })
	if err != nil {
		return nil, err
	}
	if gerr != nil {
		return nil, gerr
	}
	return out, nil
}

// ProposeAction never mutates e.game, but still takes the read lock: the
// engine clones the game internally, and the clone must be made from a
// consistent snapshot of live state.
func (e *Engine) ProposeAction(ctx context.Context, player umpire.PlayerNum, secret umpire.PlayerSecret, action umpire.PlayerAction) (*umpire.PlayerActionOutcome, error) {
	var out *umpire.PlayerActionOutcome
	var gerr *umpire.GameError
	err := e.read(ctx, func(g *umpire.Game) { out, gerr = g.ProposeAction(player, secret, action) })
	if err != nil {
		return nil, err
	}
	if gerr != nil {
		return nil, gerr
	}
	return out, nil
}

func (e *Engine) TakeSimpleAction(ctx context.Context, player umpire.PlayerNum, secret umpire.PlayerSecret, action umpire.AiPlayerAction) (*umpire.PlayerActionOutcome, error) {
	log.Debug().Uint8("player", uint8(player)).Str("action", "take_simple_action").Msg("engine: mutating call")
	var out *umpire.PlayerActionOutcome
	var gerr *umpire.GameError
	err := e.write(ctx, func(g *umpire.Game) { out, gerr = g.TakeSimpleAction(player, secret, action) })
	if err != nil {
		return nil, err
	}
	if gerr != nil {
		return nil, gerr
	}
	return out, nil
}

// --- Production & orders ---

func (e *Engine) SetProductionByLoc(ctx context.Context, player umpire.PlayerNum, secret umpire.PlayerSecret, loc umpire.Location, t umpire.UnitType) error {
	log.Debug().Uint8("player", uint8(player)).Str("action", "set_production_by_loc").Msg("engine: mutating call")
	var gerr *umpire.GameError
	err := e.write(ctx, func(g *umpire.Game) { gerr = g.SetProductionByLoc(player, secret, loc, t) })
	if err != nil {
		return err
	}
	if gerr != nil {
		return gerr
	}
	return nil
}

func (e *Engine) SetOrders(ctx context.Context, player umpire.PlayerNum, secret umpire.PlayerSecret, id umpire.UnitID, orders umpire.Orders) error {
	log.Debug().Uint8("player", uint8(player)).Str("action", "set_orders").Msg("engine: mutating call")
	var gerr *umpire.GameError
	err := e.write(ctx, func(g *umpire.Game) { gerr = g.SetOrders(player, secret, id, orders) })
	if err != nil {
		return err
	}
	if gerr != nil {
		return gerr
	}
	return nil
}

func (e *Engine) DisbandUnitByID(ctx context.Context, player umpire.PlayerNum, secret umpire.PlayerSecret, id umpire.UnitID) error {
	log.Debug().Uint8("player", uint8(player)).Str("action", "disband_unit_by_id").Msg("engine: mutating call")
	var gerr *umpire.GameError
	err := e.write(ctx, func(g *umpire.Game) { gerr = g.DisbandUnitByID(player, secret, id) })
	if err != nil {
		return err
	}
	if gerr != nil {
		return gerr
	}
	return nil
}

// --- Observations (read-only) ---

func (e *Engine) PlayerObs(ctx context.Context, player umpire.PlayerNum, secret umpire.PlayerSecret, loc umpire.Location) (umpire.Observation, error) {
	var obs umpire.Observation
	var gerr *umpire.GameError
	err := e.read(ctx, func(g *umpire.Game) { obs, gerr = g.PlayerObs(player, secret, loc) })
	if err != nil {
		return umpire.Observation{}, err
	}
	if gerr != nil {
		return umpire.Observation{}, gerr
	}
	return obs, nil
}

func (e *Engine) PlayerUnits(ctx context.Context, player umpire.PlayerNum, secret umpire.PlayerSecret) ([]umpire.Unit, error) {
	var units []umpire.Unit
	var gerr *umpire.GameError
	err := e.read(ctx, func(g *umpire.Game) { units, gerr = g.PlayerUnits(player, secret) })
	if err != nil {
		return nil, err
	}
	if gerr != nil {
		return nil, gerr
	}
	return units, nil
}

func (e *Engine) PlayerCities(ctx context.Context, player umpire.PlayerNum, secret umpire.PlayerSecret) ([]umpire.City, error) {
	var cities []umpire.City
	var gerr *umpire.GameError
	err := e.read(ctx, func(g *umpire.Game) { cities, gerr = g.PlayerCities(player, secret) })
	if err != nil {
		return nil, err
	}
	if gerr != nil {
		return nil, gerr
	}
	return cities, nil
}

func (e *Engine) PlayerScore(ctx context.Context, player umpire.PlayerNum, secret umpire.PlayerSecret) (float64, error) {
	var score float64
	var gerr *umpire.GameError
	err := e.read(ctx, func(g *umpire.Game) { score, gerr = g.PlayerScore(player, secret) })
	if err != nil {
		return 0, err
	}
	if gerr != nil {
		return 0, gerr
	}
	return score, nil
}

func (e *Engine) PlayerFeatures(ctx context.Context, player umpire.PlayerNum, secret umpire.PlayerSecret) ([]float32, error) {
	var features []float32
	var gerr *umpire.GameError
	err := e.read(ctx, func(g *umpire.Game) { features, gerr = g.PlayerFeatures(player, secret) })
	if err != nil {
		return nil, err
	}
	if gerr != nil {
		return nil, gerr
	}
	return features, nil
}

// ExportTrainingInstance captures the current features/action pair for
// player, for later persistence via a TrainingStore.
func (e *Engine) ExportTrainingInstance(ctx context.Context, player umpire.PlayerNum, secret umpire.PlayerSecret, action umpire.AiPlayerAction) (*umpire.TrainingInstance, error) {
	var inst *umpire.TrainingInstance
	var gerr *umpire.GameError
	err := e.read(ctx, func(g *umpire.Game) { inst, gerr = g.ExportTrainingInstance(player, secret, action) })
	if err != nil {
		return nil, err
	}
	if gerr != nil {
		return nil, gerr
	}
	return inst, nil
}

// Manager keys engines by an opaque match ID, the way game_service.go
// keys Diplomacy games by a generated ID, but in-process only: there is
// no lobby, no persistence of match metadata, and no player-slot
// assignment. A Manager is the thing a demo binary or an RPC transport
// would hold onto; pkg/umpire.Game instances themselves know nothing of
// IDs.
type Manager struct {
	mu      sync.RWMutex
	engines map[string]*Engine
}

// NewManager creates an empty match registry.
func NewManager() *Manager {
	return &Manager{engines: make(map[string]*Engine)}
}

// Create registers a new engine under id, replacing any existing one.
func (m *Manager) Create(id string, game *umpire.Game) *Engine {
	e := NewEngine(game)
	m.mu.Lock()
	m.engines[id] = e
	m.mu.Unlock()
	log.Info().Str("matchId", id).Msg("match created")
	return e
}

// Get returns the engine registered under id, or ErrMatchNotFound.
func (m *Manager) Get(id string) (*Engine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.engines[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return e, nil
}

// Delete removes a match from the registry. It is not an error to
// delete an unknown ID.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.engines, id)
	m.mu.Unlock()
}
