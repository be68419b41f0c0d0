// Command server wires up the umpire engine's ambient stack (config,
// logging, Postgres, Redis) and runs a short in-process scenario against
// it, the way a local smoke-test binary would. The spec's HTTP/websocket
// lobby surface is out of scope for this engine; this binary exists to
// prove the wiring end to end, not to serve traffic.
package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/umpire-engine/umpire/internal/auth"
	"github.com/umpire-engine/umpire/internal/config"
	"github.com/umpire-engine/umpire/internal/logger"
	"github.com/umpire-engine/umpire/internal/repository/postgres"
	redisrepo "github.com/umpire-engine/umpire/internal/repository/redis"
	"github.com/umpire-engine/umpire/internal/service"
	"github.com/umpire-engine/umpire/pkg/umpire"
)

// matchSnapshot is the cached-in-Redis view of a match: just enough to
// resume polling a running demo without replaying its action history.
// pkg/umpire.Game itself carries no exported wire representation; a real
// rehydration path would need one, which is out of scope for this demo.
type matchSnapshot struct {
	Turn          uint32  `json:"turn"`
	CurrentPlayer uint8   `json:"current_player"`
	Scores        []float64 `json:"scores"`
}

func main() {
	logger.Init()
	cfg := config.Load()
	log.Info().Str("databaseURL", cfg.DatabaseURL).Msg("Config loaded")

	auth.InstallSecretMinter(auth.NewJWTManager(cfg.JWTSecret))

	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer db.Close()
	trainingStore := postgres.NewTrainingRepo(db)

	redisClient, err := redisrepo.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis connection failed")
	}
	defer redisClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manager := service.NewManager()
	matchID := "demo"
	game := newDemoGame()
	engine := manager.Create(matchID, game)

	if err := runDemoMatch(ctx, engine, game, trainingStore, redisClient, matchID); err != nil {
		log.Error().Err(err).Msg("Demo match ended with an error")
	}

	log.Info().Msg("Server stopped")
}

// newDemoGame builds an empty 12x8 all-Land two-player game with fog of
// war; it places no cities and no units.
func newDemoGame() *umpire.Game {
	game := umpire.NewGame(umpire.NewGameOptions{
		Dims:       umpire.Dims{Width: 12, Height: 8},
		Wrapping:   umpire.WrapNeither,
		NumPlayers: 2,
		FogOfWar:   true,
		Seed:       time.Now().UnixNano(),
	})
	return game
}

// runDemoMatch plays a handful of turns via the service facade, caching a
// snapshot after each turn and exporting a training instance for every
// action taken, exercising the full repos → service → engine path.
func runDemoMatch(ctx context.Context, engine *service.Engine, game *umpire.Game, store *postgres.TrainingRepo, cache *redisrepo.Client, matchID string) error {
	const turnsToPlay = 3
	for turn := 0; turn < turnsToPlay; turn++ {
		player, err := engine.CurrentPlayer(ctx)
		if err != nil {
			return err
		}
		secret := game.PlayerSecretByIdx(player)

		if _, err := engine.BeginTurn(ctx, player, secret); err != nil {
			return err
		}

		action := umpire.AiPlayerAction{Kind: umpire.AiSkipNextUnit}
		outcome, err := engine.TakeSimpleAction(ctx, player, secret, action)
		if err != nil {
			log.Warn().Err(err).Uint8("player", uint8(player)).Msg("No pending unit action this turn")
		} else {
			log.Info().Uint8("player", uint8(player)).Interface("kind", outcome.Action.Kind).Msg("Took scripted action")
		}

		instance, err := engine.ExportTrainingInstance(ctx, player, secret, action)
		if err == nil {
			if raw, merr := json.Marshal(instance); merr == nil {
				if serr := store.Save(ctx, matchID, uint8(player), raw); serr != nil {
					log.Warn().Err(serr).Msg("Failed to persist training instance (non-fatal)")
				}
			}
		}

		if err := engine.ForceEndTurn(ctx, player, secret); err != nil {
			return err
		}

		turnNum, _ := engine.Turn(ctx)
		nextPlayer, _ := engine.CurrentPlayer(ctx)
		scores, _ := engine.PlayerScores(ctx)
		if raw, merr := json.Marshal(matchSnapshot{Turn: turnNum, CurrentPlayer: uint8(nextPlayer), Scores: scores}); merr == nil {
			if cerr := cache.SetSnapshot(ctx, matchID, raw); cerr != nil {
				log.Warn().Err(cerr).Msg("Failed to cache snapshot (non-fatal)")
			}
		}

		if victor, ok, _ := engine.Victor(ctx); ok {
			log.Info().Uint8("victor", uint8(victor)).Msg("Match decided")
			break
		}
	}
	return nil
}
