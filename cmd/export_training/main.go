// Command export_training plays a batch of self-contained games with a
// scripted, non-learned policy and writes the resulting TrainingInstance
// corpus to Postgres. Unlike a bot process, nothing here samples from a
// model: every action comes from a fixed, deterministic rotation, so the
// corpus this produces is reproducible given the same seed and game
// count.
package main

import (
	"context"
	"encoding/json"
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/umpire-engine/umpire/internal/config"
	"github.com/umpire-engine/umpire/internal/logger"
	"github.com/umpire-engine/umpire/internal/repository/postgres"
	"github.com/umpire-engine/umpire/pkg/umpire"
)

func main() {
	games := flag.Int("games", 20, "number of scripted games to play")
	turns := flag.Int("turns", 40, "maximum player turns per game (each player's turn counts once) before it is abandoned as inconclusive")
	seed := flag.Int64("seed", 1, "base RNG seed; game i uses seed+i")
	flag.Parse()

	logger.Init()
	cfg := config.Load()

	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer db.Close()
	store := postgres.NewTrainingRepo(db)

	ctx := context.Background()
	total := 0
	for i := 0; i < *games; i++ {
		matchID := "selfplay-" + itoa(i)
		n, err := playScriptedGame(ctx, store, matchID, *seed+int64(i), *turns)
		if err != nil {
			log.Error().Err(err).Str("matchId", matchID).Msg("Scripted game failed")
			continue
		}
		total += n
	}
	log.Info().Int("games", *games).Int("instances", total).Msg("Export complete")
}

// playScriptedGame runs one game to completion (or the turn cap) driving
// both players through the combined AiPlayerAction enumeration in a fixed
// round-robin, exporting one TrainingInstance per action taken and
// back-filling every instance's Outcome once the game ends.
func playScriptedGame(ctx context.Context, store *postgres.TrainingRepo, matchID string, seed int64, maxTurns int) (int, error) {
	game := umpire.NewGame(umpire.NewGameOptions{
		Dims:       umpire.Dims{Width: 10, Height: 10},
		Wrapping:   umpire.WrapNeither,
		NumPlayers: 2,
		FogOfWar:   true,
		Seed:       seed,
	})

	var instances []*umpire.TrainingInstance
	var players []umpire.PlayerNum
	scripted := scriptedPolicy{}

	for turn := 0; turn < maxTurns; turn++ {
		player := game.CurrentPlayer()
		secret := game.PlayerSecretByIdx(player)

		if _, gerr := game.BeginTurn(player, secret); gerr != nil {
			return 0, gerr
		}

		for !game.CurrentTurnIsDone() {
			action := scripted.next()
			inst, gerr := game.ExportTrainingInstance(player, secret, action)
			if gerr == nil {
				instances = append(instances, inst)
				players = append(players, player)
			}
			if _, gerr := game.TakeSimpleAction(player, secret, action); gerr != nil {
				break
			}
		}

		if gerr := game.ForceEndTurn(player, secret); gerr != nil {
			return 0, gerr
		}

		if victor, ok := game.Victor(); ok {
			for i, inst := range instances {
				umpire.RecordOutcome([]*umpire.TrainingInstance{inst}, players[i], victor, true)
			}
			return persist(ctx, store, matchID, instances, players)
		}
	}

	return persist(ctx, store, matchID, instances, players)
}

func persist(ctx context.Context, store *postgres.TrainingRepo, matchID string, instances []*umpire.TrainingInstance, players []umpire.PlayerNum) (int, error) {
	saved := 0
	for i, inst := range instances {
		raw, err := json.Marshal(inst)
		if err != nil {
			continue
		}
		if err := store.Save(ctx, matchID, uint8(players[i]), raw); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

// scriptedPolicy cycles through every AiPlayerAction kind in a fixed
// order, never repeating the same kind twice in a row when a different
// one is available; it has no notion of board state.
type scriptedPolicy struct {
	i int
}

func (s *scriptedPolicy) next() umpire.AiPlayerAction {
	kinds := []umpire.AiPlayerActionKind{
		umpire.AiSetNextCityProduction,
		umpire.AiMoveNextUnit,
		umpire.AiSkipNextUnit,
		umpire.AiDisbandNextUnit,
	}
	kind := kinds[s.i%len(kinds)]
	s.i++
	switch kind {
	case umpire.AiSetNextCityProduction:
		return umpire.AiPlayerAction{Kind: kind, Type: umpire.UnitTypes[s.i%len(umpire.UnitTypes)]}
	case umpire.AiMoveNextUnit:
		return umpire.AiPlayerAction{Kind: kind, Direction: umpire.Directions[s.i%len(umpire.Directions)]}
	default:
		return umpire.AiPlayerAction{Kind: kind}
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
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
