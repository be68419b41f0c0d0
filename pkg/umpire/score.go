package umpire

// Score constants, exact per SPEC_FULL.md §6.
const (
	TileObservedBaseScore = 10
	UnitMultiplier        = 100
	CityIntrinsicScore    = 1000
	ActionPenalty         = 100
	TurnPenalty           = 0
	VictoryScore          = 1_000_000
)

// PlayerScore computes the score formula of §6 for the given player.
func (g *Game) PlayerScore(player PlayerNum, secret PlayerSecret) (float64, *GameError) {
	if gerr := g.checkSecret(player, secret); gerr != nil {
		return 0, gerr
	}
	return g.playerScoreByIdx(player), nil
}

// PlayerScoreByIdx computes a player's score without requiring their
// secret; used for the public PlayerScores() leaderboard.
func (g *Game) PlayerScoreByIdx(player PlayerNum) float64 {
	return g.playerScoreByIdx(player)
}

func (g *Game) playerScoreByIdx(player PlayerNum) float64 {
	var score float64
	score += TileObservedBaseScore * float64(g.playerObservations[player].TilesObserved())

	alignment := Belligerent(player)
	for _, tile := range g.mapData.AllTiles() {
		if tile.Unit != nil && tile.Unit.Alignment.Friendly(alignment) {
			score += UnitMultiplier * float64(tile.Unit.Type.Cost()) * float64(tile.Unit.HP) / float64(tile.Unit.Type.MaxHP())
			if tile.Unit.CarryingSpace != nil {
				for _, held := range tile.Unit.CarryingSpace.Held {
					score += UnitMultiplier * float64(held.Type.Cost()) * float64(held.HP) / float64(held.Type.MaxHP())
				}
			}
		}
		if tile.City != nil && tile.City.Alignment.Friendly(alignment) {
			score += CityIntrinsicScore
			score += float64(tile.City.ProductionProgress) * UnitMultiplier
		}
	}

	score += UnitMultiplier * float64(g.defeatedUnitHP[player])
	score -= ActionPenalty * float64(g.actionCounts[player])
	score -= TurnPenalty * float64(g.turn)

	if victor, ok := g.Victor(); ok && victor == player {
		score += VictoryScore
	}
	return score
}

// PlayerScores returns every player's score; it is a public query, no
// secret required.
func (g *Game) PlayerScores() []float64 {
	out := make([]float64, g.numPlayers)
	for p := 0; p < g.numPlayers; p++ {
		out[p] = g.playerScoreByIdx(PlayerNum(p))
	}
	return out
}

// CurrentPlayerScore is a convenience for PlayerScoreByIdx(CurrentPlayer()).
func (g *Game) CurrentPlayerScore() float64 {
	return g.playerScoreByIdx(g.currentPlayer)
}
