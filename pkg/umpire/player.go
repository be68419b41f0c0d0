package umpire

import "strconv"

// PlayerNum identifies one of a game's players, 0-indexed.
type PlayerNum uint8

// Alignment is Neutral or belongs to a specific player.
type Alignment struct {
	player    PlayerNum
	belligerent bool
}

// NeutralAlignment is the alignment of unowned cities and units.
var NeutralAlignment = Alignment{}

// Belligerent returns the alignment of the given player.
func Belligerent(p PlayerNum) Alignment {
	return Alignment{player: p, belligerent: true}
}

// IsNeutral reports whether a is Neutral.
func (a Alignment) IsNeutral() bool {
	return !a.belligerent
}

// Player returns the owning player and whether a is actually belligerent
// (not neutral).
func (a Alignment) Player() (PlayerNum, bool) {
	return a.player, a.belligerent
}

// Friendly reports whether two alignments belong to the same belligerent
// player. Two Neutral alignments are not friendly to each other.
func (a Alignment) Friendly(b Alignment) bool {
	return a.belligerent && b.belligerent && a.player == b.player
}

func (a Alignment) String() string {
	if !a.belligerent {
		return "Neutral"
	}
	return "Player" + strconv.Itoa(int(a.player))
}
