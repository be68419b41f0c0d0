package umpire

// CombatOutcome is the result of a one-on-one fight between an attacker
// unit and a defender (another unit, or a city's garrison-less presence
// via the movement pipeline).
type CombatOutcome struct {
	AttackerSurvived bool `json:"attacker_survived"`
	Attacker         Unit `json:"attacker"` // post-combat HP
	DefenderSurvived bool `json:"defender_survived"`
	Defender         Unit `json:"defender"`
}

// Victorious reports whether the attacker won (the defender did not
// survive).
func (o CombatOutcome) Victorious() bool {
	return !o.DefenderSurvived
}

// resolveCombat runs rounds of HP exchange between attacker and defender
// until one reaches zero HP. Each round, the side to lose one HP is a
// weighted coin flip: the attacker loses the round with probability
// defenderHP / (attackerHP + defenderHP) (see SPEC_FULL.md Open Question
// #2 for why this exact draw shape was chosen).
func resolveCombat(rng *rng, attacker, defender Unit) CombatOutcome {
	a, d := attacker, defender
	for a.HP > 0 && d.HP > 0 {
		r := rng.Float64()
		threshold := float64(d.HP) / float64(a.HP+d.HP)
		if r < threshold {
			a.HP--
		} else {
			d.HP--
		}
	}
	return CombatOutcome{
		AttackerSurvived: a.HP > 0,
		Attacker:         a,
		DefenderSurvived: d.HP > 0,
		Defender:         d,
	}
}
