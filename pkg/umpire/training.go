package umpire

import "gorgonia.org/tensor"

// Outcome is the terminal label attached to a TrainingInstance once the
// game (or the player's part in it) is decided.
type Outcome int

const (
	OutcomeInconclusive Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "Victory"
	case OutcomeDefeat:
		return "Defeat"
	default:
		return "Inconclusive"
	}
}

// TrainingInstance pairs one player_features() observation with the action
// taken from it and the outcome eventually reached, for offline learning.
// Features are stored sparse (only non-zero entries) to keep the wire
// format small; NumFeatures records the dense length needed to reinflate
// them.
type TrainingInstance struct {
	NumFeatures int             `json:"num_features"`
	Features    []SparseFeature `json:"features"`
	Action      AiPlayerAction  `json:"action"`
	Outcome     Outcome         `json:"outcome"`
}

// ExportTrainingInstance captures the current feature vector for player,
// pairs it with action, and leaves Outcome Inconclusive; the caller fills
// in the outcome once the game resolves (see RecordOutcome).
func (g *Game) ExportTrainingInstance(player PlayerNum, secret PlayerSecret, action AiPlayerAction) (*TrainingInstance, *GameError) {
	dense, gerr := g.PlayerFeatures(player, secret)
	if gerr != nil {
		return nil, gerr
	}
	return &TrainingInstance{
		NumFeatures: len(dense),
		Features:    Sparsify(dense),
		Action:      action,
		Outcome:     OutcomeInconclusive,
	}, nil
}

// RecordOutcome back-fills the Outcome field of every instance collected
// during a single player's game, based on the final victor.
func RecordOutcome(instances []*TrainingInstance, player PlayerNum, victor PlayerNum, hadVictor bool) {
	outcome := OutcomeInconclusive
	if hadVictor {
		if victor == player {
			outcome = OutcomeVictory
		} else {
			outcome = OutcomeDefeat
		}
	}
	for _, inst := range instances {
		inst.Outcome = outcome
	}
}

// densify reinflates one instance's sparse features into a flat slice.
func (t *TrainingInstance) densify() []float32 {
	dense := make([]float32, t.NumFeatures)
	for _, f := range t.Features {
		dense[f.Index] = f.Value
	}
	return dense
}

// BatchTensor assembles a (N, NumFeatures) tensor from a batch of training
// instances, ready to feed a learner. All instances must share the same
// NumFeatures.
func BatchTensor(instances []*TrainingInstance) (*tensor.Dense, error) {
	if len(instances) == 0 {
		return tensor.New(tensor.WithShape(0, 0), tensor.Of(tensor.Float32)), nil
	}
	numFeatures := instances[0].NumFeatures
	backing := make([]float32, 0, len(instances)*numFeatures)
	for _, inst := range instances {
		backing = append(backing, inst.densify()...)
	}
	return tensor.New(
		tensor.WithShape(len(instances), numFeatures),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(backing),
	), nil
}

// ActionIndexTensor assembles the (N,) action-index labels for a batch,
// matching AiPlayerAction.Index()'s combined enumeration.
func ActionIndexTensor(instances []*TrainingInstance) *tensor.Dense {
	indices := make([]int64, len(instances))
	for i, inst := range instances {
		indices[i] = int64(inst.Action.Index())
	}
	return tensor.New(
		tensor.WithShape(len(instances)),
		tensor.Of(tensor.Int64),
		tensor.WithBacking(indices),
	)
}
