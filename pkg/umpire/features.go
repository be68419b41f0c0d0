package umpire

// Feature-vector layout constants, named the way the neural encoding this
// is adapted from names its offsets (see DESIGN.md's grounding
// ledger). The vector is much smaller than a whole-board encoding: four
// scalars, an 11-position one-hot for the next entity type, ten unit-type
// counts, and four 11x11 binary planes centered on the next entity.
const (
	PlaneSize       = 11
	PlaneCells      = PlaneSize * PlaneSize
	NumUnitTypesAndCity = len(UnitTypes) + 1 // +1 for "city"

	FeatScalarTurn            = 0
	FeatScalarCityCount       = 1
	FeatScalarTilesObserved   = 2
	FeatScalarFractionObserved = 3
	NumScalars                = 4

	FeatNextEntityOneHot = NumScalars                              // [4:15)
	FeatUnitTypeCounts   = FeatNextEntityOneHot + NumUnitTypesAndCity // [15:25)
	FeatPlanes           = FeatUnitTypeCounts + len(UnitTypes)        // [25:25+4*121)

	PlaneIsEnemyBelligerent = 0
	PlaneIsObserved         = 1
	PlaneIsNeutral          = 2
	PlaneIsCity             = 3
	NumPlanes               = 4

	FeatureVectorLength = FeatPlanes + NumPlanes*PlaneCells
)

// SparseFeature is one non-zero entry of a feature vector, as stored in a
// TrainingInstance.
type SparseFeature struct {
	Index int     `json:"index"`
	Value float32 `json:"value"`
}

// PlayerFeatures assembles the dense feature vector for player, centered
// on whichever unit or city is the target of their next pending action
// (the "focus" entity named in §4.8). Locations outside the map under the
// active wrapping policy are treated as Unobserved.
func (g *Game) PlayerFeatures(player PlayerNum, secret PlayerSecret) ([]float32, *GameError) {
	if gerr := g.checkSecret(player, secret); gerr != nil {
		return nil, gerr
	}
	return g.playerFeatures(player), nil
}

func (g *Game) playerFeatures(player PlayerNum) []float32 {
	out := make([]float32, FeatureVectorLength)
	alignment := Belligerent(player)
	tracker := g.playerObservations[player]

	out[FeatScalarTurn] = float32(g.turn)
	out[FeatScalarCityCount] = float32(g.mapData.AlignmentCityCount(alignment))
	out[FeatScalarTilesObserved] = float32(tracker.TilesObserved())
	out[FeatScalarFractionObserved] = float32(tracker.FractionObserved())

	counts := g.mapData.AlignmentUnitTypeCounts(alignment)
	for i, t := range UnitTypes {
		out[FeatUnitTypeCounts+i] = float32(counts[t])
	}

	var focus Location
	haveFocus := false
	if city, ok := g.firstPendingCity(player); ok {
		focus = city.Loc
		out[FeatNextEntityOneHot+len(UnitTypes)] = 1 // "city" slot, last position
		haveFocus = true
	} else if unit, ok := g.firstPendingUnit(player); ok {
		focus = unit.Loc
		for i, t := range UnitTypes {
			if t == unit.Type {
				out[FeatNextEntityOneHot+i] = 1
				break
			}
		}
		haveFocus = true
	}

	if !haveFocus {
		return out
	}

	dims, wrap := g.mapData.Dims(), g.mapData.Wrapping()
	half := PlaneSize / 2
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			row := dy + half
			col := dx + half
			cellIdx := row*PlaneSize + col

			loc, ok := step(focus, dx, dy, dims, wrap)
			var obs Observation
			if ok {
				obs = tracker.Get(loc)
			}
			if !obs.Observed {
				continue
			}
			out[FeatPlanes+PlaneIsObserved*PlaneCells+cellIdx] = 1
			tile := obs.Tile
			if tile.Unit != nil {
				if tile.Unit.Alignment.IsNeutral() {
					out[FeatPlanes+PlaneIsNeutral*PlaneCells+cellIdx] = 1
				} else if !tile.Unit.Alignment.Friendly(alignment) {
					out[FeatPlanes+PlaneIsEnemyBelligerent*PlaneCells+cellIdx] = 1
				}
			}
			if tile.City != nil {
				out[FeatPlanes+PlaneIsCity*PlaneCells+cellIdx] = 1
			}
		}
	}
	return out
}

// Sparsify drops zero entries from a dense feature vector, matching the
// TrainingInstance wire format of §6.
func Sparsify(dense []float32) []SparseFeature {
	var out []SparseFeature
	for i, v := range dense {
		if v != 0 {
			out = append(out, SparseFeature{Index: i, Value: v})
		}
	}
	return out
}
