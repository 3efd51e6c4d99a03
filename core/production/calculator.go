package production

import (
	"fmt"
	"math"
	"sort"

	"github.com/kilianp07/powerplan/core/model"
)

// MeritOrder returns a copy of plants ranked by descending Pmax. Plants with
// the same Pmax keep their input order. The input slice is not modified.
func MeritOrder(plants []model.PowerPlant) []model.PowerPlant {
	sorted := make([]model.PowerPlant, len(plants))
	copy(sorted, plants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Pmax > sorted[j].Pmax
	})
	return sorted
}

// Calculate computes the production of every plant of the payload.
//
// The fleet is walked once in MeritOrder. Each plant gets a candidate computed
// against the running remaining load, rounded to 0.1, and the remaining load
// is then decremented by that value without any floor. The result has one
// entry per plant in merit order. An empty fleet yields an empty plan.
func Calculate(p model.Payload) ([]model.Production, error) {
	return guard(func() ([]model.Production, error) {
		plan := make([]model.Production, 0, len(p.PowerPlants))
		if len(p.PowerPlants) == 0 {
			return plan, nil
		}
		if p.Fuels == nil {
			return nil, &Fault{Err: ErrMissingFuels}
		}
		remaining := p.Load
		for _, plant := range MeritOrder(p.PowerPlants) {
			out := roundTenth(candidate(plant, remaining, *p.Fuels))
			if math.IsNaN(out) || math.IsInf(out, 0) {
				return nil, &Fault{Err: ErrNonFinite, Plant: plant.Name, Detail: fmt.Sprintf("value %v", out)}
			}
			plan = append(plan, model.Production{Name: plant.Name, P: out})
			remaining -= out
		}
		return plan, nil
	})
}

func candidate(plant model.PowerPlant, remaining float64, fuels model.Fuels) float64 {
	switch plant.Type {
	case model.PlantGasFired:
		return math.Min(remaining, capacityAtMin(plant)) * fuels.GasEuroMWh
	case model.PlantTurboJet:
		return math.Min(remaining, capacityAtMin(plant)) * fuels.KerosineEuroMWh
	case model.PlantWindTurbine:
		return math.Min(remaining, plant.Pmax*fuels.WindPercent) / 100
	default:
		return 0
	}
}

// capacityAtMin is Pmin scaled by the fuel units needed per MWh.
func capacityAtMin(plant model.PowerPlant) float64 {
	unitsPerMW := 1 / plant.Efficiency
	return plant.Pmin * unitsPerMW
}

// roundTenth rounds v to a multiple of 0.1, halves going to the even tenth.
func roundTenth(v float64) float64 {
	return math.RoundToEven(v/0.1) * 0.1
}
