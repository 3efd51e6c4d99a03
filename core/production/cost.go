package production

import (
	"math"

	"github.com/kilianp07/powerplan/core/model"
)

// ProductionCost returns the fuel cost of one MWh produced by plant, in
// EUR/MWh. Wind turbines and unknown types cost nothing.
func ProductionCost(plant model.PowerPlant, fuels model.Fuels) float64 {
	switch plant.Type {
	case model.PlantGasFired:
		return fuels.GasEuroMWh * (1 / plant.Efficiency)
	case model.PlantTurboJet:
		return fuels.KerosineEuroMWh * (1 / plant.Efficiency)
	default:
		return 0
	}
}

// Costs evaluates ProductionCost for every plant, in payload order. A zero
// efficiency on a priced plant is reported as an ErrNonFinite fault.
func Costs(p model.Payload) ([]model.PlantCost, error) {
	return guard(func() ([]model.PlantCost, error) {
		out := make([]model.PlantCost, 0, len(p.PowerPlants))
		if len(p.PowerPlants) == 0 {
			return out, nil
		}
		if p.Fuels == nil {
			return nil, &Fault{Err: ErrMissingFuels}
		}
		for _, plant := range p.PowerPlants {
			c := ProductionCost(plant, *p.Fuels)
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, &Fault{Err: ErrNonFinite, Plant: plant.Name, Detail: "cost"}
			}
			out = append(out, model.PlantCost{Name: plant.Name, Cost: c})
		}
		return out, nil
	})
}
