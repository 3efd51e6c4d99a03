package production

import (
	"fmt"
	"math"
	"sort"

	"github.com/kilianp07/powerplan/core/model"
)

// CalculateUnitConsistent is the corrected variant of Calculate: every entry
// is a power in MW.
//
// Plants are ranked by MarginalCost, ties broken by descending Pmax. Wind
// turbines produce their wind-limited output, thermal plants are skipped when
// the remaining load is below their Pmin and otherwise run up to Pmax. The
// remaining load never goes below zero. Like Calculate it is a single pass.
func CalculateUnitConsistent(p model.Payload, co2TonPerMWh float64) ([]model.Production, error) {
	return guard(func() ([]model.Production, error) {
		plan := make([]model.Production, 0, len(p.PowerPlants))
		if len(p.PowerPlants) == 0 {
			return plan, nil
		}
		if p.Fuels == nil {
			return nil, &Fault{Err: ErrMissingFuels}
		}
		fuels := *p.Fuels
		ranked := MeritOrder(p.PowerPlants)
		sort.SliceStable(ranked, func(i, j int) bool {
			return MarginalCost(ranked[i], fuels, co2TonPerMWh) < MarginalCost(ranked[j], fuels, co2TonPerMWh)
		})

		remaining := p.Load
		for _, plant := range ranked {
			out := roundTenth(powerFor(plant, remaining, fuels))
			if math.IsNaN(out) || math.IsInf(out, 0) {
				return nil, &Fault{Err: ErrNonFinite, Plant: plant.Name, Detail: fmt.Sprintf("value %v", out)}
			}
			plan = append(plan, model.Production{Name: plant.Name, P: out})
			remaining = math.Max(remaining-out, 0)
		}
		return plan, nil
	})
}

// MarginalCost is ProductionCost plus, for gas-fired plants, the price of the
// co2TonPerMWh tons of CO2 emitted per MWh generated.
func MarginalCost(plant model.PowerPlant, fuels model.Fuels, co2TonPerMWh float64) float64 {
	cost := ProductionCost(plant, fuels)
	if plant.Type == model.PlantGasFired {
		cost += co2TonPerMWh * fuels.CO2EuroTon
	}
	return cost
}

func powerFor(plant model.PowerPlant, remaining float64, fuels model.Fuels) float64 {
	if remaining <= 0 {
		return 0
	}
	switch plant.Type {
	case model.PlantWindTurbine:
		return math.Min(remaining, plant.Pmax*fuels.WindPercent/100)
	case model.PlantGasFired, model.PlantTurboJet:
		if remaining < plant.Pmin {
			return 0
		}
		return math.Min(remaining, plant.Pmax)
	default:
		return 0
	}
}
