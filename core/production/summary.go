package production

import (
	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/powerplan/core/model"
)

// Summarize aggregates plan against the load requested in p. Plants are
// matched by name; entries whose plant is not thermal or wind only count in
// the total.
func Summarize(p model.Payload, plan []model.Production) model.PlanSummary {
	types := make(map[string]model.PlantType, len(p.PowerPlants))
	for _, pp := range p.PowerPlants {
		types[pp.Name] = pp.Type
	}
	all := make([]float64, 0, len(plan))
	var thermal, wind []float64
	for _, e := range plan {
		all = append(all, e.P)
		switch t := types[e.Name]; {
		case t.Thermal():
			thermal = append(thermal, e.P)
		case t == model.PlantWindTurbine:
			wind = append(wind, e.P)
		}
	}
	total := floats.Sum(all)
	return model.PlanSummary{
		Requested: p.Load,
		Total:     total,
		Thermal:   floats.Sum(thermal),
		Wind:      floats.Sum(wind),
		Residual:  p.Load - total,
	}
}
