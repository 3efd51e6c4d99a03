package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidPayload is returned by Payload.Validate.
var ErrInvalidPayload = errors.New("invalid payload")

// Fuels carries the market prices and the wind availability for one request.
// CO2EuroTon is accepted but not used by the allocation.
type Fuels struct {
	GasEuroMWh      float64 `json:"gas(euro/MWh)"`
	KerosineEuroMWh float64 `json:"kerosine(euro/MWh)"`
	CO2EuroTon      float64 `json:"co2(euro/ton)"`
	WindPercent     float64 `json:"wind(%)"`
}

// Payload is a production plan request. A nil Fuels means the field was
// missing from the request.
type Payload struct {
	Load        float64      `json:"load"`
	Fuels       *Fuels       `json:"fuels"`
	PowerPlants []PowerPlant `json:"powerplants"`
}

// Production is the output of one plant in a plan.
type Production struct {
	Name string  `json:"name"`
	P    float64 `json:"p"`
}

// PlantCost is the marginal cost of one plant in EUR/MWh.
type PlantCost struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// PlanSummary aggregates a plan against the requested load.
type PlanSummary struct {
	Requested float64 `json:"requested"`
	Total     float64 `json:"total"`
	Thermal   float64 `json:"thermal"`
	Wind      float64 `json:"wind"`
	// Residual is Requested minus Total.
	Residual float64 `json:"residual"`
}

// reservedNameChars cannot appear in a plant name: the name is a level of
// the setpoint topic and these are MQTT separators and wildcards.
const reservedNameChars = "/+#\x00"

// Validate rejects payloads the HTTP layer should answer with a client error.
// Unknown plant types are accepted. Fuels may be missing when the fleet is
// empty, the plan is then empty too.
func (p Payload) Validate() error {
	if p.Load < 0 || math.IsNaN(p.Load) || math.IsInf(p.Load, 0) {
		return fmt.Errorf("%w: load must be a non-negative number", ErrInvalidPayload)
	}
	if p.Fuels == nil {
		if len(p.PowerPlants) == 0 {
			return nil
		}
		return fmt.Errorf("%w: fuels missing", ErrInvalidPayload)
	}
	if w := p.Fuels.WindPercent; w < 0 || w > 100 {
		return fmt.Errorf("%w: wind(%%) must be within 0-100, got %v", ErrInvalidPayload, w)
	}
	seen := make(map[string]struct{}, len(p.PowerPlants))
	for i, pp := range p.PowerPlants {
		if pp.Name == "" {
			return fmt.Errorf("%w: powerplant %d has no name", ErrInvalidPayload, i)
		}
		if !ValidPlantName(pp.Name) {
			return fmt.Errorf("%w: powerplant name %q contains one of / + # or NUL", ErrInvalidPayload, pp.Name)
		}
		if _, dup := seen[pp.Name]; dup {
			return fmt.Errorf("%w: duplicate powerplant %s", ErrInvalidPayload, pp.Name)
		}
		seen[pp.Name] = struct{}{}
		if pp.Pmax < 0 || pp.Pmin < 0 {
			return fmt.Errorf("%w: powerplant %s has negative capacity", ErrInvalidPayload, pp.Name)
		}
	}
	return nil
}

// ValidPlantName reports whether name can address a plant: it is not empty
// and holds no MQTT topic separator, wildcard or NUL.
func ValidPlantName(name string) bool {
	return name != "" && !strings.ContainsAny(name, reservedNameChars)
}
