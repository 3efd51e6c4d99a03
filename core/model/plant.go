package model

// PlantType identifies the generation technology of a power plant.
type PlantType string

const (
	PlantGasFired    PlantType = "gasfired"
	PlantTurboJet    PlantType = "turbojet"
	PlantWindTurbine PlantType = "windturbine"
)

// Known reports whether t is one of the supported plant types.
func (t PlantType) Known() bool {
	switch t {
	case PlantGasFired, PlantTurboJet, PlantWindTurbine:
		return true
	default:
		return false
	}
}

// Thermal reports whether the plant burns fuel.
func (t PlantType) Thermal() bool {
	return t == PlantGasFired || t == PlantTurboJet
}

func (t PlantType) String() string { return string(t) }

// PowerPlant describes one generation asset of the fleet. Efficiency and Pmin
// are ignored for wind turbines.
type PowerPlant struct {
	Name       string    `json:"name"`
	Type       PlantType `json:"type"`
	Efficiency float64   `json:"efficiency"`
	Pmin       float64   `json:"pmin"`
	Pmax       float64   `json:"pmax"`
}
