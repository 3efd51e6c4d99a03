package production

import (
	"github.com/kilianp07/powerplan/core/factory"
	"github.com/kilianp07/powerplan/core/model"
)

// Planner names registered by this package.
const (
	StrategyMeritOrder     = "merit-order"
	StrategyUnitConsistent = "unit-consistent"
)

// Planner turns a payload into a production plan.
type Planner interface {
	Name() string
	Plan(p model.Payload) ([]model.Production, error)
}

// MeritOrderPlanner runs Calculate.
type MeritOrderPlanner struct{}

func (MeritOrderPlanner) Name() string { return StrategyMeritOrder }

func (MeritOrderPlanner) Plan(p model.Payload) ([]model.Production, error) { return Calculate(p) }

// UnitConsistentPlanner runs CalculateUnitConsistent.
type UnitConsistentPlanner struct {
	// CO2TonPerMWh is the emission factor of gas-fired plants used when
	// ranking them. Zero ranks on fuel cost only.
	CO2TonPerMWh float64 `json:"co2_ton_per_mwh"`
}

func (UnitConsistentPlanner) Name() string { return StrategyUnitConsistent }

func (u UnitConsistentPlanner) Plan(p model.Payload) ([]model.Production, error) {
	return CalculateUnitConsistent(p, u.CO2TonPerMWh)
}

var plannerRegistry = factory.NewRegistry[Planner]()

func init() {
	_ = RegisterPlanner(StrategyMeritOrder, func(map[string]any) (Planner, error) {
		return MeritOrderPlanner{}, nil
	})
	_ = RegisterPlanner(StrategyUnitConsistent, func(conf map[string]any) (Planner, error) {
		var u UnitConsistentPlanner
		if err := factory.Decode(conf, &u); err != nil {
			return nil, err
		}
		return u, nil
	})
}

// RegisterPlanner adds a planner factory identified by name.
func RegisterPlanner(name string, f factory.Factory[Planner]) error {
	return plannerRegistry.Register(name, f)
}

// Planners lists the registered planner names.
func Planners() []string { return plannerRegistry.Names() }

// NewPlanner builds the planner described by cfg. An empty type selects the
// merit-order planner.
func NewPlanner(cfg factory.ModuleConfig) (Planner, error) {
	if cfg.Type == "" {
		cfg.Type = StrategyMeritOrder
	}
	return plannerRegistry.Create(cfg)
}
