// Package factory provides a small generic registry used to instantiate modules
// from configuration. Modules are defined by a type string and a map of raw
// settings. Factories decode the settings into typed structs and return the
// concrete implementation. Planners and metrics sinks are both built this way.
//
// Example usage:
//
//	reg := factory.NewRegistry[production.Planner]()
//	reg.Register("merit-order", func(conf map[string]any) (production.Planner, error) {
//	    return production.MeritOrderPlanner{}, nil
//	})
//	p, err := reg.Create(factory.ModuleConfig{Type: "merit-order"})
package factory
