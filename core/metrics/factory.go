package metrics

import (
	"fmt"

	"github.com/kilianp07/powerplan/core/factory"
)

var sinkRegistry = factory.NewRegistry[MetricsSink]()

// RegisterMetricsSink adds a metrics sink factory identified by name.
func RegisterMetricsSink(name string, f factory.Factory[MetricsSink]) error {
	return sinkRegistry.Register(name, f)
}

// SinkTypes lists the registered sink types.
func SinkTypes() []string { return sinkRegistry.Names() }

// NewMetricsSink builds the sinks listed in cfgs. No sink yields a NopSink,
// several are wrapped in a MultiSink. Each type may appear once; when one
// sink fails the ones already built are closed.
func NewMetricsSink(cfgs []factory.ModuleConfig) (MetricsSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	seen := make(map[string]int, len(cfgs))
	for i, c := range cfgs {
		if j, dup := seen[c.Type]; dup {
			return nil, fmt.Errorf("sink %d: type %q already configured as sink %d", i, c.Type, j)
		}
		seen[c.Type] = i
	}

	sinks := make([]MetricsSink, 0, len(cfgs))
	for i, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			NewMultiSink(sinks...).Close()
			return nil, fmt.Errorf("sink %d (%s): %w", i, c.Type, err)
		}
		sinks = append(sinks, s)
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return NewMultiSink(sinks...), nil
}
