package metrics

import "github.com/kilianp07/powerplan/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
}

// Has reports whether a sink of the given type is configured.
func (c Config) Has(sinkType string) bool {
	for _, s := range c.Sinks {
		if s.Type == sinkType {
			return true
		}
	}
	return false
}
