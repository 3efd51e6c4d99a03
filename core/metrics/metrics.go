package metrics

import (
	"time"

	"github.com/kilianp07/powerplan/core/model"
)

// PlanRecord is a computed production plan as seen by metrics sinks.
type PlanRecord struct {
	PlanID   string
	Strategy string
	Plan     []model.Production
	Summary  model.PlanSummary
	Duration time.Duration
	Time     time.Time
}

// MetricsSink records production plans for observability purposes.
type MetricsSink interface {
	RecordPlan(rec PlanRecord) error
}

// FaultRecord describes a planner failure.
type FaultRecord struct {
	Strategy string
	Reason   string
	Duration time.Duration
	Time     time.Time
}

// FaultRecorder records planner failures.
type FaultRecorder interface {
	RecordFault(rec FaultRecord) error
}

// SetpointRecord describes one setpoint sent to a plant.
type SetpointRecord struct {
	PlanID    string
	Plant     string
	CommandID string
	PowerMW   float64
	Published bool
	Error     string
	Latency   time.Duration
	Time      time.Time
}

// SetpointRecorder records setpoint publications.
type SetpointRecorder interface {
	RecordSetpoint(rec SetpointRecord) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlan(PlanRecord) error         { return nil }
func (NopSink) RecordFault(FaultRecord) error       { return nil }
func (NopSink) RecordSetpoint(SetpointRecord) error { return nil }

// MultiSink fans records out to several sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlan forwards the record to all sinks and returns the first error.
// Every sink is called even when an earlier one fails.
func (m *MultiSink) RecordPlan(rec PlanRecord) error {
	var first error
	for _, s := range m.Sinks {
		if err := s.RecordPlan(rec); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// RecordFault forwards fault records to the sinks supporting them.
func (m *MultiSink) RecordFault(rec FaultRecord) error {
	var first error
	for _, s := range m.Sinks {
		if r, ok := s.(FaultRecorder); ok {
			if err := r.RecordFault(rec); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

// RecordSetpoint forwards setpoint records to the sinks supporting them.
func (m *MultiSink) RecordSetpoint(rec SetpointRecord) error {
	var first error
	for _, s := range m.Sinks {
		if r, ok := s.(SetpointRecorder); ok {
			if err := r.RecordSetpoint(rec); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

// Close closes the sinks holding resources.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
