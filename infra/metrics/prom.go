package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/powerplan/core/metrics"
)

// PromSink records production plans in Prometheus metrics.
type PromSink struct {
	plans     *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	residual  *prometheus.GaugeVec
	setpoints *prometheus.CounterVec
}

// NewPromSink registers the plan metrics on the default Prometheus registerer.
// The /metrics endpoint is served by the HTTP API.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer. A nil
// registerer defaults to the global one. Collectors already registered under
// the same name are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	var err error
	s := &PromSink{}
	if s.plans, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_requests_total",
		Help: "Production plan requests by strategy and outcome",
	}, []string{"strategy", "outcome"})); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "plan_calculation_seconds",
		Help:    "Time spent computing a production plan",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"strategy"})); err != nil {
		return nil, err
	}
	if s.residual, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "plan_residual_mw",
		Help: "Requested load minus planned production of the last plan",
	}, []string{"strategy"})); err != nil {
		return nil, err
	}
	if s.setpoints, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "setpoint_publish_total",
		Help: "Setpoints sent to plants by outcome",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPlan counts the plan and updates the residual gauge. Plant names come
// from requests, so per plant values are left to the Influx sink.
func (s *PromSink) RecordPlan(rec coremetrics.PlanRecord) error {
	s.plans.WithLabelValues(rec.Strategy, "ok").Inc()
	s.duration.WithLabelValues(rec.Strategy).Observe(rec.Duration.Seconds())
	s.residual.WithLabelValues(rec.Strategy).Set(rec.Summary.Residual)
	return nil
}

// RecordFault counts a failed plan.
func (s *PromSink) RecordFault(rec coremetrics.FaultRecord) error {
	s.plans.WithLabelValues(rec.Strategy, "fault").Inc()
	s.duration.WithLabelValues(rec.Strategy).Observe(rec.Duration.Seconds())
	return nil
}

// RecordSetpoint counts a setpoint publication.
func (s *PromSink) RecordSetpoint(rec coremetrics.SetpointRecord) error {
	outcome := "published"
	if !rec.Published {
		outcome = "failed"
	}
	s.setpoints.WithLabelValues(outcome).Inc()
	return nil
}
