package events

import (
	"time"

	"github.com/kilianp07/powerplan/core/model"
)

// PlanEvent is published for every successfully computed plan.
type PlanEvent struct {
	PlanID   string
	Strategy string
	Plan     []model.Production
	Summary  model.PlanSummary
	Duration time.Duration
	Time     time.Time
}

// FaultEvent is published when a planner fails.
type FaultEvent struct {
	Strategy string
	Err      error
	Duration time.Duration
	Time     time.Time
}

// SetpointEvent is published for each plant setpoint sent after a plan.
type SetpointEvent struct {
	PlanID    string
	Plant     string
	CommandID string
	PowerMW   float64
	Err       error
	Latency   time.Duration
	Time      time.Time
}
