package metrics

import (
	"context"

	"github.com/kilianp07/powerplan/core/events"
	coremetrics "github.com/kilianp07/powerplan/core/metrics"
	"github.com/kilianp07/powerplan/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for events.
// It stops when the context is canceled or the bus is closed.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				record(sink, ev)
			}
		}
	}()
}

func record(sink coremetrics.MetricsSink, ev eventbus.Event) {
	switch e := ev.(type) {
	case events.PlanEvent:
		_ = sink.RecordPlan(coremetrics.PlanRecord{
			PlanID:   e.PlanID,
			Strategy: e.Strategy,
			Plan:     e.Plan,
			Summary:  e.Summary,
			Duration: e.Duration,
			Time:     e.Time,
		})
	case events.FaultEvent:
		if r, ok := sink.(coremetrics.FaultRecorder); ok {
			reason := ""
			if e.Err != nil {
				reason = e.Err.Error()
			}
			_ = r.RecordFault(coremetrics.FaultRecord{
				Strategy: e.Strategy,
				Reason:   reason,
				Duration: e.Duration,
				Time:     e.Time,
			})
		}
	case events.SetpointEvent:
		if r, ok := sink.(coremetrics.SetpointRecorder); ok {
			errStr := ""
			if e.Err != nil {
				errStr = e.Err.Error()
			}
			_ = r.RecordSetpoint(coremetrics.SetpointRecord{
				PlanID:    e.PlanID,
				Plant:     e.Plant,
				CommandID: e.CommandID,
				PowerMW:   e.PowerMW,
				Published: e.Err == nil,
				Error:     errStr,
				Latency:   e.Latency,
				Time:      e.Time,
			})
		}
	}
}
