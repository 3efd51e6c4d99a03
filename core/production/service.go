package production

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/powerplan/core/events"
	"github.com/kilianp07/powerplan/core/logger"
	"github.com/kilianp07/powerplan/core/model"
	"github.com/kilianp07/powerplan/core/monitoring"
	"github.com/kilianp07/powerplan/core/mqtt"
	"github.com/kilianp07/powerplan/internal/eventbus"
)

// Result is a computed plan together with its identifier and aggregates.
type Result struct {
	ID       string
	Strategy string
	Plan     []model.Production
	Summary  model.PlanSummary
}

// Service runs a Planner for incoming payloads. Faults are logged and
// published on the bus before being returned, successful plans are published
// and, when a SetpointPublisher is configured, sent to the plants.
type Service struct {
	planner   Planner
	log       logger.Logger
	bus       eventbus.EventBus
	publisher mqtt.SetpointPublisher
}

// NewService creates a Service. bus and publisher are optional.
func NewService(planner Planner, log logger.Logger, bus eventbus.EventBus, publisher mqtt.SetpointPublisher) (*Service, error) {
	if planner == nil || log == nil {
		return nil, fmt.Errorf("production: nil parameter provided to NewService")
	}
	return &Service{planner: planner, log: log, bus: bus, publisher: publisher}, nil
}

// Strategy returns the name of the planner in use.
func (s *Service) Strategy() string { return s.planner.Name() }

// Plan computes the production plan for p.
func (s *Service) Plan(ctx context.Context, p model.Payload) (Result, error) {
	start := time.Now()
	plan, err := guard(func() ([]model.Production, error) { return s.planner.Plan(p) })
	dur := time.Since(start)
	if err != nil {
		s.log.Errorf("%s planner failed: %v", s.planner.Name(), err)
		monitoring.CaptureException(err, map[string]string{"module": "production", "strategy": s.planner.Name()})
		s.emit(events.FaultEvent{Strategy: s.planner.Name(), Err: err, Duration: dur, Time: time.Now()})
		return Result{}, err
	}

	res := Result{
		ID:       uuid.NewString(),
		Strategy: s.planner.Name(),
		Plan:     plan,
		Summary:  Summarize(p, plan),
	}
	s.log.Infow("production plan computed", map[string]any{
		"plan_id":  res.ID,
		"strategy": res.Strategy,
		"plants":   len(plan),
		"load":     p.Load,
		"total":    res.Summary.Total,
		"residual": res.Summary.Residual,
	})
	s.emit(events.PlanEvent{
		PlanID:   res.ID,
		Strategy: res.Strategy,
		Plan:     plan,
		Summary:  res.Summary,
		Duration: dur,
		Time:     time.Now(),
	})
	if s.publisher != nil {
		s.sendSetpoints(ctx, res.ID, plan)
	}
	return res, nil
}

// Costs returns the EUR/MWh cost of every plant of p.
func (s *Service) Costs(p model.Payload) ([]model.PlantCost, error) {
	costs, err := Costs(p)
	if err != nil {
		s.log.Errorf("cost evaluation failed: %v", err)
		return nil, err
	}
	return costs, nil
}

// sendSetpoints publishes every plant output concurrently. Failures are
// logged and reported as events; they never fail the plan.
func (s *Service) sendSetpoints(ctx context.Context, planID string, plan []model.Production) {
	var wg sync.WaitGroup
	for _, e := range plan {
		wg.Add(1)
		go func(e model.Production) {
			defer wg.Done()
			start := time.Now()
			cmdID, err := s.publisher.PublishSetpoint(ctx, planID, e.Name, e.P)
			if err != nil {
				s.log.Warnf("setpoint for %s not published: %v", e.Name, err)
				monitoring.CaptureException(err, map[string]string{"module": "mqtt", "plant": e.Name, "plan_id": planID})
			}
			s.emit(events.SetpointEvent{
				PlanID:    planID,
				Plant:     e.Name,
				CommandID: cmdID,
				PowerMW:   e.P,
				Err:       err,
				Latency:   time.Since(start),
				Time:      time.Now(),
			})
		}(e)
	}
	wg.Wait()
}

func (s *Service) emit(ev eventbus.Event) {
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}
