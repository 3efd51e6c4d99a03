// Package events defines the production plan events emitted on the event bus.
//
// Available event types:
//   - PlanEvent: a plan was computed
//   - FaultEvent: a planner returned a fault
//   - SetpointEvent: a plant setpoint was published or failed to publish
package events
