package mqtt

import "context"

// SetpointPublisher sends production setpoints to individual plants.
type SetpointPublisher interface {
	// PublishSetpoint sends the power the plant should deliver for the given
	// plan and returns the command identifier carried by the message.
	PublishSetpoint(ctx context.Context, planID, plant string, powerMW float64) (commandID string, err error)

	// Close releases the broker connection.
	Close()
}
