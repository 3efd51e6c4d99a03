package config

import "github.com/kilianp07/powerplan/infra/mqtt"

// PublisherConfig enables sending plant setpoints over MQTT after each plan.
type PublisherConfig struct {
	Enabled bool        `json:"enabled"`
	MQTT    mqtt.Config `json:"mqtt"`
}

// SetDefaults applies sane defaults.
func (c *PublisherConfig) SetDefaults() {
	if c.MQTT.TopicPrefix == "" {
		c.MQTT.TopicPrefix = mqtt.DefaultTopicPrefix
	}
}

// Validate checks the broker settings when publishing is enabled.
func (c PublisherConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	return c.MQTT.Validate()
}
