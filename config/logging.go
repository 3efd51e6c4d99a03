package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// LoggingConfig defines the minimum log level. APP_ENV=dev still switches the
// output to the console writer.
type LoggingConfig struct {
	Level string `json:"level"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks the level is known to zerolog.
func (c LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("unknown level %s", c.Level)
	}
	return nil
}
