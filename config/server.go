package config

import (
	"fmt"
	"time"
)

// ServerConfig defines the HTTP API listener.
type ServerConfig struct {
	Address string `json:"address"`
	// RequestTimeoutMS bounds the handling of a single request.
	RequestTimeoutMS int `json:"request_timeout_ms"`
	// ShutdownTimeoutMS bounds the graceful shutdown of the listener.
	ShutdownTimeoutMS int `json:"shutdown_timeout_ms"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8888"
	}
	if c.RequestTimeoutMS == 0 {
		c.RequestTimeoutMS = 5000
	}
	if c.ShutdownTimeoutMS == 0 {
		c.ShutdownTimeoutMS = 5000
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.RequestTimeoutMS < 0 || c.ShutdownTimeoutMS < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

func (c ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}
