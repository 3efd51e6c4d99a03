package config

import "fmt"

// SentryConfig enables Sentry error monitoring when DSN is set. Without a DSN
// captured errors are written to the log.
type SentryConfig struct {
	DSN              string  `json:"dsn"`
	Environment      string  `json:"environment"`
	Release          string  `json:"release"`
	TracesSampleRate float64 `json:"traces_sample_rate"`
}

// Enabled reports whether errors are sent to Sentry.
func (c SentryConfig) Enabled() bool { return c.DSN != "" }

// Validate checks the sample rate is a ratio.
func (c SentryConfig) Validate() error {
	if c.TracesSampleRate < 0 || c.TracesSampleRate > 1 {
		return fmt.Errorf("traces_sample_rate must be within 0-1, got %v", c.TracesSampleRate)
	}
	return nil
}
