package monitoring

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/kilianp07/powerplan/config"
	coremon "github.com/kilianp07/powerplan/core/monitoring"
)

// NewMonitor returns the monitor selected by cfg: Sentry when a DSN is set,
// the log monitor otherwise.
func NewMonitor(cfg config.SentryConfig) (coremon.Monitor, error) {
	if !cfg.Enabled() {
		return NewLogMonitor(nil), nil
	}
	m, err := NewSentryMonitor(cfg)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// SentryMonitor sends captured errors to Sentry through its own hub.
type SentryMonitor struct {
	hub *sentry.Hub
}

var _ coremon.Monitor = (*SentryMonitor)(nil)

// NewSentryMonitor creates a Sentry client from cfg.
func NewSentryMonitor(cfg config.SentryConfig) (*SentryMonitor, error) {
	return newSentryMonitor(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		SampleRate:       1,
		TracesSampleRate: cfg.TracesSampleRate,
	})
}

func newSentryMonitor(opts sentry.ClientOptions) (*SentryMonitor, error) {
	if opts.Dsn == "" {
		return nil, fmt.Errorf("sentry: dsn is required")
	}
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	return &SentryMonitor{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

func (m *SentryMonitor) CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	m.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		m.hub.CaptureException(err)
	})
}

func (m *SentryMonitor) Flush(timeout time.Duration) { m.hub.Flush(timeout) }
