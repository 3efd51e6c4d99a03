// Package monitoring is the error reporting hook used by the planning service
// and the setpoint publisher.
package monitoring

import (
	"sync"
	"time"
)

// Monitor defines methods used for error reporting.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	Flush(timeout time.Duration)
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) Flush(time.Duration)                       {}

var (
	mu      sync.RWMutex
	current Monitor = NopMonitor{}
)

// Init sets the global monitor implementation. A nil monitor is ignored.
func Init(m Monitor) {
	if m == nil {
		return
	}
	mu.Lock()
	current = m
	mu.Unlock()
}

// Current returns the global monitor.
func Current() Monitor {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// CaptureException records the error with optional tags. Nil errors are ignored.
func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	Current().CaptureException(err, tags)
}

// Flush flushes buffered events.
func Flush(d time.Duration) {
	Current().Flush(d)
}
