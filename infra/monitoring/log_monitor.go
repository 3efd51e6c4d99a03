// Package monitoring reports captured errors through the application logger.
package monitoring

import (
	"sort"
	"strings"
	"sync/atomic"
	"time"

	coremon "github.com/kilianp07/powerplan/core/monitoring"
	"github.com/kilianp07/powerplan/infra/logger"
)

// LogMonitor writes every captured error at error level with its tags.
type LogMonitor struct {
	log      logger.Logger
	captured atomic.Uint64
}

var _ coremon.Monitor = (*LogMonitor)(nil)

// NewLogMonitor returns a LogMonitor writing to log. A nil logger uses the
// "monitoring" component logger.
func NewLogMonitor(log logger.Logger) *LogMonitor {
	if log == nil {
		log = logger.New("monitoring")
	}
	return &LogMonitor{log: log}
}

func (m *LogMonitor) CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	m.captured.Add(1)
	if len(tags) == 0 {
		m.log.Errorf("captured error: %v", err)
		return
	}
	m.log.Errorf("captured error: %v [%s]", err, formatTags(tags))
}

// Flush is a no-op, every error is written synchronously.
func (m *LogMonitor) Flush(time.Duration) {}

// Captured returns the number of errors reported so far.
func (m *LogMonitor) Captured() uint64 { return m.captured.Load() }

func formatTags(tags map[string]string) string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + tags[k]
	}
	return strings.Join(parts, " ")
}
