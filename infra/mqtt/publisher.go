package mqtt

import (
	"context"
	"fmt"
	"sync"

	coremqtt "github.com/kilianp07/powerplan/core/mqtt"
)

// MockPublisher records setpoints in memory and is used in tests.
type MockPublisher struct {
	Setpoints map[string]float64
	FailPlant map[string]bool
	mu        sync.Mutex
	seq       int
}

var _ coremqtt.SetpointPublisher = (*MockPublisher)(nil)

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		Setpoints: make(map[string]float64),
		FailPlant: make(map[string]bool),
	}
}

// PublishSetpoint records the setpoint or returns an error if configured to fail.
func (m *MockPublisher) PublishSetpoint(_ context.Context, _ string, plant string, powerMW float64) (string, error) {
	if plant == "" {
		return "", coremqtt.ErrEmptyPlant
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPlant[plant] {
		return "", fmt.Errorf("publish failed")
	}
	m.seq++
	m.Setpoints[plant] = powerMW
	return fmt.Sprintf("cmd-%d", m.seq), nil
}

// Get returns the last setpoint recorded for plant.
func (m *MockPublisher) Get(plant string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Setpoints[plant]
	return v, ok
}

// Close is a no-op.
func (m *MockPublisher) Close() {}
