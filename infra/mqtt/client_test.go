package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremqtt "github.com/kilianp07/powerplan/core/mqtt"
)

type publishedMsg struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// mockClient implements pahoClient for tests
type mockClient struct {
	mu          sync.Mutex
	opts        *paho.ClientOptions
	connectErr  error
	published   []publishedMsg
	publishErrs []error
	disconnects int
}

func (m *mockClient) IsConnected() bool { return true }
func (m *mockClient) Connect() paho.Token {
	if m.connectErr != nil {
		return &dummyToken{err: m.connectErr}
	}
	if m.opts != nil && m.opts.OnConnect != nil {
		m.opts.OnConnect(nil)
	}
	return &dummyToken{}
}
func (m *mockClient) Disconnect(uint) {
	m.mu.Lock()
	m.disconnects++
	m.mu.Unlock()
}
func (m *mockClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, _ := payload.([]byte)
	m.published = append(m.published, publishedMsg{topic, qos, retained, b})
	if len(m.publishErrs) > 0 {
		err := m.publishErrs[0]
		m.publishErrs = m.publishErrs[1:]
		return &dummyToken{err: err}
	}
	return &dummyToken{}
}

type dummyToken struct{ err error }

func (d dummyToken) Wait() bool                     { return true }
func (d dummyToken) WaitTimeout(time.Duration) bool { return true }
func (d dummyToken) Done() <-chan struct{}          { ch := make(chan struct{}); close(ch); return ch }
func (d dummyToken) Error() error                   { return d.err }

func useMock(t *testing.T, mc *mockClient) {
	t.Helper()
	newMQTTClient = func(o *paho.ClientOptions) pahoClient { mc.opts = o; return mc }
	t.Cleanup(func() { newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return paho.NewClient(opts) } })
}

func TestPublishSetpoint(t *testing.T) {
	mc := &mockClient{}
	useMock(t, mc)
	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883", ClientID: "id", QoS: 1, Retain: true})
	require.NoError(t, err)

	cmdID, err := pub.PublishSetpoint(context.Background(), "plan-1", "gasfiredbig1", 368.4)
	require.NoError(t, err)
	require.NotEmpty(t, cmdID)
	require.Len(t, mc.published, 1)

	msg := mc.published[0]
	assert.Equal(t, "powerplant/gasfiredbig1/setpoint", msg.topic)
	assert.Equal(t, byte(1), msg.qos)
	assert.True(t, msg.retained)

	var sp Setpoint
	require.NoError(t, json.Unmarshal(msg.payload, &sp))
	assert.Equal(t, cmdID, sp.CommandID)
	assert.Equal(t, "plan-1", sp.PlanID)
	assert.Equal(t, "gasfiredbig1", sp.Plant)
	assert.Equal(t, 368.4, sp.PowerMW)
	assert.NotZero(t, sp.Timestamp)
}

func TestPublishSetpointTopicPrefix(t *testing.T) {
	mc := &mockClient{}
	useMock(t, mc)
	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883", TopicPrefix: "site/a/"})
	require.NoError(t, err)
	assert.Equal(t, "site/a/wind1/setpoint", pub.Topic("wind1"))
}

func TestPublishSetpointEmptyPlant(t *testing.T) {
	mc := &mockClient{}
	useMock(t, mc)
	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883"})
	require.NoError(t, err)
	_, err = pub.PublishSetpoint(context.Background(), "p", "", 1)
	assert.ErrorIs(t, err, coremqtt.ErrEmptyPlant)
	assert.Empty(t, mc.published)
}

func TestPublishSetpointRejectsTopicCharacters(t *testing.T) {
	mc := &mockClient{}
	useMock(t, mc)
	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 3, BackoffMS: 1000})
	require.NoError(t, err)

	cases := []struct {
		name  string
		plant string
	}{
		{"topic level", "a/b"},
		{"multi level wildcard", "#"},
		{"single level wildcard", "wind+1"},
		{"nul", "gas\x00"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			start := time.Now()
			cmdID, err := pub.PublishSetpoint(context.Background(), "plan-1", c.plant, 10)
			assert.ErrorIs(t, err, coremqtt.ErrInvalidPlant)
			assert.Empty(t, cmdID)
			assert.Less(t, time.Since(start), 500*time.Millisecond)
		})
	}
	assert.Empty(t, mc.published)
}

func TestRetryLogic(t *testing.T) {
	mc := &mockClient{publishErrs: []error{fmt.Errorf("net fail"), nil}}
	useMock(t, mc)
	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 1, BackoffMS: 1})
	require.NoError(t, err)
	_, err = pub.PublishSetpoint(context.Background(), "p", "g", 1)
	require.NoError(t, err)
	assert.Len(t, mc.published, 2)
}

func TestRetryExhausted(t *testing.T) {
	fail := errors.New("net fail")
	mc := &mockClient{publishErrs: []error{fail, fail, fail}}
	useMock(t, mc)
	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 2, BackoffMS: 1})
	require.NoError(t, err)
	cmdID, err := pub.PublishSetpoint(context.Background(), "p", "g", 1)
	assert.Empty(t, cmdID)
	assert.ErrorIs(t, err, fail)
	assert.Len(t, mc.published, 3)
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	fail := errors.New("net fail")
	mc := &mockClient{publishErrs: []error{fail, fail, fail, fail}}
	useMock(t, mc)
	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 3, BackoffMS: 1000})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = pub.PublishSetpoint(ctx, "p", "g", 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, mc.published, 1)
}

func TestConnectError(t *testing.T) {
	mc := &mockClient{connectErr: errors.New("refused")}
	useMock(t, mc)
	_, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883"})
	assert.EqualError(t, err, "refused")
}

func TestLWTConfigured(t *testing.T) {
	mc := &mockClient{}
	useMock(t, mc)
	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883", LWTTopic: "lwt", LWTPayload: "bye", QoS: 1})
	require.NoError(t, err)
	assert.True(t, mc.opts.WillEnabled)
	assert.Equal(t, "lwt", mc.opts.WillTopic)
	assert.Equal(t, "bye", string(mc.opts.WillPayload))
	pub.Close()
	assert.Equal(t, 1, mc.disconnects)
	assert.Empty(t, mc.published)
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, Config{}.Validate())
	assert.Error(t, Config{Broker: "tcp://x:1883", QoS: 3}.Validate())
	assert.NoError(t, Config{Broker: "tcp://x:1883", QoS: 2}.Validate())
}

func TestMockPublisher(t *testing.T) {
	m := NewMockPublisher()
	m.FailPlant["bad"] = true
	id, err := m.PublishSetpoint(context.Background(), "p", "good", 12.5)
	require.NoError(t, err)
	assert.Equal(t, "cmd-1", id)
	v, ok := m.Get("good")
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)
	_, err = m.PublishSetpoint(context.Background(), "p", "bad", 1)
	assert.Error(t, err)
	_, err = m.PublishSetpoint(context.Background(), "p", "", 1)
	assert.ErrorIs(t, err, coremqtt.ErrEmptyPlant)
}
