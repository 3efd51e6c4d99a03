package mqtt

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/powerplan/core/model"
	coremqtt "github.com/kilianp07/powerplan/core/mqtt"
	"github.com/kilianp07/powerplan/infra/logger"
)

// DefaultTopicPrefix is used when Config.TopicPrefix is empty.
const DefaultTopicPrefix = "powerplant"

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Broker      string      `json:"broker"`
	ClientID    string      `json:"client_id"`
	Username    string      `json:"username"`
	Password    string      `json:"password"`
	TopicPrefix string      `json:"topic_prefix"`
	UseTLS      bool        `json:"use_tls"`
	ClientCert  string      `json:"client_cert"`
	ClientKey   string      `json:"client_key"`
	CABundle    string      `json:"ca_bundle"`
	QoS         byte        `json:"qos"`
	Retain      bool        `json:"retain"`
	LWTTopic    string      `json:"lwt_topic"`
	LWTPayload  string      `json:"lwt_payload"`
	MaxRetries  int         `json:"max_retries"`
	BackoffMS   int         `json:"backoff_ms"`
	TLSConfig   *tls.Config `json:"-"`
}

// Validate checks the fields required to reach a broker.
func (c Config) Validate() error {
	if c.Broker == "" {
		return fmt.Errorf("mqtt: broker is required")
	}
	if c.QoS > 2 {
		return fmt.Errorf("mqtt: invalid qos %d", c.QoS)
	}
	return nil
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// PahoPublisher implements core/mqtt.SetpointPublisher using Eclipse Paho.
type PahoPublisher struct {
	cli        pahoClient
	logger     logger.Logger
	prefix     string
	qos        byte
	retain     bool
	maxRetries int
	backoff    time.Duration
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

var _ coremqtt.SetpointPublisher = (*PahoPublisher)(nil)

// NewPahoPublisher connects to the MQTT broker.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.New("mqtt_publisher")
	pp := &PahoPublisher{
		logger:     log,
		prefix:     strings.TrimSuffix(cfg.TopicPrefix, "/"),
		qos:        cfg.QoS,
		retain:     cfg.Retain,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
	}
	if pp.prefix == "" {
		pp.prefix = DefaultTopicPrefix
	}
	if pp.maxRetries <= 0 {
		pp.maxRetries = 3
	}
	if pp.backoff <= 0 {
		pp.backoff = 100 * time.Millisecond
	}

	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected to %s", cfg.Broker)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	pp.cli = c
	return pp, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "powerplan-" + uuid.NewString()[:8]
	}
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(clientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	if cfg.LWTTopic != "" {
		opts.SetWill(cfg.LWTTopic, cfg.LWTPayload, cfg.QoS, false)
	}
	return opts, nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	return &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}

// Setpoint is the message sent to a plant.
type Setpoint struct {
	CommandID string  `json:"command_id"`
	PlanID    string  `json:"plan_id"`
	Plant     string  `json:"plant"`
	PowerMW   float64 `json:"p"`
	Timestamp int64   `json:"timestamp"`
}

// Topic returns the setpoint topic of a plant.
func (p *PahoPublisher) Topic(plant string) string {
	return fmt.Sprintf("%s/%s/setpoint", p.prefix, plant)
}

// PublishSetpoint publishes the setpoint of one plant, retrying with an
// exponential backoff until the context is done.
func (p *PahoPublisher) PublishSetpoint(ctx context.Context, planID, plant string, powerMW float64) (string, error) {
	if plant == "" {
		return "", coremqtt.ErrEmptyPlant
	}
	if !model.ValidPlantName(plant) {
		return "", fmt.Errorf("%w: %q", coremqtt.ErrInvalidPlant, plant)
	}
	cmdID := uuid.NewString()
	payload, err := json.Marshal(Setpoint{
		CommandID: cmdID,
		PlanID:    planID,
		Plant:     plant,
		PowerMW:   powerMW,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return "", err
	}

	topic := p.Topic(plant)
	var publishErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		token := p.cli.Publish(topic, p.qos, p.retain, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			p.logger.Debugf("sent setpoint %s to %s", cmdID, topic)
			return cmdID, nil
		}
		p.logger.Errorf("publish attempt %d failed: %v", attempt+1, publishErr)
		if attempt == p.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("publish %s: %w", topic, ctx.Err())
		case <-time.After(p.backoff * time.Duration(1<<attempt)):
		}
	}
	return "", fmt.Errorf("publish %s: %w", topic, publishErr)
}

// Close gracefully closes the MQTT connection.
func (p *PahoPublisher) Close() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
