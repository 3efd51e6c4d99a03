package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yaml", `server:
  address: ":9000"
  request_timeout_ms: 250
planner:
  type: "unit-consistent"
  conf:
    co2_ton_per_mwh: 0.3
metrics:
  sinks:
    - type: "prometheus"
    - type: "influx"
      conf:
        url: "http://influx:8086"
        bucket: "plans"
publisher:
  enabled: true
  mqtt:
    broker: "tcp://localhost:1883"
    client_id: "cli"
    username: "user"
    password: "pass"
    qos: 1
    max_retries: 2
logging:
  level: "debug"
sentry:
  dsn: "https://public@sentry.example.com/1"
  environment: "prod"
  traces_sample_rate: 0.2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"server.address", cfg.Server.Address, ":9000"},
		{"server.request_timeout", cfg.Server.RequestTimeout(), 250 * time.Millisecond},
		{"server.shutdown_timeout", cfg.Server.ShutdownTimeout(), 5 * time.Second},
		{"planner.type", cfg.Planner.Type, "unit-consistent"},
		{"planner.conf", cfg.Planner.Conf["co2_ton_per_mwh"], 0.3},
		{"metrics.prometheus", cfg.Metrics.Has("prometheus"), true},
		{"metrics.nop", cfg.Metrics.Has("nop"), false},
		{"metrics.influx.bucket", cfg.Metrics.Sinks[1].Conf["bucket"], "plans"},
		{"publisher.enabled", cfg.Publisher.Enabled, true},
		{"broker", cfg.Publisher.MQTT.Broker, "tcp://localhost:1883"},
		{"client_id", cfg.Publisher.MQTT.ClientID, "cli"},
		{"username", cfg.Publisher.MQTT.Username, "user"},
		{"qos", cfg.Publisher.MQTT.QoS, byte(1)},
		{"max_retries", cfg.Publisher.MQTT.MaxRetries, 2},
		{"topic_prefix", cfg.Publisher.MQTT.TopicPrefix, "powerplant"},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"sentry.enabled", cfg.Sentry.Enabled(), true},
		{"sentry.environment", cfg.Sentry.Environment, "prod"},
		{"sentry.traces_sample_rate", cfg.Sentry.TracesSampleRate, 0.2},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"server": {"address": "127.0.0.1:8080"}, "planner": {"type": "merit-order"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Address)
	assert.Equal(t, "merit-order", cfg.Planner.Type)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8888", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout())
	assert.False(t, cfg.Publisher.Enabled)
	assert.Empty(t, cfg.Metrics.Sinks)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeFile(t, "config.yaml", "server:\n  address: \":9000\"\n")
	t.Setenv("K_SERVER__ADDRESS", ":7000")
	t.Setenv("K_SERVER__REQUEST_TIMEOUT_MS", "100")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Address)
	assert.Equal(t, 100*time.Millisecond, cfg.Server.RequestTimeout())
}

func TestLoadEnvOverridesNestedSections(t *testing.T) {
	path := writeFile(t, "config.yaml", `planner:
  type: merit-order
publisher:
  enabled: false
`)
	t.Setenv("K_PLANNER__TYPE", "unit-consistent")
	t.Setenv("K_PUBLISHER__ENABLED", "true")
	t.Setenv("K_PUBLISHER__MQTT__BROKER", "tcp://broker:1883")
	t.Setenv("K_PUBLISHER__MQTT__QOS", "1")
	t.Setenv("K_SENTRY__ENVIRONMENT", "staging")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "unit-consistent", cfg.Planner.Type)
	assert.True(t, cfg.Publisher.Enabled)
	assert.Equal(t, "tcp://broker:1883", cfg.Publisher.MQTT.Broker)
	assert.Equal(t, byte(1), cfg.Publisher.MQTT.QoS)
	assert.Equal(t, "staging", cfg.Sentry.Environment)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("K_LOGGING__LEVEL=warn\n"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("K_LOGGING__LEVEL")
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"unsupported format": writeFile(t, "config.toml", "x = 1"),
		"missing file":       filepath.Join(t.TempDir(), "absent.yaml"),
		"publisher without broker": writeFile(t, "pub.yaml", `publisher:
  enabled: true
`),
		"bad qos": writeFile(t, "qos.yaml", `publisher:
  enabled: true
  mqtt:
    broker: "tcp://localhost:1883"
    qos: 3
`),
		"bad level":        writeFile(t, "lvl.yaml", "logging:\n  level: \"loud\"\n"),
		"negative timeout": writeFile(t, "srv.yaml", "server:\n  request_timeout_ms: -1\n"),
		"sample rate":      writeFile(t, "sentry.yaml", "sentry:\n  traces_sample_rate: 2\n"),
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
