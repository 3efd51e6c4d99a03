package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/powerplan/core/factory"
	"github.com/kilianp07/powerplan/core/metrics"
)

// EnvPrefix is the prefix of environment variables overriding the file,
// e.g. K_SERVER__ADDRESS=":9000".
const EnvPrefix = "K_"

type Config struct {
	Server    ServerConfig         `json:"server"`
	Planner   factory.ModuleConfig `json:"planner"`
	Metrics   metrics.Config       `json:"metrics"`
	Publisher PublisherConfig      `json:"publisher"`
	Logging   LoggingConfig        `json:"logging"`
	Sentry    SentryConfig         `json:"sentry"`
}

// Load reads the configuration file at path, applies environment overrides
// and defaults, and validates the result. Variables defined in a .env file of
// the working directory are loaded first. An empty path skips the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides. The callback maps K_SERVER__ADDRESS to
	// server.address, so the provider splits on the koanf delimiter.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills every section with its defaults.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Publisher.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Publisher.Validate(); err != nil {
		return fmt.Errorf("publisher: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Sentry.Validate(); err != nil {
		return fmt.Errorf("sentry: %w", err)
	}
	return nil
}
