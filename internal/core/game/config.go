package game

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds engine configuration
type Config struct {
	// Simulation settings
	TickRate float64 `yaml:"tick_rate"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Live inspector
	Inspector InspectorConfig `yaml:"inspector"`
}

// InspectorConfig configures the websocket inspector endpoint.
type InspectorConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Interval Duration `yaml:"interval"`
}

// Duration parses YAML strings like "250ms" into a time.Duration, which
// yaml.v3 cannot do on its own.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		TickRate: 60,
		LogLevel: "info",
		Inspector: InspectorConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     7515,
			Interval: Duration(time.Second),
		},
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the loop cannot run with.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("invalid tick_rate %v: must be positive", c.TickRate)
	}
	if c.Inspector.Enabled && (c.Inspector.Port <= 0 || c.Inspector.Port > 65535) {
		return fmt.Errorf("invalid inspector port %d", c.Inspector.Port)
	}
	return nil
}

// TickInterval returns the wall-clock duration of one tick.
func (c Config) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.TickRate)
}
