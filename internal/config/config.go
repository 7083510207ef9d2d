// internal/config/config.go
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Device DeviceConfig `yaml:"device"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Bus      string `yaml:"bus"` // periph i2creg name, "" = first bus
	Address  uint16 `yaml:"address"`
	Protocol string `yaml:"protocol"`

	SettleMs     int  `yaml:"settle_ms"`
	Retries      int  `yaml:"retries"`
	RetryDelayMs int  `yaml:"retry_delay_ms"`
	PEC          bool `yaml:"pec"`

	// Registers override or extend the protocol table.
	Registers []RegisterConfig `yaml:"registers"`
}

type RegisterConfig struct {
	Name    string `yaml:"name"`
	Address uint8  `yaml:"address"`
	Kind    string `yaml:"kind"`    // word | block
	MaxLen  int    `yaml:"max_len"` // block only
}

// ---- SERVER ----

type ServerConfig struct {
	Port int `yaml:"port"`
}

// ---- LOG ----

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads, validates and normalizes a YAML file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	return Parse(raw)
}

// Parse decodes YAML, then validates and normalizes it.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	Normalize(&cfg)
	return &cfg, nil
}

// Default returns a normalized configuration with no file.
func Default() *Config {
	cfg := &Config{}
	Normalize(cfg)
	return cfg
}
