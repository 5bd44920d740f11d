package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"switch-server/internal/util"
)

// Config provides configuration for the switch server
type Config struct {
	loaded bool
	// Addr is the listen address
	Addr string `yaml:"addr" envconfig:"addr"`
	// HandSize is the number of cards dealt to each player
	HandSize int  `yaml:"handSize" envconfig:"hand_size"`
	Debug    bool `yaml:"debug" envconfig:"debug"`
	Log      struct {
		Level             string `yaml:"level" envconfig:"level"`
		Format            string `yaml:"format" envconfig:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	JWT struct {
		// Secret signs reconnection tokens, a random secret is used if empty
		Secret string `yaml:"secret" envconfig:"secret"`
		Issuer string `yaml:"issuer" envconfig:"issuer"`
	} `yaml:"jwt"`
}

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	cfg := Config{
		Addr:     ":4500",
		HandSize: 7,
	}

	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.JWT.Issuer = "switch-server"

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The config file is optional, environment variables take precedence over it
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("SWITCH_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return err
	default:
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return fmt.Errorf("could not decode %s: %w", configFile, err)
		}
	}

	if err := envconfig.Process("switch", &cfg); err != nil {
		return err
	}

	if cfg.HandSize <= 0 {
		return fmt.Errorf("handSize must be greater than zero, got %d", cfg.HandSize)
	}

	cfg.loaded = true
	config = cfg
	return nil
}
