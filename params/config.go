// Package params holds sealchain configuration.
package params

import (
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"sealchain/log"
)

// Config is decoded from a toml file; missing sections keep their defaults.
type Config struct {
	Mining  *MiningConfig
	Store   *StoreConfig
	Metrics *MetricsConfig `toml:",omitempty" json:",omitempty"`
}

// MiningConfig proof-of-work settings
type MiningConfig struct {
	Difficulty  uint
	Workers     int
	MaxAttempts uint64 `toml:",omitempty" json:",omitempty"`
}

// StoreConfig ledger persistence
type StoreConfig struct {
	Backend string
	Path    string
}

// MetricsConfig prometheus endpoint
type MetricsConfig struct {
	Addr string
}

// DefaultConfig mirrors the demonstration: difficulty 2, one worker,
// blockchain.json next to the binary.
func DefaultConfig() *Config {
	return &Config{
		Mining: &MiningConfig{
			Difficulty: 2,
			Workers:    1,
		},
		Store: &StoreConfig{
			Backend: "file",
			Path:    "blockchain.json",
		},
		Metrics: &MetricsConfig{},
	}
}

// LoadConfig reads configFile over the defaults. An empty name returns the
// defaults.
func LoadConfig(configFile string) (*Config, error) {
	config := DefaultConfig()
	if configFile == "" {
		return config, nil
	}
	if _, err := toml.DecodeFile(configFile, config); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", configFile)
	}
	if err := config.CheckConfig(); err != nil {
		return nil, err
	}
	log.Info("Config loaded", "file", configFile, "difficulty", config.Mining.Difficulty,
		"workers", config.Mining.Workers, "store", config.Store.Backend)
	return config, nil
}

// CheckConfig fills missing sections and rejects out of range values.
func (c *Config) CheckConfig() error {
	defaults := DefaultConfig()
	if c.Mining == nil {
		c.Mining = defaults.Mining
	}
	if c.Store == nil {
		c.Store = defaults.Store
	}
	if c.Metrics == nil {
		c.Metrics = defaults.Metrics
	}

	if c.Mining.Difficulty > 64 {
		return errors.Errorf("mining difficulty %d exceeds 64", c.Mining.Difficulty)
	}
	if c.Mining.Workers < 0 {
		return errors.Errorf("negative worker count %d", c.Mining.Workers)
	}
	if c.Mining.Workers > 4*runtime.NumCPU() {
		log.Warn("Mining workers exceed CPU count", "workers", c.Mining.Workers, "cpus", runtime.NumCPU())
	}
	switch c.Store.Backend {
	case "file", "leveldb":
		if c.Store.Path == "" {
			return errors.Errorf("store backend %s needs a path", c.Store.Backend)
		}
	case "memory":
	default:
		return errors.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}
