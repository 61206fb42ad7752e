// Package config loads the model and training settings from YAML
package config

import "errors"
import "fmt"
import "os"

import "gopkg.in/yaml.v3"

// Model describes the network architecture
type Model struct {
	Channels int `yaml:"channels"`
	Blocks   int `yaml:"blocks"`
	Kernel   int `yaml:"kernel"`
	Growth   int `yaml:"growth"`
}

// Train describes the training loop
type Train struct {
	Epochs    int     `yaml:"epochs"`
	LearnRate float64 `yaml:"learn_rate"`
	Window    int     `yaml:"window"`
	Validate  float64 `yaml:"validate"`
	Patience  int     `yaml:"patience"`
	ClipNorm  float64 `yaml:"clip_norm"`
	Seed      int64   `yaml:"seed"`
}

// Config is the full training configuration
type Config struct {
	Model Model `yaml:"model"`
	Train Train `yaml:"train"`
}

// Default returns the stock configuration: a five block network with a
// receptive field of about three seconds at 44.1 kHz
func Default() Config {
	return Config{
		Model: Model{
			Channels: 32,
			Blocks:   5,
			Kernel:   13,
			Growth:   10,
		},
		Train: Train{
			Epochs:    150,
			LearnRate: 0.005,
			Window:    32768,
			Validate:  0.2,
			Patience:  10,
		},
	}
}

// Load reads a YAML config file over the defaults
func Load(name string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(name)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", name, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the trainer cannot run with
func (c Config) Validate() error {
	if c.Model.Channels < 1 || c.Model.Blocks < 1 || c.Model.Kernel < 1 {
		return errors.New("config: model channels, blocks and kernel must be positive")
	}
	if c.Model.Growth < 1 {
		return errors.New("config: model growth must be at least 1")
	}
	if c.Train.Epochs < 1 {
		return errors.New("config: train epochs must be positive")
	}
	if c.Train.LearnRate <= 0 {
		return errors.New("config: train learn_rate must be positive")
	}
	if c.Train.Window < 1 {
		return errors.New("config: train window must be positive")
	}
	if c.Train.Validate < 0 || c.Train.Validate > 0.9 {
		return errors.New("config: train validate must be within [0, 0.9]")
	}
	return nil
}
