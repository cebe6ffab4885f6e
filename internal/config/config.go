package config

import (
	"errors"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"holdem-server/internal/util"
	"holdem-server/pkg/texasholdem"
)

// Config provides configuration for the hold'em server
type Config struct {
	loaded bool

	SmallBlind    int           `yaml:"smallBlind" envconfig:"small_blind"`
	BigBlind      int           `yaml:"bigBlind" envconfig:"big_blind"`
	StartingChips int           `yaml:"startingChips" envconfig:"starting_chips"`
	MaxSeats      int           `yaml:"maxSeats" envconfig:"max_seats"`
	ActionTimeout time.Duration `yaml:"actionTimeout" envconfig:"action_timeout"`
	NextHandDelay time.Duration `yaml:"nextHandDelay" envconfig:"next_hand_delay"`
	Log           struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	opts := texasholdem.DefaultOptions()

	cfg := Config{
		SmallBlind:    opts.SmallBlind,
		BigBlind:      opts.BigBlind,
		StartingChips: 1000,
		MaxSeats:      opts.MaxSeats,
		ActionTimeout: time.Second * 30,
		NextHandDelay: opts.NextHandDelay,
	}
	cfg.Log.Level = "info"

	return cfg
}

// TableOptions returns the game options for a new table
func (c Config) TableOptions() texasholdem.Options {
	return texasholdem.Options{
		SmallBlind:    c.SmallBlind,
		BigBlind:      c.BigBlind,
		MaxSeats:      c.MaxSeats,
		NextHandDelay: c.NextHandDelay,
	}
}

var config Config

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
// A missing config file is not an error, the defaults are used instead.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("HOLDEM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("holdem", &cfg); err != nil {
		return err
	}

	if err := cfg.TableOptions().Validate(); err != nil {
		return err
	}

	if cfg.StartingChips <= 0 {
		return errors.New("starting chips must be greater than zero")
	}

	config = cfg
	config.loaded = true
	return nil
}
