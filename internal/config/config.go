package config

import (
	"errors"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"pokercore/internal/util"
	"pokercore/pkg/poker/equity"
	"pokercore/pkg/poker/outcome"
)

// Config provides configuration for the poker core service
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	ListenAddr     string `yaml:"listenAddr" envconfig:"listen_addr"`
	Log            struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Table  outcome.Settings
	Equity struct {
		Samples         int   `yaml:"samples"`
		Workers         int   `yaml:"workers"`
		ExhaustiveLimit int64 `yaml:"exhaustiveLimit" envconfig:"exhaustive_limit"`
	}
}

// Options returns the equity calculator options for the configured limits
func (c Config) Options() []equity.Option {
	return []equity.Option{
		equity.WithSamples(c.Equity.Samples),
		equity.WithWorkers(c.Equity.Workers),
		equity.WithExhaustiveLimit(c.Equity.ExhaustiveLimit),
	}
}

var config Config

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() Config {
	c := Config{
		PGDSN:          "",
		MigrationsPath: "./sql",
		ListenAddr:     ":5000",
		Table:          outcome.DefaultSettings(),
	}

	c.Log.Level = "info"
	c.Equity.Samples = equity.DefaultSamples
	c.Equity.ExhaustiveLimit = equity.DefaultExhaustiveLimit

	return c
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
// A missing file is not an error, the defaults are used and may still be overridden by the environment
func Load() error {
	c := DefaultConfig()

	configFile := util.Getenv("PCORE_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&c); err != nil {
			return err
		}
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	if err := envconfig.Process("pcore", &c); err != nil {
		return err
	}

	if err := c.Table.Validate(); err != nil {
		return err
	}

	c.loaded = true
	config = c
	return nil
}
