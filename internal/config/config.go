// Package config loads server configuration: built-in defaults overlaid by an
// optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration.
type Config struct {
	ListenAddr string
	LogLevel   string

	StorageDriver string // "sqlite" or "postgres"
	SQLitePath    string
	PostgresDSN   string

	SchedulerInterval time.Duration
	DebounceDelay     time.Duration

	AdvisorEndpoint string
	AdvisorAPIKey   string
	AdvisorTimeout  time.Duration
}

// configFile mirrors the YAML layout; absent fields keep defaults.
type configFile struct {
	Server struct {
		Addr     string `yaml:"addr"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"server"`
	Storage struct {
		Driver string `yaml:"driver"`
		Path   string `yaml:"path"`
		DSN    string `yaml:"dsn"`
	} `yaml:"storage"`
	Scheduler struct {
		Interval time.Duration `yaml:"interval"`
	} `yaml:"scheduler"`
	Persistence struct {
		Debounce time.Duration `yaml:"debounce"`
	} `yaml:"persistence"`
	Advisor struct {
		Endpoint string        `yaml:"endpoint"`
		APIKey   string        `yaml:"api_key"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"advisor"`
}

// Load returns the defaults overlaid with the YAML file at path, if it exists.
// A missing file is not an error; an unparsable one is.
func Load(path string) (Config, error) {
	cfg := Config{
		ListenAddr:        ":8080",
		LogLevel:          "info",
		StorageDriver:     "sqlite",
		SQLitePath:        "./data/finledger.db",
		SchedulerInterval: time.Hour,
		DebounceDelay:     500 * time.Millisecond,
		AdvisorTimeout:    30 * time.Second,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Server.Addr != "" {
			cfg.ListenAddr = f.Server.Addr
		}
		if f.Server.LogLevel != "" {
			cfg.LogLevel = f.Server.LogLevel
		}
		if f.Storage.Driver != "" {
			cfg.StorageDriver = f.Storage.Driver
		}
		if f.Storage.Path != "" {
			cfg.SQLitePath = f.Storage.Path
		}
		if f.Storage.DSN != "" {
			cfg.PostgresDSN = f.Storage.DSN
		}
		if f.Scheduler.Interval > 0 {
			cfg.SchedulerInterval = f.Scheduler.Interval
		}
		if f.Persistence.Debounce > 0 {
			cfg.DebounceDelay = f.Persistence.Debounce
		}
		if f.Advisor.Endpoint != "" {
			cfg.AdvisorEndpoint = f.Advisor.Endpoint
		}
		if f.Advisor.APIKey != "" {
			cfg.AdvisorAPIKey = f.Advisor.APIKey
		}
		if f.Advisor.Timeout > 0 {
			cfg.AdvisorTimeout = f.Advisor.Timeout
		}
	}

	if cfg.StorageDriver != "sqlite" && cfg.StorageDriver != "postgres" {
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if cfg.StorageDriver == "postgres" && cfg.PostgresDSN == "" {
		return Config{}, fmt.Errorf("storage driver postgres requires a dsn")
	}
	return cfg, nil
}
