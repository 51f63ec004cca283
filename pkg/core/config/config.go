package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	mdwerror "github.com/msto63/grocer/foundation/core/error"
	mdwlog "github.com/msto63/grocer/foundation/core/log"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "GROCER_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Catalog CatalogConfig `toml:"catalog"`
	Metrics MetricsConfig `toml:"metrics"`

	// path the configuration was loaded from, empty for defaults
	source string
}

// GeneralConfig holds logging and output settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Plain     bool   `toml:"plain"`
}

// CatalogConfig locates the persisted catalog
type CatalogConfig struct {
	Path    string   `toml:"path"`
	Store   string   `toml:"store"` // json, yaml or sqlite; empty = from extension
	Timeout Duration `toml:"timeout"`
}

// MetricsConfig holds metrics settings
type MetricsConfig struct {
	// Textfile is written after every command for the node-exporter
	// textfile collector. Empty disables metrics output.
	Textfile string `toml:"textfile"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is found
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mdwerror.Wrap(err, "config file not found").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	cfg.source = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from GROCER_CONFIG or the default
// locations. Without any config file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// DefaultPaths lists the config files tried when GROCER_CONFIG is unset
func DefaultPaths() []string {
	paths := []string{"./grocer.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "grocer", "config.toml"))
	}
	return paths
}

// Source returns the file the configuration was loaded from
func (c *Config) Source() string {
	return c.source
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	invalid := func(key, value string) error {
		return mdwerror.New("invalid configuration value").
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("key", key).
			WithDetail("value", value)
	}

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat)
	}
	switch strings.ToLower(c.Catalog.Store) {
	case "", "json", "yaml", "yml", "sqlite", "sqlite3", "db":
	default:
		return invalid("catalog.store", c.Catalog.Store)
	}
	if c.Catalog.Timeout.Duration < 0 {
		return invalid("catalog.timeout", c.Catalog.Timeout.String())
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Catalog
	if c.Catalog.Path == "" {
		c.Catalog.Path = "./products.json"
	}
	if c.Catalog.Timeout.Duration == 0 {
		c.Catalog.Timeout.Duration = 30 * time.Second
	}
}

// expandEnvVars expands environment variables in path settings
func (c *Config) expandEnvVars() {
	c.Catalog.Path = os.ExpandEnv(c.Catalog.Path)
	c.Metrics.Textfile = os.ExpandEnv(c.Metrics.Textfile)
}
