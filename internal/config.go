package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted when a setting is not given as a flag
const (
	EnvStorePath = "EXPENSE_TRACKER_STORE"
	EnvBackend   = "EXPENSE_TRACKER_BACKEND"
	EnvCurrency  = "EXPENSE_TRACKER_CURRENCY"
)

const DefaultBackend = "json"

type Config struct {
	// StorePath is where the expense collection is kept
	StorePath string `yaml:"store_path,omitempty"`

	// Backend selects the storage format (json or sqlite)
	Backend string `yaml:"backend,omitempty"`

	// Currency is an ISO 4217 code used when printing amounts, e.g. "EUR"
	Currency string `yaml:"currency,omitempty"`
}

// Settings are the effective values after flags, environment, config file
// and defaults have been applied
type Settings struct {
	StorePath string
	Backend   string
	Currency  string
}

// DefaultConfigDir returns ~/.expense-tracker, or "" if the home directory is unknown
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".expense-tracker")
}

// DefaultConfigPath returns the default config file path (~/.expense-tracker/config.yaml)
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// DefaultStorePath returns the store location used when nothing else is configured
func DefaultStorePath(backend string) string {
	name := "expenses.json"
	if backend == "sqlite" {
		name = "expenses.db"
	}
	dir := DefaultConfigDir()
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigOrDefault loads the config at path. An explicitly requested
// file must exist; a missing default file yields an empty config.
func LoadConfigOrDefault(path string, explicit bool) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	cfg, err := LoadConfig(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

func (c *Config) Validate() error {
	if c.Backend != "" && !IsKnownBackend(c.Backend) {
		return fmt.Errorf("%w %q in config (available: %v)", ErrUnknownBackend, c.Backend, AvailableBackends())
	}
	return nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Resolve applies, per setting, the first non-empty value out of flags,
// the environment (via getenv), the config file and the defaults.
// Currency may stay empty, in which case it is detected from the system locale.
func (c *Config) Resolve(flags Settings, getenv func(string) string) (Settings, error) {
	if c == nil {
		c = &Config{}
	}
	s := Settings{
		Backend:   firstNonEmpty(flags.Backend, getenv(EnvBackend), c.Backend, DefaultBackend),
		Currency:  strings.ToUpper(firstNonEmpty(flags.Currency, getenv(EnvCurrency), c.Currency)),
		StorePath: firstNonEmpty(flags.StorePath, getenv(EnvStorePath), c.StorePath),
	}
	if !IsKnownBackend(s.Backend) {
		return Settings{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownBackend, s.Backend, AvailableBackends())
	}
	if s.StorePath == "" {
		s.StorePath = DefaultStorePath(s.Backend)
	}
	s.StorePath = expandHome(s.StorePath)
	return s, nil
}

// ConfigTemplate returns a config with every setting filled in, for `config init`
func ConfigTemplate() *Config {
	return &Config{
		StorePath: DefaultStorePath(DefaultBackend),
		Backend:   DefaultBackend,
		Currency:  "USD",
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
