package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/botroom/internal/constants"
)

// StoreConfig selects and tunes the remote store.
type StoreConfig struct {
	// DSN is a SQLite file path, a PostgreSQL URL without a password, or
	// "memory:" for a throwaway in-process store.
	DSN        string        `yaml:"dsn"`
	TimeoutRaw string        `yaml:"timeout,omitempty"`
	Timeout    time.Duration `yaml:"-"`
}

type UserConfig struct {
	Email string `yaml:"email"`
}

type LogConfig struct {
	Debug bool `yaml:"debug"`
}

// NotifyConfig controls where toasts are shown besides the terminal.
type NotifyConfig struct {
	// Tray forwards toasts to the botroom-tray desktop companion when it runs.
	Tray bool `yaml:"tray"`
}

// Config is the on-disk configuration of botroom.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	User   UserConfig   `yaml:"user"`
	Log    LogConfig    `yaml:"log"`
	Notify NotifyConfig `yaml:"notify"`

	// Dir is the directory the config was loaded from; logs live below it.
	Dir string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store: StoreConfig{
			DSN:     constants.DefaultStorePath,
			Timeout: constants.DefaultStoreTimeout,
		},
		Dir: ExpandPath(constants.DefaultConfigDir),
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(ExpandPath(constants.DefaultConfigDir), constants.DefaultConfigFile)
}

// Load reads the YAML config at path on top of the defaults and then
// applies environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	path = ExpandPath(path)
	cfg.Dir = filepath.Dir(path)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	timeout, err := ParseDurationOrDefault("store.timeout", cfg.Store.TimeoutRaw, constants.DefaultStoreTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.Store.Timeout = timeout
	cfg.Store.DSN = ExpandPath(cfg.Store.DSN)
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(constants.EnvStore); ok && v != "" {
		c.Store.DSN = v
	}
	if v, ok := lookup(constants.EnvUserEmail); ok {
		c.User.Email = v
	}
	if v, ok := lookup(constants.EnvDebug); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", constants.EnvDebug, v, err)
		}
		c.Log.Debug = debug
	}
	return nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c Config) Save(path string) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if c.Store.Timeout > 0 {
		c.Store.TimeoutRaw = c.Store.Timeout.String()
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// ParseDurationField parses a duration option; blank means zero.
func ParseDurationField(path, raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", path, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: duration must be >= 0", path)
	}
	return d, nil
}

// ParseDurationOrDefault is ParseDurationField with a fallback for blank or
// zero values.
func ParseDurationOrDefault(path, raw string, def time.Duration) (time.Duration, error) {
	d, err := ParseDurationField(path, raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return def, nil
	}
	return d, nil
}

// ExpandPath replaces a leading "~" with the user's home directory.
// Non-path DSNs are returned untouched.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
