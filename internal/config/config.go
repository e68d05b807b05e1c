// Package config loads client configuration from an optional TOML file and
// SOCIALECHO_* environment variables, in that order of precedence.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/TanakaAkihiro0930/SocialEcho/credential"
)

// EnvPrefix prefixes every environment variable, e.g. SOCIALECHO_API_URL.
const EnvPrefix = "SOCIALECHO"

// Credential store kinds.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
	StoreNone   = "none"
)

const (
	defaultConfigPath = "~/.socialecho/config.toml"
	defaultAPIURL     = "http://localhost:5000"
	defaultFilePath   = "~/.socialecho/profile.json"
	defaultSQLitePath = "~/.socialecho/profile.db"
)

// Config holds the client process configuration. envconfig also accepts the
// unprefixed names (API_URL, DEBUG, ...) when the prefixed one is unset.
type Config struct {
	APIURL          string        `envconfig:"API_URL"`
	CredentialStore string        `envconfig:"CREDENTIAL_STORE"`
	CredentialPath  string        `envconfig:"CREDENTIAL_PATH"`
	CredentialKey   string        `envconfig:"CREDENTIAL_KEY"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT"`
	LogLevel        string        `envconfig:"LOG_LEVEL"`
	Debug           bool          `envconfig:"DEBUG"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		APIURL:          defaultAPIURL,
		CredentialStore: StoreFile,
		CredentialKey:   credential.DefaultKey,
		LogLevel:        "info",
	}
}

// Load reads the TOML file at path (the default location when empty; a
// missing file is not an error), then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.mergeFile(resolved); err != nil {
		return nil, err
	}

	// envconfig only touches variables that are set, so file values survive
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("config_file", resolved).
		Str("api_url", cfg.APIURL).
		Str("credential_store", cfg.CredentialStore).
		Str("credential_path", cfg.CredentialPath).
		Dur("http_timeout", cfg.HTTPTimeout).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return &cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL          string `toml:"api_url"`
		CredentialStore string `toml:"credential_store"`
		CredentialPath  string `toml:"credential_path"`
		CredentialKey   string `toml:"credential_key"`
		HTTPTimeout     string `toml:"http_timeout"`
		LogLevel        string `toml:"log_level"`
		Debug           *bool  `toml:"debug"`
	}
	if err := toml.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(raw.CredentialStore); v != "" {
		c.CredentialStore = v
	}
	if v := strings.TrimSpace(raw.CredentialPath); v != "" {
		c.CredentialPath = v
	}
	if v := strings.TrimSpace(raw.CredentialKey); v != "" {
		c.CredentialKey = v
	}
	if v := strings.TrimSpace(raw.HTTPTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: http_timeout: %w", err)
		}
		c.HTTPTimeout = d
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = v
	}
	if raw.Debug != nil {
		c.Debug = *raw.Debug
	}
	return nil
}

// Validate checks the base URL, store kind, timeout and log level.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("api url is empty")
	}
	switch c.CredentialStore {
	case StoreFile, StoreSQLite, StoreMemory, StoreNone:
	default:
		return fmt.Errorf("unsupported credential store: %q", c.CredentialStore)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http timeout must be >= 0")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() zerolog.Level {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// StorePath returns the credential path, defaulting per store kind.
func (c *Config) StorePath() (string, error) {
	path := strings.TrimSpace(c.CredentialPath)
	if path == "" {
		switch c.CredentialStore {
		case StoreSQLite:
			path = defaultSQLitePath
		default:
			path = defaultFilePath
		}
	}
	return expandPath(path)
}

// OpenStore opens the configured credential store. The returned close
// function is never nil. StoreNone yields a nil Store.
func (c *Config) OpenStore(ctx context.Context) (credential.Store, func() error, error) {
	noop := func() error { return nil }
	switch c.CredentialStore {
	case StoreNone:
		return nil, noop, nil
	case StoreMemory:
		return credential.NewMemoryStore(), noop, nil
	case StoreFile:
		path, err := c.StorePath()
		if err != nil {
			return nil, noop, err
		}
		return credential.NewFileStore(path), noop, nil
	case StoreSQLite:
		path, err := c.StorePath()
		if err != nil {
			return nil, noop, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, noop, fmt.Errorf("create credential dir: %w", err)
		}
		store, err := credential.OpenSQLite(ctx, path)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported credential store: %q", c.CredentialStore)
	}
}

// Provider returns the credential provider reading from store; a nil store
// yields a provider without token.
func (c *Config) Provider(store credential.Store) credential.Provider {
	if store == nil {
		return credential.None()
	}
	return credential.NewProfileProvider(store, c.CredentialKey)
}

// ParseLevel maps debug/info/warn/error (any case) to a zerolog level.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("unsupported log level: %q", s)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if trimmed == ":memory:" {
		return trimmed, nil
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
